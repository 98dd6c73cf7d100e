// Package rules holds the tunable constants of the wallet: bonuses, the
// spin game odds and the withdrawal gate thresholds.
package rules

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Rules are the business constants every service reads.
type Rules struct {
	WelcomeBonus         decimal.Decimal
	DepositCredit        decimal.Decimal
	ReferralBonus        decimal.Decimal
	WinProbability       float64
	WinMultiplier        int64
	WithdrawalMinimum    decimal.Decimal
	BonusUnlockWinnings  decimal.Decimal
	SmallPlayMaxStake    decimal.Decimal
	ReferralCodeLength   int
	ReferralCodeFallback int
	ReferralCodeAttempts int
	HistoryLimit         uint64
}

// Default returns the production rule set.
func Default() Rules {
	return Rules{
		WelcomeBonus:         decimal.NewFromInt(150),
		DepositCredit:        decimal.NewFromInt(20),
		ReferralBonus:        decimal.NewFromInt(5),
		WinProbability:       0.001,
		WinMultiplier:        100,
		WithdrawalMinimum:    decimal.NewFromInt(10),
		BonusUnlockWinnings:  decimal.NewFromInt(300),
		SmallPlayMaxStake:    decimal.NewFromInt(10),
		ReferralCodeLength:   6,
		ReferralCodeFallback: 8,
		ReferralCodeAttempts: 5,
		HistoryLimit:         50,
	}
}

// fileRules mirrors Rules in the YAML file. Every key is optional; amounts
// are strings so they never pass through float64.
type fileRules struct {
	WelcomeBonus         *string  `yaml:"welcome_bonus"`
	DepositCredit        *string  `yaml:"deposit_credit"`
	ReferralBonus        *string  `yaml:"referral_bonus"`
	WinProbability       *float64 `yaml:"win_probability"`
	WinMultiplier        *int64   `yaml:"win_multiplier"`
	WithdrawalMinimum    *string  `yaml:"withdrawal_minimum"`
	BonusUnlockWinnings  *string  `yaml:"bonus_unlock_winnings"`
	SmallPlayMaxStake    *string  `yaml:"small_play_max_stake"`
	ReferralCodeLength   *int     `yaml:"referral_code_length"`
	ReferralCodeFallback *int     `yaml:"referral_code_fallback_length"`
	ReferralCodeAttempts *int     `yaml:"referral_code_attempts"`
	HistoryLimit         *uint64  `yaml:"history_limit"`
}

// Load returns Default overridden by the YAML file at path. An empty path
// yields the defaults.
func Load(path string) (Rules, error) {
	r := Default()
	if path == "" {
		return r, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}

	return Parse(raw)
}

// Parse applies a YAML document on top of Default and validates the result.
func Parse(raw []byte) (Rules, error) {
	r := Default()

	var f fileRules

	err := yaml.Unmarshal(raw, &f)
	if err != nil {
		return Rules{}, fmt.Errorf("decode rules: %w", err)
	}

	amounts := []struct {
		key string
		src *string
		dst *decimal.Decimal
	}{
		{"welcome_bonus", f.WelcomeBonus, &r.WelcomeBonus},
		{"deposit_credit", f.DepositCredit, &r.DepositCredit},
		{"referral_bonus", f.ReferralBonus, &r.ReferralBonus},
		{"withdrawal_minimum", f.WithdrawalMinimum, &r.WithdrawalMinimum},
		{"bonus_unlock_winnings", f.BonusUnlockWinnings, &r.BonusUnlockWinnings},
		{"small_play_max_stake", f.SmallPlayMaxStake, &r.SmallPlayMaxStake},
	}

	for _, a := range amounts {
		if a.src == nil {
			continue
		}

		d, err := decimal.NewFromString(*a.src)
		if err != nil {
			return Rules{}, fmt.Errorf("%s: %w", a.key, err)
		}

		*a.dst = d
	}

	if f.WinProbability != nil {
		r.WinProbability = *f.WinProbability
	}
	if f.WinMultiplier != nil {
		r.WinMultiplier = *f.WinMultiplier
	}
	if f.ReferralCodeLength != nil {
		r.ReferralCodeLength = *f.ReferralCodeLength
	}
	if f.ReferralCodeFallback != nil {
		r.ReferralCodeFallback = *f.ReferralCodeFallback
	}
	if f.ReferralCodeAttempts != nil {
		r.ReferralCodeAttempts = *f.ReferralCodeAttempts
	}
	if f.HistoryLimit != nil {
		r.HistoryLimit = *f.HistoryLimit
	}

	err = r.Validate()
	if err != nil {
		return Rules{}, err
	}

	return r, nil
}

// Limits imposed by the schema: referral codes are at most 16 characters and
// amounts are NUMERIC(14,2).
const (
	maxReferralCodeLength = 16
	maxHistoryLimit       = 1000
	maxAmountExponent     = 12
	minAmountExponent     = -18
)

// Validate rejects rule sets the services cannot run with.
func (r Rules) Validate() error {
	var errs []error

	for name, v := range map[string]decimal.Decimal{
		"welcome_bonus":         r.WelcomeBonus,
		"deposit_credit":        r.DepositCredit,
		"referral_bonus":        r.ReferralBonus,
		"withdrawal_minimum":    r.WithdrawalMinimum,
		"bonus_unlock_winnings": r.BonusUnlockWinnings,
		"small_play_max_stake":  r.SmallPlayMaxStake,
	} {
		if v.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must not be negative", name))
		}
		if v.Exponent() < minAmountExponent || v.Exponent() > maxAmountExponent {
			errs = append(errs, fmt.Errorf("%s is out of range", name))

			continue
		}
		if v.Exponent() < -2 && !v.Equal(v.Round(2)) {
			errs = append(errs, fmt.Errorf("%s has more than two decimal places", name))
		}
	}

	if r.WinProbability < 0 || r.WinProbability > 1 {
		errs = append(errs, errors.New("win_probability must be within [0, 1]"))
	}
	if r.WinMultiplier < 1 {
		errs = append(errs, errors.New("win_multiplier must be at least 1"))
	}
	if r.ReferralCodeLength < 4 {
		errs = append(errs, errors.New("referral_code_length must be at least 4"))
	}
	if r.ReferralCodeFallback <= r.ReferralCodeLength {
		errs = append(errs, errors.New("referral_code_fallback_length must exceed referral_code_length"))
	}
	if r.ReferralCodeFallback > maxReferralCodeLength {
		errs = append(errs, fmt.Errorf("referral_code_fallback_length must be at most %d", maxReferralCodeLength))
	}
	if r.ReferralCodeAttempts < 1 {
		errs = append(errs, errors.New("referral_code_attempts must be at least 1"))
	}
	if r.HistoryLimit == 0 || r.HistoryLimit > maxHistoryLimit {
		errs = append(errs, fmt.Errorf("history_limit must be within [1, %d]", maxHistoryLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid rules: %w", errors.Join(errs...))
	}

	return nil
}
