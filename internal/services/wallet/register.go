package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Register creates an account for phone and credits the welcome bonus.
//
// Flow, in one transaction:
//
// 1) Reject a phone that is already registered.
// 2) Resolve the referral code, if any. Unknown codes are ignored.
// 3) Insert the account under a fresh referral code.
// 4) Append the welcome bonus entry.
// 5) Pay the referrer and record the referral, now that the account exists.
func (s *Service) Register(ctx context.Context, phone, referralCode string) (uuid.UUID, error) {
	phone, ok := normalizePhone(phone)
	if !ok {
		return uuid.Nil, ErrInvalidPhone
	}

	var created accounts.Account

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		_, err := s.repos.Accounts.GetByPhone(ctx, phone)
		if err == nil {
			return ErrDuplicatePhone
		}
		if !errors.Is(err, accounts.ErrAccountNotFound) {
			return fmt.Errorf("check phone: %w", err)
		}

		referrer, code, err := s.findReferrer(ctx, referralCode)
		if err != nil {
			return err
		}

		acc := accounts.Account{
			ID:            uuid.New(),
			PhoneNumber:   phone,
			Balance:       s.rules.WelcomeBonus,
			TotalWinnings: decimal.Zero,
		}
		if referrer != nil {
			acc.ReferredBy = &referrer.ID
		}

		created, err = s.createWithUniqueCode(ctx, acc)
		if err != nil {
			return err
		}

		_, err = s.repos.Ledger.Append(ctx, ledger.Entry{
			ID:          uuid.New(),
			AccountID:   created.ID,
			Kind:        ledger.KindBonus,
			Amount:      s.rules.WelcomeBonus,
			Status:      ledger.StatusCompleted,
			Description: "Welcome bonus",
		})
		if err != nil {
			return fmt.Errorf("append welcome bonus: %w", err)
		}

		if referrer == nil {
			return nil
		}

		return s.payReferrer(ctx, referrer.ID, created, code)
	})
	if err != nil {
		return uuid.Nil, finish("register", err)
	}

	slog.InfoContext(ctx, "account registered",
		"account_id", created.ID,
		"referral_code", created.ReferralCode,
		"referred", created.ReferredBy != nil,
	)

	return created.ID, nil
}

func (s *Service) findReferrer(ctx context.Context, raw string) (*accounts.Account, string, error) {
	if raw == "" {
		return nil, "", nil
	}

	code, ok := s.normalizeReferralCode(raw)
	if !ok {
		slog.InfoContext(ctx, "ignoring malformed referral code", "code", raw)

		return nil, "", nil
	}

	referrer, err := s.repos.Accounts.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, accounts.ErrAccountNotFound) {
			slog.InfoContext(ctx, "ignoring unknown referral code", "code", code)

			return nil, "", nil
		}

		return nil, "", fmt.Errorf("resolve referral code: %w", err)
	}

	return &referrer, code, nil
}

// createWithUniqueCode tries a bounded number of codes at the regular length,
// then at the fallback length.
func (s *Service) createWithUniqueCode(ctx context.Context, acc accounts.Account) (accounts.Account, error) {
	for _, length := range []int{s.rules.ReferralCodeLength, s.rules.ReferralCodeFallback} {
		for range s.rules.ReferralCodeAttempts {
			acc.ReferralCode = s.codes(length)

			created, err := s.repos.Accounts.Create(ctx, acc)
			switch {
			case err == nil:
				return created, nil
			case errors.Is(err, accounts.ErrReferralCodeTaken):
				slog.DebugContext(ctx, "referral code collision", "length", length)
			case errors.Is(err, accounts.ErrDuplicatePhone):
				return accounts.Account{}, ErrDuplicatePhone
			default:
				return accounts.Account{}, fmt.Errorf("create account: %w", err)
			}
		}
	}

	return accounts.Account{}, ErrReferralCodeExhausted
}

func (s *Service) payReferrer(ctx context.Context, referrerID uuid.UUID, referred accounts.Account, code string) error {
	referrer, err := s.repos.Accounts.LockByID(ctx, referrerID)
	if err != nil {
		return fmt.Errorf("lock referrer: %w", err)
	}

	referrer.Balance = referrer.Balance.Add(s.rules.ReferralBonus)
	referrer.TotalReferrals++

	err = s.repos.Accounts.Update(ctx, referrer)
	if err != nil {
		return fmt.Errorf("credit referrer: %w", err)
	}

	_, err = s.repos.Ledger.Append(ctx, ledger.Entry{
		ID:          uuid.New(),
		AccountID:   referrer.ID,
		Kind:        ledger.KindReferral,
		Amount:      s.rules.ReferralBonus,
		Status:      ledger.StatusCompleted,
		Description: "Referral bonus from " + referred.PhoneNumber,
	})
	if err != nil {
		return fmt.Errorf("append referral bonus: %w", err)
	}

	_, err = s.repos.Referrals.Insert(ctx, referrals.Record{
		ID:           uuid.New(),
		ReferrerID:   referrer.ID,
		ReferredID:   referred.ID,
		CodeUsed:     code,
		BonusAwarded: true,
	})
	if err != nil {
		return fmt.Errorf("insert referral: %w", err)
	}

	return nil
}
