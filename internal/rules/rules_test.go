package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	r := Default()
	require.NoError(t, r.Validate())

	assert.True(t, r.WelcomeBonus.Equal(decimal.NewFromInt(150)))
	assert.True(t, r.DepositCredit.Equal(decimal.NewFromInt(20)))
	assert.True(t, r.ReferralBonus.Equal(decimal.NewFromInt(5)))
	assert.InDelta(t, 0.001, r.WinProbability, 0)
	assert.Equal(t, int64(100), r.WinMultiplier)
	assert.Equal(t, uint64(50), r.HistoryLimit)
}

func TestParse_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		check   func(t *testing.T, r Rules)
		wantErr bool
	}{
		{
			name: "empty_document_keeps_defaults",
			doc:  "",
			check: func(t *testing.T, r Rules) {
				assert.Equal(t, Default().ReferralCodeLength, r.ReferralCodeLength)
			},
		},
		{
			name: "overrides_amounts_and_odds",
			doc: `
welcome_bonus: "200.50"
win_probability: 0.5
withdrawal_minimum: 25
history_limit: 20
`,
			check: func(t *testing.T, r Rules) {
				assert.Equal(t, "200.5", r.WelcomeBonus.String())
				assert.InDelta(t, 0.5, r.WinProbability, 0)
				assert.Equal(t, "25", r.WithdrawalMinimum.String())
				assert.Equal(t, uint64(20), r.HistoryLimit)
				assert.True(t, r.DepositCredit.Equal(decimal.NewFromInt(20)))
			},
		},
		{name: "bad_amount", doc: `deposit_credit: "twenty"`, wantErr: true},
		{name: "probability_out_of_range", doc: `win_probability: 1.5`, wantErr: true},
		{name: "fallback_not_longer", doc: "referral_code_length: 8\nreferral_code_fallback_length: 8", wantErr: true},
		{name: "sub_cent_amount", doc: `referral_bonus: "0.001"`, wantErr: true},
		{name: "fallback_longer_than_column", doc: "referral_code_fallback_length: 17", wantErr: true},
		{name: "fallback_at_column_limit", doc: "referral_code_fallback_length: 16", check: func(t *testing.T, r Rules) {
			assert.Equal(t, 16, r.ReferralCodeFallback)
		}},
		{name: "history_limit_too_large", doc: "history_limit: 1000000000000", wantErr: true},
		{name: "amount_exponent_out_of_range", doc: `welcome_bonus: "1e-5000000"`, wantErr: true},
		{name: "malformed_yaml", doc: "welcome_bonus: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("referral_bonus: \"7\"\n"), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7", r.ReferralBonus.String())

	r, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().ReferralBonus.String(), r.ReferralBonus.String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_ExampleFileMatchesDefaults(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join("..", "..", "configs", "rules.example.yaml"))
	require.NoError(t, err)

	want := Default()
	assert.True(t, got.WelcomeBonus.Equal(want.WelcomeBonus))
	assert.True(t, got.DepositCredit.Equal(want.DepositCredit))
	assert.True(t, got.ReferralBonus.Equal(want.ReferralBonus))
	assert.True(t, got.WithdrawalMinimum.Equal(want.WithdrawalMinimum))
	assert.True(t, got.BonusUnlockWinnings.Equal(want.BonusUnlockWinnings))
	assert.True(t, got.SmallPlayMaxStake.Equal(want.SmallPlayMaxStake))
	assert.InDelta(t, want.WinProbability, got.WinProbability, 0)
	assert.Equal(t, want.WinMultiplier, got.WinMultiplier)
	assert.Equal(t, want.ReferralCodeLength, got.ReferralCodeLength)
	assert.Equal(t, want.ReferralCodeFallback, got.ReferralCodeFallback)
	assert.Equal(t, want.ReferralCodeAttempts, got.ReferralCodeAttempts)
	assert.Equal(t, want.HistoryLimit, got.HistoryLimit)
}
