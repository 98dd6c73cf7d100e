package accounts

import (
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

const (
	table = "accounts"

	constraintPhone        = "accounts_phone_number_key"
	constraintReferralCode = "accounts_referral_code_key"
)

var columns = []string{
	"id",
	"phone_number",
	"balance",
	"total_winnings",
	"welcome_bonus_unlocked",
	"has_deposited",
	"has_played_after_deposit",
	"referral_code",
	"referred_by",
	"total_referrals",
	"created_at",
}

type accountsRepo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) *accountsRepo {
	return &accountsRepo{db: db}
}

func scanAccount(row pgx.Row) (accounts.Account, error) {
	var a accounts.Account

	err := row.Scan(
		&a.ID,
		&a.PhoneNumber,
		&a.Balance,
		&a.TotalWinnings,
		&a.WelcomeBonusUnlocked,
		&a.HasDeposited,
		&a.HasPlayedAfterDeposit,
		&a.ReferralCode,
		&a.ReferredBy,
		&a.TotalReferrals,
		&a.CreatedAt,
	)

	return a, err
}
