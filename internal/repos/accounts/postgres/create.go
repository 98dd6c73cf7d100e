package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/jackc/pgx/v5"
)

// Create relies on ON CONFLICT for the referral code so that a collision
// does not abort the transaction. A phone collision still does.
func (r *accountsRepo) Create(ctx context.Context, a accounts.Account) (accounts.Account, error) {
	query, args, err := pgutils.Builder.
		Insert(table).
		Columns(
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
		).
		Values(
			a.ID,
			a.PhoneNumber,
			a.Balance,
			a.TotalWinnings,
			a.WelcomeBonusUnlocked,
			a.HasDeposited,
			a.HasPlayedAfterDeposit,
			a.ReferralCode,
			a.ReferredBy,
			a.TotalReferrals,
		).
		Suffix("ON CONFLICT (referral_code) DO NOTHING RETURNING created_at").
		ToSql()
	if err != nil {
		return accounts.Account{}, fmt.Errorf("build insert account: %w", err)
	}

	err = pgutils.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&a.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return accounts.Account{}, accounts.ErrReferralCodeTaken
		case pgutils.IsUniqueViolation(err, constraintPhone):
			return accounts.Account{}, accounts.ErrDuplicatePhone
		case pgutils.IsUniqueViolation(err, constraintReferralCode):
			return accounts.Account{}, accounts.ErrReferralCodeTaken
		}

		return accounts.Account{}, fmt.Errorf("insert account: %w", err)
	}

	return a, nil
}
