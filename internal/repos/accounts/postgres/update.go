package accounts

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
)

func (r *accountsRepo) Update(ctx context.Context, a accounts.Account) error {
	query, args, err := pgutils.Builder.
		Update(table).
		Set("balance", a.Balance).
		Set("total_winnings", a.TotalWinnings).
		Set("total_referrals", a.TotalReferrals).
		Set("welcome_bonus_unlocked", sq.Expr("welcome_bonus_unlocked OR ?", a.WelcomeBonusUnlocked)).
		Set("has_deposited", sq.Expr("has_deposited OR ?", a.HasDeposited)).
		Set("has_played_after_deposit", sq.Expr("has_played_after_deposit OR ?", a.HasPlayedAfterDeposit)).
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account: %w", err)
	}

	tag, err := pgutils.Conn(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return accounts.ErrAccountNotFound
	}

	return nil
}
