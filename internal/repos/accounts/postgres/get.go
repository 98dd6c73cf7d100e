package accounts

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *accountsRepo) GetByID(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "")
}

func (r *accountsRepo) GetByPhone(ctx context.Context, phone string) (accounts.Account, error) {
	return r.getOne(ctx, sq.Eq{"phone_number": phone}, "")
}

func (r *accountsRepo) GetByReferralCode(ctx context.Context, code string) (accounts.Account, error) {
	return r.getOne(ctx, sq.Eq{"referral_code": code}, "")
}

func (r *accountsRepo) getOne(ctx context.Context, where sq.Eq, suffix string) (accounts.Account, error) {
	b := pgutils.Builder.
		Select(columns...).
		From(table).
		Where(where)
	if suffix != "" {
		b = b.Suffix(suffix)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return accounts.Account{}, fmt.Errorf("build select account: %w", err)
	}

	a, err := scanAccount(pgutils.Conn(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accounts.Account{}, accounts.ErrAccountNotFound
		}

		return accounts.Account{}, fmt.Errorf("select account: %w", err)
	}

	return a, nil
}
