package accounts

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/google/uuid"
)

// LockByID only serializes anything when ctx carries a transaction.
func (r *accountsRepo) LockByID(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, "FOR UPDATE")
}
