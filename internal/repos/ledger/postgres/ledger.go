package ledger

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ledger.Ledger = (*ledgerRepo)(nil)

const table = "ledger_entries"

type ledgerRepo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) *ledgerRepo {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Append(ctx context.Context, e ledger.Entry) (ledger.Entry, error) {
	query, args, err := pgutils.Builder.
		Insert(table).
		Columns("id", "account_id", "kind", "amount", "status", "payment_reference", "description").
		Values(e.ID, e.AccountID, string(e.Kind), e.Amount, string(e.Status), e.PaymentReference, e.Description).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("build insert entry: %w", err)
	}

	err = pgutils.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&e.CreatedAt)
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	return e, nil
}

func (r *ledgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint64) ([]ledger.Entry, error) {
	query, args, err := pgutils.Builder.
		Select("id", "account_id", "kind", "amount", "status", "payment_reference", "description", "created_at").
		From(table).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("seq DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select entries: %w", err)
	}

	rows, err := pgutils.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	defer rows.Close()

	entries := make([]ledger.Entry, 0, limit)

	for rows.Next() {
		var (
			e            ledger.Entry
			kind, status string
		)

		err = rows.Scan(&e.ID, &e.AccountID, &kind, &e.Amount, &status, &e.PaymentReference, &e.Description, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		e.Kind = ledger.Kind(kind)
		e.Status = ledger.Status(status)
		entries = append(entries, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}
