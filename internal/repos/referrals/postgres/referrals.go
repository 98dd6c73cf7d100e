package referrals

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ referrals.Referrals = (*referralsRepo)(nil)

const (
	table              = "referrals"
	constraintReferred = "referrals_referred_id_key"
)

type referralsRepo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) *referralsRepo {
	return &referralsRepo{db: db}
}

func (r *referralsRepo) Insert(ctx context.Context, rec referrals.Record) (referrals.Record, error) {
	query, args, err := pgutils.Builder.
		Insert(table).
		Columns("id", "referrer_id", "referred_id", "code_used", "bonus_awarded").
		Values(rec.ID, rec.ReferrerID, rec.ReferredID, rec.CodeUsed, rec.BonusAwarded).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return referrals.Record{}, fmt.Errorf("build insert referral: %w", err)
	}

	err = pgutils.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&rec.CreatedAt)
	if err != nil {
		if pgutils.IsUniqueViolation(err, constraintReferred) {
			return referrals.Record{}, referrals.ErrAlreadyReferred
		}

		return referrals.Record{}, fmt.Errorf("insert referral: %w", err)
	}

	return rec, nil
}

func (r *referralsRepo) ListByReferrer(ctx context.Context, referrerID uuid.UUID, limit uint64) ([]referrals.Record, error) {
	query, args, err := pgutils.Builder.
		Select("id", "referrer_id", "referred_id", "code_used", "bonus_awarded", "created_at").
		From(table).
		Where(sq.Eq{"referrer_id": referrerID}).
		OrderBy("seq DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select referrals: %w", err)
	}

	rows, err := pgutils.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select referrals: %w", err)
	}
	defer rows.Close()

	records := make([]referrals.Record, 0, limit)

	for rows.Next() {
		var rec referrals.Record

		err = rows.Scan(&rec.ID, &rec.ReferrerID, &rec.ReferredID, &rec.CodeUsed, &rec.BonusAwarded, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan referral: %w", err)
		}

		records = append(records, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate referrals: %w", err)
	}

	return records, nil
}
