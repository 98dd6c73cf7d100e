package games

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ games.Games = (*gamesRepo)(nil)

const table = "game_records"

type gamesRepo struct{ db *pgxpool.Pool }

func New(db *pgxpool.Pool) *gamesRepo {
	return &gamesRepo{db: db}
}

func (r *gamesRepo) Insert(ctx context.Context, rec games.Record) (games.Record, error) {
	query, args, err := pgutils.Builder.
		Insert(table).
		Columns("id", "account_id", "game_type", "stake", "outcome", "win_amount", "multiplier").
		Values(rec.ID, rec.AccountID, rec.GameType, rec.Stake, string(rec.Outcome), rec.WinAmount, rec.Multiplier).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return games.Record{}, fmt.Errorf("build insert game: %w", err)
	}

	err = pgutils.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&rec.CreatedAt)
	if err != nil {
		return games.Record{}, fmt.Errorf("insert game: %w", err)
	}

	return rec, nil
}

func (r *gamesRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint64) ([]games.Record, error) {
	query, args, err := pgutils.Builder.
		Select("id", "account_id", "game_type", "stake", "outcome", "win_amount", "multiplier", "created_at").
		From(table).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("seq DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select games: %w", err)
	}

	rows, err := pgutils.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	defer rows.Close()

	records := make([]games.Record, 0, limit)

	for rows.Next() {
		var (
			rec     games.Record
			outcome string
		)

		err = rows.Scan(&rec.ID, &rec.AccountID, &rec.GameType, &rec.Stake, &outcome, &rec.WinAmount, &rec.Multiplier, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}

		rec.Outcome = games.Outcome(outcome)
		records = append(records, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	return records, nil
}
