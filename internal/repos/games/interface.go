package games

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TypeSpinning is the only game offered today.
const TypeSpinning = "spinning"

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Record is one play. WinAmount and Multiplier are zero on a loss.
type Record struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	GameType   string
	Stake      decimal.Decimal
	Outcome    Outcome
	WinAmount  decimal.Decimal
	Multiplier int64
	CreatedAt  time.Time
}

type Games interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	// ListByAccount returns at most limit records, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint64) ([]Record, error)
}
