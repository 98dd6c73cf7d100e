package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindBonus      Kind = "bonus"
	KindReferral   Kind = "referral"
	KindGameWin    Kind = "game_win"
	KindGameLoss   Kind = "game_loss"
)

// Status of an entry. Withdrawals start pending and are settled outside
// this service.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry is one immutable balance-affecting event. Amount is signed.
type Entry struct {
	ID               uuid.UUID
	AccountID        uuid.UUID
	Kind             Kind
	Amount           decimal.Decimal
	Status           Status
	PaymentReference *string
	Description      string
	CreatedAt        time.Time
}

type Ledger interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	// ListByAccount returns at most limit entries, newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint64) ([]Entry, error)
}
