package referrals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyReferred = errors.New("account already has a referrer")

// Record links a referrer to the account it brought in. One per referred
// account, written once at registration.
type Record struct {
	ID           uuid.UUID
	ReferrerID   uuid.UUID
	ReferredID   uuid.UUID
	CodeUsed     string
	BonusAwarded bool
	CreatedAt    time.Time
}

type Referrals interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	// ListByReferrer returns at most limit records, newest first.
	ListByReferrer(ctx context.Context, referrerID uuid.UUID, limit uint64) ([]Record, error)
}
