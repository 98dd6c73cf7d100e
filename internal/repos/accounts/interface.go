package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicatePhone    = errors.New("phone number already registered")
	ErrReferralCodeTaken = errors.New("referral code already taken")
)

// Account is a player's wallet together with its withdrawal gate flags.
// The three flags only ever go from false to true.
type Account struct {
	ID                    uuid.UUID
	PhoneNumber           string
	Balance               decimal.Decimal
	TotalWinnings         decimal.Decimal
	WelcomeBonusUnlocked  bool
	HasDeposited          bool
	HasPlayedAfterDeposit bool
	ReferralCode          string
	ReferredBy            *uuid.UUID
	TotalReferrals        int64
	CreatedAt             time.Time
}

// CanWithdraw is derived from the unlock flags and never stored.
func (a Account) CanWithdraw() bool {
	return a.WelcomeBonusUnlocked || a.HasPlayedAfterDeposit
}

type Accounts interface {
	// Create inserts a. It fails with ErrDuplicatePhone or
	// ErrReferralCodeTaken; the latter leaves the surrounding transaction
	// usable so the caller can retry with another code.
	Create(ctx context.Context, a Account) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByPhone(ctx context.Context, phone string) (Account, error)
	GetByReferralCode(ctx context.Context, code string) (Account, error)
	// LockByID reads the account and holds it until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (Account, error)
	// Update writes balance, winnings, referral count and flags. Stored
	// flags are OR-ed with the new values.
	Update(ctx context.Context, a Account) error
}
