package wallet

import (
	"errors"
	"fmt"

	"github.com/fastprodman/betpoa/internal/apperr"
	"github.com/fastprodman/betpoa/internal/infra/pgutils"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
)

var (
	ErrAccountNotFound = apperr.New(apperr.KindNotFound, "account_not_found", "account not found")

	ErrInvalidPhone        = apperr.New(apperr.KindValidation, "invalid_phone", "phone number must be 254 followed by 9 digits")
	ErrInvalidDestination  = apperr.New(apperr.KindValidation, "invalid_destination", "destination phone must be 254 followed by 9 digits")
	ErrInvalidReference    = apperr.New(apperr.KindValidation, "invalid_payment_reference", "payment reference is required")
	ErrInvalidStake        = apperr.New(apperr.KindValidation, "invalid_stake", "invalid stake amount")
	ErrInsufficientBalance = apperr.New(apperr.KindValidation, "insufficient_balance", "insufficient balance")
	ErrInvalidAmount       = apperr.New(apperr.KindValidation, "invalid_amount", "invalid withdrawal amount")
	ErrBelowMinimum        = apperr.New(apperr.KindValidation, "below_minimum", "amount is below the withdrawal minimum")

	ErrDuplicatePhone       = apperr.New(apperr.KindPreconditionFailed, "duplicate_phone", "an account with this phone number already exists")
	ErrWithdrawalNotAllowed = apperr.New(apperr.KindPreconditionFailed, "withdrawal_not_allowed", "withdrawal not allowed, complete requirements first")

	ErrReferralCodeExhausted = apperr.New(apperr.KindConflict, "referral_code_exhausted", "could not allocate a referral code, try again")
	ErrConcurrentUpdate      = apperr.New(apperr.KindConflict, "concurrent_update", "account was modified concurrently, try again")
)

// accountErr translates the repository's not-found into the domain error.
func accountErr(err error) error {
	if errors.Is(err, accounts.ErrAccountNotFound) {
		return ErrAccountNotFound
	}

	return err
}

// finish labels err with op. Transactions aborted by Postgres because of a
// concurrent one surface as ErrConcurrentUpdate.
func finish(op string, err error) error {
	if err == nil {
		return nil
	}

	if _, ok := apperr.As(err); !ok && pgutils.IsRetryable(err) {
		err = ErrConcurrentUpdate.Wrap(err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
