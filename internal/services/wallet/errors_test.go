package wallet

import (
	"errors"
	"testing"

	"github.com/fastprodman/betpoa/internal/apperr"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/rules"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestErrors_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want apperr.Kind
	}{
		{ErrAccountNotFound, apperr.KindNotFound},
		{ErrInvalidPhone, apperr.KindValidation},
		{ErrInsufficientBalance, apperr.KindValidation},
		{ErrBelowMinimum, apperr.KindValidation},
		{ErrDuplicatePhone, apperr.KindPreconditionFailed},
		{ErrWithdrawalNotAllowed, apperr.KindPreconditionFailed},
		{ErrReferralCodeExhausted, apperr.KindConflict},
		{ErrConcurrentUpdate, apperr.KindConflict},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, apperr.KindOf(tt.err), tt.err.Error())
	}
}

func TestWager_SerializationFailureIsConflict(t *testing.T) {
	t.Parallel()

	accs := new(mockAccounts)
	id := uuid.New()
	accs.On("LockByID", mock.Anything, id).
		Return(accounts.Account{}, &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}).
		Once()

	svc := New(passthroughTx{}, Repos{Accounts: accs}, rules.Default())

	_, err := svc.Wager(t.Context(), id, dec("5"))
	require.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)

	accs.AssertExpectations(t)
}

func TestDeposit_StorageFailureIsInternal(t *testing.T) {
	t.Parallel()

	errDown := errors.New("connection refused")

	accs := new(mockAccounts)
	id := uuid.New()
	accs.On("LockByID", mock.Anything, id).Return(accounts.Account{ID: id}, nil).Once()
	accs.On("Update", mock.Anything, mock.MatchedBy(func(a accounts.Account) bool {
		return a.ID == id && a.HasDeposited
	})).Return(errDown).Once()

	svc := New(passthroughTx{}, Repos{Accounts: accs}, rules.Default())

	_, err := svc.Deposit(t.Context(), id, "QKX1ABC2DE")
	require.ErrorIs(t, err, errDown)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	accs.AssertExpectations(t)
}

func TestRegister_PhoneRaceMapsToDuplicate(t *testing.T) {
	t.Parallel()

	accs := new(mockAccounts)
	accs.On("GetByPhone", mock.Anything, "254712345678").Return(accounts.Account{}, accounts.ErrAccountNotFound).Once()
	accs.On("Create", mock.Anything, mock.Anything).Return(accounts.Account{}, accounts.ErrDuplicatePhone).Once()

	svc := New(passthroughTx{}, Repos{Accounts: accs}, rules.Default())

	_, err := svc.Register(t.Context(), "254712345678", "")
	require.ErrorIs(t, err, ErrDuplicatePhone)

	accs.AssertExpectations(t)
}
