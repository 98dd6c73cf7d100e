package wallet

import (
	"strings"
	"testing"

	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit_CreditsFixedAmount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	acc := f.register(t, "254712345678")

	for i, ref := range []string{"QKX1ABC2DE", "  QKX9ZZZ1AA  "} {
		balance, err := f.svc.Deposit(t.Context(), acc.ID, ref)
		require.NoError(t, err)
		assert.Equal(t, []string{"170.00", "190.00"}[i], balance.StringFixed(2))
	}

	after := f.account(t, acc.ID)
	assert.True(t, after.HasDeposited)
	assert.False(t, after.CanWithdraw(), "a deposit alone must not open the gate")

	entries, err := f.svc.ListTransactions(t.Context(), acc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	latest := entries[0]
	assert.Equal(t, ledger.KindDeposit, latest.Kind)
	assert.Equal(t, ledger.StatusCompleted, latest.Status)
	assert.Equal(t, "20", latest.Amount.String())
	require.NotNil(t, latest.PaymentReference)
	assert.Equal(t, "QKX9ZZZ1AA", *latest.PaymentReference)
	assert.Equal(t, "Deposit (M-Pesa ID: QKX9ZZZ1AA)", latest.Description)

	assert.True(t, f.ledgerSum(t, acc.ID).Equal(after.Balance))
}

func TestDeposit_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	acc := f.register(t, "254712345678")

	_, err := f.svc.Deposit(t.Context(), uuid.New(), "QKX1ABC2DE")
	require.ErrorIs(t, err, ErrAccountNotFound)

	_, err = f.svc.Deposit(t.Context(), acc.ID, "   ")
	require.ErrorIs(t, err, ErrInvalidReference)

	_, err = f.svc.Deposit(t.Context(), acc.ID, strings.Repeat("X", maxReferenceLen+1))
	require.ErrorIs(t, err, ErrInvalidReference)

	assert.False(t, f.account(t, acc.ID).HasDeposited)
}
