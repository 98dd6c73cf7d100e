package wallet

import (
	"context"
	"testing"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/memory"
	"github.com/fastprodman/betpoa/internal/rules"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	alwaysWin  = 0.0
	alwaysLose = 0.5
)

func fixedDraw(v float64) func() float64 {
	return func() float64 { return v }
}

type fixture struct {
	svc   *Service
	store *memory.Store
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()

	r := rules.Default()
	r.HistoryLimit = 10_000

	store := memory.New()
	repos := Repos{
		Accounts:  store.Accounts(),
		Ledger:    store.Ledger(),
		Games:     store.Games(),
		Referrals: store.Referrals(),
	}

	return fixture{svc: New(store, repos, r, opts...), store: store}
}

func (f fixture) register(t *testing.T, phone string) accounts.Account {
	t.Helper()

	id, err := f.svc.Register(t.Context(), phone, "")
	require.NoError(t, err)

	return f.account(t, id)
}

func (f fixture) account(t *testing.T, id uuid.UUID) accounts.Account {
	t.Helper()

	acc, err := f.svc.GetAccount(t.Context(), id)
	require.NoError(t, err)

	return acc
}

// setState overwrites balance and flags of an existing account, for
// scenarios that start mid-lifecycle. A matching ledger adjustment is not
// written, so reconciliation checks must not be used after it.
func (f fixture) setState(t *testing.T, id uuid.UUID, mutate func(a *accounts.Account)) {
	t.Helper()

	err := f.store.Do(t.Context(), func(ctx context.Context) error {
		acc, err := f.store.Accounts().LockByID(ctx, id)
		if err != nil {
			return err
		}

		mutate(&acc)

		return f.store.Accounts().Update(ctx, acc)
	})
	require.NoError(t, err)
}

func (f fixture) ledgerSum(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()

	entries, err := f.svc.ListTransactions(t.Context(), id)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}

	return sum
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
