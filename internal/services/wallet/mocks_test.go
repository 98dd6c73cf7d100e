package wallet

import (
	"context"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockAccounts implements accounts.Accounts for failure-path tests.
type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) Create(ctx context.Context, a accounts.Account) (accounts.Account, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(accounts.Account), args.Error(1)
}

func (m *mockAccounts) GetByID(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(accounts.Account), args.Error(1)
}

func (m *mockAccounts) GetByPhone(ctx context.Context, phone string) (accounts.Account, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).(accounts.Account), args.Error(1)
}

func (m *mockAccounts) GetByReferralCode(ctx context.Context, code string) (accounts.Account, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(accounts.Account), args.Error(1)
}

func (m *mockAccounts) LockByID(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(accounts.Account), args.Error(1)
}

func (m *mockAccounts) Update(ctx context.Context, a accounts.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

// passthroughTx runs fn directly.
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
