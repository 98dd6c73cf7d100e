package wallet

import (
	"context"
	"fmt"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/google/uuid"
)

// GetAccount reads without locking.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	acc, err := s.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("get account: %w", accountErr(err))
	}

	return acc, nil
}

func (s *Service) LookupByPhone(ctx context.Context, phone string) (accounts.Account, error) {
	phone, ok := normalizePhone(phone)
	if !ok {
		return accounts.Account{}, ErrInvalidPhone
	}

	acc, err := s.repos.Accounts.GetByPhone(ctx, phone)
	if err != nil {
		return accounts.Account{}, fmt.Errorf("lookup by phone: %w", accountErr(err))
	}

	return acc, nil
}

// ListTransactions returns the most recent ledger entries, newest first.
func (s *Service) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]ledger.Entry, error) {
	_, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repos.Ledger.ListByAccount(ctx, accountID, s.rules.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return entries, nil
}

// ListGames returns the most recent plays, newest first.
func (s *Service) ListGames(ctx context.Context, accountID uuid.UUID) ([]games.Record, error) {
	_, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	records, err := s.repos.Games.ListByAccount(ctx, accountID, s.rules.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return records, nil
}

// ListReferrals returns the accounts this account brought in, newest first.
func (s *Service) ListReferrals(ctx context.Context, accountID uuid.UUID) ([]referrals.Record, error) {
	_, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	records, err := s.repos.Referrals.ListByReferrer(ctx, accountID, s.rules.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}

	return records, nil
}
