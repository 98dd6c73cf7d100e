package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxReferenceLen = 64

// Deposit credits the fixed deposit amount. The M-Pesa reference is stored
// for audit only and is not verified.
func (s *Service) Deposit(ctx context.Context, accountID uuid.UUID, reference string) (decimal.Decimal, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" || len(ref) > maxReferenceLen {
		return decimal.Decimal{}, ErrInvalidReference
	}

	var balance decimal.Decimal

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		acc, err := s.repos.Accounts.LockByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", accountErr(err))
		}

		acc.Balance = acc.Balance.Add(s.rules.DepositCredit)
		acc.HasDeposited = true

		err = s.repos.Accounts.Update(ctx, acc)
		if err != nil {
			return fmt.Errorf("update account: %w", err)
		}

		_, err = s.repos.Ledger.Append(ctx, ledger.Entry{
			ID:               uuid.New(),
			AccountID:        acc.ID,
			Kind:             ledger.KindDeposit,
			Amount:           s.rules.DepositCredit,
			Status:           ledger.StatusCompleted,
			PaymentReference: &ref,
			Description:      fmt.Sprintf("Deposit (M-Pesa ID: %s)", ref),
		})
		if err != nil {
			return fmt.Errorf("append deposit: %w", err)
		}

		balance = acc.Balance

		return nil
	})
	if err != nil {
		return decimal.Decimal{}, finish("deposit", err)
	}

	slog.InfoContext(ctx, "deposit credited",
		"account_id", accountID,
		"amount", s.rules.DepositCredit.StringFixed(2),
		"reference", ref,
	)

	return balance, nil
}
