package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdraw debits amount and records a pending payout to destination. The
// checks run in a fixed order: gate, amount range, then minimum.
func (s *Service) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, destination string) (decimal.Decimal, error) {
	dest, ok := normalizePhone(destination)
	if !ok {
		return decimal.Decimal{}, ErrInvalidDestination
	}

	var balance decimal.Decimal

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		acc, err := s.repos.Accounts.LockByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", accountErr(err))
		}

		if !acc.CanWithdraw() {
			return ErrWithdrawalNotAllowed
		}
		if !isStorableAmount(amount) || !amount.IsPositive() || amount.GreaterThan(acc.Balance) || !isCents(amount) {
			return ErrInvalidAmount
		}
		if amount.LessThan(s.rules.WithdrawalMinimum) {
			return ErrBelowMinimum.Withf("minimum withdrawal amount is %s KES", s.rules.WithdrawalMinimum.String())
		}

		acc.Balance = acc.Balance.Sub(amount)

		err = s.repos.Accounts.Update(ctx, acc)
		if err != nil {
			return fmt.Errorf("update account: %w", err)
		}

		_, err = s.repos.Ledger.Append(ctx, ledger.Entry{
			ID:          uuid.New(),
			AccountID:   acc.ID,
			Kind:        ledger.KindWithdrawal,
			Amount:      amount.Neg(),
			Status:      ledger.StatusPending,
			Description: "Withdrawal to " + dest,
		})
		if err != nil {
			return fmt.Errorf("append withdrawal: %w", err)
		}

		balance = acc.Balance

		return nil
	})
	if err != nil {
		return decimal.Decimal{}, finish("withdraw", err)
	}

	slog.InfoContext(ctx, "withdrawal requested",
		"account_id", accountID,
		"amount", amount.StringFixed(2),
		"balance", balance.StringFixed(2),
	)

	return balance, nil
}
