package wallet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WagerResult struct {
	Outcome    games.Outcome
	Payout     decimal.Decimal
	Multiplier int64
	Balance    decimal.Decimal
}

// Wager plays one spin for stake.
//
// The stake is debited whatever the outcome. A win credits stake times the
// multiplier and adds it to the account's winnings. The withdrawal gate is
// then evaluated on the updated account. The play is recorded as one game
// record and one ledger entry whose amount is the net balance change, so
// the ledger always sums to the balance.
func (s *Service) Wager(ctx context.Context, accountID uuid.UUID, stake decimal.Decimal) (WagerResult, error) {
	var res WagerResult

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		acc, err := s.repos.Accounts.LockByID(ctx, accountID)
		if err != nil {
			return fmt.Errorf("lock account: %w", accountErr(err))
		}

		if !isStorableAmount(stake) {
			return ErrInvalidStake
		}
		if stake.GreaterThan(acc.Balance) {
			return ErrInsufficientBalance
		}
		if !stake.IsPositive() || !isCents(stake) {
			return ErrInvalidStake
		}

		acc.Balance = acc.Balance.Sub(stake)

		res = WagerResult{Outcome: games.OutcomeLoss, Payout: decimal.Zero}
		if s.draw() < s.rules.WinProbability {
			res.Outcome = games.OutcomeWin
			res.Multiplier = s.rules.WinMultiplier
			res.Payout = stake.Mul(decimal.NewFromInt(s.rules.WinMultiplier))

			acc.Balance = acc.Balance.Add(res.Payout)
			acc.TotalWinnings = acc.TotalWinnings.Add(res.Payout)
		}

		acc = applyGate(acc, stake, s.rules)

		err = s.repos.Accounts.Update(ctx, acc)
		if err != nil {
			return fmt.Errorf("update account: %w", err)
		}

		_, err = s.repos.Games.Insert(ctx, games.Record{
			ID:         uuid.New(),
			AccountID:  acc.ID,
			GameType:   games.TypeSpinning,
			Stake:      stake,
			Outcome:    res.Outcome,
			WinAmount:  res.Payout,
			Multiplier: res.Multiplier,
		})
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}

		entry := ledger.Entry{
			ID:          uuid.New(),
			AccountID:   acc.ID,
			Kind:        ledger.KindGameLoss,
			Amount:      stake.Neg(),
			Status:      ledger.StatusCompleted,
			Description: "Spinning game loss",
		}
		if res.Outcome == games.OutcomeWin {
			entry.Kind = ledger.KindGameWin
			entry.Amount = res.Payout.Sub(stake)
			entry.Description = "Spinning game win"
		}

		_, err = s.repos.Ledger.Append(ctx, entry)
		if err != nil {
			return fmt.Errorf("append game entry: %w", err)
		}

		res.Balance = acc.Balance

		return nil
	})
	if err != nil {
		return WagerResult{}, finish("wager", err)
	}

	slog.InfoContext(ctx, "wager settled",
		"account_id", accountID,
		"stake", stake.StringFixed(2),
		"outcome", res.Outcome,
		"payout", res.Payout.StringFixed(2),
		"balance", res.Balance.StringFixed(2),
	)

	return res, nil
}
