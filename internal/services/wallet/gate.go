package wallet

import (
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/rules"
	"github.com/shopspring/decimal"
)

// applyGate evaluates both unlock conditions against the post-play state of
// acc. Flags are only ever set, so CanWithdraw cannot go back to false.
func applyGate(acc accounts.Account, stake decimal.Decimal, r rules.Rules) accounts.Account {
	if !acc.WelcomeBonusUnlocked && acc.TotalWinnings.GreaterThanOrEqual(r.BonusUnlockWinnings) {
		acc.WelcomeBonusUnlocked = true
	}

	if acc.HasDeposited && !acc.HasPlayedAfterDeposit && stake.LessThanOrEqual(r.SmallPlayMaxStake) {
		acc.HasPlayedAfterDeposit = true
	}

	return acc
}
