package api

import (
	"time"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/shopspring/decimal"
)

// money renders an amount with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

type wagerResponse struct {
	Outcome    string `json:"outcome"`
	Payout     string `json:"payout"`
	Multiplier int64  `json:"multiplier"`
	Balance    string `json:"balance"`
}

type accountResponse struct {
	ID                    string    `json:"id"`
	PhoneNumber           string    `json:"phoneNumber"`
	Balance               string    `json:"balance"`
	TotalWinnings         string    `json:"totalWinnings"`
	WelcomeBonusUnlocked  bool      `json:"welcomeBonusUnlocked"`
	HasDeposited          bool      `json:"hasDeposited"`
	HasPlayedAfterDeposit bool      `json:"hasPlayedAfterDeposit"`
	CanWithdraw           bool      `json:"canWithdraw"`
	ReferralCode          string    `json:"referralCode"`
	ReferredBy            *string   `json:"referredBy"`
	TotalReferrals        int64     `json:"totalReferrals"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toAccountResponse(a accounts.Account) accountResponse {
	resp := accountResponse{
		ID:                    a.ID.String(),
		PhoneNumber:           a.PhoneNumber,
		Balance:               money(a.Balance),
		TotalWinnings:         money(a.TotalWinnings),
		WelcomeBonusUnlocked:  a.WelcomeBonusUnlocked,
		HasDeposited:          a.HasDeposited,
		HasPlayedAfterDeposit: a.HasPlayedAfterDeposit,
		CanWithdraw:           a.CanWithdraw(),
		ReferralCode:          a.ReferralCode,
		TotalReferrals:        a.TotalReferrals,
		CreatedAt:             a.CreatedAt,
	}

	if a.ReferredBy != nil {
		ref := a.ReferredBy.String()
		resp.ReferredBy = &ref
	}

	return resp
}

type transactionResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Amount           string    `json:"amount"`
	Status           string    `json:"status"`
	PaymentReference *string   `json:"paymentReference,omitempty"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"createdAt"`
}

func toTransactionResponse(e ledger.Entry) transactionResponse {
	return transactionResponse{
		ID:               e.ID.String(),
		Type:             string(e.Kind),
		Amount:           money(e.Amount),
		Status:           string(e.Status),
		PaymentReference: e.PaymentReference,
		Description:      e.Description,
		CreatedAt:        e.CreatedAt,
	}
}

type gameResponse struct {
	ID         string    `json:"id"`
	GameType   string    `json:"gameType"`
	Stake      string    `json:"stake"`
	Outcome    string    `json:"outcome"`
	WinAmount  string    `json:"winAmount"`
	Multiplier int64     `json:"multiplier"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toGameResponse(g games.Record) gameResponse {
	return gameResponse{
		ID:         g.ID.String(),
		GameType:   g.GameType,
		Stake:      money(g.Stake),
		Outcome:    string(g.Outcome),
		WinAmount:  money(g.WinAmount),
		Multiplier: g.Multiplier,
		CreatedAt:  g.CreatedAt,
	}
}

type referralResponse struct {
	ID           string    `json:"id"`
	ReferredID   string    `json:"referredId"`
	CodeUsed     string    `json:"codeUsed"`
	BonusAwarded bool      `json:"bonusAwarded"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toReferralResponse(r referrals.Record) referralResponse {
	return referralResponse{
		ID:           r.ID.String(),
		ReferredID:   r.ReferredID.String(),
		CodeUsed:     r.CodeUsed,
		BonusAwarded: r.BonusAwarded,
		CreatedAt:    r.CreatedAt,
	}
}
