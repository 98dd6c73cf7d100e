package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fastprodman/betpoa/internal/apperr"
	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/fastprodman/betpoa/internal/services/wallet"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Wallet is the subset of wallet.Service the handlers need.
type Wallet interface {
	Register(ctx context.Context, phone, referralCode string) (uuid.UUID, error)
	GetAccount(ctx context.Context, id uuid.UUID) (accounts.Account, error)
	LookupByPhone(ctx context.Context, phone string) (accounts.Account, error)
	Deposit(ctx context.Context, accountID uuid.UUID, reference string) (decimal.Decimal, error)
	Wager(ctx context.Context, accountID uuid.UUID, stake decimal.Decimal) (wallet.WagerResult, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, destination string) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]ledger.Entry, error)
	ListGames(ctx context.Context, accountID uuid.UUID) ([]games.Record, error)
	ListReferrals(ctx context.Context, accountID uuid.UUID) ([]referrals.Record, error)
}

var _ Wallet = (*wallet.Service)(nil)

// HandlerProvider exposes the wallet over HTTP.
type HandlerProvider struct {
	svc Wallet
}

func NewHandler(svc Wallet) *HandlerProvider {
	return &HandlerProvider{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindNotFound:           http.StatusNotFound,
	apperr.KindValidation:         http.StatusBadRequest,
	apperr.KindPreconditionFailed: http.StatusConflict,
	apperr.KindConflict:           http.StatusConflict,
}

// writeServiceError maps a service error by kind. Anything unclassified is
// logged and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ae, ok := apperr.As(err)
	if ok {
		status, known := kindStatus[ae.Kind]
		if known {
			writeError(w, status, ae.Code, ae.Message)

			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal", "internal error")
}

// decodeBody reads a single JSON object, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var tooLarge *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "invalid_body", "empty body")
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "invalid_body", "body too large")
		default:
			writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON")
		}

		return false
	}

	return true
}

// parseAccountID reads `{accountId}` from routes under /accounts/{accountId}.
func parseAccountID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "accountId")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing accountId")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid accountId: %w", err)
	}

	return id, nil
}

func (h *HandlerProvider) accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := parseAccountID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_account_id", "invalid accountId in path")

		return uuid.Nil, false
	}

	return id, true
}

// --- Handlers ---

type registerRequest struct {
	PhoneNumber  string `json:"phoneNumber"`
	ReferralCode string `json:"referralCode"`
}

// Register handles POST /accounts
func (h *HandlerProvider) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, err := h.svc.Register(r.Context(), req.PhoneNumber, req.ReferralCode)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"accountId": id.String()})
}

// Lookup handles GET /accounts/lookup?phone=
func (h *HandlerProvider) Lookup(w http.ResponseWriter, r *http.Request) {
	acc, err := h.svc.LookupByPhone(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

// GetAccount handles GET /accounts/{accountId}
func (h *HandlerProvider) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	acc, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(acc))
}

type depositRequest struct {
	PaymentReference string `json:"paymentReference"`
}

// Deposit handles POST /accounts/{accountId}/deposits
func (h *HandlerProvider) Deposit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req depositRequest
	if !decodeBody(w, r, &req) {
		return
	}

	balance, err := h.svc.Deposit(r.Context(), id, req.PaymentReference)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{Balance: money(balance)})
}

// decimal.Decimal unmarshals from both JSON numbers and strings.
type wagerRequest struct {
	Stake decimal.Decimal `json:"stake"`
}

// Wager handles POST /accounts/{accountId}/wagers
func (h *HandlerProvider) Wager(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req wagerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.svc.Wager(r.Context(), id, req.Stake)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, wagerResponse{
		Outcome:    string(res.Outcome),
		Payout:     money(res.Payout),
		Multiplier: res.Multiplier,
		Balance:    money(res.Balance),
	})
}

type withdrawRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	DestinationPhone string          `json:"destinationPhone"`
}

// Withdraw handles POST /accounts/{accountId}/withdrawals
func (h *HandlerProvider) Withdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	var req withdrawRequest
	if !decodeBody(w, r, &req) {
		return
	}

	balance, err := h.svc.Withdraw(r.Context(), id, req.Amount, req.DestinationPhone)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{Balance: money(balance)})
}

// ListTransactions handles GET /accounts/{accountId}/transactions
func (h *HandlerProvider) ListTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.ListTransactions(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	out := make([]transactionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toTransactionResponse(e))
	}

	writeJSON(w, http.StatusOK, out)
}

// ListGames handles GET /accounts/{accountId}/games
func (h *HandlerProvider) ListGames(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.ListGames(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	out := make([]gameResponse, 0, len(records))
	for _, g := range records {
		out = append(out, toGameResponse(g))
	}

	writeJSON(w, http.StatusOK, out)
}

// ListReferrals handles GET /accounts/{accountId}/referrals
func (h *HandlerProvider) ListReferrals(w http.ResponseWriter, r *http.Request) {
	id, ok := h.accountID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.ListReferrals(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)

		return
	}

	out := make([]referralResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toReferralResponse(rec))
	}

	writeJSON(w, http.StatusOK, out)
}
