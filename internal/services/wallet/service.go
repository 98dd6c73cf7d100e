package wallet

import (
	"context"
	"math/rand/v2"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/fastprodman/betpoa/internal/rules"
)

// TxManager runs fn as one unit of work; repositories called with the ctx
// passed to fn join it.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Repos struct {
	Accounts  accounts.Accounts
	Ledger    ledger.Ledger
	Games     games.Games
	Referrals referrals.Referrals
}

// Service owns every balance mutation. Each mutation runs inside one
// TxManager.Do and locks the account row before reading its balance.
type Service struct {
	tx    TxManager
	repos Repos
	rules rules.Rules

	draw  func() float64
	codes func(length int) string
}

type Option func(*Service)

// WithDraw replaces the uniform [0,1) source used to settle wagers.
func WithDraw(fn func() float64) Option {
	return func(s *Service) { s.draw = fn }
}

// WithCodeGenerator replaces the referral code generator.
func WithCodeGenerator(fn func(length int) string) Option {
	return func(s *Service) { s.codes = fn }
}

func New(tx TxManager, repos Repos, r rules.Rules, opts ...Option) *Service {
	s := &Service{
		tx:    tx,
		repos: repos,
		rules: r,
		draw:  rand.Float64,
		codes: randomCode,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
