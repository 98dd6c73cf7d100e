// Package memory is an in-process implementation of the repositories, used
// for local runs without Postgres and by service tests.
//
// Store.Do is the unit of work: it holds the store lock for the whole
// callback, so mutations are fully serialized, and it restores a snapshot
// when the callback fails or panics.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/google/uuid"
)

type txKey struct{}

type state struct {
	accounts  map[uuid.UUID]accounts.Account
	ledger    []ledger.Entry
	games     []games.Record
	referrals []referrals.Record
}

func (s state) clone() state {
	return state{
		accounts:  maps.Clone(s.accounts),
		ledger:    slices.Clone(s.ledger),
		games:     slices.Clone(s.games),
		referrals: slices.Clone(s.referrals),
	}
}

type Store struct {
	mu  sync.Mutex
	st  state
	now func() time.Time
}

func New() *Store {
	return &Store{
		st:  state{accounts: make(map[uuid.UUID]accounts.Account)},
		now: time.Now,
	}
}

// Do runs fn as one unit of work. Nested calls join the outer one. The
// snapshot is restored when fn fails or panics; a panic keeps propagating.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()

	committed := false
	defer func() {
		if !committed {
			s.st = snapshot
		}
	}()

	err := fn(context.WithValue(ctx, txKey{}, s))
	if err != nil {
		return err
	}

	committed = true

	return nil
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)

	return owner == s
}

// with runs fn under the store lock unless ctx already holds it.
func (s *Store) with(ctx context.Context, fn func()) {
	if s.inTx(ctx) {
		fn()

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn()
}

func (s *Store) Accounts() accounts.Accounts    { return accountRepo{s} }
func (s *Store) Ledger() ledger.Ledger          { return ledgerRepo{s} }
func (s *Store) Games() games.Games             { return gameRepo{s} }
func (s *Store) Referrals() referrals.Referrals { return referralRepo{s} }

// newestFirst returns up to limit items matching keep, last appended first.
func newestFirst[T any](items []T, limit uint64, keep func(T) bool) []T {
	out := make([]T, 0)

	for i := len(items) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		if keep(items[i]) {
			out = append(out, items[i])
		}
	}

	return out
}
