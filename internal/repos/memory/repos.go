package memory

import (
	"context"

	"github.com/fastprodman/betpoa/internal/repos/accounts"
	"github.com/fastprodman/betpoa/internal/repos/games"
	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/fastprodman/betpoa/internal/repos/referrals"
	"github.com/google/uuid"
)

type accountRepo struct{ s *Store }

func (r accountRepo) Create(ctx context.Context, a accounts.Account) (accounts.Account, error) {
	var err error

	r.s.with(ctx, func() {
		for _, existing := range r.s.st.accounts {
			if existing.PhoneNumber == a.PhoneNumber {
				err = accounts.ErrDuplicatePhone

				return
			}
			if existing.ReferralCode == a.ReferralCode {
				err = accounts.ErrReferralCodeTaken

				return
			}
		}

		a.CreatedAt = r.s.now()
		r.s.st.accounts[a.ID] = a
	})
	if err != nil {
		return accounts.Account{}, err
	}

	return a, nil
}

func (r accountRepo) GetByID(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	var (
		a  accounts.Account
		ok bool
	)

	r.s.with(ctx, func() { a, ok = r.s.st.accounts[id] })

	if !ok {
		return accounts.Account{}, accounts.ErrAccountNotFound
	}

	return a, nil
}

func (r accountRepo) GetByPhone(ctx context.Context, phone string) (accounts.Account, error) {
	return r.find(ctx, func(a accounts.Account) bool { return a.PhoneNumber == phone })
}

func (r accountRepo) GetByReferralCode(ctx context.Context, code string) (accounts.Account, error) {
	return r.find(ctx, func(a accounts.Account) bool { return a.ReferralCode == code })
}

// LockByID is a plain read: Do already holds the store lock.
func (r accountRepo) LockByID(ctx context.Context, id uuid.UUID) (accounts.Account, error) {
	return r.GetByID(ctx, id)
}

func (r accountRepo) Update(ctx context.Context, a accounts.Account) error {
	var ok bool

	r.s.with(ctx, func() {
		var cur accounts.Account

		cur, ok = r.s.st.accounts[a.ID]
		if !ok {
			return
		}

		cur.Balance = a.Balance
		cur.TotalWinnings = a.TotalWinnings
		cur.TotalReferrals = a.TotalReferrals
		cur.WelcomeBonusUnlocked = cur.WelcomeBonusUnlocked || a.WelcomeBonusUnlocked
		cur.HasDeposited = cur.HasDeposited || a.HasDeposited
		cur.HasPlayedAfterDeposit = cur.HasPlayedAfterDeposit || a.HasPlayedAfterDeposit
		r.s.st.accounts[a.ID] = cur
	})

	if !ok {
		return accounts.ErrAccountNotFound
	}

	return nil
}

func (r accountRepo) find(ctx context.Context, match func(accounts.Account) bool) (accounts.Account, error) {
	var (
		found accounts.Account
		ok    bool
	)

	r.s.with(ctx, func() {
		for _, a := range r.s.st.accounts {
			if match(a) {
				found, ok = a, true

				return
			}
		}
	})

	if !ok {
		return accounts.Account{}, accounts.ErrAccountNotFound
	}

	return found, nil
}

type ledgerRepo struct{ s *Store }

func (r ledgerRepo) Append(ctx context.Context, e ledger.Entry) (ledger.Entry, error) {
	r.s.with(ctx, func() {
		e.CreatedAt = r.s.now()
		r.s.st.ledger = append(r.s.st.ledger, e)
	})

	return e, nil
}

func (r ledgerRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint64) ([]ledger.Entry, error) {
	var out []ledger.Entry

	r.s.with(ctx, func() {
		out = newestFirst(r.s.st.ledger, limit, func(e ledger.Entry) bool { return e.AccountID == accountID })
	})

	return out, nil
}

type gameRepo struct{ s *Store }

func (r gameRepo) Insert(ctx context.Context, rec games.Record) (games.Record, error) {
	r.s.with(ctx, func() {
		rec.CreatedAt = r.s.now()
		r.s.st.games = append(r.s.st.games, rec)
	})

	return rec, nil
}

func (r gameRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit uint64) ([]games.Record, error) {
	var out []games.Record

	r.s.with(ctx, func() {
		out = newestFirst(r.s.st.games, limit, func(g games.Record) bool { return g.AccountID == accountID })
	})

	return out, nil
}

type referralRepo struct{ s *Store }

func (r referralRepo) Insert(ctx context.Context, rec referrals.Record) (referrals.Record, error) {
	var err error

	r.s.with(ctx, func() {
		for _, existing := range r.s.st.referrals {
			if existing.ReferredID == rec.ReferredID {
				err = referrals.ErrAlreadyReferred

				return
			}
		}

		rec.CreatedAt = r.s.now()
		r.s.st.referrals = append(r.s.st.referrals, rec)
	})
	if err != nil {
		return referrals.Record{}, err
	}

	return rec, nil
}

func (r referralRepo) ListByReferrer(ctx context.Context, referrerID uuid.UUID, limit uint64) ([]referrals.Record, error) {
	var out []referrals.Record

	r.s.with(ctx, func() {
		out = newestFirst(r.s.st.referrals, limit, func(rec referrals.Record) bool { return rec.ReferrerID == referrerID })
	})

	return out, nil
}
