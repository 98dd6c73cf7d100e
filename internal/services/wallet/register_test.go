package wallet

import (
	"regexp"
	"sync"
	"testing"

	"github.com/fastprodman/betpoa/internal/repos/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreditsWelcomeBonus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	acc := f.register(t, "254712345678")

	assert.Equal(t, "150.00", acc.Balance.StringFixed(2))
	assert.True(t, acc.TotalWinnings.IsZero())
	assert.False(t, acc.WelcomeBonusUnlocked)
	assert.False(t, acc.HasDeposited)
	assert.False(t, acc.HasPlayedAfterDeposit)
	assert.False(t, acc.CanWithdraw())
	assert.Nil(t, acc.ReferredBy)
	assert.Zero(t, acc.TotalReferrals)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), acc.ReferralCode)

	entries, err := f.svc.ListTransactions(t.Context(), acc.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.KindBonus, entries[0].Kind)
	assert.Equal(t, ledger.StatusCompleted, entries[0].Status)
	assert.Equal(t, "150", entries[0].Amount.String())
	assert.Equal(t, "Welcome bonus", entries[0].Description)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		phone   string
		wantErr error
	}{
		{name: "too_short", phone: "25471234567", wantErr: ErrInvalidPhone},
		{name: "wrong_country", phone: "255712345678", wantErr: ErrInvalidPhone},
		{name: "letters", phone: "2547123456ab", wantErr: ErrInvalidPhone},
		{name: "leading_plus", phone: "+254712345678", wantErr: ErrInvalidPhone},
		{name: "inner_spaces", phone: "254 712 345 678", wantErr: ErrInvalidPhone},
		{name: "surrounding_whitespace_trimmed", phone: " 254712345678\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)

			id, err := f.svc.Register(t.Context(), tt.phone, "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, uuid.Nil, id)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "254712345678", f.account(t, id).PhoneNumber)
		})
	}
}

func TestRegister_DuplicatePhone(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.register(t, "254712345678")

	_, err := f.svc.Register(t.Context(), "254712345678", "")
	require.ErrorIs(t, err, ErrDuplicatePhone)
}

func TestRegister_ReferralPaysReferrer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	referrer := f.register(t, "254700000001")

	id, err := f.svc.Register(t.Context(), "254700000002", referrer.ReferralCode)
	require.NoError(t, err)

	referred := f.account(t, id)
	require.NotNil(t, referred.ReferredBy)
	assert.Equal(t, referrer.ID, *referred.ReferredBy)
	assert.Equal(t, "150.00", referred.Balance.StringFixed(2))

	after := f.account(t, referrer.ID)
	assert.Equal(t, "155.00", after.Balance.StringFixed(2))
	assert.Equal(t, int64(1), after.TotalReferrals)

	entries, err := f.svc.ListTransactions(t.Context(), referrer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ledger.KindReferral, entries[0].Kind)
	assert.Equal(t, "5", entries[0].Amount.String())
	assert.Equal(t, "Referral bonus from 254700000002", entries[0].Description)

	recs, err := f.svc.ListReferrals(t.Context(), referrer.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ReferredID)
	assert.True(t, recs[0].BonusAwarded)
	assert.Equal(t, referrer.ReferralCode, recs[0].CodeUsed)

	assert.True(t, f.ledgerSum(t, referrer.ID).Equal(after.Balance))
}

func sequenceCodes(codes ...string) func(int) string {
	var (
		mu sync.Mutex
		i  int
	)

	return func(int) string {
		mu.Lock()
		defer mu.Unlock()

		c := codes[min(i, len(codes)-1)]
		i++

		return c
	}
}

func TestRegister_ReferralCodeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	f := newFixture(t, WithCodeGenerator(sequenceCodes("ABC123", "XYZ789")))
	referrer := f.register(t, "254700000001")
	require.Equal(t, "ABC123", referrer.ReferralCode)

	id, err := f.svc.Register(t.Context(), "254700000002", " abc123 ")
	require.NoError(t, err)

	require.NotNil(t, f.account(t, id).ReferredBy)
	assert.Equal(t, int64(1), f.account(t, referrer.ID).TotalReferrals)
}

func TestRegister_FailureRollsBackReferral(t *testing.T) {
	t.Parallel()

	// Every attempt returns the referrer's own code, so the new account can
	// never be inserted.
	f := newFixture(t, WithCodeGenerator(func(int) string { return "ABC123" }))
	referrer := f.register(t, "254700000001")

	_, err := f.svc.Register(t.Context(), "254700000002", "ABC123")
	require.ErrorIs(t, err, ErrReferralCodeExhausted)

	after := f.account(t, referrer.ID)
	assert.Equal(t, "150.00", after.Balance.StringFixed(2))
	assert.Zero(t, after.TotalReferrals)

	_, err = f.svc.LookupByPhone(t.Context(), "254700000002")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRegister_UnknownOrMalformedCodeIsIgnored(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"ZZZZZZ", "bad!", "TOOLONGCODE123"} {
		t.Run(code, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			bystander := f.register(t, "254700000001")

			id, err := f.svc.Register(t.Context(), "254700000002", code)
			require.NoError(t, err)
			assert.Nil(t, f.account(t, id).ReferredBy)

			after := f.account(t, bystander.ID)
			assert.Equal(t, "150.00", after.Balance.StringFixed(2))
			assert.Zero(t, after.TotalReferrals)
		})
	}
}

func TestRegister_FallsBackToLongerCode(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls []int
	)

	gen := func(length int) string {
		mu.Lock()
		defer mu.Unlock()

		calls = append(calls, length)
		if length == 6 {
			return "TAKEN6"
		}

		return "LONGER88"
	}

	f := newFixture(t, WithCodeGenerator(gen))
	first := f.register(t, "254700000001")
	assert.Equal(t, "TAKEN6", first.ReferralCode)

	mu.Lock()
	calls = nil
	mu.Unlock()

	second := f.register(t, "254700000002")
	assert.Equal(t, "LONGER88", second.ReferralCode)
	assert.Equal(t, []int{6, 6, 6, 6, 6, 8}, calls)

	code, ok := f.svc.normalizeReferralCode("longer88")
	assert.True(t, ok, "fallback-length codes must be accepted as referral codes")
	assert.Equal(t, "LONGER88", code)
}

func TestRegister_ConcurrentCodesStayUnique(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	const n = 50

	ids := make([]uuid.UUID, n)

	var wg sync.WaitGroup

	for i := range n {
		wg.Add(1)

		go func() {
			defer wg.Done()

			id, err := f.svc.Register(t.Context(), phoneN(i), "")
			assert.NoError(t, err)

			ids[i] = id
		}()
	}

	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		code := f.account(t, id).ReferralCode
		assert.False(t, seen[code], "duplicate referral code %s", code)
		seen[code] = true
	}
}

func phoneN(i int) string {
	return "254700" + leftPad(i, 6)
}

func leftPad(i, width int) string {
	s := []byte("000000000")[:width]
	for p := width - 1; p >= 0 && i > 0; p-- {
		s[p] = byte('0' + i%10)
		i /= 10
	}

	return string(s)
}
