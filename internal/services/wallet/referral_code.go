package wallet

import (
	"math/rand/v2"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(length int) string {
	var b strings.Builder
	b.Grow(length)

	for range length {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}

	return b.String()
}

// normalizeReferralCode upper-cases raw and reports whether it has the shape
// of a code this service hands out.
func (s *Service) normalizeReferralCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != s.rules.ReferralCodeLength && len(code) != s.rules.ReferralCodeFallback {
		return code, false
	}

	for i := range len(code) {
		if !strings.ContainsRune(codeAlphabet, rune(code[i])) {
			return code, false
		}
	}

	return code, true
}
