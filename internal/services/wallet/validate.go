package wallet

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var phonePattern = regexp.MustCompile(`^254\d{9}$`)

// Bounds on a request amount's representation. Amounts are stored as
// NUMERIC(14,2); anything outside these bounds cannot be stored and would
// make comparisons rescale to arbitrarily large integers.
const (
	maxAmountExponent = 12
	minAmountExponent = -18
	maxAmountBits     = 128
)

// normalizePhone accepts only the canonical form: 254 followed by 9 digits,
// with no plus sign or separators. Surrounding whitespace is trimmed.
func normalizePhone(raw string) (string, bool) {
	p := strings.TrimSpace(raw)

	return p, phonePattern.MatchString(p)
}

// isStorableAmount reports whether d is small enough in both exponent and
// coefficient to be compared and stored. It does no arithmetic on d.
func isStorableAmount(d decimal.Decimal) bool {
	exp := d.Exponent()

	return exp >= minAmountExponent && exp <= maxAmountExponent && d.Coefficient().BitLen() <= maxAmountBits
}

// isCents reports whether d has no more than two decimal places. Callers
// check isStorableAmount first.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}
