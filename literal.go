package lidrup

import "math"

// Literal is a signed DIMACS-style literal: a nonzero integer whose absolute
// value names a variable (1..=maxVar). The sign gives the polarity.
//
// math.MinInt32 is reserved and never appears: its absolute value would
// overflow int32, so parsing rejects it outright (see lexer.go).
type Literal int32

// Variable returns the variable index abs(l).
func (l Literal) Variable() int32 {
	if l < 0 {
		return int32(-l)
	}
	return int32(l)
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal {
	return -l
}

// Sign is +1 for positive literals, -1 for negative ones.
func (l Literal) Sign() int32 {
	if l < 0 {
		return -1
	}
	return 1
}

// minLiteral and maxLiteral bound the variable index to < math.MaxInt32,
// so that 2*variable stays representable (spec §9) and a literal naming
// variable INT_MAX is rejected at parse time (spec §8).
const (
	minLiteral = Literal(-math.MaxInt32 + 1)
	maxLiteral = Literal(math.MaxInt32 - 1)
)

// validLiteral reports whether l is a literal the lexer may ever produce:
// nonzero, and its variable index strictly below math.MaxInt32 so that
// 2*variable stays representable and INT_MAX is rejected at parse time
// (spec §8, §9).
func validLiteral(l int64) bool {
	if l == 0 {
		return false
	}
	return l >= int64(minLiteral) && l <= int64(maxLiteral)
}

// ClauseID is a positive, producer-chosen, not-necessarily-dense clause
// identifier.
type ClauseID uint64
