// Package odds converts American odds quotes into guaranteed payout amounts.
package odds

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Even is the literal quote for a 1:1 payout.
const Even = "EVEN"

// ErrInvalidOdds is returned for quotes that are neither EVEN nor a non-zero integer.
var ErrInvalidOdds = errors.New("invalid odds")

var hundred = decimal.NewFromInt(100)

// Odds is a parsed American odds quote. A zero Line means EVEN.
type Odds struct {
	Line int64
}

// IsEven reports whether the quote pays 1:1.
func (o Odds) IsEven() bool {
	return o.Line == 0
}

// String renders the quote the way it is stored, e.g. "+150", "-110" or "EVEN".
func (o Odds) String() string {
	if o.IsEven() {
		return Even
	}
	if o.Line > 0 {
		return "+" + strconv.FormatInt(o.Line, 10)
	}
	return strconv.FormatInt(o.Line, 10)
}

// Parse parses an odds string such as "+150", "-110", "150" or "EVEN".
func Parse(s string) (Odds, error) {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, Even) {
		return Odds{}, nil
	}

	line, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return Odds{}, fmt.Errorf("%w: %q", ErrInvalidOdds, s)
	}
	if line == 0 {
		return Odds{}, fmt.Errorf("%w: %q has no payout ratio", ErrInvalidOdds, s)
	}
	if line == math.MinInt64 {
		return Odds{}, fmt.Errorf("%w: %q out of range", ErrInvalidOdds, s)
	}

	return Odds{Line: line}, nil
}

// Payout returns the profit paid on top of the returned stake when a wager wins.
//
//	EVEN:     stake
//	positive: stake * line / 100
//	negative: stake * 100 / |line|
func Payout(stake decimal.Decimal, o Odds) decimal.Decimal {
	switch {
	case o.IsEven():
		return stake
	case o.Line > 0:
		return stake.Mul(decimal.NewFromInt(o.Line)).Div(hundred)
	default:
		return stake.Mul(hundred).Div(decimal.NewFromInt(-o.Line))
	}
}

// PotentialWin parses quote and computes the payout for stake in one step.
func PotentialWin(stake decimal.Decimal, quote string) (decimal.Decimal, Odds, error) {
	o, err := Parse(quote)
	if err != nil {
		return decimal.Zero, Odds{}, err
	}
	return Payout(stake, o), o, nil
}

// ImpliedProbability returns the break-even win probability implied by the quote.
func ImpliedProbability(o Odds) decimal.Decimal {
	switch {
	case o.IsEven():
		return decimal.NewFromFloat(0.5)
	case o.Line > 0:
		return hundred.Div(decimal.NewFromInt(o.Line).Add(hundred))
	default:
		neg := decimal.NewFromInt(-o.Line)
		return neg.Div(neg.Add(hundred))
	}
}
