package odds

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Odds
	}{
		{"positive with sign", "+150", Odds{Line: 150}},
		{"positive without sign", "150", Odds{Line: 150}},
		{"negative", "-110", Odds{Line: -110}},
		{"even", "EVEN", Odds{}},
		{"even lowercase with spaces", "  even ", Odds{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "+1.5", "0", "+0", "EVENS", "--110", "-9223372036854775808"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidOdds)
		})
	}
}

func TestOdds_String(t *testing.T) {
	assert.Equal(t, "+150", Odds{Line: 150}.String())
	assert.Equal(t, "-110", Odds{Line: -110}.String())
	assert.Equal(t, "EVEN", Odds{}.String())
}

func TestPayout(t *testing.T) {
	t.Run("underdog", func(t *testing.T) {
		got := Payout(decimal.NewFromInt(100), Odds{Line: 150})
		assert.True(t, got.Equal(decimal.NewFromInt(150)), "got %s", got)
	})

	t.Run("favorite", func(t *testing.T) {
		got := Payout(decimal.NewFromInt(100), Odds{Line: -110})
		assert.Equal(t, "90.91", got.StringFixed(2))
		assert.True(t, got.GreaterThan(decimal.RequireFromString("90.909")))
		assert.True(t, got.LessThan(decimal.RequireFromString("90.91")))
	})

	t.Run("even", func(t *testing.T) {
		got := Payout(decimal.NewFromInt(50), Odds{})
		assert.True(t, got.Equal(decimal.NewFromInt(50)), "got %s", got)
	})

	t.Run("fractional stake", func(t *testing.T) {
		got := Payout(decimal.RequireFromString("12.50"), Odds{Line: 200})
		assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
	})
}

func TestPotentialWin(t *testing.T) {
	win, o, err := PotentialWin(decimal.NewFromInt(200), "-110")
	require.NoError(t, err)
	assert.Equal(t, int64(-110), o.Line)
	assert.Equal(t, "181.82", win.StringFixed(2))

	_, _, err = PotentialWin(decimal.NewFromInt(200), "favorite")
	assert.ErrorIs(t, err, ErrInvalidOdds)
}

func TestImpliedProbability(t *testing.T) {
	assert.Equal(t, "0.4000", ImpliedProbability(Odds{Line: 150}).StringFixed(4))
	assert.Equal(t, "0.5238", ImpliedProbability(Odds{Line: -110}).StringFixed(4))
	assert.Equal(t, "0.5000", ImpliedProbability(Odds{}).StringFixed(4))
}
