package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWeeklyLedger_PlaceCancelSettle(t *testing.T) {
	ledger := NewWeeklyLedger(1, 10, dec("1000"))

	ledger.ApplyPlacement(dec("100"), dec("900"))
	assert.True(t, ledger.ActiveBetsAmount.Equal(dec("100")))
	assert.Equal(t, 1, ledger.BetsPlaced)
	assert.True(t, ledger.EndingBalance.Equal(dec("900")))
	assert.True(t, ledger.PnL.Equal(dec("-100")))

	ledger.ApplyCancellation(dec("100"), dec("1000"))
	assert.True(t, ledger.ActiveBetsAmount.IsZero())
	assert.Equal(t, 0, ledger.BetsPlaced)
	assert.True(t, ledger.PnL.IsZero())

	ledger.ApplyPlacement(dec("200"), dec("800"))
	ledger.ApplySettlement(dec("200"), dec("181.82"), true, dec("1181.82"))
	assert.True(t, ledger.ActiveBetsAmount.IsZero())
	assert.True(t, ledger.SettledPnL.Equal(dec("181.82")))
	assert.Equal(t, 1, ledger.BetsPlaced)
	assert.Equal(t, 1, ledger.BetsWon)
	assert.True(t, ledger.EndingBalance.Equal(dec("1181.82")))
	assert.True(t, ledger.PnL.Equal(dec("181.82")))
}

func TestWeeklyLedger_SettleLoss(t *testing.T) {
	ledger := NewWeeklyLedger(1, 3, dec("500"))
	ledger.ApplyPlacement(dec("50"), dec("450"))
	ledger.ApplySettlement(dec("50"), dec("-50"), false, dec("450"))

	assert.True(t, ledger.ActiveBetsAmount.IsZero())
	assert.True(t, ledger.SettledPnL.Equal(dec("-50")))
	assert.Equal(t, 0, ledger.BetsWon)
	assert.True(t, ledger.PnL.Equal(dec("-50")))
}
