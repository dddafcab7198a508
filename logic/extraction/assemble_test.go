package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docreader/types"
)

func TestAssembleDedupe(t *testing.T) {
	dup := types.Entity{
		Entity:    types.ISIN,
		RawValue:  "FR001400QV82",
		CharStart: 10,
		CharEnd:   22,
	}
	// 完全相同的重复只保留一条；区间不同的同值实体都保留
	other := dup
	other.CharStart, other.CharEnd = 50, 62

	got := Assemble([]types.Entity{dup, dup, other})
	assert.Len(t, got, 2)
	assert.Equal(t, 10, got[0].CharStart)
	assert.Equal(t, 50, got[1].CharStart)
}

func TestAssembleStableOrder(t *testing.T) {
	entities := []types.Entity{
		{Entity: types.TradeDate, RawValue: "b", CharStart: 20, CharEnd: 25},
		{Entity: types.Notional, RawValue: "a", CharStart: 5, CharEnd: 10},
		// 同一起点按类型名排
		{Entity: types.Coupon, RawValue: "c", CharStart: 20, CharEnd: 23},
	}

	got := Assemble(entities)
	assert.Equal(t, types.Notional, got[0].Entity)
	assert.Equal(t, types.Coupon, got[1].Entity)
	assert.Equal(t, types.TradeDate, got[2].Entity)
}

func TestAssembleEmpty(t *testing.T) {
	got := Assemble(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
