package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// normalized 字段的 wire 格式：标量或嵌套对象，取决于类别
func TestNormalizedValueJSON(t *testing.T) {
	tests := []struct {
		value NormalizedValue
		want  string
	}{
		{TextValue("GOLDMAN SACHS BANK"), `"GOLDMAN SACHS BANK"`},
		{DateISO("2025-01-31"), `"2025-01-31"`},
		{AmountValue{Value: 200000000, Unit: "EUR"}, `{"value":200000000,"unit":"EUR"}`},
		{AmountValue{Value: 500}, `{"value":500,"unit":null}`},
		{PercentValue{Value: 75}, `{"value":75,"unit":"%"}`},
		{SpreadValue{Index: "ESTR", SpreadBps: 45}, `{"index":"ESTR","spread_bps":45}`},
		{TenorValue{Value: 2, Unit: "Y", UnitFull: "years"}, `{"value":2,"unit":"Y","unit_full":"years"}`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.value)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(data))
	}
}

func TestEntityJSON(t *testing.T) {
	unit := "EUR"
	ent := Entity{
		Entity:     Notional,
		RawValue:   "EUR 200 million",
		Normalized: AmountValue{Value: 200000000, Unit: "EUR"},
		Confidence: 0.92,
		CharStart:  10,
		CharEnd:    25,
		Source:     "ts.pdf",
		Unit:       &unit,
	}

	data, err := json.Marshal(ent)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"entity": "Notional",
		"raw_value": "EUR 200 million",
		"normalized": {"value": 200000000, "unit": "EUR"},
		"confidence": 0.92,
		"char_start": 10,
		"char_end": 25,
		"source": "ts.pdf",
		"unit": "EUR"
	}`, string(data))
}

func TestCategoryBinding(t *testing.T) {
	// 每个类型必须且只能绑定一个类别
	for _, et := range AllEntityTypes() {
		_, err := et.Category()
		assert.NoError(t, err, "type %s", et)
	}

	_, err := EntityType("Bogus").Category()
	assert.Error(t, err)
}
