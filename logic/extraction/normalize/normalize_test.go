package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreader/types"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		raw   string
		value float64
		unit  string
	}{
		{"EUR 200 million", 200_000_000, "EUR"},
		{"USD 5 mio", 5_000_000, "USD"},
		{"200 mn", 200_000_000, ""},
		{"1,000,000", 1_000_000, ""},
		{"1.000.000", 1_000_000, ""}, // 点号千分位
		{"eur 3 bn", 3_000_000_000, "EUR"},
		{"500k", 500_000, ""},
		{"SAR 100 million", 100_000_000, "SAR"}, // 不换行空格
		{"42", 42, ""},
		{"1.5 million", 1_500_000, ""},
	}
	for _, tt := range tests {
		v, ok := Amount(tt.raw)
		require.True(t, ok, "Amount(%q)", tt.raw)
		assert.Equal(t, tt.value, v.Value, "Amount(%q)", tt.raw)
		assert.Equal(t, tt.unit, v.Unit, "Amount(%q)", tt.raw)
	}
}

func TestAmountInvalid(t *testing.T) {
	for _, raw := range []string{"", "no numbers here", "EUR"} {
		_, ok := Amount(raw)
		assert.False(t, ok, "Amount(%q) 应当失败", raw)
	}
}

func TestSpread(t *testing.T) {
	v, ok := Spread("estr+45bps")
	require.True(t, ok)
	assert.Equal(t, types.SpreadValue{Index: "ESTR", SpreadBps: 45}, v)

	v, ok = Spread("LIBOR + 100")
	require.True(t, ok)
	assert.Equal(t, types.SpreadValue{Index: "LIBOR", SpreadBps: 100}, v)

	// 负利差
	v, ok = Spread("euribor-10bp")
	require.True(t, ok)
	assert.Equal(t, types.SpreadValue{Index: "EURIBOR", SpreadBps: -10}, v)

	_, ok = Spread("flat")
	assert.False(t, ok)
}

func TestPercentage(t *testing.T) {
	v, ok := Percentage("75%")
	require.True(t, ok)
	assert.Equal(t, 75.0, v.Value)

	v, ok = Percentage("0.5")
	require.True(t, ok)
	assert.Equal(t, 0.5, v.Value)

	v, ok = Percentage(" 102.25 % ")
	require.True(t, ok)
	assert.Equal(t, 102.25, v.Value)

	_, ok = Percentage("abc")
	assert.False(t, ok)
}

func TestTenor(t *testing.T) {
	v, ok := Tenor("2Y")
	require.True(t, ok)
	assert.Equal(t, types.TenorValue{Value: 2, Unit: "Y", UnitFull: "years"}, v)

	// 小写也接受，统一成大写
	v, ok = Tenor("6m")
	require.True(t, ok)
	assert.Equal(t, types.TenorValue{Value: 6, Unit: "M", UnitFull: "months"}, v)

	v, ok = Tenor("10 D")
	require.True(t, ok)
	assert.Equal(t, types.TenorValue{Value: 10, Unit: "D", UnitFull: "days"}, v)

	_, ok = Tenor("forever")
	assert.False(t, ok)
}

func TestIdentifierAndText(t *testing.T) {
	assert.Equal(t, types.TextValue("FR001400QV82"), Identifier("  fr001400qv82 "))
	assert.Equal(t, types.TextValue("GOLDMAN SACHS BANK"), Text("  GOLDMAN   SACHS BANK  "))
}

func TestValidISINShape(t *testing.T) {
	assert.True(t, ValidISINShape("FR001400QV82"))
	assert.True(t, ValidISINShape("US0378331005"))
	assert.False(t, ValidISINShape("FR00140QV82"))   // 少一位
	assert.False(t, ValidISINShape("1R001400QV82"))  // 国家码不是字母
	assert.False(t, ValidISINShape("FR001400QV8X"))  // 校验位不是数字
	assert.False(t, ValidISINShape("fr001400qv82"))  // 小写不算
}

func TestValidISINChecksum(t *testing.T) {
	assert.True(t, ValidISINChecksum("US0378331005"))
	assert.True(t, ValidISINChecksum("FR001400QV82"))
	assert.False(t, ValidISINChecksum("US0378331004")) // 校验位错
	assert.False(t, ValidISINChecksum("XX0000000000"))
}
