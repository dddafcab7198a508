package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreader/types"
)

func TestDateTextualAndISO(t *testing.T) {
	tests := map[string]string{
		"31 January 2025":  "2025-01-31",
		"5 Mar 2024":       "2024-03-05",
		"January 31, 2025": "2025-01-31",
		"Jan 5, 2024":      "2024-01-05",
		"15-Feb-2026":      "2026-02-15",
		"2025-01-31":       "2025-01-31",
		"2025/01/31":       "2025-01-31",
		"31 January 2025.": "2025-01-31", // 尾部标点
	}
	for raw, want := range tests {
		got, ok := Date(raw)
		require.True(t, ok, "Date(%q)", raw)
		assert.Equal(t, types.DateISO(want), got, "Date(%q)", raw)
	}
}

// 斜杠 + 四位年按 DD/MM 读，月份槽位不合法且可修复时交换
func TestDateSlashFourDigitYear(t *testing.T) {
	got, ok := Date("05/03/2025")
	require.True(t, ok)
	assert.Equal(t, types.DateISO("2025-03-05"), got)

	// 3/15 只能是 MM/DD，交换
	got, ok = Date("3/15/2025")
	require.True(t, ok)
	assert.Equal(t, types.DateISO("2025-03-15"), got)

	// 两段都放不进月份槽，放弃
	_, ok = Date("13/13/2025")
	assert.False(t, ok)
}

// 斜杠 + 两位年按 MM/DD/YY 读，世纪按 00-68 -> 20xx 取
func TestDateSlashTwoDigitYear(t *testing.T) {
	got, ok := Date("10/15/24")
	require.True(t, ok)
	assert.Equal(t, types.DateISO("2024-10-15"), got)

	got, ok = Date("01/01/68")
	require.True(t, ok)
	assert.Equal(t, types.DateISO("2068-01-01"), got)

	got, ok = Date("01/01/69")
	require.True(t, ok)
	assert.Equal(t, types.DateISO("1969-01-01"), got)
}

func TestDateInvalid(t *testing.T) {
	for _, raw := range []string{"", "soon", "02/30/2024", "32 January 2025"} {
		_, ok := Date(raw)
		assert.False(t, ok, "Date(%q) 应当失败", raw)
	}
}
