package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docreader/types"
)

// 日期归一化。歧义输入不做格式猜测，走固定规则：
//   - 斜杠 + 四位年 (a/b/YYYY)：按 DD/MM/YYYY 读；若 a<=12 且 b>12，
//     说明只可能是 MM/DD，交换两段
//   - 斜杠 + 两位年 (a/b/YY)：按 MM/DD/YY 读（上游确认书是美式的）
//   - 两位年份世纪跟 Go "06" layout 的约定：00-68 -> 20xx，69-99 -> 19xx

// 明确无歧义的文本/ISO 格式，直接按 layout 尝试
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2-Jan-2006",
	"2-January-2006",
	"2006-01-02",
	"2006/01/02",
}

var slashDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)

// Date 把各种表面格式统一成 YYYY-MM-DD
func Date(raw string) (types.DateISO, bool) {
	s := strings.Trim(strings.TrimSpace(raw), " .,;")
	if s == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return types.DateISO(t.Format("2006-01-02")), true
		}
	}

	if m := slashDateRe.FindStringSubmatch(s); m != nil {
		return slashDate(m[1], m[2], m[3])
	}

	return "", false
}

func slashDate(a, b, year string) (types.DateISO, bool) {
	first, _ := strconv.Atoi(a)
	second, _ := strconv.Atoi(b)

	var day, month int
	if len(year) == 2 {
		// MM/DD/YY
		month, day = first, second
	} else {
		// DD/MM/YYYY
		day, month = first, second
	}
	// 放错槽位的唯一可修复情形：月份槽 > 12 而另一段 <= 12
	if month > 12 && day <= 12 {
		day, month = month, day
	}

	y, _ := strconv.Atoi(year)
	if len(year) == 2 {
		if y <= 68 {
			y += 2000
		} else {
			y += 1900
		}
	}

	if !validDate(y, month, day) {
		return "", false
	}
	return types.DateISO(fmt.Sprintf("%04d-%02d-%02d", y, month, day)), true
}

// validDate 用 time.Date 的进位行为反向校验（2/30 会被进位成 3 月）
func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
