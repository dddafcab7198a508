package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"docreader/types"
)

// 归一化函数：每个实体类别一个，全部是 total function。
// 解析不了时返回 ok=false，由调用方回退到原始串并降低置信度，绝不 panic。

var (
	currencyRe = regexp.MustCompile(`(?i)\b(eur|usd|gbp|sar|chf|jpy|inr)\b`)
	// 数字 + 可选量级后缀。长的备选项必须放在前面，否则 "million" 会被 "m" 截胜
	amountRe  = regexp.MustCompile(`(?i)([0-9]+(?:[.,][0-9]+)*)\s*(millions|million|mio|mn|m|billions|billion|bn|b|thousand|k)?\b`)
	groupedRe = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

	spreadRe  = regexp.MustCompile(`(?i)([a-z]+)\s*([+\-])\s*(\d+)\s*(?:bps|bp)?`)
	percentRe = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*%?$`)
	tenorRe   = regexp.MustCompile(`(?i)(\d+)\s*([YMWD])`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// magnitudes 量级后缀，统一小写后查表
var magnitudes = map[string]float64{
	"k":        1e3,
	"thousand": 1e3,
	"m":        1e6,
	"mn":       1e6,
	"mio":      1e6,
	"million":  1e6,
	"millions": 1e6,
	"b":        1e9,
	"bn":       1e9,
	"billion":  1e9,
	"billions": 1e9,
}

// Amount 解析 "EUR 200 million" / "1,000,000" / "200 mio" 之类的金额串
func Amount(raw string) (types.AmountValue, bool) {
	s := strings.ReplaceAll(raw, "\u00a0", " ")

	var unit string
	if m := currencyRe.FindString(s); m != "" {
		unit = strings.ToUpper(m)
	}

	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return types.AmountValue{Unit: unit}, false
	}

	num := m[1]
	if groupedRe.MatchString(num) {
		// "1.000.000" 这种点号做千分位的写法
		num = strings.ReplaceAll(num, ".", "")
	}
	num = strings.ReplaceAll(num, ",", "")

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return types.AmountValue{Unit: unit}, false
	}

	if suffix := strings.ToLower(m[2]); suffix != "" {
		value *= magnitudes[suffix]
	}

	return types.AmountValue{Value: value, Unit: unit}, true
}

// Spread 解析 "estr+45bps" / "LIBOR + 100" 为指数+基点，指数统一大写
func Spread(raw string) (types.SpreadValue, bool) {
	m := spreadRe.FindStringSubmatch(raw)
	if m == nil {
		return types.SpreadValue{}, false
	}
	bps, err := strconv.Atoi(m[3])
	if err != nil {
		return types.SpreadValue{}, false
	}
	if m[2] == "-" {
		bps = -bps
	}
	return types.SpreadValue{Index: strings.ToUpper(m[1]), SpreadBps: bps}, true
}

// Percentage 解析 "75%" / "0.5%"，百分号可省略
func Percentage(raw string) (types.PercentValue, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	m := percentRe.FindStringSubmatch(s)
	if m == nil {
		return types.PercentValue{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return types.PercentValue{}, false
	}
	return types.PercentValue{Value: value}, true
}

var tenorUnits = map[string]string{
	"Y": "years",
	"M": "months",
	"W": "weeks",
	"D": "days",
}

// Tenor 解析 "2Y" / "6M" 等期限代码
func Tenor(raw string) (types.TenorValue, bool) {
	m := tenorRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return types.TenorValue{}, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return types.TenorValue{}, false
	}
	unit := strings.ToUpper(m[2])
	return types.TenorValue{Value: value, Unit: unit, UnitFull: tenorUnits[unit]}, true
}

// Identifier 证券代码类：去空白 + 大写
func Identifier(raw string) types.TextValue {
	return types.TextValue(strings.ToUpper(strings.TrimSpace(raw)))
}

// Text 自由文本：去首尾空白，内部空白折叠成单个空格
func Text(raw string) types.TextValue {
	s := strings.ReplaceAll(raw, "\u00a0", " ")
	return types.TextValue(strings.TrimSpace(spaceRe.ReplaceAllString(s, " ")))
}

var isinShapeRe = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ValidISINShape 结构校验：2 位国家码 + 9 位字母数字 + 1 位校验位
func ValidISINShape(s string) bool {
	return isinShapeRe.MatchString(s)
}

// ValidISINChecksum ISO 6166 校验位（Luhn over base-36 展开）。
// 校验失败不影响实体输出，只影响调用方是否提升置信度。
func ValidISINChecksum(s string) bool {
	if !ValidISINShape(s) {
		return false
	}
	// 字母展开为两位数字 (A=10 ... Z=35)，拼成纯数字串
	var digits []int
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r >= 'A' && r <= 'Z':
			n := int(r-'A') + 10
			digits = append(digits, n/10, n%10)
		default:
			return false
		}
	}
	// 从右往左，从倒数第二位开始隔位乘 2（最右是校验位，不乘）
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
