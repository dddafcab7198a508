package extraction

import (
	"strings"

	"docreader/logic/extraction/normalize"
	"docreader/types"
)

// Engine 抽取引擎。本身无状态、不做 I/O，持有的 Registry 只读，
// 同一个 Engine 可以被任意多个 goroutine 并发调用。
type Engine struct {
	reg *Registry
}

func NewEngine(reg *Registry) *Engine {
	return &Engine{reg: reg}
}

// RawMatch 扫描阶段的临时值，偏移相对传入的原始 text（0-based 半开区间）
type RawMatch struct {
	Type      types.EntityType
	Raw       string
	CharStart int
	CharEnd   int
	Rule      PatternRule
}

// Extract 对 text 做一次完整抽取。空输入返回空列表而不是错误。
// 每个类型独立扫描整个文本，类型之间允许区间重叠；
// 同类型内部按"最左位置优先、同位置规则优先级小者赢"消费，消费过的区间不再重扫。
func (e *Engine) Extract(text, sourceID string) []types.Entity {
	if strings.TrimSpace(text) == "" {
		return []types.Entity{}
	}

	var entities []types.Entity
	for _, t := range e.reg.AllTypes() {
		for _, m := range scanType(text, e.reg.RulesFor(t)) {
			entities = append(entities, buildEntity(m, sourceID))
		}
	}
	return Assemble(entities)
}

// scanType 单类型扫描：每轮在未消费区域里找所有规则的最早命中，
// 位置相同取优先级高的，然后把扫描位置推进到整段匹配之后
func scanType(text string, rules []PatternRule) []RawMatch {
	var out []RawMatch
	pos := 0

	for pos < len(text) {
		bestRule := -1
		var best []int
		for i := range rules {
			loc := rules[i].Pattern.FindStringSubmatchIndex(text[pos:])
			if loc == nil {
				continue
			}
			// 严格小于：平局时保留先声明（优先级小）的规则
			if bestRule == -1 || loc[0] < best[0] {
				bestRule, best = i, loc
			}
		}
		if bestRule == -1 {
			break
		}

		rule := rules[bestRule]
		start, end := best[0]+pos, best[1]+pos

		// 有捕获组时实体取组 1 的区间，但消费推进到整段匹配末尾，
		// 这样 "Notional:" 这类标签不会再触发低优先级规则
		rs, re := start, end
		if len(best) >= 4 && best[2] >= 0 {
			rs, re = best[2]+pos, best[3]+pos
		}

		raw := text[rs:re]
		if strings.TrimSpace(raw) != "" {
			out = append(out, RawMatch{
				Type:      rule.Type,
				Raw:       raw,
				CharStart: rs,
				CharEnd:   re,
				Rule:      rule,
			})
		}

		if end <= start {
			pos = start + 1 // 防零宽匹配死循环
		} else {
			pos = end
		}
	}
	return out
}

// buildEntity 按类型绑定的类别做归一化；失败就回退原始串并走置信度惩罚
func buildEntity(m RawMatch, sourceID string) types.Entity {
	cat, err := m.Type.Category()

	var norm types.NormalizedValue
	var unit *string
	ok := err == nil

	if ok {
		switch cat {
		case types.CategoryAmount:
			v, parsed := normalize.Amount(m.Raw)
			if parsed {
				norm = v
				if v.Unit != "" {
					u := v.Unit
					unit = &u
				}
			}
			ok = parsed
		case types.CategoryDate:
			v, parsed := normalize.Date(m.Raw)
			if parsed {
				norm = v
			}
			ok = parsed
		case types.CategoryPercentage:
			v, parsed := normalize.Percentage(m.Raw)
			if parsed {
				norm = v
				u := "%"
				unit = &u
			}
			ok = parsed
		case types.CategorySpread:
			v, parsed := normalize.Spread(m.Raw)
			if parsed {
				norm = v
			}
			ok = parsed
		case types.CategoryTenor:
			v, parsed := normalize.Tenor(m.Raw)
			if parsed {
				norm = v
				u := v.Unit
				unit = &u
			}
			ok = parsed
		case types.CategoryIdentifier:
			norm = normalize.Identifier(m.Raw)
		default:
			norm = normalize.Text(m.Raw)
		}
	}

	if !ok {
		norm = types.TextValue(m.Raw)
	}

	return types.Entity{
		Entity:     m.Type,
		RawValue:   m.Raw,
		Normalized: norm,
		Confidence: adjustConfidence(m, cat, ok),
		CharStart:  m.CharStart,
		CharEnd:    m.CharEnd,
		Source:     sourceID,
		Unit:       unit,
	}
}
