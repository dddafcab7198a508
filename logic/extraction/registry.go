package extraction

import (
	"fmt"
	"regexp"

	"docreader/types"
)

// Registry 进程级只读的模式表：启动时构建一次，之后被所有抽取调用共享。
// 构建失败属于配置错误，直接让进程起不来，绝不拖到单次抽取时才爆。

// PatternRule 单条抽取规则。Priority 由声明顺序生成，数值小的先试；
// 同一位置多条规则命中时 Priority 小者赢（平局规则是显式的，不依赖遍历实现）
type PatternRule struct {
	Type           types.EntityType
	Pattern        *regexp.Regexp
	Priority       int
	BaseConfidence float64
	CaseSensitive  bool
}

type ruleSpec struct {
	expr          string
	conf          float64
	caseSensitive bool
}

// defaultRules 每个类型的规则按"特异性"从高到低声明：
// 带标签/带结构的模式在前，宽松的兜底模式在后
var defaultRules = map[types.EntityType][]ruleSpec{
	types.Counterparty: {
		{expr: `Counterparty\s*[►▶:—–-]?\s*([A-Z][A-Z0-9 \-&]+)`, conf: 0.85},
		{expr: `Party\s*[AB]\s*[►▶:—–-]?\s*([A-Z][A-Z0-9 \-&]+)`, conf: 0.80},
		{expr: `(?:regarding|from|with)\s+([A-Z]{3,}(?:\s+[A-Z]{2,})*)\s+to`, conf: 0.70, caseSensitive: true},
	},
	types.PartyA: {
		{expr: `Party\s*A\s*[►▶:—–-]?\s*([A-Z][A-Z0-9 \-&]+)`, conf: 0.85},
	},
	types.PartyB: {
		{expr: `Party\s*B\s*[►▶:—–-]?\s*([A-Z][A-Z0-9 \-&]+)`, conf: 0.85},
	},
	types.ISIN: {
		{expr: `\b([A-Z]{2}[A-Z0-9]{9}[0-9])\b`, conf: 0.90, caseSensitive: true},
	},
	types.Notional: {
		{expr: `Notional(?:\s+Amount)?\s*(?:\([A-Z]\))?\s*[►▶:—–-]?\s*((?:EUR|USD|GBP|SAR|CHF|JPY|INR)?\s*[0-9][0-9.,]*(?:\s*(?:mio|million|mn|k|bn|b))?)`, conf: 0.90},
		{expr: `\b((?:EUR|USD|SAR|GBP|CHF)\s*\d{1,3}(?:[,.]\d+)?\s*(?:mio|million|mn|k|bn)?)\b`, conf: 0.85},
		{expr: `\b(\d+\s*(?:mio|million))\s+at\s+\d+[YMD]`, conf: 0.75},
	},
	types.TradeDate: {
		{expr: `Trade\s+Date\s*[►▶:—–-]?\s*([A-Za-z0-9 ,/.-]+)`, conf: 0.85},
		// 无标签的文本日期兜底：默认按交易日上报
		{expr: `\b(\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4})\b`, conf: 0.70},
	},
	types.EffectiveDate: {
		{expr: `Effective\s+Date\s*[►▶:—–-]?\s*([A-Za-z0-9 ,/.-]+)`, conf: 0.85},
	},
	types.ValuationDate: {
		{expr: `(?:Initial\s+)?Valuation\s+Date\s*[►▶:—–-]?\s*([A-Za-z0-9 ,/.-]+)`, conf: 0.85},
	},
	types.Maturity: {
		{expr: `(?:Termination|Maturity)\s+Date\s*[►▶:—–-]?\s*([A-Za-z0-9 ,/.-]+)`, conf: 0.85},
		{expr: `Maturity\s*[►▶:—–-]?\s*([A-Za-z0-9 ,/.-]+)`, conf: 0.75},
	},
	types.Tenor: {
		{expr: `\b(\d+[YMD])\s+(?:EVG|tenor|maturity)`, conf: 0.85},
		{expr: `(?:offer|at)\s+(\d+[YMD])\b`, conf: 0.80},
	},
	types.Underlying: {
		{expr: `Underlying\s*[►▶:—–-]?\s*([A-Za-z0-9 (),.\-]+(?:SE|AG|Ltd|Inc|FLOAT)?)`, conf: 0.85},
		{expr: `(?:ISIN|Reuters):\s*[A-Z.]+\)?\s*([A-Za-z0-9 ,.\-]+)`, conf: 0.70},
	},
	types.Barrier: {
		{expr: `Barrier\s*(?:\(B\))?\s*[►▶:—–-]?\s*([\d.]+%?)`, conf: 0.85},
	},
	types.Coupon: {
		{expr: `Coupon\s*(?:\(C\))?\s*[►▶:—–-]?\s*([\d.]+%?)`, conf: 0.85},
	},
	types.Offer: {
		// 裸利差（estr+45bps）最具体，放最前
		{expr: `\b([A-Za-z]+\+\d+\s*bps)\b`, conf: 0.90},
		{expr: `(?:Bid|Offer)\s*[►▶:—–-]?\s*([a-zA-Z+\d\s]+bps|[a-zA-Z+\-\d]+)`, conf: 0.80},
	},
	types.PaymentFrequency: {
		{expr: `Payment[- ]?Frequency\s*[►▶:—–-]?\s*([A-Za-z]+)`, conf: 0.85},
		{expr: `\b(Quarterly|Monthly|Annual|Semi-annual)\s+(?:interest\s+)?payment`, conf: 0.80},
	},
	types.Exchange: {
		{expr: `Exchange\s*[►▶:—–-]?\s*([A-Z]+)`, conf: 0.85},
	},
	types.Calendar: {
		{expr: `(?:Business\s+Day|Calendar)\s*[►▶:—–-]?\s*([A-Z]+)`, conf: 0.85},
	},
	types.CalculationAgent: {
		{expr: `Calculation\s+Agent\s*[►▶:—–-]?\s*([A-Za-z0-9 ]+(?:and|&)?[A-Za-z0-9 ]*)`, conf: 0.85},
	},
}

// Registry 构建完成后只读，可被任意数量的并发抽取安全共享
type Registry struct {
	rules map[types.EntityType][]PatternRule
}

// NewRegistry 用内置规则表构建
func NewRegistry() (*Registry, error) {
	return newRegistry(defaultRules)
}

func newRegistry(specs map[types.EntityType][]ruleSpec) (*Registry, error) {
	rules := make(map[types.EntityType][]PatternRule, len(specs))

	for _, t := range types.AllEntityTypes() {
		list, ok := specs[t]
		if !ok || len(list) == 0 {
			return nil, fmt.Errorf("entity type %s: no pattern rules registered", t)
		}
		if _, err := t.Category(); err != nil {
			return nil, err
		}

		compiled := make([]PatternRule, 0, len(list))
		for i, rs := range list {
			if rs.conf < 0 || rs.conf > 1 {
				return nil, fmt.Errorf("entity type %s rule %d: base confidence %v out of [0,1]", t, i, rs.conf)
			}
			expr := rs.expr
			if !rs.caseSensitive {
				expr = "(?i)" + expr
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("entity type %s rule %d: %w", t, i, err)
			}
			compiled = append(compiled, PatternRule{
				Type:           t,
				Pattern:        re,
				Priority:       i,
				BaseConfidence: rs.conf,
				CaseSensitive:  rs.caseSensitive,
			})
		}
		rules[t] = compiled
	}

	// 规则表里不允许出现未登记的实体类型
	if len(specs) != len(types.AllEntityTypes()) {
		for t := range specs {
			if _, ok := rules[t]; !ok {
				return nil, fmt.Errorf("rule table references unknown entity type %q", string(t))
			}
		}
	}

	return &Registry{rules: rules}, nil
}

// RulesFor 返回该类型按优先级排好的规则序列（调用方只读）
func (r *Registry) RulesFor(t types.EntityType) []PatternRule {
	return r.rules[t]
}

// AllTypes 返回全部类型，顺序与 types.AllEntityTypes 一致（保证遍历确定性）
func (r *Registry) AllTypes() []types.EntityType {
	return types.AllEntityTypes()
}
