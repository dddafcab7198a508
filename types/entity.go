package types

import (
	"encoding/json"
	"fmt"
)

// EntityType 实体类型（封闭枚举，新增类型必须同时登记归一化类别）
type EntityType string

const (
	Counterparty     EntityType = "Counterparty"
	PartyA           EntityType = "PartyA"
	PartyB           EntityType = "PartyB"
	Notional         EntityType = "Notional"
	ISIN             EntityType = "ISIN"
	Underlying       EntityType = "Underlying"
	TradeDate        EntityType = "TradeDate"
	EffectiveDate    EntityType = "EffectiveDate"
	ValuationDate    EntityType = "ValuationDate"
	Maturity         EntityType = "Maturity"
	Tenor            EntityType = "Tenor"
	Offer            EntityType = "Offer"
	Barrier          EntityType = "Barrier"
	Coupon           EntityType = "Coupon"
	PaymentFrequency EntityType = "PaymentFrequency"
	Exchange         EntityType = "Exchange"
	Calendar         EntityType = "Calendar"
	CalculationAgent EntityType = "CalculationAgent"
)

// Category 归一化类别，决定 raw value 走哪个 normalizer
type Category int

const (
	CategoryText Category = iota
	CategoryIdentifier
	CategoryAmount
	CategoryDate
	CategoryPercentage
	CategorySpread
	CategoryTenor
)

// entityCategories 每个 EntityType 只绑定一个类别
var entityCategories = map[EntityType]Category{
	Counterparty:     CategoryText,
	PartyA:           CategoryText,
	PartyB:           CategoryText,
	Notional:         CategoryAmount,
	ISIN:             CategoryIdentifier,
	Underlying:       CategoryText,
	TradeDate:        CategoryDate,
	EffectiveDate:    CategoryDate,
	ValuationDate:    CategoryDate,
	Maturity:         CategoryDate,
	Tenor:            CategoryTenor,
	Offer:            CategorySpread,
	Barrier:          CategoryPercentage,
	Coupon:           CategoryPercentage,
	PaymentFrequency: CategoryText,
	Exchange:         CategoryIdentifier,
	Calendar:         CategoryIdentifier,
	CalculationAgent: CategoryText,
}

// Category 返回该实体类型绑定的归一化类别
func (t EntityType) Category() (Category, error) {
	c, ok := entityCategories[t]
	if !ok {
		return 0, fmt.Errorf("entity type %q has no normalizer category", string(t))
	}
	return c, nil
}

// AllEntityTypes 返回全部已登记的实体类型（顺序固定，便于确定性遍历）
func AllEntityTypes() []EntityType {
	return []EntityType{
		Counterparty, PartyA, PartyB, Notional, ISIN, Underlying,
		TradeDate, EffectiveDate, ValuationDate, Maturity, Tenor,
		Offer, Barrier, Coupon, PaymentFrequency, Exchange, Calendar,
		CalculationAgent,
	}
}

// NormalizedValue 归一化结果的 tagged union（封闭类型集合）
// 内部保持强类型，序列化时按 API 约定输出标量或嵌套对象
type NormalizedValue interface {
	isNormalized()
}

// TextValue 纯文本（也用于归一化失败时回退原始串）
type TextValue string

// DateISO 日期，固定 YYYY-MM-DD
type DateISO string

// AmountValue 金额，Unit 为货币代码，未识别时为空
type AmountValue struct {
	Value float64
	Unit  string
}

// PercentValue 百分比
type PercentValue struct {
	Value float64
}

// SpreadValue 利差，Index 统一大写，SpreadBps 单位为基点
type SpreadValue struct {
	Index     string
	SpreadBps int
}

// TenorValue 期限，如 2Y / 6M
type TenorValue struct {
	Value    int
	Unit     string
	UnitFull string
}

func (TextValue) isNormalized()    {}
func (DateISO) isNormalized()      {}
func (AmountValue) isNormalized()  {}
func (PercentValue) isNormalized() {}
func (SpreadValue) isNormalized()  {}
func (TenorValue) isNormalized()   {}

func (v TextValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v DateISO) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v AmountValue) MarshalJSON() ([]byte, error) {
	var unit *string
	if v.Unit != "" {
		unit = &v.Unit
	}
	return json.Marshal(struct {
		Value float64 `json:"value"`
		Unit  *string `json:"unit"`
	}{v.Value, unit})
}

func (v PercentValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	}{v.Value, "%"})
}

func (v SpreadValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index     string `json:"index"`
		SpreadBps int    `json:"spread_bps"`
	}{v.Index, v.SpreadBps})
}

func (v TenorValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value    int    `json:"value"`
		Unit     string `json:"unit"`
		UnitFull string `json:"unit_full,omitempty"`
	}{v.Value, v.Unit, v.UnitFull})
}

// Entity 单条抽取结果（对外 wire 格式，字段与顺序见 API 文档）
type Entity struct {
	Entity     EntityType      `json:"entity"`
	RawValue   string          `json:"raw_value"`
	Normalized NormalizedValue `json:"normalized"`
	Confidence float64         `json:"confidence"`
	CharStart  int             `json:"char_start"`
	CharEnd    int             `json:"char_end"`
	Source     string          `json:"source"`
	Unit       *string         `json:"unit"`
}
