package types

import "encoding/json"

// --- API 请求/响应 ---

// ExtractTextRequest 纯文本抽取请求（不落库）
type ExtractTextRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ExtractionResult 单个文档的抽取结果
type ExtractionResult struct {
	Filename         string   `json:"filename"`
	FileSize         int64    `json:"file_size"`
	Entities         []Entity `json:"entities"`
	EntityCount      int      `json:"entity_count"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
}

// SearchRequest 检索请求：Query 走 ES 关键词，Filters 走 PG 结构化过滤
type SearchRequest struct {
	Query   string           `json:"query"`
	Filters FilterConditions `json:"filters"`
}

// FilterConditions 结构化过滤条件 (用于 Repo 查询)
type FilterConditions struct {
	FileName      string     `json:"file_name,omitempty"`
	EntityTypes   []string   `json:"entity_types,omitempty"`
	MinConfidence *float64   `json:"min_confidence,omitempty"`
	DateRange     *DateRange `json:"date_range,omitempty"` // 按抽取时间过滤
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DocumentSummary 文档级概要（列表/详情公用）
type DocumentSummary struct {
	DocID            string `json:"doc_id"`
	FileName         string `json:"file_name"`
	FileSize         int64  `json:"file_size"`
	EntityCount      int    `json:"entity_count"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
	CreatedAt        string `json:"created_at"`
}

// StoredEntity 从库里读出的实体行，normalized 原样透传 JSON
type StoredEntity struct {
	Entity     string          `json:"entity"`
	RawValue   string          `json:"raw_value"`
	Normalized json.RawMessage `json:"normalized"`
	Confidence float64         `json:"confidence"`
	CharStart  int             `json:"char_start"`
	CharEnd    int             `json:"char_end"`
	Unit       *string         `json:"unit"`
}

// DocumentDetail 单个文档的抽取详情
type DocumentDetail struct {
	Document DocumentSummary `json:"document"`
	Entities []StoredEntity  `json:"entities"`
}

// EntityMatch 关键词检索命中的实体
type EntityMatch struct {
	DocID      string          `json:"doc_id"`
	FileName   string          `json:"file_name"`
	EntityType string          `json:"entity_type"`
	RawValue   string          `json:"raw_value"`
	Normalized json.RawMessage `json:"normalized"`
	Confidence float64         `json:"confidence"`
	CharStart  int             `json:"char_start"`
	CharEnd    int             `json:"char_end"`
	Score      float64         `json:"score"`
}

// SearchResult 检索响应：有 Query 时返回 Entities，纯结构化过滤时返回 Documents
type SearchResult struct {
	Total     int               `json:"total"`
	Documents []DocumentSummary `json:"documents,omitempty"`
	Entities  []EntityMatch     `json:"entities,omitempty"`
}
