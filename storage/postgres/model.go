package postgres

import (
	"time"
)

// Document 对应 documents 表：一次文档抽取的概要记录
type Document struct {
	// DocID 手动生成的 UUID，不用自增 ID
	DocID        string `gorm:"column:doc_id;primaryKey;type:uuid"`
	FileName     string `gorm:"column:file_name;type:varchar(255);not null;index"`
	FileSize     int64  `gorm:"column:file_size"`
	EntityCount  int    `gorm:"column:entity_count"`
	ProcessingMs int64  `gorm:"column:processing_ms"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName 强制指定表名
func (Document) TableName() string {
	return "documents"
}

// EntityRow 对应 entities 表：单条抽取出的实体。
// normalized 存序列化后的 JSON（标量或对象），读出时原样返回给前端
type EntityRow struct {
	ID         uint    `gorm:"primaryKey;autoIncrement"`
	DocID      string  `gorm:"column:doc_id;type:uuid;index"`
	EntityType string  `gorm:"column:entity_type;type:varchar(32);index"`
	RawValue   string  `gorm:"column:raw_value;type:text"`
	Normalized string  `gorm:"column:normalized;type:text"`
	Confidence float64 `gorm:"column:confidence;index"`
	CharStart  int     `gorm:"column:char_start"`
	CharEnd    int     `gorm:"column:char_end"`
	Unit       *string `gorm:"column:unit;type:varchar(16)"`

	CreatedAt time.Time
}

func (EntityRow) TableName() string {
	return "entities"
}
