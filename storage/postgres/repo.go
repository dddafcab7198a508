package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"docreader/types"
)

// DocumentRepo 封装对 documents / entities 两张表的所有操作
type DocumentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create 一个事务里写入抽取概要和全部实体行
func (r *DocumentRepo) Create(ctx context.Context, doc *Document, rows []EntityRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
}

// GetByDocID 根据 UUID 查询抽取记录
func (r *DocumentRepo) GetByDocID(ctx context.Context, docID string) (*Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).
		Where("doc_id = ?", docID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetByFileName 根据文件名查询（上传查重用）
func (r *DocumentRepo) GetByFileName(ctx context.Context, filename string) (*Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).
		Where("file_name = ?", filename).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListEntities 返回某个文档的全部实体行，按偏移排序
func (r *DocumentRepo) ListEntities(ctx context.Context, docID string) ([]EntityRow, error) {
	var rows []EntityRow
	err := r.db.WithContext(ctx).
		Where("doc_id = ?", docID).
		Order("char_start asc, entity_type asc").
		Find(&rows).Error
	return rows, err
}

// Delete 删除抽取记录及其实体行（回滚/清理用）
func (r *DocumentRepo) Delete(ctx context.Context, docID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doc_id = ?", docID).Delete(&EntityRow{}).Error; err != nil {
			return err
		}
		return tx.Where("doc_id = ?", docID).Delete(&Document{}).Error
	})
}

// SearchDocuments 结构化条件筛选 doc_id。
// docIDs 可选：传入 ES 先过滤出来的范围，用 IN 收窄
func (r *DocumentRepo) SearchDocuments(ctx context.Context, conditions *types.FilterConditions, docIDs ...[]string) ([]string, error) {
	tx := r.db.WithContext(ctx).Model(&Document{}).Select("documents.doc_id").Distinct()

	if len(docIDs) > 0 && len(docIDs[0]) > 0 {
		tx = tx.Where("documents.doc_id IN ?", docIDs[0])
	}

	if conditions.FileName != "" {
		tx = tx.Where("file_name LIKE ?", "%"+conditions.FileName+"%")
	}

	// 实体级条件走 entities 表 join
	if len(conditions.EntityTypes) > 0 || conditions.MinConfidence != nil {
		tx = tx.Joins("JOIN entities ON entities.doc_id = documents.doc_id")
		if len(conditions.EntityTypes) > 0 {
			tx = tx.Where("entities.entity_type IN ?", conditions.EntityTypes)
		}
		if conditions.MinConfidence != nil {
			tx = tx.Where("entities.confidence >= ?", *conditions.MinConfidence)
		}
	}

	if conditions.DateRange != nil {
		if conditions.DateRange.Start != "" {
			tx = tx.Where("documents.created_at >= ?", conditions.DateRange.Start)
		}
		if conditions.DateRange.End != "" {
			tx = tx.Where("documents.created_at <= ?", conditions.DateRange.End)
		}
	}

	var resultDocIDs []string
	err := tx.Find(&resultDocIDs).Error
	return resultDocIDs, err
}

// PurgeBefore 删除 cutoff 之前的抽取记录，返回被删的 doc_id 给调用方去清 ES
func (r *DocumentRepo) PurgeBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	var docIDs []string
	err := r.db.WithContext(ctx).Model(&Document{}).
		Select("doc_id").
		Where("created_at < ?", cutoff).
		Find(&docIDs).Error
	if err != nil {
		return nil, err
	}
	if len(docIDs) == 0 {
		return nil, nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doc_id IN ?", docIDs).Delete(&EntityRow{}).Error; err != nil {
			return err
		}
		return tx.Where("doc_id IN ?", docIDs).Delete(&Document{}).Error
	})
	return docIDs, err
}
