package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docreader/storage/es"
	"docreader/storage/postgres"
	"docreader/types"
	"docreader/vars"
)

// QueryService 负责检索：PG 结构化过滤 + ES 关键词检索的混合查询
type QueryService struct {
	pgRepo    *postgres.DocumentRepo
	esIndexer *es.ESIndexer
}

func NewQueryService(pgRepo *postgres.DocumentRepo, esIndexer *es.ESIndexer) *QueryService {
	return &QueryService{
		pgRepo:    pgRepo,
		esIndexer: esIndexer,
	}
}

// hasStructuredFilter 判断请求里是否带了需要走 PG 的条件
func hasStructuredFilter(f *types.FilterConditions) bool {
	return f.FileName != "" || len(f.EntityTypes) > 0 || f.MinConfidence != nil || f.DateRange != nil
}

// Search 混合检索：
//  1. 有结构化条件时先走 PG 筛出 doc_id 范围
//  2. 有 Query 时走 ES 关键词检索（范围内）
//  3. 只有结构化条件时直接返回文档列表
func (s *QueryService) Search(ctx context.Context, req *types.SearchRequest) (*types.SearchResult, error) {
	var docIDs []string

	if hasStructuredFilter(&req.Filters) {
		ids, err := s.pgRepo.SearchDocuments(ctx, &req.Filters)
		if err != nil {
			return nil, fmt.Errorf("结构化过滤失败: %v", err)
		}
		if len(ids) == 0 {
			// 过滤后没有候选文档，直接返回空
			return &types.SearchResult{Total: 0}, nil
		}
		docIDs = ids
		fmt.Printf(">>> [DEBUG] 结构化过滤命中 %d 个文档\n", len(ids))
	}

	// 纯结构化查询：返回文档概要列表
	if req.Query == "" {
		if docIDs == nil {
			return nil, fmt.Errorf("query 和 filters 不能同时为空")
		}
		docs, err := s.loadSummaries(ctx, docIDs)
		if err != nil {
			return nil, err
		}
		return &types.SearchResult{Total: len(docs), Documents: docs}, nil
	}

	// 关键词检索
	filter := &es.Filter{
		DocIDs:        docIDs,
		EntityTypes:   req.Filters.EntityTypes,
		MinConfidence: req.Filters.MinConfidence,
	}
	hits, err := es.Retriever(ctx, s.esIndexer.GetClient(), vars.ENTITYINDEX, req.Query, filter, vars.DEFAULTTOPK)
	if err != nil {
		return nil, fmt.Errorf("ES检索失败: %v", err)
	}

	matches := make([]types.EntityMatch, 0, len(hits))
	for _, h := range hits {
		matches = append(matches, types.EntityMatch{
			DocID:      h.DocID,
			FileName:   h.FileName,
			EntityType: h.EntityType,
			RawValue:   h.RawValue,
			Normalized: json.RawMessage(h.Normalized),
			Confidence: h.Confidence,
			CharStart:  h.CharStart,
			CharEnd:    h.CharEnd,
			Score:      h.Score,
		})
	}
	return &types.SearchResult{Total: len(matches), Entities: matches}, nil
}

// GetDocument 返回单个文档的抽取详情（概要 + 全部实体行）
func (s *QueryService) GetDocument(ctx context.Context, docID string) (*types.DocumentDetail, error) {
	doc, err := s.pgRepo.GetByDocID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("文档不存在: %s", docID)
	}

	rows, err := s.pgRepo.ListEntities(ctx, docID)
	if err != nil {
		return nil, err
	}

	entities := make([]types.StoredEntity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, types.StoredEntity{
			Entity:     row.EntityType,
			RawValue:   row.RawValue,
			Normalized: json.RawMessage(row.Normalized),
			Confidence: row.Confidence,
			CharStart:  row.CharStart,
			CharEnd:    row.CharEnd,
			Unit:       row.Unit,
		})
	}

	return &types.DocumentDetail{
		Document: toSummary(doc),
		Entities: entities,
	}, nil
}

func (s *QueryService) loadSummaries(ctx context.Context, docIDs []string) ([]types.DocumentSummary, error) {
	out := make([]types.DocumentSummary, 0, len(docIDs))
	for _, id := range docIDs {
		doc, err := s.pgRepo.GetByDocID(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, toSummary(doc))
	}
	return out, nil
}

func toSummary(doc *postgres.Document) types.DocumentSummary {
	return types.DocumentSummary{
		DocID:            doc.DocID,
		FileName:         doc.FileName,
		FileSize:         doc.FileSize,
		EntityCount:      doc.EntityCount,
		ProcessingTimeMs: doc.ProcessingMs,
		CreatedAt:        doc.CreatedAt.Format(time.RFC3339),
	}
}
