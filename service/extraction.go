package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docreader/logic/extraction"
	"docreader/logic/ingestion/parser"
	"docreader/storage/es"
	"docreader/storage/postgres"
	"docreader/types"
	"docreader/vars"
)

// ExtractionService 负责单个文档的完整处理链路：解析 -> 抽取 -> 落库 -> ES 索引
type ExtractionService struct {
	pgRepo    *postgres.DocumentRepo
	engine    *extraction.Engine
	esIndexer *es.ESIndexer
}

// 构造函数：依赖注入
func NewExtractionService(pgRepo *postgres.DocumentRepo, engine *extraction.Engine, esIndexer *es.ESIndexer) *ExtractionService {
	return &ExtractionService{
		pgRepo:    pgRepo,
		engine:    engine,
		esIndexer: esIndexer,
	}
}

// ValidateUpload 上传前的参数校验：扩展名、大小
func ValidateUpload(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !vars.AllowedExtensions[ext] {
		return fmt.Errorf("不支持的文件类型: %s，仅支持 .pdf/.docx/.txt", ext)
	}
	if size == 0 {
		return fmt.Errorf("文件为空: %s", filename)
	}
	if size > vars.MAXFILESIZE {
		return fmt.Errorf("文件过大: %s (%d 字节)，上限 %d 字节", filename, size, int64(vars.MAXFILESIZE))
	}
	return nil
}

// UploadAndProcess 处理一个上传文件，返回生成的 doc_id 和抽取结果
func (s *ExtractionService) UploadAndProcess(ctx context.Context, fileHeader *multipart.FileHeader) (string, *types.ExtractionResult, error) {
	startTime := time.Now()
	fmt.Println(">>> [DEBUG] 进入 Service:", fileHeader.Filename)

	if err := ValidateUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		return "", nil, err
	}

	// 查重
	if one, _ := s.pgRepo.GetByFileName(ctx, fileHeader.Filename); one != nil {
		return "", nil, fmt.Errorf("文件已存在: %s (doc_id=%s)", fileHeader.Filename, one.DocID)
	}

	srcFile, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer srcFile.Close()

	parseStart := time.Now()
	text, err := parser.ExtractText(ctx, srcFile, fileHeader.Filename)
	if err != nil {
		return "", nil, fmt.Errorf("parse file failed: %v", err)
	}
	fmt.Printf(">>> [性能] 文档解析耗时: %v\n", time.Since(parseStart))

	return s.persist(ctx, fileHeader.Filename, fileHeader.Size, text, startTime)
}

// ImportLocal 从本地路径导入（批量灌库脚本用）
func (s *ExtractionService) ImportLocal(ctx context.Context, path string) (string, *types.ExtractionResult, error) {
	startTime := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, err
	}
	filename := filepath.Base(path)
	if err := ValidateUpload(filename, info.Size()); err != nil {
		return "", nil, err
	}
	if one, _ := s.pgRepo.GetByFileName(ctx, filename); one != nil {
		return "", nil, fmt.Errorf("文件已存在: %s (doc_id=%s)", filename, one.DocID)
	}

	text, err := parser.LoadLocal(ctx, path)
	if err != nil {
		return "", nil, fmt.Errorf("load file failed: %v", err)
	}

	return s.persist(ctx, filename, info.Size(), text, startTime)
}

// ExtractFromText 纯文本抽取，不落库
func (s *ExtractionService) ExtractFromText(text, source string) *types.ExtractionResult {
	startTime := time.Now()
	entities := s.engine.Extract(text, source)
	return &types.ExtractionResult{
		Filename:         source,
		FileSize:         int64(len(text)),
		Entities:         entities,
		EntityCount:      len(entities),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	}
}

// persist 抽取 + PG 落库 + ES 索引，ES 失败时回滚 PG 记录
func (s *ExtractionService) persist(ctx context.Context, filename string, size int64, text string, startTime time.Time) (string, *types.ExtractionResult, error) {
	docID := uuid.New().String()

	extractStart := time.Now()
	entities := s.engine.Extract(text, filename)
	fmt.Printf(">>> [性能] 实体抽取耗时: %v, 共 %d 个实体\n", time.Since(extractStart), len(entities))

	elapsedMs := time.Since(startTime).Milliseconds()
	now := time.Now()

	doc := &postgres.Document{
		DocID:        docID,
		FileName:     filename,
		FileSize:     size,
		EntityCount:  len(entities),
		ProcessingMs: elapsedMs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	rows := toEntityRows(docID, entities)

	if err := s.pgRepo.Create(ctx, doc, rows); err != nil {
		return "", nil, fmt.Errorf("postgresql存储失败: %v", err)
	}
	fmt.Println(">>> [DEBUG] 存入数据库成功:", filename)

	// es存储
	esStart := time.Now()
	if err := s.esIndexer.Store(ctx, docID, filename, entities); err != nil {
		_ = s.pgRepo.Delete(ctx, docID)
		fmt.Printf("es存储失败，已回滚PG记录：%v\n", err)
		return "", nil, err
	}
	fmt.Printf(">>> [性能] ES 存储耗时: %v\n", time.Since(esStart))

	result := &types.ExtractionResult{
		Filename:         filename,
		FileSize:         size,
		Entities:         entities,
		EntityCount:      len(entities),
		ProcessingTimeMs: elapsedMs,
	}
	return docID, result, nil
}

// toEntityRows 实体转成 entities 表行，normalized 序列化为 JSON 存 text 列
func toEntityRows(docID string, entities []types.Entity) []postgres.EntityRow {
	rows := make([]postgres.EntityRow, 0, len(entities))
	for _, ent := range entities {
		normalized, _ := json.Marshal(ent.Normalized)
		rows = append(rows, postgres.EntityRow{
			DocID:      docID,
			EntityType: string(ent.Entity),
			RawValue:   ent.RawValue,
			Normalized: string(normalized),
			Confidence: ent.Confidence,
			CharStart:  ent.CharStart,
			CharEnd:    ent.CharEnd,
			Unit:       ent.Unit,
		})
	}
	return rows
}
