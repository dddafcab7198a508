package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"

	"docreader/types"
)

// ESIndexer 把抽取出的实体写进 ES，给关键词检索用
type ESIndexer struct {
	client *elasticsearch.Client
	index  string
}

// GetClient 返回 ES 客户端（检索侧复用）
func (e *ESIndexer) GetClient() *elasticsearch.Client {
	return e.client
}

// NewESIndexer 初始化 ES 客户端并确保索引存在
func NewESIndexer(addresses []string, indexName string) (*ESIndexer, error) {
	cfg := elasticsearch.Config{
		Addresses: addresses,
	}
	cli, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating the client: %s", err)
	}

	indexer := &ESIndexer{client: cli, index: indexName}

	if err := indexer.initMapping(context.Background()); err != nil {
		return nil, err
	}
	return indexer, nil
}

func (e *ESIndexer) initMapping(ctx context.Context) error {
	// 已存在就跳过
	res, err := e.client.Indices.Exists([]string{e.index})
	if err != nil {
		return err
	}
	if res.StatusCode == 200 {
		return nil
	}

	mapping := `
	{
	  "settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	  },
	  "mappings": {
		"properties": {
		  "doc_id":      { "type": "keyword" },
		  "file_name": {
			"type": "text",
			"fields": {
			  "keyword": { "type": "keyword" }
			}
		  },
		  "entity_type": { "type": "keyword" },
		  "raw_value":   { "type": "text" },
		  "normalized":  { "type": "text" },
		  "confidence":  { "type": "double" },
		  "char_start":  { "type": "integer" },
		  "char_end":    { "type": "integer" },
		  "extracted_at": { "type": "date" }
		}
	  }
	}`

	log.Printf(">>> [ES] Creating index %s ...", e.index)
	res, err = e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithBody(strings.NewReader(mapping)),
	)
	if err != nil {
		return fmt.Errorf("create index error: %v", err)
	}
	if res.IsError() {
		return fmt.Errorf("create index response error: %s", res.String())
	}
	return nil
}

// Store 批量写入一个文档的全部实体
func (e *ESIndexer) Store(ctx context.Context, docID, fileName string, entities []types.Entity) error {
	if len(entities) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.index,
		Client:        e.client,
		FlushInterval: 1, // 开发环境立即刷新
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i, ent := range entities {
		normalized, _ := json.Marshal(ent.Normalized)

		docModel := map[string]interface{}{
			"doc_id":       docID,
			"file_name":    fileName,
			"entity_type":  string(ent.Entity),
			"raw_value":    ent.RawValue,
			"normalized":   string(normalized),
			"confidence":   ent.Confidence,
			"char_start":   ent.CharStart,
			"char_end":     ent.CharEnd,
			"extracted_at": now,
		}

		data, _ := json.Marshal(docModel)

		// doc_id + 序号做 _id，重复写入幂等
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: fmt.Sprintf("%s-%d", docID, i),
			Body:       strings.NewReader(string(data)),
		})
		if err != nil {
			return err
		}
	}

	return bi.Close(ctx)
}

// DeleteByDocID 按 doc_id 清掉某个文档的全部实体（回滚/保留期清理用）
func (e *ESIndexer) DeleteByDocID(ctx context.Context, docID string) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"doc_id": docID,
			},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return fmt.Errorf("error encoding query: %s", err)
	}

	res, err := e.client.DeleteByQuery(
		[]string{e.index},
		strings.NewReader(buf.String()),
		e.client.DeleteByQuery.WithContext(ctx),
		e.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return fmt.Errorf("ES delete request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ES delete response error: %s", res.String())
	}

	log.Printf(">>> [ES] 已删除 DocID=%s 的实体数据", docID)
	return nil
}
