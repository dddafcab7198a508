package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// Filter 实体检索的过滤条件
type Filter struct {
	DocIDs        []string // 限定文档范围（结构化过滤先筛出来的）
	EntityTypes   []string // 实体类型
	MinConfidence *float64 // 置信度下限
}

// EntityHit 一条命中的实体记录
type EntityHit struct {
	DocID      string  `json:"doc_id"`
	FileName   string  `json:"file_name"`
	EntityType string  `json:"entity_type"`
	RawValue   string  `json:"raw_value"`
	Normalized string  `json:"normalized"`
	Confidence float64 `json:"confidence"`
	CharStart  int     `json:"char_start"`
	CharEnd    int     `json:"char_end"`
	Score      float64 `json:"score"`
}

// Retriever 对实体索引做 BM25 检索
// query: 关键词；filters 可为 nil；topK: 返回条数
func Retriever(ctx context.Context, client *elasticsearch.Client, index, query string, filters *Filter, topK int) ([]EntityHit, error) {
	esQuery := buildESQuery(query, filters, topK)

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(esQuery); err != nil {
		return nil, fmt.Errorf("error encoding query: %s", err)
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  strings.NewReader(buf.String()),
	}

	res, err := req.Do(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("error getting response: %s", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error response: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error parsing response body: %s", err)
	}

	hits, ok := result["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid response format")
	}
	hitsList, ok := hits["hits"].([]interface{})
	if !ok {
		return []EntityHit{}, nil // 无结果
	}

	out := make([]EntityHit, 0, len(hitsList))
	for _, hit := range hitsList {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		source, ok := hitMap["_source"].(map[string]interface{})
		if !ok {
			continue
		}

		h := EntityHit{
			DocID:      toString(source["doc_id"]),
			FileName:   toString(source["file_name"]),
			EntityType: toString(source["entity_type"]),
			RawValue:   toString(source["raw_value"]),
			Normalized: toString(source["normalized"]),
		}
		if v, ok := source["confidence"].(float64); ok {
			h.Confidence = v
		}
		if v, ok := source["char_start"].(float64); ok {
			h.CharStart = int(v)
		}
		if v, ok := source["char_end"].(float64); ok {
			h.CharEnd = int(v)
		}
		if v, ok := hitMap["_score"].(float64); ok {
			h.Score = v
		}
		out = append(out, h)
	}

	log.Printf(">>> [ES] Retrieved %d results", len(out))
	return out, nil
}

func buildESQuery(query string, filters *Filter, topK int) map[string]interface{} {
	must := []map[string]interface{}{}
	if strings.TrimSpace(query) != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"raw_value^2", "normalized", "file_name"},
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	filter := []map[string]interface{}{}
	if filters != nil {
		if len(filters.DocIDs) > 0 {
			filter = append(filter, map[string]interface{}{
				"terms": map[string]interface{}{"doc_id": filters.DocIDs},
			})
		}
		if len(filters.EntityTypes) > 0 {
			filter = append(filter, map[string]interface{}{
				"terms": map[string]interface{}{"entity_type": filters.EntityTypes},
			})
		}
		if filters.MinConfidence != nil {
			filter = append(filter, map[string]interface{}{
				"range": map[string]interface{}{
					"confidence": map[string]interface{}{"gte": *filters.MinConfidence},
				},
			})
		}
	}

	if topK <= 0 {
		topK = 10
	}
	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"size": topK,
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
