package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"docreader/storage/es"
	"docreader/storage/postgres"
)

// StartCronJob 启动保留期清理任务：每天凌晨 2 点删除过期抽取记录，并同步清理 ES
func StartCronJob(pgRepo *postgres.DocumentRepo, esIndexer *es.ESIndexer, retentionDays int) {
	c := cron.New()

	_, _ = c.AddFunc("0 2 * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().AddDate(0, 0, -retentionDays)

		docIDs, err := pgRepo.PurgeBefore(ctx, cutoff)
		if err != nil {
			fmt.Println("[Cron] Error:", err)
			return
		}
		if len(docIDs) == 0 {
			return
		}

		for _, docID := range docIDs {
			if err := esIndexer.DeleteByDocID(ctx, docID); err != nil {
				fmt.Printf("[Cron] ES 清理失败 doc_id=%s: %v\n", docID, err)
			}
		}
		fmt.Printf("[Cron] 清理了 %d 份过期文档\n", len(docIDs))
	})

	c.Start()
}
