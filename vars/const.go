package vars

import (
	"os"
	"strconv"
)

// GetEnv 获取环境变量，如果不存在则返回默认值
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt 获取整型环境变量，解析失败返回默认值
func GetEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

const (
	// ES 实体索引名称
	ENTITYINDEX = "entity_records_v1"

	// 单文件大小上限 10MB
	MAXFILESIZE = 10 << 20

	// 检索 topK 默认值
	DEFAULTTOPK = 20
)

// AllowedExtensions 支持的上传文件类型
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// 环境变量配置（支持 Docker 部署）
var (
	// PG
	PGUSER = GetEnv("PGUSER", "root")
	PGPWD  = GetEnv("PGPWD", "root")
	PGDB   = GetEnv("PGDB", "docreaderDB")
	PGHOST = GetEnv("PGHOST", "localhost")
	PGPORT = GetEnv("PGPORT", "5432")

	// ES
	ESADDR = GetEnv("ESADDR", "http://localhost:9200")

	// HTTP
	PORT = GetEnv("PORT", "8081")

	// 抽取记录保留天数，到期后定时任务清理
	RETENTIONDAYS = GetEnvInt("RETENTION_DAYS", 90)
)
