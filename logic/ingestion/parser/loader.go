package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document"
)

// LoadLocal 服务器本地文件导入（批量补录接口用），pdf/txt 走 eino 的 file loader
func LoadLocal(ctx context.Context, path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx":
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open docx failed: %w", err)
		}
		defer f.Close()
		return fromDOCX(f)

	case ".pdf", ".txt":
		cfg := &file.FileLoaderConfig{}
		if ext == ".pdf" {
			p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
			if err != nil {
				return "", fmt.Errorf("create pdf parser failed: %w", err)
			}
			cfg.Parser = p
		}
		loader, err := file.NewFileLoader(ctx, cfg)
		if err != nil {
			return "", fmt.Errorf("create file loader failed: %w", err)
		}
		docs, err := loader.Load(ctx, document.Source{URI: path})
		if err != nil {
			return "", fmt.Errorf("load %s failed: %w", path, err)
		}

		parts := make([]string, 0, len(docs))
		for _, doc := range docs {
			if c := strings.TrimSpace(doc.Content); c != "" {
				parts = append(parts, c)
			}
		}
		return Sanitize(strings.Join(parts, "\n\n")), nil

	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}
