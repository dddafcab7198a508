package parser

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"
)

// 文档转纯文本。抽取引擎的 offset 以这里产出的文本为准，
// 所以清洗只删坏字符，不做重排或分块。

// ctrlRe 控制字符（保留换行和制表符）
var ctrlRe = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

// ExtractText 按扩展名分发解析，返回清洗后的纯文本
func ExtractText(ctx context.Context, r io.Reader, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return fromPDF(ctx, r, filename)
	case ".docx":
		return fromDOCX(r)
	case ".txt":
		return fromTXT(r)
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

func fromPDF(ctx context.Context, r io.Reader, filename string) (string, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return "", fmt.Errorf("create pdf parser failed: %w", err)
	}
	docs, err := p.Parse(ctx, r, einoparser.WithURI(filename))
	if err != nil {
		return "", fmt.Errorf("parse pdf failed: %w", err)
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if c := strings.TrimSpace(doc.Content); c != "" {
			parts = append(parts, c)
		}
	}
	return Sanitize(strings.Join(parts, "\n\n")), nil
}

func fromTXT(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read txt failed: %w", err)
	}
	return Sanitize(string(data)), nil
}

// Sanitize 去掉 Null 字节、控制字符和非法 UTF-8（常见于 PDF 解析产物）
func Sanitize(content string) string {
	content = strings.ReplaceAll(content, "\x00", "")
	content = ctrlRe.ReplaceAllString(content, "")

	if !utf8.ValidString(content) {
		v := make([]rune, 0, len(content))
		for i, r := range content {
			if r == utf8.RuneError {
				_, size := utf8.DecodeRuneInString(content[i:])
				if size == 1 {
					continue
				}
			}
			v = append(v, r)
		}
		content = string(v)
	}
	return strings.TrimSpace(content)
}
