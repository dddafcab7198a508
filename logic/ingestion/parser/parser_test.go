package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextTXT(t *testing.T) {
	got, err := ExtractText(context.Background(), strings.NewReader("Notional: EUR 200 million\n"), "sheet.txt")
	require.NoError(t, err)
	assert.Equal(t, "Notional: EUR 200 million", got)
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText(context.Background(), strings.NewReader("x"), "sheet.xls")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	// Null 字节和控制字符去掉，换行和制表符保留
	assert.Equal(t, "a\tb\nc", Sanitize("\x00a\t\x01b\nc\x7f  "))
	// 非法 UTF-8 字节丢弃
	assert.Equal(t, "ab", Sanitize("a\xffb"))
	assert.Equal(t, "", Sanitize("   "))
}

// 内存里拼一个最小 docx 验证正文抽取
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractTextDOCX(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Trade Date: 31 January 2025</w:t></w:r></w:p>
    <w:p><w:r><w:t>Notional:</w:t><w:tab/><w:t>EUR 200 million</w:t></w:r></w:p>
  </w:body>
</w:document>`
	data := buildDOCX(t, docXML)

	got, err := ExtractText(context.Background(), bytes.NewReader(data), "sheet.docx")
	require.NoError(t, err)
	assert.Equal(t, "Trade Date: 31 January 2025\nNotional:\tEUR 200 million", got)
}

func TestExtractTextDOCXMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ExtractText(context.Background(), bytes.NewReader(buf.Bytes()), "bad.docx")
	assert.ErrorContains(t, err, "document.xml")
}
