package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreader/logic/extraction"
	"docreader/types"
	"docreader/vars"
)

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("sheet.pdf", 1024))
	assert.NoError(t, ValidateUpload("SHEET.DOCX", 1024))
	assert.NoError(t, ValidateUpload("notes.txt", 1))

	assert.Error(t, ValidateUpload("macro.xlsm", 1024))
	assert.Error(t, ValidateUpload("noext", 1024))
	assert.Error(t, ValidateUpload("empty.pdf", 0))
	assert.Error(t, ValidateUpload("huge.pdf", vars.MAXFILESIZE+1))
}

func TestExtractFromText(t *testing.T) {
	reg, err := extraction.NewRegistry()
	require.NoError(t, err)
	svc := NewExtractionService(nil, extraction.NewEngine(reg), nil)

	text := "Notional: EUR 200 million\nOffer: estr+45bps"
	result := svc.ExtractFromText(text, "inline")

	assert.Equal(t, "inline", result.Filename)
	assert.Equal(t, int64(len(text)), result.FileSize)
	assert.Equal(t, len(result.Entities), result.EntityCount)
	assert.GreaterOrEqual(t, result.ProcessingTimeMs, int64(0))

	var seen []types.EntityType
	for _, e := range result.Entities {
		seen = append(seen, e.Entity)
	}
	assert.Contains(t, seen, types.Notional)
	assert.Contains(t, seen, types.Offer)
}

func TestToEntityRows(t *testing.T) {
	unit := "EUR"
	rows := toEntityRows("doc-1", []types.Entity{{
		Entity:     types.Notional,
		RawValue:   "EUR 200 million",
		Normalized: types.AmountValue{Value: 200000000, Unit: "EUR"},
		Confidence: 0.92,
		CharStart:  10,
		CharEnd:    25,
		Unit:       &unit,
	}})

	require.Len(t, rows, 1)
	assert.Equal(t, "doc-1", rows[0].DocID)
	assert.Equal(t, "Notional", rows[0].EntityType)
	// normalized 落库存 JSON 串
	assert.True(t, strings.Contains(rows[0].Normalized, `"value":200000000`), rows[0].Normalized)
	assert.True(t, strings.Contains(rows[0].Normalized, `"unit":"EUR"`), rows[0].Normalized)
	require.NotNil(t, rows[0].Unit)
	assert.Equal(t, "EUR", *rows[0].Unit)
}
