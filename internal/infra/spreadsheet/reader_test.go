package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/usecase"
)

func buildWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"CPF/CNPJ", "Nome/Razão Social", "Data Nasc."}))

	// CPF gravado como texto, com zeros à esquerda.
	require.NoError(t, f.SetCellStr(sheet, "A2", "00123456797"))
	require.NoError(t, f.SetCellStr(sheet, "B2", "Maria da Silva"))
	require.NoError(t, f.SetCellValue(sheet, "C2", 44562))

	// CPF gravado como número.
	require.NoError(t, f.SetCellValue(sheet, "A3", 52998224725))
	require.NoError(t, f.SetCellStr(sheet, "B3", "João Souza"))

	return f
}

func TestReader_TextCellsStayText(t *testing.T) {
	r, err := NewReaderFromFile(buildWorkbook(t), zap.NewNop())
	require.NoError(t, err)

	require.Len(t, r.Rows(), 2)
	assert.Equal(t, []string{"CPF/CNPJ", "Nome/Razão Social", "Data Nasc."}, r.Columns())

	// Célula de texto preserva os zeros à esquerda e passa no checksum.
	cell := r.Rows()[0]["CPF/CNPJ"]
	assert.Equal(t, usecase.CellText, cell.Kind)
	assert.Equal(t, "00123456797", cell.String())

	got, reason := usecase.CleanCPFCNPJ(cell)
	assert.Empty(t, reason)
	assert.Equal(t, "00123456797", got)

	// Célula numérica continua numérica (seriais de data dependem disso).
	date := r.Rows()[0]["Data Nasc."]
	assert.Equal(t, usecase.CellNumber, date.Kind)
	assert.Equal(t, float64(44562), date.Number)

	numeric := r.Rows()[1]["CPF/CNPJ"]
	assert.Equal(t, usecase.CellNumber, numeric.Kind)
	got, reason = usecase.CleanCPFCNPJ(numeric)
	assert.Empty(t, reason)
	assert.Equal(t, "52998224725", got)
}

func TestReader_MissingTrailingCellsAreBlank(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"CPF/CNPJ", "Nome/Razão Social"}))
	require.NoError(t, f.SetCellStr(sheet, "A2", "00123456797"))

	r, err := NewReaderFromFile(f, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, r.Rows(), 1)
	assert.True(t, r.Rows()[0]["Nome/Razão Social"].IsBlank())
}
