package spreadsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/usecase"
)

// Reader carrega a primeira aba de um workbook xlsx como uma sequência de
// registros brutos. A primeira linha é o cabeçalho; células numéricas são
// lidas com o valor serial cru, para preservar datas de planilha.
type Reader struct {
	columns []string
	rows    []usecase.RawRecord
}

func NewReader(path string, log *zap.Logger) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer f.Close()

	return load(f, log)
}

// NewReaderFromFile monta o reader a partir de um workbook já aberto (upload
// HTTP, por exemplo).
func NewReaderFromFile(f *excelize.File, log *zap.Logger) (*Reader, error) {
	return load(f, log)
}

func load(f *excelize.File, log *zap.Logger) (*Reader, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("planilha sem abas")
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("erro ao ler linhas: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("planilha vazia")
	}

	columns := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		columns = append(columns, strings.TrimSpace(h))
	}

	rows := make([]usecase.RawRecord, 0, len(raw)-1)
	for rowIdx, line := range raw[1:] {
		rec := make(usecase.RawRecord, len(columns))
		for i, col := range columns {
			if col == "" {
				continue
			}
			if i < len(line) {
				rec[col] = toCell(f, sheet, i+1, rowIdx+2, line[i])
			} else {
				rec[col] = usecase.BlankCell()
			}
		}
		rows = append(rows, rec)
	}

	log.Info("planilha carregada",
		zap.String("sheet", sheet),
		zap.Int("columns", len(columns)),
		zap.Int("rows", len(rows)))

	return &Reader{columns: columns, rows: rows}, nil
}

// toCell converte o valor cru da célula no escalar tipado do pipeline.
// Só o tipo da célula no workbook decide entre texto e número: um CPF
// gravado como texto ("00123456797") parsearia como float e perderia os
// zeros à esquerda se a decisão fosse pelo conteúdo.
func toCell(f *excelize.File, sheet string, col, row int, value string) usecase.Cell {
	if strings.TrimSpace(value) == "" {
		return usecase.BlankCell()
	}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err == nil {
		cellType, err := f.GetCellType(sheet, name)
		if err == nil && (cellType == excelize.CellTypeSharedString || cellType == excelize.CellTypeInlineString) {
			return usecase.TextCell(value)
		}
	}

	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return usecase.NumberCell(n)
	}
	return usecase.TextCell(value)
}

func (r *Reader) Columns() []string         { return r.columns }
func (r *Reader) Rows() []usecase.RawRecord { return r.rows }
