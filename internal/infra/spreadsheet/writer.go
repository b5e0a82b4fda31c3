package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/usecase"
)

const reportSheet = "Relatório"

// ReportWriter materializa os relatórios de sucesso e erro como workbooks
// xlsx. Conjuntos vazios não geram arquivo e não falham a execução.
type ReportWriter struct {
	SuccessPath string
	ErrorPath   string
	Log         *zap.Logger
}

func NewReportWriter(successPath, errorPath string, log *zap.Logger) *ReportWriter {
	return &ReportWriter{
		SuccessPath: successPath,
		ErrorPath:   errorPath,
		Log:         log,
	}
}

// WriteSuccessReport escreve as linhas aceitas, com a coluna de motivo vazia
// e uma linha de título à frente do cabeçalho.
func (w *ReportWriter) WriteSuccessReport(columns []string, rows []usecase.ReportRow) error {
	if len(rows) == 0 {
		w.Log.Info("nenhuma linha aceita, relatório de sucesso não gerado")
		return nil
	}
	if err := w.write(w.SuccessPath, "Registros Válidos", columns, rows); err != nil {
		return err
	}
	w.Log.Info("relatório de sucesso gerado",
		zap.String("path", w.SuccessPath),
		zap.Int("rows", len(rows)))
	return nil
}

// WriteErrorReport escreve só as linhas rejeitadas, com os motivos juntados
// na última coluna.
func (w *ReportWriter) WriteErrorReport(columns []string, rows []usecase.ReportRow) error {
	if len(rows) == 0 {
		w.Log.Info("nenhuma linha rejeitada, relatório de erros não gerado")
		return nil
	}
	if err := w.write(w.ErrorPath, "", columns, rows); err != nil {
		return err
	}
	w.Log.Info("relatório de erros gerado",
		zap.String("path", w.ErrorPath),
		zap.Int("rows", len(rows)))
	return nil
}

func (w *ReportWriter) write(path, title string, columns []string, rows []usecase.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("erro ao criar aba: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("erro ao criar estilo: %w", err)
	}

	rowNum := 1
	if title != "" {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellValue(reportSheet, cell, title); err != nil {
			return fmt.Errorf("erro ao escrever título: %w", err)
		}
		rowNum++
	}

	for col, header := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("erro ao converter coordenada: %w", err)
		}
		if err := f.SetCellValue(reportSheet, cell, header); err != nil {
			return fmt.Errorf("erro ao escrever cabeçalho: %w", err)
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("erro ao aplicar estilo: %w", err)
		}
	}
	rowNum++

	for _, row := range rows {
		values := make([]any, 0, len(columns))
		for _, col := range columns {
			if col == usecase.ColMotivoErro {
				values = append(values, row.Motivo)
				continue
			}
			values = append(values, row.Record[col].String())
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return fmt.Errorf("erro ao converter coordenada: %w", err)
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("erro ao escrever linha: %w", err)
		}
		rowNum++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}
	return nil
}
