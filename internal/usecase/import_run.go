package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/infra/queue"
)

// ImportRunUseCase orquestra uma execução completa: checagem de colunas,
// processamento estritamente sequencial das linhas (uma transação por
// linha), relatórios de sucesso/erro e notificações opcionais no fim.
type ImportRunUseCase struct {
	RowImporter *ImportRowUseCase
	Reports     ReportWriter
	Queue       QueueProducerInterface // opcional
	Mail        EmailService           // opcional
	MailTo      string
	// ErrorReportPath é anexado no email do operador, quando configurado.
	ErrorReportPath string
	Log             *zap.Logger
}

func NewImportRunUseCase(rowImporter *ImportRowUseCase, reports ReportWriter, log *zap.Logger) *ImportRunUseCase {
	return &ImportRunUseCase{
		RowImporter: rowImporter,
		Reports:     reports,
		Log:         log,
	}
}

// Summary são os totais da execução, no espírito das métricas finais que o
// operador acompanha.
type Summary struct {
	RunID               string        `json:"run_id"`
	TotalRegistros      int           `json:"total_registros"`
	TotalClientes       int           `json:"total_clientes"`
	TotalContatos       int           `json:"total_contatos"`
	ContratosImportados int           `json:"contratos_importados"`
	TotalErros          int           `json:"total_erros"`
	Duration            time.Duration `json:"-"`
}

// Execute roda a importação inteira. Só devolve erro para falhas fatais:
// colunas obrigatórias ausentes ou perda da conexão com o banco. Falhas por
// linha nunca encerram a execução.
func (uc *ImportRunUseCase) Execute(ctx context.Context, source RecordSource) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.New().String()}
	log := uc.Log.With(zap.String("run_id", summary.RunID))

	if missing := missingColumns(source.Columns()); len(missing) > 0 {
		log.Error("colunas ausentes na planilha", zap.Strings("missing", missing))
		return nil, NewMissingColumnsError(missing)
	}

	sink := NewReportSink()

	for i, rec := range source.Rows() {
		rowNum := i + 1
		result, err := uc.RowImporter.Execute(ctx, rowNum, rec)
		if err != nil {
			// Transação não abriu: conectividade. Aborta a execução.
			return nil, &TechnicalError{Code: "DB_UNAVAILABLE", Message: err.Error()}
		}

		summary.TotalRegistros++
		if result.ClienteProcessado {
			summary.TotalClientes++
		}
		summary.TotalContatos += result.ContatosInseridos
		if result.ContratoImportado {
			summary.ContratosImportados++
		}

		if result.Accepted {
			sink.Accept(rec)
		} else {
			summary.TotalErros++
			sink.Reject(rec, result.Reasons)
		}
	}

	// Cópia antes do append: o slice do source não é nosso para crescer.
	columns := make([]string, 0, len(source.Columns())+1)
	columns = append(columns, source.Columns()...)
	columns = append(columns, ColMotivoErro)
	if err := uc.Reports.WriteSuccessReport(columns, sink.Accepted()); err != nil {
		return nil, &TechnicalError{Code: "REPORT_WRITE", Message: err.Error()}
	}
	if err := uc.Reports.WriteErrorReport(columns, sink.Rejected()); err != nil {
		return nil, &TechnicalError{Code: "REPORT_WRITE", Message: err.Error()}
	}

	summary.Duration = time.Since(start)
	log.Info("importação concluída",
		zap.Int("total_registros", summary.TotalRegistros),
		zap.Int("total_clientes", summary.TotalClientes),
		zap.Int("total_contatos", summary.TotalContatos),
		zap.Int("contratos_importados", summary.ContratosImportados),
		zap.Int("total_erros", summary.TotalErros),
		zap.Duration("duration", summary.Duration))

	uc.notify(ctx, summary, log)

	return summary, nil
}

// notify dispara as notificações de fim de execução. São best-effort: falha
// aqui não muda o resultado da importação.
func (uc *ImportRunUseCase) notify(ctx context.Context, summary *Summary, log *zap.Logger) {
	if uc.Queue != nil {
		payload := queue.ImportCompletedPayload{
			RunID:               summary.RunID,
			TotalRegistros:      summary.TotalRegistros,
			TotalClientes:       summary.TotalClientes,
			TotalContatos:       summary.TotalContatos,
			ContratosImportados: summary.ContratosImportados,
			TotalErros:          summary.TotalErros,
		}
		if err := uc.Queue.PublishImportCompleted(ctx, payload); err != nil {
			log.Error("falha ao publicar evento de importação", zap.Error(err))
		}
	}

	if uc.Mail != nil && uc.MailTo != "" && summary.TotalErros > 0 {
		if err := uc.Mail.SendErrorReport(uc.MailTo, summary.RunID, summary.TotalErros, uc.ErrorReportPath); err != nil {
			log.Error("falha ao enviar relatório por email", zap.Error(err))
		}
	}
}

func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}

	var missing []string
	for _, col := range ExpectedColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
