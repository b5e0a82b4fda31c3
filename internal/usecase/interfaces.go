package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-importer/internal/entity"
	"github.com/xavierca1/ligue-importer/internal/infra/queue"
)

// RecordSource entrega as linhas brutas da planilha. A checagem de colunas
// obrigatórias acontece no usecase, antes de processar qualquer linha.
type RecordSource interface {
	Columns() []string
	Rows() []RawRecord
}

// ImportStore abre a unidade de trabalho de uma linha. Cada linha roda em
// exatamente uma transação: commit no fim da linha bem-sucedida, rollback em
// qualquer falha fatal da linha.
type ImportStore interface {
	Begin(ctx context.Context) (ImportTx, error)
}

// ImportTx é o conjunto de operações idempotentes que o import emite contra
// o banco. Nunca deleta nada.
type ImportTx interface {
	// UpsertClient insere ou atualiza pelo CPF/CNPJ. Devolve o id e se a
	// linha era nova.
	UpsertClient(ctx context.Context, c *entity.Client) (int64, bool, error)
	// InsertContactIfAbsent ignora duplicados silenciosamente.
	InsertContactIfAbsent(ctx context.Context, clienteID int64, tipo entity.ContactType, contato string) (bool, error)
	// GetOrCreatePlan fixa o valor só na criação; nunca atualiza no conflito.
	GetOrCreatePlan(ctx context.Context, descricao string, valor decimal.Decimal) (int64, error)
	// GetStatusID resolve o rótulo; desconhecido cai no status padrão.
	GetStatusID(ctx context.Context, status string) (int64, error)
	// InsertContractIfAbsent ignora duplicados silenciosamente.
	InsertContractIfAbsent(ctx context.Context, ct *entity.Contract) (bool, error)

	Commit() error
	Rollback() error
}

// ReportWriter materializa os dois relatórios de saída. Conjuntos vazios são
// pulados sem erro.
type ReportWriter interface {
	WriteSuccessReport(columns []string, rows []ReportRow) error
	WriteErrorReport(columns []string, rows []ReportRow) error
}

type QueueProducerInterface interface {
	PublishImportCompleted(ctx context.Context, payload queue.ImportCompletedPayload) error
}

type EmailService interface {
	SendErrorReport(to, runID string, totalErros int, reportPath string) error
}
