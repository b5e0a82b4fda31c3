package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/infra/queue"
	"github.com/xavierca1/ligue-importer/internal/usecase"
)

type fakeSource struct {
	columns []string
	rows    []usecase.RawRecord
}

func (f *fakeSource) Columns() []string         { return f.columns }
func (f *fakeSource) Rows() []usecase.RawRecord { return f.rows }

// MockReportWriter
type MockReportWriter struct {
	mock.Mock
}

func (m *MockReportWriter) WriteSuccessReport(columns []string, rows []usecase.ReportRow) error {
	return m.Called(columns, rows).Error(0)
}

func (m *MockReportWriter) WriteErrorReport(columns []string, rows []usecase.ReportRow) error {
	return m.Called(columns, rows).Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishImportCompleted(ctx context.Context, payload queue.ImportCompletedPayload) error {
	return m.Called(ctx, payload).Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendErrorReport(to, runID string, totalErros int, reportPath string) error {
	return m.Called(to, runID, totalErros, reportPath).Error(0)
}

func newRunUseCase(store usecase.ImportStore, reports usecase.ReportWriter) *usecase.ImportRunUseCase {
	log := zap.NewNop()
	rowUC := usecase.NewImportRowUseCase(store, usecase.NewRowValidator(log), log)
	return usecase.NewImportRunUseCase(rowUC, reports, log)
}

func TestImportRun_MissingColumnsFailsFast(t *testing.T) {
	store := new(MockImportStore)
	reports := new(MockReportWriter)

	source := &fakeSource{
		columns: []string{usecase.ColCPFCNPJ, usecase.ColNomeRazaoSocial},
		rows:    []usecase.RawRecord{validImportRecord()},
	}

	summary, err := newRunUseCase(store, reports).Execute(context.Background(), source)

	require.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	assert.Contains(t, err.Error(), usecase.ColCEP)
	assert.Nil(t, summary)
	// Falha antes de qualquer linha: nada chega no banco nem nos relatórios.
	store.AssertNotCalled(t, "Begin", mock.Anything)
	reports.AssertNotCalled(t, "WriteSuccessReport", mock.Anything, mock.Anything)
}

func TestImportRun_MixedRows(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.Anything).Return(int64(7), true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	tx.On("GetOrCreatePlan", mock.Anything, mock.Anything, mock.Anything).Return(int64(3), nil)
	tx.On("GetStatusID", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("InsertContractIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
	tx.On("Commit").Return(nil)

	bad := validImportRecord()
	bad[usecase.ColCPFCNPJ] = usecase.TextCell("111.111.111-11")

	source := &fakeSource{
		columns: usecase.ExpectedColumns(),
		rows:    []usecase.RawRecord{validImportRecord(), bad},
	}

	reports := new(MockReportWriter)
	wantColumns := append(usecase.ExpectedColumns(), usecase.ColMotivoErro)
	reports.On("WriteSuccessReport", wantColumns, mock.MatchedBy(func(rows []usecase.ReportRow) bool {
		return len(rows) == 1 && rows[0].Motivo == ""
	})).Return(nil)
	reports.On("WriteErrorReport", wantColumns, mock.MatchedBy(func(rows []usecase.ReportRow) bool {
		return len(rows) == 1 && rows[0].Motivo == "CPF inválido (todos os dígitos iguais)."
	})).Return(nil)

	summary, err := newRunUseCase(store, reports).Execute(context.Background(), source)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalRegistros)
	assert.Equal(t, 1, summary.TotalClientes)
	assert.Equal(t, 3, summary.TotalContatos)
	assert.Equal(t, 1, summary.ContratosImportados)
	assert.Equal(t, 1, summary.TotalErros)
	assert.NotEmpty(t, summary.RunID)
	reports.AssertExpectations(t)
}

func TestImportRun_NotifiesQueueAndMail(t *testing.T) {
	store := new(MockImportStore)

	bad := validImportRecord()
	bad[usecase.ColCPFCNPJ] = usecase.BlankCell()

	source := &fakeSource{
		columns: usecase.ExpectedColumns(),
		rows:    []usecase.RawRecord{bad},
	}

	reports := new(MockReportWriter)
	reports.On("WriteSuccessReport", mock.Anything, mock.Anything).Return(nil)
	reports.On("WriteErrorReport", mock.Anything, mock.Anything).Return(nil)

	producer := new(MockQueueProducer)
	producer.On("PublishImportCompleted", mock.Anything, mock.MatchedBy(func(p queue.ImportCompletedPayload) bool {
		return p.TotalRegistros == 1 && p.TotalErros == 1 && p.RunID != ""
	})).Return(nil)

	mailer := new(MockEmailService)
	mailer.On("SendErrorReport", "ops@example.com", mock.Anything, 1, "erros.xlsx").Return(nil)

	uc := newRunUseCase(store, reports)
	uc.Queue = producer
	uc.Mail = mailer
	uc.MailTo = "ops@example.com"
	uc.ErrorReportPath = "erros.xlsx"

	summary, err := uc.Execute(context.Background(), source)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalErros)
	producer.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestImportRun_DoesNotMutateSourceColumns(t *testing.T) {
	store := new(MockImportStore)

	// Slice de colunas com capacidade sobrando: um append ingênuo da coluna
	// de motivo escreveria no array do source.
	backing := make([]string, 21)
	copy(backing, usecase.ExpectedColumns())
	backing[20] = "guard"
	cols := backing[:20:21]

	source := &fakeSource{columns: cols, rows: nil}

	reports := new(MockReportWriter)
	reports.On("WriteSuccessReport", mock.Anything, mock.Anything).Return(nil)
	reports.On("WriteErrorReport", mock.Anything, mock.Anything).Return(nil)

	_, err := newRunUseCase(store, reports).Execute(context.Background(), source)

	require.NoError(t, err)
	assert.Equal(t, "guard", backing[20])
	assert.Equal(t, usecase.ExpectedColumns(), source.Columns())
}

func TestReportSink(t *testing.T) {
	sink := usecase.NewReportSink()

	rec := validImportRecord()
	sink.Accept(rec)
	sink.Reject(rec, []string{"motivo um", "motivo dois"})

	require.Len(t, sink.Accepted(), 1)
	require.Len(t, sink.Rejected(), 1)
	assert.Empty(t, sink.Accepted()[0].Motivo)
	assert.Equal(t, "motivo um; motivo dois", sink.Rejected()[0].Motivo)
}
