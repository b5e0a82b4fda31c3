package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/entity"
	"github.com/xavierca1/ligue-importer/internal/usecase"
)

// MockImportStore
type MockImportStore struct {
	mock.Mock
}

func (m *MockImportStore) Begin(ctx context.Context) (usecase.ImportTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(usecase.ImportTx), args.Error(1)
}

// MockImportTx
type MockImportTx struct {
	mock.Mock
}

func (m *MockImportTx) UpsertClient(ctx context.Context, c *entity.Client) (int64, bool, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockImportTx) InsertContactIfAbsent(ctx context.Context, clienteID int64, tipo entity.ContactType, contato string) (bool, error) {
	args := m.Called(ctx, clienteID, tipo, contato)
	return args.Bool(0), args.Error(1)
}

func (m *MockImportTx) GetOrCreatePlan(ctx context.Context, descricao string, valor decimal.Decimal) (int64, error) {
	args := m.Called(ctx, descricao, valor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImportTx) GetStatusID(ctx context.Context, status string) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockImportTx) InsertContractIfAbsent(ctx context.Context, ct *entity.Contract) (bool, error) {
	args := m.Called(ctx, ct)
	return args.Bool(0), args.Error(1)
}

func (m *MockImportTx) Commit() error {
	return m.Called().Error(0)
}

func (m *MockImportTx) Rollback() error {
	return m.Called().Error(0)
}

func validImportRecord() usecase.RawRecord {
	return usecase.RawRecord{
		usecase.ColCPFCNPJ:         usecase.TextCell("529.982.247-25"),
		usecase.ColNomeRazaoSocial: usecase.TextCell("Maria da Silva"),
		usecase.ColNomeFantasia:    usecase.BlankCell(),
		usecase.ColDataNascimento:  usecase.TextCell("01/01/2000"),
		usecase.ColDataCadastro:    usecase.TextCell("01/01/2022"),
		usecase.ColCelulares:       usecase.TextCell("11987654321"),
		usecase.ColTelefones:       usecase.TextCell("1133334444"),
		usecase.ColEmails:          usecase.TextCell("test@example.com"),
		usecase.ColPlano:           usecase.TextCell("Fibra 500MB"),
		usecase.ColPlanoValor:      usecase.TextCell("100.50"),
		usecase.ColVencimento:      usecase.TextCell("15"),
		usecase.ColIsento:          usecase.TextCell("não"),
		usecase.ColEndereco:        usecase.TextCell("Rua das Flores"),
		usecase.ColNumero:          usecase.TextCell("100"),
		usecase.ColBairro:          usecase.TextCell("Centro"),
		usecase.ColCidade:          usecase.TextCell("São Paulo"),
		usecase.ColComplemento:     usecase.BlankCell(),
		usecase.ColCEP:             usecase.TextCell("12345-678"),
		usecase.ColUF:              usecase.TextCell("SP"),
		usecase.ColStatus:          usecase.TextCell("Ativo"),
	}
}

func newRowUseCase(store usecase.ImportStore) *usecase.ImportRowUseCase {
	log := zap.NewNop()
	return usecase.NewImportRowUseCase(store, usecase.NewRowValidator(log), log)
}

func TestImportRow_HappyPath(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.MatchedBy(func(c *entity.Client) bool {
		return c.CPFCNPJ == "52998224725" && c.NomeRazaoSocial == "Maria da Silva"
	})).Return(int64(7), true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, int64(7), entity.ContactCelular, "+5511987654321").Return(true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, int64(7), entity.ContactTelefone, "+551133334444").Return(true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, int64(7), entity.ContactEmail, "test@example.com").Return(true, nil)
	tx.On("GetOrCreatePlan", mock.Anything, "Fibra 500MB", mock.Anything).Return(int64(3), nil)
	tx.On("GetStatusID", mock.Anything, "Ativo").Return(int64(1), nil)
	tx.On("InsertContractIfAbsent", mock.Anything, mock.MatchedBy(func(ct *entity.Contract) bool {
		return ct.ClienteID == 7 && ct.PlanoID == 3 && ct.StatusID == 1 &&
			ct.DiaVencimento == 15 && ct.Endereco.CEP == "12345678"
	})).Return(true, nil)
	tx.On("Commit").Return(nil)

	result, err := newRowUseCase(store).Execute(context.Background(), 1, validImportRecord())

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.True(t, result.ClienteProcessado)
	assert.Equal(t, 3, result.ContatosInseridos)
	assert.True(t, result.ContratoImportado)
	tx.AssertExpectations(t)
}

func TestImportRow_RejectedRowNeverTouchesStore(t *testing.T) {
	store := new(MockImportStore)

	rec := validImportRecord()
	rec[usecase.ColCPFCNPJ] = usecase.TextCell("111.111.111-11")

	result, err := newRowUseCase(store).Execute(context.Background(), 1, rec)

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Contains(t, result.Reasons[0], "todos os dígitos iguais")
	store.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestImportRow_ContactFailureIsBestEffort(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.Anything).Return(int64(7), false, nil)
	// O celular falha; a linha segue até o contrato mesmo assim.
	tx.On("InsertContactIfAbsent", mock.Anything, int64(7), entity.ContactCelular, mock.Anything).
		Return(false, errors.New("constraint violation"))
	tx.On("InsertContactIfAbsent", mock.Anything, int64(7), entity.ContactTelefone, mock.Anything).Return(true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, int64(7), entity.ContactEmail, mock.Anything).Return(true, nil)
	tx.On("GetOrCreatePlan", mock.Anything, mock.Anything, mock.Anything).Return(int64(3), nil)
	tx.On("GetStatusID", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("InsertContractIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
	tx.On("Commit").Return(nil)

	result, err := newRowUseCase(store).Execute(context.Background(), 1, validImportRecord())

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 2, result.ContatosInseridos)
	assert.True(t, result.ContratoImportado)
	tx.AssertExpectations(t)
}

func TestImportRow_DuplicateContractIsAcceptedNoOp(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.Anything).Return(int64(7), false, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	tx.On("GetOrCreatePlan", mock.Anything, mock.Anything, mock.Anything).Return(int64(3), nil)
	tx.On("GetStatusID", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("InsertContractIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	tx.On("Commit").Return(nil)

	result, err := newRowUseCase(store).Execute(context.Background(), 1, validImportRecord())

	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.False(t, result.ContratoImportado) // sem efeito, sem erro
	tx.AssertExpectations(t)
}

func TestImportRow_ClientFailureRollsBack(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.Anything).Return(int64(0), false, errors.New("connection reset"))
	tx.On("Rollback").Return(nil)

	result, err := newRowUseCase(store).Execute(context.Background(), 1, validImportRecord())

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Contains(t, result.Reasons[0], "Erro ao inserir cliente")
	tx.AssertNotCalled(t, "Commit")
	tx.AssertExpectations(t)
}

func TestImportRow_MissingStreetRejectsWithTemplate(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.Anything).Return(int64(7), true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	tx.On("GetOrCreatePlan", mock.Anything, mock.Anything, mock.Anything).Return(int64(3), nil)
	tx.On("GetStatusID", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("Rollback").Return(nil)

	rec := validImportRecord()
	rec[usecase.ColEndereco] = usecase.BlankCell()

	result, err := newRowUseCase(store).Execute(context.Background(), 1, rec)

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, []string{"Coloque Endereço na Rua Desconhecida (ou um endereço válido)."}, result.Reasons)
	tx.AssertNotCalled(t, "InsertContractIfAbsent", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit")
}

func TestImportRow_MissingNameRejectsBeforeTransaction(t *testing.T) {
	store := new(MockImportStore)

	rec := validImportRecord()
	rec[usecase.ColNomeRazaoSocial] = usecase.BlankCell()

	result, err := newRowUseCase(store).Execute(context.Background(), 1, rec)

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, []string{"Defina Nome/Razão Social como um valor válido."}, result.Reasons)
	store.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestImportRow_CommitFailureRejectsRow(t *testing.T) {
	store := new(MockImportStore)
	tx := new(MockImportTx)
	store.On("Begin", mock.Anything).Return(tx, nil)

	tx.On("UpsertClient", mock.Anything, mock.Anything).Return(int64(7), true, nil)
	tx.On("InsertContactIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	tx.On("GetOrCreatePlan", mock.Anything, mock.Anything, mock.Anything).Return(int64(3), nil)
	tx.On("GetStatusID", mock.Anything, mock.Anything).Return(int64(1), nil)
	tx.On("InsertContractIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
	tx.On("Commit").Return(errors.New("serialization failure"))
	tx.On("Rollback").Return(nil)

	result, err := newRowUseCase(store).Execute(context.Background(), 1, validImportRecord())

	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Contains(t, result.Reasons[0], "Erro ao confirmar transação")
}

func TestImportRow_BeginFailureIsFatal(t *testing.T) {
	store := new(MockImportStore)
	store.On("Begin", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := newRowUseCase(store).Execute(context.Background(), 1, validImportRecord())

	require.Error(t, err)
}
