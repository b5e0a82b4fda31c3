package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/entity"
)

// ImportRowUseCase executa a máquina de estados de uma linha aceita:
// cliente → contatos → plano → status → contrato, tudo dentro de uma única
// transação. Qualquer falha fatal faz rollback do que a linha escreveu e a
// reclassifica como rejeitada; contatos são a exceção documentada
// (best-effort: falha é logada e a linha segue).
type ImportRowUseCase struct {
	Store     ImportStore
	Validator *RowValidator
	Log       *zap.Logger
}

func NewImportRowUseCase(store ImportStore, validator *RowValidator, log *zap.Logger) *ImportRowUseCase {
	return &ImportRowUseCase{
		Store:     store,
		Validator: validator,
		Log:       log,
	}
}

// RowResult resume o destino de uma linha e os incrementos de contadores.
type RowResult struct {
	Accepted          bool
	Reasons           []string
	ClienteProcessado bool
	ContatosInseridos int
	ContratoImportado bool
}

func rejected(reasons ...string) RowResult {
	return RowResult{Accepted: false, Reasons: reasons}
}

// Execute processa uma linha bruta de ponta a ponta. Um erro não-nulo só é
// devolvido quando a própria transação não pôde ser aberta: isso indica
// falha de conectividade e aborta a execução inteira.
func (uc *ImportRowUseCase) Execute(ctx context.Context, rowNum int, rec RawRecord) (RowResult, error) {
	outcome := uc.Validator.Validate(rowNum, rec)
	if !outcome.Accepted {
		return rejected(outcome.Reasons...), nil
	}
	row := outcome.Row

	// Nome/Razão Social não tem sentinela utilizável: sem ele não há cliente.
	if row.NomeRazaoSocial == "" {
		uc.Log.Warn("Nome/Razão Social ausente", zap.Int("row", rowNum))
		return rejected("Defina Nome/Razão Social como um valor válido."), nil
	}

	tx, err := uc.Store.Begin(ctx)
	if err != nil {
		return rejected(fmt.Sprintf("Erro ao iniciar transação: %v", err)), err
	}

	client, err := entity.NewClient(row.NomeRazaoSocial, row.NomeFantasia, row.CPFCNPJ, row.DataNascimento, row.DataCadastro)
	if err != nil {
		tx.Rollback()
		return rejected(fmt.Sprintf("Erro ao inserir cliente: %v", err)), nil
	}

	clienteID, isNew, err := tx.UpsertClient(ctx, client)
	if err != nil {
		uc.Log.Error("erro ao inserir cliente",
			zap.Int("row", rowNum),
			zap.String("cpf_cnpj", row.CPFCNPJ),
			zap.Error(err))
		tx.Rollback()
		return rejected(fmt.Sprintf("Erro ao inserir cliente: %v", err)), nil
	}
	if isNew {
		uc.Log.Info("cliente inserido", zap.Int("row", rowNum), zap.String("cpf_cnpj", row.CPFCNPJ))
	} else {
		uc.Log.Info("cliente atualizado", zap.Int("row", rowNum), zap.String("cpf_cnpj", row.CPFCNPJ))
	}

	result := RowResult{Accepted: true, ClienteProcessado: true}

	// Contatos são best-effort: um erro aqui não derruba a linha.
	contatos := []struct {
		tipo    entity.ContactType
		contato string
	}{
		{entity.ContactCelular, row.Celular},
		{entity.ContactTelefone, row.Telefone},
		{entity.ContactEmail, row.Email},
	}
	for _, c := range contatos {
		if c.contato == "" {
			continue
		}
		inserted, err := tx.InsertContactIfAbsent(ctx, clienteID, c.tipo, c.contato)
		if err != nil {
			uc.Log.Error("erro ao inserir contato",
				zap.Int("row", rowNum),
				zap.String("tipo", c.tipo.Label()),
				zap.String("cpf_cnpj", row.CPFCNPJ),
				zap.Error(err))
			continue
		}
		if inserted {
			result.ContatosInseridos++
		} else {
			uc.Log.Info("contato duplicado ignorado",
				zap.Int("row", rowNum),
				zap.String("tipo", c.tipo.Label()),
				zap.String("cpf_cnpj", row.CPFCNPJ))
		}
	}

	planoID, err := tx.GetOrCreatePlan(ctx, row.PlanoDescricao, row.PlanoValor)
	if err != nil {
		tx.Rollback()
		return rejected(fmt.Sprintf("Erro ao inserir contrato: %v", err)), nil
	}

	statusID, err := tx.GetStatusID(ctx, row.Status)
	if err != nil {
		tx.Rollback()
		return rejected(fmt.Sprintf("Erro ao inserir contrato: %v", err)), nil
	}

	// Campos obrigatórios do contrato, cada um com sua mensagem própria.
	if row.DiaVencimento < 1 || row.DiaVencimento > 31 {
		tx.Rollback()
		return rejected("Defina Vencimento como um número válido entre 1 e 31."), nil
	}
	if row.Endereco.CEP == "" {
		tx.Rollback()
		return rejected("Defina CEP como 00000000 (ou um CEP válido)."), nil
	}
	if row.Endereco.Logradouro == "" {
		uc.Log.Warn("endereço ausente", zap.Int("row", rowNum), zap.String("cpf_cnpj", row.CPFCNPJ))
		tx.Rollback()
		return rejected("Coloque Endereço na Rua Desconhecida (ou um endereço válido)."), nil
	}

	contract := &entity.Contract{
		ClienteID:     clienteID,
		PlanoID:       planoID,
		DiaVencimento: row.DiaVencimento,
		Isento:        row.Isento,
		Endereco:      row.Endereco,
		StatusID:      statusID,
	}

	inserted, err := tx.InsertContractIfAbsent(ctx, contract)
	if err != nil {
		uc.Log.Error("erro ao inserir contrato",
			zap.Int("row", rowNum),
			zap.String("cpf_cnpj", row.CPFCNPJ),
			zap.Error(err))
		tx.Rollback()
		return rejected(fmt.Sprintf("Erro ao inserir contrato: %v", err)), nil
	}
	if inserted {
		result.ContratoImportado = true
	} else {
		// Duplicado ignorado é sucesso sem efeito, não erro.
		uc.Log.Info("contrato duplicado ignorado",
			zap.Int("row", rowNum),
			zap.String("cpf_cnpj", row.CPFCNPJ))
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return rejected(fmt.Sprintf("Erro ao confirmar transação: %v", err)), nil
	}

	return result, nil
}
