package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-importer/internal/entity"
)

// InsertContractIfAbsent insere o contrato; um duplicado pela chave de
// negócio completa é ignorado em silêncio (sucesso sem efeito). Devolve se
// houve insert.
func (t *Tx) InsertContractIfAbsent(ctx context.Context, ct *entity.Contract) (bool, error) {
	query := `
		INSERT INTO tbl_cliente_contratos (
			cliente_id, plano_id, dia_vencimento, isento,
			endereco_logradouro, endereco_numero, endereco_bairro,
			endereco_cidade, endereco_complemento, endereco_cep,
			endereco_uf, status_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT DO NOTHING
		RETURNING id
	`

	var id int64
	err := t.tx.QueryRowContext(ctx, query,
		ct.ClienteID,
		ct.PlanoID,
		ct.DiaVencimento,
		ct.Isento,
		ct.Endereco.Logradouro,
		nullIfEmpty(ct.Endereco.Numero),
		nullIfEmpty(ct.Endereco.Bairro),
		nullIfEmpty(ct.Endereco.Cidade),
		nullIfEmpty(ct.Endereco.Complemento),
		ct.Endereco.CEP,
		ct.Endereco.UF,
		ct.StatusID,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		t.logPgError("insert_contract", err)
		return false, err
	}

	return true, nil
}
