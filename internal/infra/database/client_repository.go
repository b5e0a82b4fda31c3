package database

import (
	"context"

	"github.com/xavierca1/ligue-importer/internal/entity"
)

// UpsertClient insere ou atualiza o cliente pela chave natural cpf_cnpj.
// A identidade nunca muda; os atributos mutáveis são sobrescritos no
// conflito. Devolve o id e se a linha era nova (xmax = 0).
func (t *Tx) UpsertClient(ctx context.Context, c *entity.Client) (int64, bool, error) {
	query := `
		INSERT INTO tbl_clientes (nome_razao_social, nome_fantasia, cpf_cnpj, data_nascimento, data_cadastro)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cpf_cnpj) DO UPDATE
		SET nome_razao_social = EXCLUDED.nome_razao_social,
		    nome_fantasia = EXCLUDED.nome_fantasia,
		    data_nascimento = EXCLUDED.data_nascimento,
		    data_cadastro = EXCLUDED.data_cadastro
		RETURNING id, (xmax = 0) AS is_new
	`

	var id int64
	var isNew bool

	err := t.tx.QueryRowContext(ctx, query,
		c.NomeRazaoSocial,
		nullIfEmpty(c.NomeFantasia),
		c.CPFCNPJ,
		c.DataNascimento,
		c.DataCadastro,
	).Scan(&id, &isNew)

	if err != nil {
		t.logPgError("upsert_client", err)
		return 0, false, err
	}

	return id, isNew, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
