package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
)

// GetOrCreatePlan resolve o plano pela descrição, criando-o com o valor
// informado quando não existe. O valor é fixado na criação: um plano já
// existente nunca tem o preço atualizado pelo import.
func (t *Tx) GetOrCreatePlan(ctx context.Context, descricao string, valor decimal.Decimal) (int64, error) {
	var id int64

	err := t.tx.QueryRowContext(ctx,
		`SELECT id FROM tbl_planos WHERE descricao = $1`, descricao,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		t.logPgError("get_plan", err)
		return 0, err
	}

	err = t.tx.QueryRowContext(ctx,
		`INSERT INTO tbl_planos (descricao, valor) VALUES ($1, $2) RETURNING id`,
		descricao, valor,
	).Scan(&id)
	if err != nil {
		t.logPgError("create_plan", err)
		return 0, err
	}

	return id, nil
}
