package database

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/entity"
)

// GetStatusID resolve o rótulo de status do contrato. Rótulo desconhecido
// cai no status padrão ("Velocidade Reduzida"), nunca falha a linha.
func (t *Tx) GetStatusID(ctx context.Context, status string) (int64, error) {
	var id int64

	err := t.tx.QueryRowContext(ctx,
		`SELECT id FROM tbl_status_contrato WHERE status = $1`, status,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		t.log.Info("status desconhecido, usando padrão",
			zap.String("status", status),
			zap.Int64("default_id", entity.DefaultStatusID))
		return entity.DefaultStatusID, nil
	}
	if err != nil {
		t.logPgError("get_status", err)
		return 0, err
	}

	return id, nil
}
