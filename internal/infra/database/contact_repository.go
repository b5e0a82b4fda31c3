package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/ligue-importer/internal/entity"
)

// InsertContactIfAbsent insere o contato do cliente; duplicados (mesmo
// cliente, tipo e valor) são ignorados em silêncio. Devolve se houve insert.
func (t *Tx) InsertContactIfAbsent(ctx context.Context, clienteID int64, tipo entity.ContactType, contato string) (bool, error) {
	query := `
		INSERT INTO tbl_cliente_contatos (cliente_id, tipo_contato_id, contato)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
		RETURNING id
	`

	var id int64
	err := t.tx.QueryRowContext(ctx, query, clienteID, int(tipo), contato).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflito: o contato já existia.
		return false, nil
	}
	if err != nil {
		t.logPgError("insert_contact", err)
		return false, err
	}

	return true, nil
}
