package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-importer/internal/usecase"
)

// Store implementa a interface de persistência do import sobre database/sql.
// Cada Begin abre a unidade de trabalho de exatamente uma linha.
type Store struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewStore(db *sql.DB, log *zap.Logger) *Store {
	return &Store{DB: db, Log: log}
}

func (s *Store) Begin(ctx context.Context) (usecase.ImportTx, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, log: s.Log}, nil
}

// Tx agrupa as operações idempotentes de uma linha dentro da transação.
type Tx struct {
	tx  *sql.Tx
	log *zap.Logger
}

func (t *Tx) Commit() error {
	return t.tx.Commit()
}

func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.log.Error("erro no rollback", zap.Error(err))
		return err
	}
	return nil
}

// logPgError expõe o código do Postgres quando disponível, para diagnóstico
// de violações de constraint e afins.
func (t *Tx) logPgError(op string, err error) {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) {
		t.log.Error("erro do banco",
			zap.String("op", op),
			zap.String("code", string(pgErr.Code)),
			zap.String("constraint", pgErr.Constraint),
			zap.Error(err))
		return
	}
	t.log.Error("erro do banco", zap.String("op", op), zap.Error(err))
}
