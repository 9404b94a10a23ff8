package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeanmvides21/academic-back/internal/repository/base"
)

// TxManager открывает транзакционные границы для сервисного слоя
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinUserLock выполняет fn внутри транзакции, удерживая advisory-лок
// по пользователю. Последовательность проверка-затем-запись для одного
// пользователя сериализуется: два конкурентных создания слота не могут
// оба пройти валидацию по устаревшему состоянию.
func (m *TxManager) WithinUserLock(ctx context.Context, userID int64, fn func(ctx context.Context) error) error {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Лок отпускается автоматически на commit/rollback
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, userID); err != nil {
		return fmt.Errorf("acquire user lock: %w", err)
	}

	if err := fn(base.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
