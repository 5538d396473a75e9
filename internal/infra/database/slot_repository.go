package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

const createSlotTable = `
	CREATE TABLE IF NOT EXISTS funnel_slots (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// SlotRepository guarda cada slot como uma linha da tabela funnel_slots.
type SlotRepository struct {
	DB     *sql.DB
	Prefix string
}

func NewSlotRepository(db *sql.DB, prefix string) *SlotRepository {
	return &SlotRepository{DB: db, Prefix: prefix}
}

// Migrate cria a tabela se ela ainda não existir.
func (r *SlotRepository) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createSlotTable); err != nil {
		return describeDBError("migrate", err)
	}
	return nil
}

func (r *SlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM funnel_slots WHERE key = $1`

	var value []byte
	err := r.DB.QueryRowContext(ctx, query, r.Prefix+key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrSlotNotFound
	}
	if err != nil {
		return nil, describeDBError("load "+key, err)
	}
	return value, nil
}

func (r *SlotRepository) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO funnel_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`

	if _, err := r.DB.ExecContext(ctx, query, r.Prefix+key, value); err != nil {
		return describeDBError("save "+key, err)
	}
	return nil
}

// describeDBError adiciona o código SQLSTATE quando o driver o expõe.
func describeDBError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Printf("[STORE] erro no banco (%s): %s %s", op, pgErr.Code, pgErr.Message)
		return fmt.Errorf("%s: sqlstate %s: %w", op, pgErr.Code, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		log.Printf("[STORE] erro no banco (%s): %s %s", op, pqErr.Code, pqErr.Message)
		return fmt.Errorf("%s: sqlstate %s: %w", op, pqErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
