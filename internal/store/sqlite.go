package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQL stores documents as JSONB rows in a table with id, data and
// updated_at columns. The table is created by the migrations package.
type SQL[T any] struct {
	db    *sql.DB
	table string
}

func NewSQL[T any](db *sql.DB, table string) *SQL[T] {
	return &SQL[T]{db: db, table: table}
}

func (s *SQL[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	var data string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json(data) FROM %s WHERE id = ?`, s.table), id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return v, ErrNotFound
	}
	if err != nil {
		return v, fmt.Errorf("loading %s %s: %w", s.table, id, err)
	}
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return v, fmt.Errorf("decoding %s %s: %w", s.table, id, err)
	}
	return v, nil
}

func (s *SQL[T]) Put(ctx context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (id, data, updated_at) VALUES (?, jsonb(?), ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`, s.table),
		id, string(data), nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("saving %s %s: %w", s.table, id, err)
	}
	return nil
}

func (s *SQL[T]) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table), id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
