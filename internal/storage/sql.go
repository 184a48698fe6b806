package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"wordgym/internal/database"
)

// SQLStore keeps values in the kv_store table
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store on a migrated database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT kv_value FROM kv_store WHERE kv_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	if _, err := s.db.Exec(s.db.Dialect.UpsertKVQuery(), key, string(value)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv_store WHERE kv_key = ?", key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Available() bool {
	return probe(s)
}
