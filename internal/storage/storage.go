// Package storage provides the key-value collaborator the progress store
// persists through. Values are JSON documents stored under a single key.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"wordgym/internal/config"
	"wordgym/internal/database"
)

var (
	// ErrNotFound is returned by Get when the key is absent
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable is returned by stores that cannot persist anything
	ErrUnavailable = errors.New("storage unavailable")
)

// probeKey is written and removed by availability probes
const probeKey = "__storage_test__"

// KeyValue is a minimal durable key-value store
type KeyValue interface {
	// Get returns the stored bytes or ErrNotFound
	Get(key string) ([]byte, error)
	// Set stores value under key, replacing any previous value
	Set(key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Available performs a harmless write and delete and reports whether both succeeded
	Available() bool
}

// GetJSON decodes the value at key into v. It reports false when the key is absent.
func GetJSON(kv KeyValue, key string, v any) (bool, error) {
	data, err := kv.Get(key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it at key
func SetJSON(kv KeyValue, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return kv.Set(key, data)
}

func probe(kv KeyValue) bool {
	if err := kv.Set(probeKey, []byte(`"`+probeKey+`"`)); err != nil {
		return false
	}
	return kv.Remove(probeKey) == nil
}

// Open builds the store selected by cfg.StorageType. The returned closer
// releases any underlying connection.
func Open(cfg *config.Config, logger zerolog.Logger) (KeyValue, io.Closer, error) {
	switch strings.ToLower(cfg.StorageType) {
	case "memory":
		return NewMemoryStore(), nopCloser{}, nil
	case "file":
		fs, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nopCloser{}, nil
	}

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug().Str("type", cfg.StorageType).Msg("database storage ready")
	return NewSQLStore(db), db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
