package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"wordgym/internal/models"
	"wordgym/internal/validation"
)

// BackupVersion is the format version of exported backups
const BackupVersion = "1.0"

// Backup is the export envelope around a progress record
type Backup struct {
	Version    string                   `json:"version"`
	ExportedAt time.Time                `json:"exported_at"`
	Key        string                   `json:"key"`
	Progress   models.PersistedProgress `json:"progress"`
}

// Export writes the current record as an indented JSON backup
func (s *Store) Export(w io.Writer) error {
	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: s.now().UTC(),
		Key:        s.key,
		Progress:   s.Snapshot(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// Import replaces the current record with the one in a backup. The record is
// validated first; an invalid backup leaves the store unchanged.
func (s *Store) Import(r io.Reader) error {
	var backup Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	p := backup.Progress
	normalize(&p)
	if err := validation.ValidateProgress(p); err != nil {
		return fmt.Errorf("invalid progress in backup: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = p
	s.persist()
	return nil
}
