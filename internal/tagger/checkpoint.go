package tagger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CursorStore persists the pagination cursor between runs.
type CursorStore interface {
	Load(ctx context.Context) (uint64, bool, error)
	Save(ctx context.Context, cursor uint64) error
}

// Checkpoint is the on-disk cursor record.
type Checkpoint struct {
	ChainID       string `json:"chain_id"`
	LastTimestamp uint64 `json:"last_timestamp"`
	UpdatedAt     string `json:"updated_at"`
}

// FileCursorStore keeps the cursor in a local JSON file. A file written for
// one chain is never read or overwritten for another, and a saved cursor
// never moves backwards.
type FileCursorStore struct {
	Path    string
	ChainID string
}

func (s *FileCursorStore) Load(ctx context.Context) (uint64, bool, error) {
	if s == nil || s.Path == "" {
		return 0, false, nil
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("stat checkpoint: %w", err)
	}
	if stat.IsDir() {
		return 0, false, fmt.Errorf("checkpoint path is a directory")
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return 0, false, fmt.Errorf("read checkpoint: %w", err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return 0, false, fmt.Errorf("parse checkpoint: %w", err)
	}
	if cp.ChainID != "" && s.ChainID != "" && cp.ChainID != s.ChainID {
		return 0, false, fmt.Errorf("checkpoint belongs to chain %s, not %s", cp.ChainID, s.ChainID)
	}

	return cp.LastTimestamp, true, nil
}

func (s *FileCursorStore) Save(ctx context.Context, cursor uint64) error {
	if s == nil || s.Path == "" {
		return nil
	}

	existing, ok, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if ok && existing > cursor {
		cursor = existing
	}

	dir := filepath.Dir(s.Path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create checkpoint dir: %w", err)
		}
	}

	cp := Checkpoint{
		ChainID:       s.ChainID,
		LastTimestamp: cursor,
		UpdatedAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}

	tmpPath := s.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("rename checkpoint: %w", err)
	}

	return nil
}
