package tagger

import (
	"context"
	"fmt"

	"marketTags/internal/storage/postgres"
)

// DBCursorStore keeps the cursor for one chain in the tagger_state table.
type DBCursorStore struct {
	Store   *postgres.Store
	ChainID string
}

func (s *DBCursorStore) Load(ctx context.Context) (uint64, bool, error) {
	if s == nil || s.Store == nil {
		return 0, false, nil
	}
	if s.ChainID == "" {
		return 0, false, fmt.Errorf("cursor store has no chain id")
	}
	return s.Store.LoadCursor(ctx, s.ChainID)
}

func (s *DBCursorStore) Save(ctx context.Context, cursor uint64) error {
	if s == nil || s.Store == nil {
		return nil
	}
	if s.ChainID == "" {
		return fmt.Errorf("cursor store has no chain id")
	}
	return s.Store.SaveCursor(ctx, s.ChainID, cursor)
}
