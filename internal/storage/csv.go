package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"sync"

	"marketTags/internal/model"
)

// CSVStorage writes tags as CSV rows under a header of model.TagColumns.
type CSVStorage struct {
	path       string
	appendMode bool
	mu         sync.Mutex
}

func NewCSVStorage(path string, appendMode bool) *CSVStorage {
	return &CSVStorage{path: path, appendMode: appendMode}
}

// PutTags writes a batch of tags. The header is written only when the file
// starts empty.
func (s *CSVStorage) PutTags(ctx context.Context, tags []model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := openOutput(s.path, s.appendMode)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}

	writer := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := writer.Write(model.TagColumns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, tag := range tags {
		if err := writer.Write(tag.Row()); err != nil {
			return fmt.Errorf("write tag: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
