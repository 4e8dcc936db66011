package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"marketTags/internal/model"
)

// JsonlStorage writes tags to a JSONL file, one object per line.
type JsonlStorage struct {
	path       string
	appendMode bool
	mu         sync.Mutex
}

func NewJsonlStorage(path string, appendMode bool) *JsonlStorage {
	return &JsonlStorage{path: path, appendMode: appendMode}
}

// PutTags writes a batch of tags as JSON lines.
func (s *JsonlStorage) PutTags(ctx context.Context, tags []model.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := openOutput(s.path, s.appendMode)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, tag := range tags {
		line, err := json.Marshal(tag)
		if err != nil {
			return fmt.Errorf("marshal tag: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write tag: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
