package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"marketTags/internal/model"
)

// Storage defines a sink for tag records.
type Storage interface {
	PutTags(ctx context.Context, tags []model.Tag) error
}

// Format names an output file encoding.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// NewFileStorage returns a file sink for the given format. Existing files are
// replaced unless appendMode is set.
func NewFileStorage(format Format, path string, appendMode bool) (Storage, error) {
	switch format {
	case FormatJSONL, "":
		return NewJsonlStorage(path, appendMode), nil
	case FormatCSV:
		return NewCSVStorage(path, appendMode), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func openOutput(path string, appendMode bool) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return file, nil
}

// MultiStorage writes each batch to every sink in order, stopping at the
// first failure.
type MultiStorage []Storage

func (m MultiStorage) PutTags(ctx context.Context, tags []model.Tag) error {
	for _, sink := range m {
		if err := sink.PutTags(ctx, tags); err != nil {
			return err
		}
	}
	return nil
}
