package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mahiagarwal-09/ecommerce-website/internal/domain"
)

// FileStore keeps the cart in a single JSON file, the desktop equivalent of
// the browser's localStorage slot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load(_ context.Context) ([]domain.LineItem, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}

	var records []lineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal cart file: %w", err)
	}

	lines, err := fromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("decode cart records: %w", err)
	}

	return lines, nil
}

func (f *FileStore) Save(_ context.Context, lines []domain.LineItem) error {
	data, err := json.Marshal(toRecords(lines))
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	// Write to a sibling temp file first so a crash mid-write cannot corrupt
	// the existing slot.
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}

	return nil
}

func (f *FileStore) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cart file: %w", err)
	}
	return nil
}
