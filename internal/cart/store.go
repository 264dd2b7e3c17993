package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// storageKey identifies the cart document inside the store file. Kept
// stable so saved carts survive upgrades.
const storageKey = "agri_cart_v1"

// Store persists the flat line list between sessions.
type Store interface {
	// Load returns the saved lines, or nil when nothing was saved yet.
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStore is a small key-value document file. The cart lives under
// storageKey; unknown keys are preserved across saves.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	raw, ok := doc[storageKey]
	if !ok {
		return nil, nil
	}

	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart document: %w", err)
	}
	return lines, nil
}

func (s *FileStore) Save(lines []Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart document: %w", err)
	}
	doc[storageKey] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	// Write-then-rename keeps the document intact if the process dies
	// mid-save.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cart store: %w", err)
	}
	return nil
}

func (s *FileStore) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart store: %w", err)
	}

	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cart store: %w", err)
	}
	return doc, nil
}
