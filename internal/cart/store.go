package cart

import (
	"encoding/json"
	"fmt"
	"os"
)

// Store persists cart lines across sessions. It is a collaborator of
// the cart engine, not part of its logic.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// FileStore keeps the cart as a JSON file, the server-side analog of
// browser local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted lines. A missing file is an empty cart.
func (s *FileStore) Load() ([]Line, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart file: %w", err)
	}
	return lines, nil
}

// Save writes the lines, replacing any previous content.
func (s *FileStore) Save(lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart lines: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}

// MemoryStore keeps the cart lines in memory. Useful for tests and
// throwaway sessions.
type MemoryStore struct {
	lines []Line
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored lines.
func (s *MemoryStore) Load() ([]Line, error) {
	return s.lines, nil
}

// Save replaces the stored lines.
func (s *MemoryStore) Save(lines []Line) error {
	s.lines = make([]Line, len(lines))
	copy(s.lines, lines)
	return nil
}
