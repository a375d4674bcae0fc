package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideRoot = errors.New("path outside output directory")

// ============================================================
// File Storage
// ============================================================

// FileStorage lays rendered files out as <root>/<diagram>/<id>.<ext>.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{root: root}
}

func (s *FileStorage) DiagramDir(diagram string) string {
	return filepath.Join(s.root, diagram)
}

func (s *FileStorage) RenderPath(diagram, id, ext string) string {
	return filepath.Join(s.DiagramDir(diagram), id+"."+strings.TrimPrefix(ext, "."))
}

func (s *FileStorage) EnsureDir(diagram string) error {
	if err := os.MkdirAll(s.DiagramDir(diagram), 0o755); err != nil {
		return fmt.Errorf("mkdir diagram dir: %w", err)
	}
	return nil
}

func (s *FileStorage) ReadFile(path string) ([]byte, error) {
	if err := s.contains(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (s *FileStorage) contains(path string) error {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return nil
}
