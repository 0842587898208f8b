package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
)

// document is the on-disk shape: all reviews live in one JSON file,
// in submission order.
type document struct {
	Reviews []domain.Review `json:"reviews"`
}

type Store struct {
	path string
	mu   sync.Mutex // serializes the read-modify-write cycle within this process
}

func New(path string) *Store { return &Store{path: path} }

func (s *Store) ListReviews(ctx context.Context) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc.Reviews, nil
}

func (s *Store) ListByLocation(ctx context.Context, locationName string) ([]domain.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []domain.Review
	for _, r := range doc.Reviews {
		if strings.EqualFold(r.LocationName, locationName) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) AddReview(ctx context.Context, r domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Reviews = append(doc.Reviews, r)
	return s.write(doc)
}

func (s *Store) read() (document, error) {
	var doc document
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil // first write creates the file
		}
		return doc, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(b) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc, nil
}

// write replaces the document via temp file + rename so a crash mid-write
// never leaves a truncated file behind.
func (s *Store) write(doc document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp in %s: %w", dir, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
