// Package store persists generated word cloud PNGs so they can be fetched by id
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for unknown ids
var ErrNotFound = errors.New("image not found")

// Store saves PNG data and hands back an id and a URL to fetch it by
type Store interface {
	Put(ctx context.Context, data []byte) (id, url string, err error)
	Get(ctx context.Context, id string) ([]byte, error)
}

// FileStore keeps images in a local directory
type FileStore struct {
	Dir       string
	URLPrefix string // prepended to the id to form the URL
	now       func() time.Time
}

// NewFileStore creates dir if needed
func NewFileStore(dir, urlPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{Dir: dir, URLPrefix: urlPrefix, now: time.Now}, nil
}

func (s *FileStore) Put(ctx context.Context, data []byte) (string, string, error) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	id := fmt.Sprintf("%s-%s.png", now().Format("20060102"), uuid.NewString())

	if err := os.WriteFile(filepath.Join(s.Dir, id), data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save image: %w", err)
	}
	return id, s.URLPrefix + id, nil
}

func (s *FileStore) Get(ctx context.Context, id string) ([]byte, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// validID rejects anything that could escape the store directory
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && !strings.Contains(id, "..")
}
