package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File — хранилище в JSON-файле (права 0600, запись через rename,
// чтобы читатель не увидел полузаписанный файл). Для CLI и десктопных
// потребителей SDK.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Tokens(_ context.Context) (*TokenPair, error) {
	const op = "session.file.Tokens"

	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var p TokenPair
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if p.AccessToken == "" && p.RefreshToken == "" {
		return nil, ErrNoSession
	}

	return &p, nil
}

func (f *File) Save(_ context.Context, p *TokenPair) error {
	const op = "session.file.Save"

	cp := *p
	cp.Normalize()

	b, err := json.Marshal(&cp)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (f *File) Clear(_ context.Context) error {
	const op = "session.file.Clear"

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
