// Package docfile reads and writes model documents on disk. Every access
// holds an exclusive lock on "<path>.lock" so concurrent CLI invocations never
// see a half-written document.
package docfile

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/arthur-debert/nanomodel/formats"
	"github.com/gofrs/flock"
)

const (
	lockTimeout   = 3 * time.Second
	retryInterval = 100 * time.Millisecond
)

// File is a document file in a known format.
type File struct {
	mu       sync.Mutex
	path     string
	format   *formats.DocumentFormat
	fileLock *flock.Flock
}

// Open returns a File for path, picking the format from its extension unless
// formatName is given.
func Open(path, formatName string) (*File, error) {
	var (
		format *formats.DocumentFormat
		err    error
	)
	if formatName != "" {
		format, err = formats.Get(formatName)
	} else {
		format, err = formats.ForPath(path)
	}
	if err != nil {
		return nil, err
	}

	return &File{
		path:     path,
		format:   format,
		fileLock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the document path.
func (f *File) Path() string {
	return f.path
}

// Format returns the document format.
func (f *File) Format() *formats.DocumentFormat {
	return f.format
}

// Load reads and decodes the document.
func (f *File) Load(ctx context.Context) (map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := f.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return f.loadLocked()
}

// Save encodes v and replaces the document atomically.
func (f *File) Save(ctx context.Context, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := f.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	return f.saveLocked(v)
}

// Update loads the document, hands it to fn and saves what fn returns, all
// under one lock.
func (f *File) Update(ctx context.Context, fn func(doc map[string]any) (any, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := f.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := f.loadLocked()
	if err != nil {
		return err
	}
	out, err := fn(doc)
	if err != nil {
		return err
	}
	return f.saveLocked(out)
}

func (f *File) lock(ctx context.Context) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := f.fileLock.TryLockContext(ctx, retryInterval)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock")
	}
	return func() { _ = f.fileLock.Unlock() }, nil
}

func (f *File) loadLocked() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	doc, err := f.format.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return doc, nil
}

func (f *File) saveLocked(v any) error {
	data, err := f.format.Encode(v)
	if err != nil {
		return err
	}

	// Write atomically
	tmpFile := f.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, f.path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
