package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type codec struct {
	name      string
	file      string
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	jsonCodec = codec{
		name: "json",
		file: "data.json",
		marshal: func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		},
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{
		name:      "yaml",
		file:      "data.yml",
		marshal:   yaml.Marshal,
		unmarshal: yaml.Unmarshal,
	}
)

// FileBackend keeps the whole ledger in a single document on disk.
type FileBackend struct {
	path  string
	codec codec

	mu sync.Mutex
}

// NewJSONBackend stores the ledger in dir/data.json.
func NewJSONBackend(dir string) (*FileBackend, error) {
	return newFileBackend(dir, jsonCodec)
}

// NewYAMLBackend stores the ledger in dir/data.yml.
func NewYAMLBackend(dir string) (*FileBackend, error) {
	return newFileBackend(dir, yamlCodec)
}

func newFileBackend(dir string, c codec) (*FileBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("%s backend: path is required", c.name)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, NewBackendError(c.name, "create directory", err)
	}

	return &FileBackend{
		path:  filepath.Join(dir, c.file),
		codec: c,
	}, nil
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Open(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.InfoContext(ctx, "no ledger file found, starting empty", "path", b.path)
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, NewBackendError(b.codec.name, "open", fmt.Errorf("reading file: %w", err))
	}

	asset := &Asset[*LedgerDocument]{}
	err = b.codec.unmarshal(data, asset)
	if err != nil {
		return nil, NewBackendError(b.codec.name, "open", fmt.Errorf("unmarshalling asset: %w", err))
	}

	if asset.Spec == nil {
		asset.Spec = &LedgerDocument{}
	}
	err = asset.Validate()
	if err != nil {
		return nil, NewBackendError(b.codec.name, "open", fmt.Errorf("validating %s: %w", filepath.Base(b.path), err))
	}

	return asset.Spec.snapshot(), nil
}

func (b *FileBackend) Save(ctx context.Context, s Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	asset := &Asset[*LedgerDocument]{
		Version:    ledgerAssetVersion,
		Identifier: ledgerAssetId,
		Spec:       newLedgerDocument(s),
	}

	data, err := b.codec.marshal(asset)
	if err != nil {
		return NewBackendError(b.codec.name, "save", fmt.Errorf("marshalling %s: %w", b.codec.name, err))
	}

	return NewBackendError(b.codec.name, "save", atomicWrite(b.path, data, 0644))
}

func (b *FileBackend) Close() error {
	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
