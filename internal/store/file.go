package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileKV adapts a single local JSON document to the KV contract. The document
// is a key-to-value object, so the collection under the "teams" key lands on
// disk as {"teams": [...]} — the layout the event organizers already know how
// to inspect and hand-edit.
type fileKV struct {
	path string
}

// NewFileKV returns a KV backed by the JSON document at path
func NewFileKV(path string) KV {
	return &fileKV{path: path}
}

func (f *fileKV) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return doc, nil
}

func (f *fileKV) Exists(ctx context.Context, key string) (bool, error) {
	doc, err := f.load()
	if err != nil {
		return false, err
	}
	_, ok := doc[key]
	return ok, nil
}

func (f *fileKV) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := f.load()
	if err != nil {
		return nil, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return value, nil
}

func (f *fileKV) Set(ctx context.Context, key string, value []byte) error {
	doc, err := f.load()
	if err != nil {
		return err
	}
	doc[key] = json.RawMessage(value)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", f.path, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return nil
}

func (f *fileKV) Close() error {
	return nil
}
