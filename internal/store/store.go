// Package store implements the flat-file persistence layer for coursework
// data. Each collection is a single JSON document of the form
// {"<key>": [records...]} that is loaded and rewritten wholesale; a
// read-write mutex per collection spans every load-mutate-save sequence so
// concurrent request handlers cannot lose updates.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"

	"github.com/cryptovlab/coursework-api/internal/observability"
)

// Collection is a typed view over one JSON document file.
type Collection[T any] struct {
	fs     afero.Fs
	path   string
	key    string
	schema *jsonschema.Schema
	mu     sync.RWMutex
}

// NewCollection opens (creating if absent) the document at path whose single
// top-level key holds the record array. The schema guards against drift in
// externally edited files and is checked on every load.
func NewCollection[T any](fs afero.Fs, path, key, schemaJSON string) (*Collection[T], error) {
	schema, err := jsonschema.CompileString(key+".schema.json", schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", key, err)
	}

	c := &Collection[T]{
		fs:     fs,
		path:   path,
		key:    key,
		schema: schema,
	}

	if err := c.ensure(); err != nil {
		return nil, err
	}

	return c, nil
}

// Key returns the document's top-level array key.
func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) ensure() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	exists, err := afero.Exists(c.fs, c.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", c.path, err)
	}
	if exists {
		return nil
	}

	return c.write([]T{})
}

// Items returns the current records under the read lock.
func (c *Collection[T]) Items() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.load()
}

// Update runs fn on the current records and persists its result, all inside
// one critical section. Returning an error from fn aborts the rewrite and
// leaves the file untouched.
func (c *Collection[T]) Update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return c.write(updated)
}

func (c *Collection[T]) load() ([]T, error) {
	raw, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}

	if err := c.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%s does not match the %s schema: %w", c.path, c.key, err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}

	items := []T{}
	if payload, ok := envelope[c.key]; ok {
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("decode %s records: %w", c.key, err)
		}
	}

	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	raw, err := json.MarshalIndent(map[string][]T{c.key: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s records: %w", c.key, err)
	}

	// Marshal the whole document up front; only a fully encoded payload
	// ever reaches the file.
	if err := afero.WriteFile(c.fs, c.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}

	observability.StoreWrites().WithLabelValues(c.key).Inc()

	return nil
}
