// Package cursor persists the "current simulated time" between pipeline runs.
//
// The cursor value is read at the start of a run and rewritten once at the
// end of a successful run. Concurrent runs against the same cursor file are
// not supported; single-writer discipline is the caller's operational
// contract.
package cursor

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// File is a TOML-backed time cursor.
type File struct {
	path string
}

type document struct {
	Params params `toml:"params"`
}

type params struct {
	CurrentTime string `toml:"current_time"`
}

// New returns a cursor backed by the given file path.
func New(path string) *File {
	return &File{path: path}
}

// Load reads the current cursor value. A missing file is reported via
// os.IsNotExist so callers can seed an initial value.
func (f *File) Load() (time.Time, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return time.Time{}, err
	}
	var doc document
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return time.Time{}, fmt.Errorf("parse cursor file %s: %w", f.path, err)
	}
	t, err := time.Parse(time.RFC3339, doc.Params.CurrentTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse cursor timestamp %q: %w", doc.Params.CurrentTime, err)
	}
	return t, nil
}

// Store rewrites the cursor atomically: the document is written to a
// temporary file in the same directory and renamed over the target.
func (f *File) Store(t time.Time) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create cursor directory: %w", err)
	}

	doc := document{Params: params{CurrentTime: t.UTC().Format(time.RFC3339)}}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".cursor-*")
	if err != nil {
		return fmt.Errorf("create cursor temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cursor: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
