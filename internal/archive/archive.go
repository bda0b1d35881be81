// Package archive stores raw API payloads for later inspection.
//
// Payloads are write-only debugging artifacts. A sink receives a short name
// such as "vms" or "vm_config_dto" and the JSON bytes, and decides where they
// go: a local directory, an S3 bucket, or both.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink stores one named payload.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) error
}

// ErrInvalidName is returned for names that would escape the archive root.
var ErrInvalidName = errors.New("invalid archive name")

// DirSink writes payloads to <dir>/<name>.json, replacing earlier files.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir. The directory is created on first save.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Save writes data as indented JSON, or verbatim if it is not JSON.
func (s *DirSink) Save(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("failed to create archive directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, indent(data), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Tee fans a payload out to several sinks. Every sink is tried and the
// errors are joined.
type Tee []Sink

// Save implements Sink.
func (t Tee) Save(ctx context.Context, name string, data []byte) error {
	var errs []error
	for _, s := range t {
		if err := s.Save(ctx, name, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func indent(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
