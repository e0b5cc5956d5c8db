// Package source reads the artifacts the offline pipeline writes into the output directory.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Kind classifies artifact failures.
type Kind int

const (
	// KindNotFound means the artifact is missing or the name is not a local path.
	KindNotFound Kind = iota
	// KindIO means the artifact exists but could not be read.
	KindIO
	// KindParse means the artifact was read but its contents are malformed.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindIO:
		return "io"
	case KindParse:
		return "parse"
	}
	return "unknown"
}

// Sentinels for errors.Is checks against *ArtifactError.
var (
	ErrNotFound = errors.New("artifact not found")
	ErrIO       = errors.New("artifact unreadable")
	ErrParse    = errors.New("artifact malformed")
)

// ArtifactError reports a failure to load one named artifact.
type ArtifactError struct {
	Name string
	Kind Kind
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %s: %s: %v", e.Name, e.Kind, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *ArtifactError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrIO:
		return e.Kind == KindIO
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

// FileInfo describes an artifact on disk.
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Reader loads named artifacts from a single directory.
type Reader struct {
	Dir string
}

// NewReader returns a Reader rooted at dir.
func NewReader(dir string) *Reader {
	return &Reader{Dir: dir}
}

// Path resolves name inside the reader's directory. Names that escape the
// directory are rejected.
func (r *Reader) Path(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", &ArtifactError{Name: name, Kind: KindNotFound, Err: fmt.Errorf("name is not a local path")}
	}
	return filepath.Join(r.Dir, name), nil
}

// Stat reports the size and modification time of an artifact.
func (r *Reader) Stat(name string) (FileInfo, error) {
	path, err := r.Path(name)
	if err != nil {
		return FileInfo{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, classify(name, err)
	}
	return FileInfo{Name: name, Path: path, Size: info.Size(), ModTime: info.ModTime()}, nil
}

// ReadBytes returns the raw contents of an artifact.
func (r *Reader) ReadBytes(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ArtifactError{Name: name, Kind: KindIO, Err: err}
	}
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(name, err)
	}
	return data, nil
}

// ReadText returns the contents of a text artifact.
func (r *Reader) ReadText(ctx context.Context, name string) (string, error) {
	data, err := r.ReadBytes(ctx, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadJSON validates a JSON artifact and returns it compacted. Key order is
// kept as written.
func (r *Reader) ReadJSON(ctx context.Context, name string) ([]byte, error) {
	data, err := r.ReadBytes(ctx, name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, &ArtifactError{Name: name, Kind: KindParse, Err: err}
	}
	return buf.Bytes(), nil
}

// DecodeJSON unmarshals a JSON artifact into v.
func (r *Reader) DecodeJSON(ctx context.Context, name string, v any) error {
	data, err := r.ReadBytes(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ArtifactError{Name: name, Kind: KindParse, Err: err}
	}
	return nil
}

func classify(name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &ArtifactError{Name: name, Kind: KindNotFound, Err: err}
	}
	return &ArtifactError{Name: name, Kind: KindIO, Err: err}
}

// ParseError wraps a decode failure for callers that parse artifact bytes
// obtained elsewhere, such as over HTTP.
func ParseError(name string, err error) error {
	return &ArtifactError{Name: name, Kind: KindParse, Err: err}
}
