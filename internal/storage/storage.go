package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tiliavir/punch/internal/logger"
	"github.com/Tiliavir/punch/internal/parser"
)

// filePermissions applies to a newly created report file.
const filePermissions = 0o600

// Serializer produces report file lines.
type Serializer interface {
	Serialize() []string
}

// FileStore reads and writes the report file at a fixed path.
type FileStore struct {
	path string
}

// New returns a store for the report file at path.
func New(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the report file location.
func (s *FileStore) Path() string {
	return s.path
}

// EnsureExists creates an empty report file, and its directory, if none
// exists yet.
func (s *FileStore) EnsureExists(ctx context.Context) error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage error checking %s: %w", s.path, err)
	}

	logger.InfoKV(ctx, "report file not found, creating it", "path", s.path)
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return fmt.Errorf("storage error creating %s: %w", s.path, err)
	}
	return f.Close()
}

// ReadLines returns every line of the report file.
func (s *FileStore) ReadLines(ctx context.Context) ([]string, error) {
	if err := s.EnsureExists(ctx); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", s.path, err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Load reads and parses the report file. Skipped lines are logged, not
// returned as errors.
func (s *FileStore) Load(ctx context.Context) (parser.Result, error) {
	lines, err := s.ReadLines(ctx)
	if err != nil {
		return parser.Result{}, err
	}

	res := parser.Parse(lines)
	for _, issue := range res.Issues {
		logger.DebugKV(ctx, "skipped report line", "reason", issue.Kind.String(), "line", issue.Line)
	}
	if len(res.Issues) > 0 {
		logger.WarnKV(ctx, "report file contains unusable lines",
			"path", s.path, "skipped", len(res.Issues))
	}
	if res.Trailing != parser.Empty {
		logger.WarnKV(ctx, "dropped incomplete event at end of report file",
			"path", s.path, "state", res.Trailing.String())
	}
	logger.DebugKV(ctx, "report file loaded", "path", s.path, "lines", len(lines), "events", len(res.Events))
	return res, nil
}

// WriteLines replaces the report file with lines, one per line.
func (s *FileStore) WriteLines(ctx context.Context, lines []string) error {
	if err := s.EnsureExists(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	logger.DebugKV(ctx, "report file written", "path", s.path, "lines", len(lines))
	return nil
}

// Save writes the serialized form of r.
func (s *FileStore) Save(ctx context.Context, r Serializer) error {
	return s.WriteLines(ctx, r.Serialize())
}
