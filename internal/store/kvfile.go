package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jmylchreest/linkhist/internal/model"
)

// KVFile is a file-backed key-value space holding string values, laid out
// the way a browser origin's local storage is: one JSON object mapping keys
// to serialized values. The URL history lives under a single key.
type KVFile struct {
	mu     sync.Mutex
	path   string
	key    string
	logger *slog.Logger
	closed bool
}

// NewKVFile creates a KVFile at path storing history under key.
// The parent directory is created if needed; the file itself is created on
// first write.
func NewKVFile(path, key string, logger *slog.Logger) (*KVFile, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		key = DefaultKey
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return &KVFile{
		path:   path,
		key:    key,
		logger: logger,
	}, nil
}

// Path returns the backing file path.
func (s *KVFile) Path() string {
	return s.path
}

// Key returns the key the history blob is stored under.
func (s *KVFile) Key() string {
	return s.key
}

// Read returns the records stored under the history key.
func (s *KVFile) Read() ([]model.UrlRecord, error) {
	raw, _, err := s.Get(s.key)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw, s.logger), nil
}

// Write overwrites the history key with records. Other keys are kept.
func (s *KVFile) Write(records []model.UrlRecord) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return s.Set(s.key, raw)
}

// Clear removes every key from the store.
func (s *KVFile) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return s.save(map[string]string{})
}

// Get returns the raw value for key and whether it was present. A
// corrupted file reads as an empty key space.
func (s *KVFile) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", false, ErrStoreClosed
	}

	values, err := s.load()
	if errors.Is(err, ErrCorruptStore) {
		s.logger.Warn("ignoring corrupted store file", "path", s.path, "error", err)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *KVFile) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	values, err := s.load()
	switch {
	case errors.Is(err, ErrCorruptStore):
		if err := s.quarantine(); err != nil {
			return err
		}
		values = map[string]string{}
	case err != nil:
		return err
	}
	values[key] = value
	return s.save(values)
}

// Keys returns the stored keys in sorted order.
func (s *KVFile) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	values, err := s.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the store closed. It holds no open handles between calls.
func (s *KVFile) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// load reads the whole key space. A missing or empty file is an empty space.
func (s *KVFile) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptStore, s.path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// save replaces the file through a temp file and rename so readers never
// see a partial write.
func (s *KVFile) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// quarantine moves an unparseable store file aside so a fresh one can be
// written without losing the original bytes.
func (s *KVFile) quarantine() error {
	backupPath := s.path + ".corrupted." + time.Now().Format("20060102-150405")
	if err := os.Rename(s.path, backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to backup corrupted file: %w", err)
	}
	s.logger.Warn("moved corrupted store file aside", "backup", backupPath)
	return nil
}
