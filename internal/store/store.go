// Package store provides the local key-value store that holds URL history.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/linkhist/internal/model"
)

// DefaultKey is the key the URL history blob is stored under.
const DefaultKey = "urlList"

// ErrStoreClosed is returned when operations are attempted on a closed store.
var ErrStoreClosed = errors.New("store is closed")

// ErrCorruptStore is returned when the store file is not a JSON object.
var ErrCorruptStore = errors.New("store file is corrupted")

// Storage is the port the history view reads and writes records through.
type Storage interface {
	// Read returns the stored records, oldest first. A missing or
	// unparseable blob yields an empty sequence and no error.
	Read() ([]model.UrlRecord, error)

	// Write replaces the stored records.
	Write(records []model.UrlRecord) error

	// Clear wipes the entire key space, not just the history key.
	Clear() error
}

// decodeRecords parses a serialized history blob.
// Empty input is an empty sequence; malformed input is logged and treated
// the same way.
func decodeRecords(raw string, logger *slog.Logger) []model.UrlRecord {
	if raw == "" {
		return []model.UrlRecord{}
	}

	var records []model.UrlRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		logger.Warn("ignoring unparseable url history", "error", err)
		return []model.UrlRecord{}
	}
	if records == nil {
		records = []model.UrlRecord{}
	}
	return records
}

// encodeRecords serializes records. A nil slice encodes as "[]".
func encodeRecords(records []model.UrlRecord) (string, error) {
	if records == nil {
		records = []model.UrlRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode url history: %w", err)
	}
	return string(data), nil
}
