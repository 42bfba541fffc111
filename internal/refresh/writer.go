package refresh

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ffl-gateway-service/internal/cache"
)

// Writer persists collection envelopes for the reference cache. Writes are
// atomic (tmp + rename) so a reader never observes a half-written file;
// cross-process coordination beyond last-writer-wins is deliberately absent.
type Writer struct {
	dir     string
	version string
	now     func() time.Time
}

// NewWriter constructs a writer rooted at dir, stamping envelopes with the
// given version string.
func NewWriter(dir, version string) *Writer {
	return &Writer{
		dir:     dir,
		version: version,
		now:     time.Now,
	}
}

// WriteCollection wraps data in a fresh envelope and writes it as the
// collection's backing file, pretty-printed UTF-8 JSON.
func (w *Writer) WriteCollection(name cache.Collection, source string, data any) error {
	if w == nil {
		return fmt.Errorf("refresh: writer not configured")
	}

	envelope := struct {
		Metadata cache.Metadata `json:"metadata"`
		Data     any            `json:"data"`
	}{
		Metadata: cache.Metadata{
			LastUpdated: w.now().UTC().Unix(),
			Version:     w.version,
			Source:      source,
		},
		Data: data,
	}

	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("refresh: marshal %s: %w", name, err)
	}

	target := cache.FilePath(w.dir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("refresh: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("refresh: write %s: %w", name, err)
	}
	return nil
}
