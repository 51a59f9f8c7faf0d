package patterns

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

const (
	recordsFileName = "patterns.json"
	indexFileName   = "pattern-index.json"
)

// JSONBackend persists the snapshot as two JSON documents: a flat record
// array and an index document with four named maps. Writes go through a
// temp file and rename so a crashed write never leaves a torn document.
type JSONBackend struct {
	dir string
}

// NewJSONBackend stores documents under dir, defaulting to
// ~/.scriptsage/patterns.
func NewJSONBackend(dir string) *JSONBackend {
	if dir == "" {
		dir = filepath.Join(backendUserHome(), ".scriptsage", "patterns")
	}
	return &JSONBackend{dir: dir}
}

// Load reads both documents. Missing or corrupt files degrade to an empty
// snapshot; the store must stay usable with no prior history.
func (b *JSONBackend) Load() ([]domain.ExecutionRecord, domain.PatternIndex, error) {
	var records []domain.ExecutionRecord
	index := domain.NewPatternIndex()

	if data, err := os.ReadFile(filepath.Join(b.dir, recordsFileName)); err == nil {
		if err := json.Unmarshal(data, &records); err != nil {
			records = nil
		}
	}
	// An index without its records would point at nothing; only load it
	// when the record document was readable.
	if len(records) > 0 {
		if data, err := os.ReadFile(filepath.Join(b.dir, indexFileName)); err == nil {
			var loaded domain.PatternIndex
			if err := json.Unmarshal(data, &loaded); err == nil && loaded.ByTarget != nil {
				index = loaded
			}
		}
	}
	return records, index, nil
}

// Save writes both documents.
func (b *JSONBackend) Save(records []domain.ExecutionRecord, index domain.PatternIndex) error {
	if err := os.MkdirAll(b.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	if records == nil {
		records = []domain.ExecutionRecord{}
	}
	if err := writeJSON(filepath.Join(b.dir, recordsFileName), records); err != nil {
		return err
	}
	return writeJSON(filepath.Join(b.dir, indexFileName), index)
}

// Reset removes both documents.
func (b *JSONBackend) Reset() error {
	for _, name := range []string{recordsFileName, indexFileName} {
		if err := os.Remove(filepath.Join(b.dir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Dir returns the backing directory.
func (b *JSONBackend) Dir() string {
	return b.dir
}

func writeJSON(path string, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, domain.DataFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func backendUserHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.PatternBackend = (*JSONBackend)(nil)
