package patterns

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// SQLiteBackend persists the snapshot in a SQLite database: one row per
// record plus one row per index bucket membership. When the database cannot
// be opened it degrades to the JSON backend in the same directory.
type SQLiteBackend struct {
	db   *sql.DB
	path string
	dir  string
}

// NewSQLiteBackend creates (or opens) patterns.db under dir.
func NewSQLiteBackend(dir string) *SQLiteBackend {
	if dir == "" {
		dir = filepath.Join(backendUserHome(), ".scriptsage", "patterns")
	}
	path := filepath.Join(dir, "patterns.db")
	_ = os.MkdirAll(dir, domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteBackend{path: path, dir: dir}
	}
	backend := &SQLiteBackend{db: db, path: path, dir: dir}
	if err := backend.init(); err != nil {
		return &SQLiteBackend{path: path, dir: dir}
	}
	return backend
}

func (b *SQLiteBackend) init() error {
	if b.db == nil {
		return os.ErrInvalid
	}
	if _, err := b.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		intent TEXT,
		targets TEXT,
		script TEXT,
		success INTEGER,
		result TEXT,
		category TEXT,
		actions TEXT,
		success_count INTEGER,
		keywords TEXT
	);`); err != nil {
		return err
	}
	_, err := b.db.Exec(`CREATE TABLE IF NOT EXISTS index_entries (
		facet TEXT,
		value TEXT,
		record_id TEXT,
		position INTEGER
	);`)
	return err
}

// Load reads every record and index row.
func (b *SQLiteBackend) Load() ([]domain.ExecutionRecord, domain.PatternIndex, error) {
	if b.db == nil {
		return NewJSONBackend(b.dir).Load()
	}
	rows, err := b.db.Query(`SELECT id, timestamp, intent, targets, script, success,
		result, category, actions, success_count, keywords FROM records`)
	if err != nil {
		return nil, domain.NewPatternIndex(), nil
	}
	defer rows.Close()

	var records []domain.ExecutionRecord
	for rows.Next() {
		var rec domain.ExecutionRecord
		var ts, targets, actions, keywords, category string
		var success int
		if err := rows.Scan(&rec.ID, &ts, &rec.Intent, &targets, &rec.Script,
			&success, &rec.Result, &category, &actions, &rec.SuccessCount, &keywords); err != nil {
			return nil, domain.NewPatternIndex(), nil
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Success = success == 1
		rec.Category = domain.Category(category)
		rec.Targets = decodeList(targets)
		rec.Actions = decodeList(actions)
		rec.Keywords = decodeList(keywords)
		records = append(records, rec)
	}

	index := domain.NewPatternIndex()
	indexRows, err := b.db.Query(`SELECT facet, value, record_id FROM index_entries ORDER BY facet, value, position`)
	if err != nil {
		return records, index, nil
	}
	defer indexRows.Close()
	for indexRows.Next() {
		var facet, value, id string
		if err := indexRows.Scan(&facet, &value, &id); err != nil {
			continue
		}
		switch facet {
		case "target":
			index.ByTarget[value] = append(index.ByTarget[value], id)
		case "action":
			index.ByAction[value] = append(index.ByAction[value], id)
		case "category":
			index.ByCategory[value] = append(index.ByCategory[value], id)
		case "keyword":
			index.ByKeyword[value] = append(index.ByKeyword[value], id)
		}
	}
	return records, index, nil
}

// Save replaces the whole snapshot in one transaction.
func (b *SQLiteBackend) Save(records []domain.ExecutionRecord, index domain.PatternIndex) error {
	if b.db == nil {
		return NewJSONBackend(b.dir).Save(records, index)
	}
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM index_entries`); err != nil {
		return err
	}
	for _, rec := range records {
		success := 0
		if rec.Success {
			success = 1
		}
		if _, err := tx.Exec(`INSERT INTO records
			(id, timestamp, intent, targets, script, success, result, category, actions, success_count, keywords)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.ID,
			rec.Timestamp.Format(domain.TimestampFormat),
			rec.Intent,
			encodeList(rec.Targets),
			rec.Script,
			success,
			rec.Result,
			string(rec.Category),
			encodeList(rec.Actions),
			rec.SuccessCount,
			encodeList(rec.Keywords),
		); err != nil {
			return err
		}
	}
	facets := []struct {
		name    string
		buckets map[string][]string
	}{
		{"target", index.ByTarget},
		{"action", index.ByAction},
		{"category", index.ByCategory},
		{"keyword", index.ByKeyword},
	}
	for _, facet := range facets {
		for value, ids := range facet.buckets {
			for pos, id := range ids {
				if _, err := tx.Exec(`INSERT INTO index_entries (facet, value, record_id, position) VALUES (?, ?, ?, ?)`,
					facet.name, value, id, pos); err != nil {
					return err
				}
			}
		}
	}
	return tx.Commit()
}

// Reset drops all rows.
func (b *SQLiteBackend) Reset() error {
	if b.db == nil {
		return NewJSONBackend(b.dir).Reset()
	}
	if _, err := b.db.Exec(`DELETE FROM records`); err != nil {
		return err
	}
	_, err := b.db.Exec(`DELETE FROM index_entries`)
	return err
}

// Path returns the database location.
func (b *SQLiteBackend) Path() string {
	return b.path
}

// Close releases the database handle.
func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

func encodeList(values []string) string {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func decodeList(data string) []string {
	var values []string
	_ = json.Unmarshal([]byte(data), &values)
	return values
}

var _ ports.PatternBackend = (*SQLiteBackend)(nil)
