package patterns

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// Store is the durable, indexed history of script executions. It owns an
// in-memory cache loaded lazily from the injected backend; every mutation is
// serialized through one mutex and persisted as a full snapshot.
type Store struct {
	backend ports.PatternBackend
	logger  ports.Logger

	mu      sync.Mutex
	loaded  bool
	records []domain.ExecutionRecord
	index   domain.PatternIndex
}

// NewStore builds a store on top of the given backend.
func NewStore(backend ports.PatternBackend, logger ports.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// Log records one execution outcome. Scripts that normalize to the same
// fingerprint share a single record: re-logging updates it in place, bumps
// successCount on success, and leaves the index untouched.
func (s *Store) Log(intent, script string, success bool, result string) (domain.ExecutionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return domain.ExecutionRecord{}, err
	}

	fingerprint := domain.Fingerprint(script)
	for i := range s.records {
		if domain.Fingerprint(s.records[i].Script) != fingerprint {
			continue
		}
		rec := &s.records[i]
		rec.Timestamp = time.Now()
		rec.Success = success
		rec.Result = result
		if success {
			rec.SuccessCount++
		}
		if err := s.persist(); err != nil {
			return domain.ExecutionRecord{}, err
		}
		return cloneRecord(*rec), nil
	}

	targets := domain.ScriptTargets(script)
	actions := domain.ScriptActions(script)
	rec := domain.ExecutionRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Intent:    intent,
		Targets:   targets,
		Script:    script,
		Success:   success,
		Result:    result,
		Category:  domain.Categorize(targets, actions),
		Actions:   actions,
		Keywords:  domain.Keywords(intent, script),
	}
	if success {
		rec.SuccessCount = 1
	}

	s.records = append(s.records, rec)
	s.indexRecord(rec)
	if err := s.persist(); err != nil {
		return domain.ExecutionRecord{}, err
	}
	return cloneRecord(rec), nil
}

// FindSimilar retrieves the stored records most similar to the intent.
func (s *Store) FindSimilar(intent string, query domain.SimilarQuery) ([]domain.ExecutionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = domain.DefaultSimilarLimit
	}

	candidates := s.candidateIDs(intent, query)
	tokens := domain.Tokenize(intent)

	type scored struct {
		rec   domain.ExecutionRecord
		score int
	}
	var ranked []scored
	for _, rec := range s.records {
		if !candidates[rec.ID] {
			continue
		}
		if query.OnlySuccessful && !rec.Success {
			continue
		}
		score := domain.KeywordScoreWeight*overlap(rec.Keywords, tokens) + rec.SuccessCount
		ranked = append(ranked, scored{rec: rec, score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].rec.ID < ranked[j].rec.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]domain.ExecutionRecord, 0, len(ranked))
	for _, item := range ranked {
		out = append(out, cloneRecord(item.rec))
	}
	return out, nil
}

// candidateIDs builds the candidate set per facet, falling back to the full
// record set when nothing matches (cold start or novel phrasing).
func (s *Store) candidateIDs(intent string, query domain.SimilarQuery) map[string]bool {
	ids := map[string]bool{}
	switch {
	case query.Target != "":
		for _, id := range s.index.ByTarget[strings.ToLower(query.Target)] {
			ids[id] = true
		}
		if query.Action != "" {
			actionIDs := map[string]bool{}
			for _, id := range s.index.ByAction[strings.ToLower(query.Action)] {
				actionIDs[id] = true
			}
			for id := range ids {
				if !actionIDs[id] {
					delete(ids, id)
				}
			}
		}
	case query.Action == "":
		for _, token := range domain.Tokenize(intent) {
			for _, id := range s.index.ByKeyword[token] {
				ids[id] = true
			}
		}
		// Action without a target has no bucket to start from; leave the
		// set empty and let the full-set fallback handle it.
	}
	if len(ids) == 0 {
		for _, rec := range s.records {
			ids[rec.ID] = true
		}
	}
	return ids
}

// ByTarget lists every record touching the target, most successful first.
func (s *Store) ByTarget(target string) ([]domain.ExecutionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	bucket := map[string]bool{}
	for _, id := range s.index.ByTarget[strings.ToLower(target)] {
		bucket[id] = true
	}
	var out []domain.ExecutionRecord
	for _, rec := range s.records {
		if bucket[rec.ID] {
			out = append(out, cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SuccessCount != out[j].SuccessCount {
			return out[i].SuccessCount > out[j].SuccessCount
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Stats summarizes the stored history. Target counts include repeated
// references within one record.
func (s *Store) Stats() (domain.PatternStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return domain.PatternStats{}, err
	}

	stats := domain.PatternStats{
		TotalRecords:    len(s.records),
		CountByTarget:   map[string]int{},
		CountByCategory: map[string]int{},
	}
	var successful []domain.ExecutionRecord
	for _, rec := range s.records {
		if rec.Success {
			stats.SuccessfulRecords++
		}
		for _, target := range rec.Targets {
			stats.CountByTarget[target]++
		}
		stats.CountByCategory[string(rec.Category)]++
		if rec.SuccessCount > 0 {
			successful = append(successful, rec)
		}
	}
	sort.Slice(successful, func(i, j int) bool {
		if successful[i].SuccessCount != successful[j].SuccessCount {
			return successful[i].SuccessCount > successful[j].SuccessCount
		}
		return successful[i].ID < successful[j].ID
	})
	if len(successful) > domain.TopRecordCount {
		successful = successful[:domain.TopRecordCount]
	}
	for _, rec := range successful {
		stats.TopRecords = append(stats.TopRecords, cloneRecord(rec))
	}
	return stats, nil
}

// Clear wipes the cache and the backend. Callers exposing this externally
// must add their own confirmation step.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.index = domain.NewPatternIndex()
	s.loaded = true
	return s.backend.Reset()
}

func (s *Store) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	records, index, err := s.backend.Load()
	if err != nil {
		return fmt.Errorf("load patterns: %w", err)
	}
	s.records = records
	s.index = index
	if s.index.ByTarget == nil {
		s.index = domain.NewPatternIndex()
	}
	// A lost or corrupt index document is rebuilt from the records so no
	// bucket ever points at a missing record and no record goes unindexed.
	if len(s.records) > 0 && len(s.index.ByTarget) == 0 && len(s.index.ByKeyword) == 0 {
		for _, rec := range s.records {
			s.indexRecord(rec)
		}
	}
	s.loaded = true
	return nil
}

func (s *Store) persist() error {
	if err := s.backend.Save(s.records, s.index); err != nil {
		if s.logger != nil {
			s.logger.Error("persist patterns failed", err, nil)
		}
		return fmt.Errorf("persist patterns: %w", err)
	}
	return nil
}

// indexRecord appends the record id to every relevant bucket. Buckets are
// append-only; updates to an existing record never touch them.
func (s *Store) indexRecord(rec domain.ExecutionRecord) {
	seenTargets := map[string]bool{}
	for _, target := range rec.Targets {
		key := strings.ToLower(target)
		if seenTargets[key] {
			continue
		}
		seenTargets[key] = true
		s.index.ByTarget[key] = append(s.index.ByTarget[key], rec.ID)
	}
	for _, action := range rec.Actions {
		s.index.ByAction[action] = append(s.index.ByAction[action], rec.ID)
	}
	key := string(rec.Category)
	s.index.ByCategory[key] = append(s.index.ByCategory[key], rec.ID)
	for _, keyword := range rec.Keywords {
		s.index.ByKeyword[keyword] = append(s.index.ByKeyword[keyword], rec.ID)
	}
}

func overlap(keywords, tokens []string) int {
	set := map[string]bool{}
	for _, k := range keywords {
		set[k] = true
	}
	count := 0
	for _, t := range tokens {
		if set[t] {
			count++
		}
	}
	return count
}

func cloneRecord(rec domain.ExecutionRecord) domain.ExecutionRecord {
	rec.Targets = append([]string(nil), rec.Targets...)
	rec.Actions = append([]string(nil), rec.Actions...)
	rec.Keywords = append([]string(nil), rec.Keywords...)
	return rec
}

var _ ports.PatternStore = (*Store)(nil)
