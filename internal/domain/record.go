package domain

import "time"

// Category buckets a script by what it automates.
type Category string

const (
	CategoryMedia         Category = "media"
	CategoryFiles         Category = "files"
	CategoryCommunication Category = "communication"
	CategoryProductivity  Category = "productivity"
	CategorySystem        Category = "system"
	CategoryOther         Category = "other"
)

// ExecutionRecord is one remembered script outcome. Records are deduplicated
// by script fingerprint: re-logging the same fingerprint updates the existing
// record in place.
type ExecutionRecord struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Intent       string    `json:"intent"`
	Targets      []string  `json:"targets"`
	Script       string    `json:"script"`
	Success      bool      `json:"success"`
	Result       string    `json:"result"`
	Category     Category  `json:"category"`
	Actions      []string  `json:"actions"`
	SuccessCount int       `json:"successCount"`
	Keywords     []string  `json:"keywords"`
}

// PatternIndex maps facet values to record ids. Buckets are append-only:
// an id is added once at record creation and never removed.
type PatternIndex struct {
	ByTarget   map[string][]string `json:"byTarget"`
	ByAction   map[string][]string `json:"byAction"`
	ByCategory map[string][]string `json:"byCategory"`
	ByKeyword  map[string][]string `json:"byKeyword"`
}

// NewPatternIndex allocates an index with all four maps ready.
func NewPatternIndex() PatternIndex {
	return PatternIndex{
		ByTarget:   map[string][]string{},
		ByAction:   map[string][]string{},
		ByCategory: map[string][]string{},
		ByKeyword:  map[string][]string{},
	}
}

// PatternStats summarizes the stored history.
type PatternStats struct {
	TotalRecords      int               `json:"totalRecords"`
	SuccessfulRecords int               `json:"successfulRecords"`
	CountByTarget     map[string]int    `json:"countByTarget"`
	CountByCategory   map[string]int    `json:"countByCategory"`
	TopRecords        []ExecutionRecord `json:"topRecords"`
}

// SimilarQuery narrows a FindSimilar lookup.
type SimilarQuery struct {
	Target         string
	Action         string
	Limit          int
	OnlySuccessful bool
}

// DefaultSimilarQuery returns the standard lookup: five results, successful
// records only.
func DefaultSimilarQuery() SimilarQuery {
	return SimilarQuery{Limit: DefaultSimilarLimit, OnlySuccessful: true}
}
