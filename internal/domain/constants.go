package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// DataFilePermissions is the permission for persisted data files (rw-r--r--)
	DataFilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout constants
const (
	// DefaultScriptTimeout bounds a single osascript invocation
	DefaultScriptTimeout = 60 * time.Second
)

// Retrieval constants
const (
	// DefaultSimilarLimit is the default number of similar patterns returned
	DefaultSimilarLimit = 5
	// TopRecordCount is how many top records Stats reports
	TopRecordCount = 10
	// KeywordScoreWeight makes keyword overlap dominate raw popularity
	KeywordScoreWeight = 10
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
