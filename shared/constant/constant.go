package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeySession contextKey = "session"
)

const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
)

const (
	DateFormat      = time.DateOnly
	DateTimeFormat  = time.DateTime
	CompactDate     = "20060102"
	CompactDateTime = "20060102_150405"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelScreenScopeName     = "screen"
	OtelExportScopeName     = "export"
	OtelSessionScopeName    = "session"
	OtelS3ScopeName         = "s3"

	OtelQueryAttributeKey = "query"
)

// FilterAll is the status filter value that disables status filtering.
const FilterAll = "All"

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Empty = ""
)
