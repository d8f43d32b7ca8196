// Package constants provides shared constants used throughout the bikescraper
// codebase. This includes file permissions, domain limits, and formats that
// should be consistent across the application.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Domain limit constants
const (
	// MaxHeroImages is the maximum number of hero images carried per record.
	// Extra images are truncated during normalization.
	MaxHeroImages = 10

	// DateFormat is the calendar-day format used for lifecycle dates
	// (firstSeen, lastSeen, lastUpdated).
	DateFormat = "02-01-2006"
)

// Timeout constants define durations used by the CLI
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// LockTimeout is how long an ingestion run waits for the dataset lock
	// before giving up.
	LockTimeout = 30 * time.Second

	// LockRetryDelay is the polling interval while waiting for the dataset lock.
	LockRetryDelay = 250 * time.Millisecond
)
