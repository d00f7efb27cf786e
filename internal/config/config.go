package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultTokenTTL is how long an issued access token stays valid.
	DefaultTokenTTL = 24 * time.Hour

	// DefaultPageSize is the listing page size used when the client
	// does not pass a limit.
	DefaultPageSize = 15

	// MaxPageSize caps the listing page size.
	MaxPageSize = 100
)
