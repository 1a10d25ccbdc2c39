package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 10 * time.Second

	// ShortHTTPTimeout is used for quick operations such as connectivity checks.
	ShortHTTPTimeout = 5 * time.Second
)

// API key constraints.
const (
	// MinAPIKeyLength is the minimum accepted length for an API key.
	MinAPIKeyLength = 10
)

// Password generation limits.
const (
	// MinPasswordLength is the shortest password the service generates.
	MinPasswordLength = 8

	// MaxPasswordLength is the longest password the service generates.
	MaxPasswordLength = 64

	// DefaultPasswordLength is used when no length is requested.
	DefaultPasswordLength = 16
)

// Bulk generation limits.
const (
	// MaxBulkCount is the largest number of passwords in one bulk request.
	MaxBulkCount = 1000

	// DefaultBulkCount is used when no count is requested.
	DefaultBulkCount = 10
)

// Team constants.
const (
	// DefaultTeamRole is assigned to new members when no role is given.
	DefaultTeamRole = "member"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2

	// PercentageMultiplier converts decimals to percentages for display.
	PercentageMultiplier = 100.0
)

// Cache size and lifetime constants.
const (
	// DefaultCacheSize is the default cache entry limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// CacheMinTTL is the minimum cache time-to-live.
	CacheMinTTL = 30 * time.Second

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024

	// TeamCacheTTL is the TTL for team lookups.
	TeamCacheTTL = 2 * time.Minute

	// UsageCacheTTL is the TTL for usage summaries.
	UsageCacheTTL = 30 * time.Second
)
