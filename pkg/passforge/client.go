package passforge

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrDeprecatedClientConstructor = errors.New("use github.com/passforge-io/passforge-go/pkg/pfclient.New to create a client")
)

// PasswordsClient provides access to password generation operations.
type PasswordsClient interface {
	Generate(ctx context.Context, request *GenerateRequest) (*Password, error)
	GenerateBulk(ctx context.Context, count int, request *GenerateRequest) (*BulkPasswords, error)
}

// TeamClient provides access to team membership operations.
type TeamClient interface {
	Get(ctx context.Context, teamID string) (*TeamInfo, error)
	AddMember(ctx context.Context, teamID, email, role string) (*TeamInfo, error)
	RemoveMember(ctx context.Context, teamID, email string) (*TeamInfo, error)
	UpdateMemberRole(ctx context.Context, teamID, email, role string) (*TeamInfo, error)
}

// AccountClient provides access to account-level endpoints.
type AccountClient interface {
	GetUsage(ctx context.Context) (*Usage, error)
	TestConnection(ctx context.Context) *ConnectionStatus
}

type Client interface {
	Passwords() PasswordsClient
	Team() TeamClient

	AccountClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a passforge.Client.
//
// # API key
//
// APIKey is required and must be at least 10 characters; construction fails
// with ErrInvalidCredential otherwise. The key is sent on every request as a
// Bearer token and is never mutated after construction.
//
// # Endpoint resolution
//
// pfclient.New resolves the base URL in this order: APIEndpoint if set, then
// the PASSFORGE_API_ENDPOINT environment variable, then the production
// default. The value is normalized by trimming a trailing slash and adding
// "https://" if no scheme is present.
//
// # Timeouts and retries
//
// Every request is bounded by HTTPTimeout (default 10s); when the bound is
// exceeded the in-flight request is canceled and the call fails with an error
// wrapping ErrTimeout. The client performs exactly one attempt per call.
// Retry policy belongs to the caller; there is deliberately no retry
// configuration.
//
// # Caching
//
// Cache optionally enables a read-through response cache for team and usage
// lookups. When nil (the default) nothing is cached and the client keeps no
// mutable state between calls.
type Config struct {
	// Required fields
	// APIKey: secret key for the PassForge API, minimum 10 characters.
	APIKey string

	// Optional configurations
	// APIEndpoint: base URL override (e.g., "https://api.passforge.io/v1").
	APIEndpoint string
	// HTTPTimeout: per-request bound; 0 uses the 10s default.
	HTTPTimeout time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
	// Headers: extra headers added to every request.
	Headers map[string]string
	// RequestsPerSecond: client-side rate limit; 0 disables limiting.
	RequestsPerSecond int
	// Cache: optional response cache configuration; nil disables caching.
	Cache *CacheConfig
}

// NewClient creates a new PassForge API client
// Deprecated: Use github.com/passforge-io/passforge-go/pkg/pfclient.New instead.
func NewClient(config *Config) (Client, error) {
	return nil, ErrDeprecatedClientConstructor
}
