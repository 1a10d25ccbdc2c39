package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIKeyConfigured  = errors.New("no API key configured, use 'passforge login' or set PASSFORGE_API_KEY")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrConfigValueRequired = errors.New("configuration value required")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be 'json', 'yaml', or 'table'")
	ErrEmailRequired       = errors.New("member email is required")
	ErrTeamIDRequired      = errors.New("team ID is required")
	ErrInvalidTimeout      = errors.New("timeout must be a positive duration")
)

// Login errors.
var (
	ErrEmptyAPIKey        = errors.New("API key must not be empty")
	ErrVerificationFailed = errors.New("could not verify API key against the endpoint")
)
