package passforge

import "time"

// GenerateRequest represents a password generation request.
//
// Length is clamped by the service limits (8 to 64; zero selects the default
// of 16). The character-class flags are tri-state: nil means "not specified"
// and enables the class, matching the service default of all classes on.
type GenerateRequest struct {
	// Length is the requested password length; 0 uses the service default.
	Length int `json:"length,omitempty" yaml:"length,omitempty"`
	// Uppercase includes A-Z; nil enables the class.
	Uppercase *bool `json:"uppercase,omitempty" yaml:"uppercase,omitempty"`
	// Lowercase includes a-z; nil enables the class.
	Lowercase *bool `json:"lowercase,omitempty" yaml:"lowercase,omitempty"`
	// Numbers includes 0-9; nil enables the class.
	Numbers *bool `json:"numbers,omitempty" yaml:"numbers,omitempty"`
	// Symbols includes punctuation; nil enables the class.
	Symbols *bool `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// Password represents a generated password.
type Password struct {
	Password string  `json:"password"          yaml:"password"`
	Length   int     `json:"length"            yaml:"length"`
	Strength string  `json:"strength,omitempty" yaml:"strength,omitempty"`
	Entropy  float64 `json:"entropy,omitempty"  yaml:"entropy,omitempty"`
}

// BulkPasswords represents the result of a bulk generation request.
type BulkPasswords struct {
	Passwords []string `json:"passwords" yaml:"passwords"`
	Count     int      `json:"count"     yaml:"count"`
	Length    int      `json:"length"    yaml:"length"`
}

// TeamMember represents a single member of a team.
type TeamMember struct {
	Email   string    `json:"email"             yaml:"email"`
	Role    string    `json:"role"              yaml:"role"`
	AddedAt time.Time `json:"addedAt,omitempty" yaml:"addedAt,omitempty"`
}

// TeamInfo represents a team and its membership.
type TeamInfo struct {
	TeamID      string       `json:"teamId"                yaml:"teamId"`
	Name        string       `json:"name"                  yaml:"name"`
	Plan        string       `json:"plan,omitempty"        yaml:"plan,omitempty"`
	MemberLimit int          `json:"memberLimit,omitempty" yaml:"memberLimit,omitempty"`
	Members     []TeamMember `json:"members"               yaml:"members"`
}

// Quota represents the generation allowance for the current billing period.
type Quota struct {
	Limit     int `json:"limit"     yaml:"limit"`
	Used      int `json:"used"      yaml:"used"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

// Usage represents account usage and quota information.
type Usage struct {
	Plan               string    `json:"plan"                     yaml:"plan"`
	PasswordsGenerated int       `json:"passwordsGenerated"       yaml:"passwordsGenerated"`
	BulkRequests       int       `json:"bulkRequests"             yaml:"bulkRequests"`
	Quota              Quota     `json:"quota"                    yaml:"quota"`
	PeriodResetsAt     time.Time `json:"periodResetsAt,omitempty" yaml:"periodResetsAt,omitempty"`
}

// ConnectionStatus represents the outcome of a connectivity test. Success is
// false when the endpoint could not be reached or rejected the request; the
// reason is carried in Message rather than an error.
type ConnectionStatus struct {
	Success bool                   `json:"success"        yaml:"success"`
	Message string                 `json:"message"        yaml:"message"`
	Data    map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// Bool returns a pointer to the given bool, for use in GenerateRequest flags.
func Bool(v bool) *bool {
	return &v
}
