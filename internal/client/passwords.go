package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/internal/http"
	"github.com/passforge-io/passforge-go/pkg/passforge"
)

// PasswordsClient implements passforge.PasswordsClient.
type PasswordsClient struct {
	httpClient *http.Client
}

// NewPasswordsClient creates a new passwords client.
func NewPasswordsClient(httpClient *http.Client) *PasswordsClient {
	return &PasswordsClient{
		httpClient: httpClient,
	}
}

// generatePayload is the wire form of a generation request. Every field is
// explicit so the service never has to guess at defaults.
type generatePayload struct {
	Length    int  `json:"length"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// buildGeneratePayload applies defaults and clamps the requested length into
// the range the service accepts. A nil request means all defaults.
func buildGeneratePayload(request *passforge.GenerateRequest) generatePayload {
	payload := generatePayload{
		Length:    constants.DefaultPasswordLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}

	if request == nil {
		return payload
	}

	if request.Length != 0 {
		payload.Length = clampLength(request.Length)
	}

	if request.Uppercase != nil {
		payload.Uppercase = *request.Uppercase
	}

	if request.Lowercase != nil {
		payload.Lowercase = *request.Lowercase
	}

	if request.Numbers != nil {
		payload.Numbers = *request.Numbers
	}

	if request.Symbols != nil {
		payload.Symbols = *request.Symbols
	}

	return payload
}

func clampLength(length int) int {
	if length < constants.MinPasswordLength {
		return constants.MinPasswordLength
	}

	if length > constants.MaxPasswordLength {
		return constants.MaxPasswordLength
	}

	return length
}

func clampCount(count int) int {
	if count < 1 {
		return constants.DefaultBulkCount
	}

	if count > constants.MaxBulkCount {
		return constants.MaxBulkCount
	}

	return count
}

// Generate implements passforge.PasswordsClient.Generate.
func (c *PasswordsClient) Generate(ctx context.Context, request *passforge.GenerateRequest) (*passforge.Password, error) {
	payload := buildGeneratePayload(request)

	resp, err := c.httpClient.Post(ctx, "/password", payload)
	if err != nil {
		return nil, fmt.Errorf("generating password: %w", err)
	}

	var password passforge.Password

	err = decodeResponse(resp, &password)
	if err != nil {
		return nil, fmt.Errorf("parsing password response: %w", err)
	}

	return &password, nil
}

// GenerateBulk implements passforge.PasswordsClient.GenerateBulk. The count
// and length ride in the query string; the character options ride in the body.
func (c *PasswordsClient) GenerateBulk(ctx context.Context, count int, request *passforge.GenerateRequest) (*passforge.BulkPasswords, error) {
	payload := buildGeneratePayload(request)
	count = clampCount(count)

	query := url.Values{}
	query.Set("count", strconv.Itoa(count))
	query.Set("length", strconv.Itoa(payload.Length))

	resp, err := c.httpClient.PostQuery(ctx, "/generate-bulk", query, payload)
	if err != nil {
		return nil, fmt.Errorf("generating bulk passwords: %w", err)
	}

	var bulk passforge.BulkPasswords

	err = decodeResponse(resp, &bulk)
	if err != nil {
		return nil, fmt.Errorf("parsing bulk passwords response: %w", err)
	}

	return &bulk, nil
}
