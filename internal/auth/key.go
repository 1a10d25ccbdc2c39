// Package auth manages the API key credential attached to outgoing requests.
package auth

import (
	"context"
	"sync"

	"github.com/passforge-io/passforge-go/internal/constants"
)

// KeyManager supplies the Bearer credential for API requests.
type KeyManager interface {
	// GetKey returns the API key to send with a request.
	GetKey(ctx context.Context) (string, error)
	// SetKey replaces the stored key, e.g. after rotation.
	SetKey(key string)
}

// StaticKeyManager holds a fixed API key. The key never expires and is only
// replaced through SetKey.
type StaticKeyManager struct {
	mu  sync.RWMutex
	key string
}

// NewStaticKeyManager creates a key manager around a fixed API key.
func NewStaticKeyManager(key string) *StaticKeyManager {
	return &StaticKeyManager{key: key}
}

// GetKey returns the stored API key.
func (m *StaticKeyManager) GetKey(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.key, nil
}

// SetKey replaces the stored API key.
func (m *StaticKeyManager) SetKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.key = key
}

// Redact returns a display-safe form of an API key. Short keys are fully
// masked; longer keys keep the leading prefix so accounts can be told apart.
func Redact(key string) string {
	if len(key) <= 8 {
		return constants.MaskedSecret
	}

	return key[:4] + constants.MaskedSecret + key[len(key)-2:]
}
