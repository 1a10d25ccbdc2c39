package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passforge-io/passforge-go/internal/auth"
)

func TestStaticKeyManager_GetKey(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticKeyManager("pf_live_1234567890")

	key, err := manager.GetKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pf_live_1234567890", key)
}

func TestStaticKeyManager_SetKey(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticKeyManager("pf_live_1234567890")
	manager.SetKey("pf_live_0987654321")

	key, err := manager.GetKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pf_live_0987654321", key)
}

func TestStaticKeyManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticKeyManager("pf_live_1234567890")
	done := make(chan bool)

	go func() {
		for i := 0; i < 100; i++ {
			manager.SetKey("pf_live_aaaaaaaaaa")
			manager.SetKey("pf_live_bbbbbbbbbb")
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			_, _ = manager.GetKey(context.Background())
		}
		done <- true
	}()

	<-done
	<-done

	key, err := manager.GetKey(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, key)
}

func TestRedact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "empty key",
			key:      "",
			expected: "***",
		},
		{
			name:     "short key",
			key:      "abc123",
			expected: "***",
		},
		{
			name:     "full key keeps prefix and suffix",
			key:      "pf_live_1234567890",
			expected: "pf_l***90",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, auth.Redact(tt.key))
		})
	}
}
