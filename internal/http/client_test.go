package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pfhttp "github.com/passforge-io/passforge-go/internal/http"
	"github.com/passforge-io/passforge-go/pkg/passforge"
)

// MockKeyManager for testing.
type MockKeyManager struct {
	key string
	err error
}

func (m *MockKeyManager) GetKey(ctx context.Context) (string, error) {
	return m.key, m.err
}

func (m *MockKeyManager) SetKey(key string) {
	m.key = key
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/user", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer pf_live_1234567890", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Contains(t, request.Header.Get("X-Client-Info"), "passforge-go/")

			response := map[string]string{"plan": "team"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		keyManager := &MockKeyManager{key: "pf_live_1234567890"}
		client := pfhttp.NewClient(server.URL, keyManager)

		req := &pfhttp.Request{
			Method: "GET",
			Path:   "/user",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]string

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "team", result["plan"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/team", request.URL.Path)
			assert.Equal(t, "teamId=team-1", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		req := &pfhttp.Request{
			Method: "GET",
			Path:   "/team",
			Query:  url.Values{"teamId": []string{"team-1"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.InDelta(t, 24.0, body["length"], 0.0001)

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		req := &pfhttp.Request{
			Method: "POST",
			Path:   "/password",
			Body:   map[string]int{"length": 24},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		client := pfhttp.NewClient("http://localhost:0", nil)

		_, err := client.Do(context.Background(), &pfhttp.Request{Method: "GET"})
		require.Error(t, err)
		assert.ErrorIs(t, err, passforge.ErrInvalidRequest)
	})

	t.Run("error response with message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]string{"message": "bad key"})
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &pfhttp.Request{Method: "GET", Path: "/user"})
		require.Error(t, err)
		assert.Equal(t, 401, resp.StatusCode)

		remoteErr := &passforge.RemoteError{}
		ok := errors.As(err, &remoteErr)
		require.True(t, ok)
		assert.Equal(t, 401, remoteErr.StatusCode)
		assert.Equal(t, "bad key", remoteErr.Message)
		assert.ErrorIs(t, err, passforge.ErrUnauthorized)
	})

	t.Run("error response without message falls back to status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
			_, _ = writer.Write([]byte("<html>boom</html>"))
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &pfhttp.Request{Method: "GET", Path: "/user"})
		require.Error(t, err)
		assert.Equal(t, 500, resp.StatusCode)

		remoteErr := &passforge.RemoteError{}
		ok := errors.As(err, &remoteErr)
		require.True(t, ok)
		assert.Equal(t, "HTTP 500: Internal Server Error", remoteErr.Message)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		req := &pfhttp.Request{
			Method: "GET",
			Path:   "/user",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := pfhttp.NewClient(server.URL, nil, pfhttp.WithLogger(logger), pfhttp.WithDebug(true))

		req := &pfhttp.Request{
			Method: "GET",
			Path:   "/user",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := pfhttp.NewClient(server.URL, nil, pfhttp.WithTimeout(20*time.Millisecond))

	_, err := client.Get(context.Background(), "/user", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, passforge.ErrTimeout)
	assert.True(t, passforge.IsTimeout(err))
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*pfhttp.Client, context.Context) (*pfhttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *pfhttp.Client, ctx context.Context) (*pfhttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *pfhttp.Client, ctx context.Context) (*pfhttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "POST with query",
			method: "POST",
			fn: func(c *pfhttp.Client, ctx context.Context) (*pfhttp.Response, error) {
				return c.PostQuery(ctx, "/test", url.Values{"count": []string{"5"}}, nil)
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := pfhttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_SingleAttempt(t *testing.T) {
	t.Parallel()
	t.Run("does not retry on server errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, 1, attempts)
	})

	t.Run("does not retry on rate limiting", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := pfhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 429, resp.StatusCode)
		assert.Equal(t, 1, attempts)
		assert.True(t, passforge.IsQuotaExceeded(err))
	})
}

func TestClient_CachedResponse(t *testing.T) {
	t.Parallel()

	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		_ = json.NewEncoder(writer).Encode(map[string]string{"plan": "team"})
	}))
	defer server.Close()

	cache := passforge.NewMemoryCache(10)
	manager := passforge.NewCacheManager(cache, nil)
	chain := passforge.NewInterceptorChain()
	requestInterceptor, responseInterceptor := passforge.CacheInterceptor(manager, nil)
	chain.AddRequestInterceptor(requestInterceptor)
	chain.AddResponseInterceptor(responseInterceptor)

	client := pfhttp.NewClient(server.URL, nil, pfhttp.WithInterceptors(chain))

	// First call goes to the network and populates the cache.
	resp, err := client.Get(context.Background(), "/user", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, requests)

	// Second call is served from cache without another network round trip.
	resp, err = client.Get(context.Background(), "/user", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "HIT", resp.Headers.Get("X-Cache"))
	assert.Equal(t, 1, requests)

	stats := manager.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
}
