package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	apperrors "github.com/city-fighting/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_GetJSON(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request with bearer token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"value": 42}`))
		}))
		defer server.Close()

		c := New("test", server.URL+"/", "secret", 5*time.Second, logger)

		var out struct {
			Value int `json:"value"`
		}
		err := c.GetJSON(context.Background(), c.URL("/thing", url.Values{"q": {"a b"}}), &out)
		require.NoError(t, err)
		assert.Equal(t, 42, out.Value)
		assert.Equal(t, "Bearer secret", gotAuth)
	})

	t.Run("no token means no authorization header", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := New("test", server.URL, "", 5*time.Second, logger)
		var out map[string]interface{}
		require.NoError(t, c.GetJSON(context.Background(), c.URL("/", nil), &out))
		assert.Empty(t, gotAuth)
		assert.False(t, c.HasToken())
	})

	t.Run("non-200 is source unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := New("test", server.URL, "", 5*time.Second, logger)
		var out map[string]interface{}
		err := c.GetJSON(context.Background(), c.URL("/", nil), &out)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("malformed json is source unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"value":`))
		}))
		defer server.Close()

		c := New("test", server.URL, "", 5*time.Second, logger)
		var out map[string]interface{}
		err := c.GetJSON(context.Background(), c.URL("/", nil), &out)
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
	})

	t.Run("timeout is source unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := New("test", server.URL, "", 50*time.Millisecond, logger)
		var out map[string]interface{}
		err := c.GetJSON(context.Background(), c.URL("/", nil), &out)
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnavailable))
	})
}
