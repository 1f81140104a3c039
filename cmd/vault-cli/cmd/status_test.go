package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSecurityStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/security/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":0,"msg":"Success","data":{"is_frozen":false,"daily_spent":"1.5"}}`))
	}))
	defer srv.Close()

	data, err := fetchSecurityStatus(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"is_frozen": false`)
	assert.Contains(t, string(data), `"daily_spent": "1.5"`)
}

func TestFetchSecurityStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":10001,"msg":"Internal server error","data":{}}`))
	}))
	defer srv.Close()

	_, err := fetchSecurityStatus(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10001")
}

func TestFetchSecurityStatusHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := fetchSecurityStatus(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
