package explain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Explain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req["prompt"])
		assert.NotNil(t, req["report"])

		json.NewEncoder(w).Encode(map[string]string{
			"explanation": "The patient carries two no-function alleles.",
		})
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL})
	text, err := c.Explain(context.Background(), map[string]string{"gene": "CYP2C9"}, "")
	require.NoError(t, err)
	assert.Equal(t, "The patient carries two no-function alleles.", text)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL})
	_, err := c.Explain(context.Background(), nil, "why")

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusServiceUnavailable, serr.Status)
}

func TestClient_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL})
	for i := 0; i < 5; i++ {
		_, err := c.Explain(context.Background(), nil, "why")
		require.Error(t, err)
	}

	// By now the breaker is open and requests fail fast.
	_, err := c.Explain(context.Background(), nil, "why")
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Message, "circuit open")
}

func TestClient_UnreachableService(t *testing.T) {
	c := NewClient(Config{URL: "http://127.0.0.1:1"})
	_, err := c.Explain(context.Background(), nil, "why")

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Zero(t, serr.Status)
}
