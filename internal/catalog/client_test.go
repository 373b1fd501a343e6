package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victorverma3/ktpdatabase/internal/domain"
	"github.com/victorverma3/ktpdatabase/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListKnownProfessors_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/catalog/subjects/computer-science/professors", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"professors":[{"name":"J. Doe"},{"name":"A. Smith"},{"name":"j doe"}]}`))
	}))
	defer server.Close()

	client := NewClient(httpclient.New(httpclient.DefaultConfig()), server.URL, 5*time.Second, testLogger())

	professors, err := client.ListKnownProfessors(context.Background(), domain.SubjectComputerScience)
	require.NoError(t, err)

	// Duplicate spellings collapse onto one canonical entry.
	require.Len(t, professors, 2)
	assert.Equal(t, "A. Smith", professors[0].Name)
	assert.Equal(t, "J. Doe", professors[1].Name)
}

func TestListKnownProfessors_EmptyRoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"professors":[]}`))
	}))
	defer server.Close()

	client := NewClient(httpclient.New(httpclient.DefaultConfig()), server.URL, 5*time.Second, testLogger())

	professors, err := client.ListKnownProfessors(context.Background(), domain.SubjectEngCore)
	require.NoError(t, err)
	assert.Empty(t, professors)
}

func TestListKnownProfessors_DownstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"unknown subject"}}`))
	}))
	defer server.Close()

	client := NewClient(httpclient.New(httpclient.Config{
		Timeout:         time.Second,
		MaxConnsPerHost: 10,
	}), server.URL, 5*time.Second, testLogger())

	_, err := client.ListKnownProfessors(context.Background(), domain.Subject("unknown"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog")
}

func TestListKnownProfessors_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{broken`))
	}))
	defer server.Close()

	client := NewClient(httpclient.New(httpclient.DefaultConfig()), server.URL, 5*time.Second, testLogger())

	_, err := client.ListKnownProfessors(context.Background(), domain.SubjectEconomics)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode roster response")
}
