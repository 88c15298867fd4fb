package resolution

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/pkg/platform/sentinel"
)

func TestResolveReturnsCanonicalIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/resolve", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"canonicalId": "person:jonathan_smith",
			"canonicalName": "Jonathan Smith",
			"type": "PERSON",
			"aliases": ["John Smith", "J. Smith"],
			"metadata": {"source": "registry"}
		}`))
	}))
	defer server.Close()

	resolved, err := NewClient(server.URL).Resolve(context.Background(), "John Smith", "PERSON")
	require.NoError(t, err)
	assert.Equal(t, "person:jonathan_smith", resolved.CanonicalID)
	assert.Equal(t, "Jonathan Smith", resolved.CanonicalName)
	assert.Equal(t, []string{"John Smith", "J. Smith"}, resolved.Aliases)
}

func TestResolveUnknownEntityIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Resolve(context.Background(), "Nobody", "PERSON")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestResolveServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Resolve(context.Background(), "John Smith", "PERSON")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
