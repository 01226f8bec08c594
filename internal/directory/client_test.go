// internal/directory/client_test.go
package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dental-intake/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/providers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "prov-1", "practiceName": "Lakeside Orthodontics", "fullName": "Dr. Ada Lake", "contactEmail": "ada@lakeside.example", "contactPhone": "5550001111", "city": "Springfield", "state": "IL"},
			{"id": "prov-2", "practiceName": "Downtown Dental", "fullName": "Dr. Sam Ortiz", "contactEmail": "sam@downtown.example", "contactPhone": "5550002222", "city": "Shelbyville", "state": "IL"}
		]`))
	}))
	defer server.Close()

	c := NewClient(config.DirectoryConfig{BaseURL: server.URL})
	providers, err := c.ListProviders(context.Background())
	require.NoError(t, err)

	require.Len(t, providers, 2)
	assert.Equal(t, "prov-1", providers[0].ID)
	assert.Equal(t, "Lakeside Orthodontics", providers[0].PracticeName)
	assert.Equal(t, "Dr. Sam Ortiz", providers[1].FullName)
}

func TestListProvidersErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		c := NewClient(config.DirectoryConfig{BaseURL: server.URL})
		_, err := c.ListProviders(context.Background())
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		c := NewClient(config.DirectoryConfig{BaseURL: "http://127.0.0.1:1", TimeoutMS: 200})
		_, err := c.ListProviders(context.Background())
		assert.Error(t, err)
	})
}
