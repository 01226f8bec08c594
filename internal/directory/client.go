// internal/directory/client.go

// Package directory fetches referral providers from the directory service.
// The wizard's referral step offers these entries alongside manual entry.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dental-intake/internal/common/config"
	"dental-intake/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.DirectoryConfig) *Client {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// ListProviders fetches the full provider directory. Callers treat an error
// as "directory unavailable" and fall back to manual referral entry.
func (c *Client) ListProviders(ctx context.Context) ([]models.ProviderProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/providers", nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	var providers []models.ProviderProfile
	if err := json.NewDecoder(resp.Body).Decode(&providers); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	return providers, nil
}
