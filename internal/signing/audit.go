// internal/signing/audit.go
package signing

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// AuditContext is the submitter context captured at signing time for the
// audit trail.
type AuditContext struct {
	IPAddress string
	UserAgent string
}

// AuditCollector resolves the submitter's public IP at signing time. The
// lookup is a single network read against an echo endpoint; failure is not
// fatal to signing, the IP simply records as unknown.
type AuditCollector struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

func NewAuditCollector(endpoint, userAgent string) *AuditCollector {
	return &AuditCollector{
		endpoint:  endpoint,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Collect resolves the IP and pairs it with the user-agent string.
func (c *AuditCollector) Collect(ctx context.Context) AuditContext {
	audit := AuditContext{
		IPAddress: "unknown",
		UserAgent: c.userAgent,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return audit
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return audit
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return audit
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.IP == "" {
		return audit
	}

	audit.IPAddress = body.IP
	return audit
}
