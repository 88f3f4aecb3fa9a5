package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is what the property form needs from object storage: store a blob
// under a key and resolve the stable public URL for that key.
type Client interface {
	Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error
	PublicURL(bucket, path string) string
}

// SupabaseClient is a Client backed by the Supabase Storage HTTP API.
type SupabaseClient struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

// Upload stores the object via POST /storage/v1/object/{bucket}/{path}.
func (c *SupabaseClient) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.BaseURL == "" {
		return fmt.Errorf("supabase: SUPABASE_URL is not set")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("supabase: SUPABASE_SECRET_KEY is not set")
	}
	base := strings.TrimRight(c.BaseURL, "/")
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", base, bucket, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	// Match @supabase/supabase-js: both apikey and Authorization Bearer (same key)
	req.Header.Set("apikey", c.SecretKey)
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		bodyStr := string(respBody)
		if resp.StatusCode == 400 || resp.StatusCode == 403 {
			if strings.Contains(bodyStr, "Invalid Compact JWS") || strings.Contains(bodyStr, "Unauthorized") {
				return fmt.Errorf("supabase storage requires the service_role key (secret), not the anon key: set SUPABASE_SECRET_KEY to your project's service_role key (raw body: %s)", bodyStr)
			}
		}
		return fmt.Errorf("supabase error: status %d body: %s", resp.StatusCode, bodyStr)
	}
	return nil
}

// PublicURL builds the stable public URL for a stored object. The bucket must
// be marked public in the Supabase dashboard.
func (c *SupabaseClient) PublicURL(bucket, path string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", base, bucket, path)
}
