package hostapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AdminClient performs the owner-authenticated calls used to set the
// extension up: registration and assignment to a map. The owner is
// identified by a session cookie.
type AdminClient struct {
	baseURL string
	cookie  string
	client  *http.Client
}

// NewAdminClient builds a client for the host at baseURL.
func NewAdminClient(baseURL, cookie string, timeout time.Duration) (*AdminClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("host base url is required")
	}
	if strings.TrimSpace(cookie) == "" {
		return nil, fmt.Errorf("owner cookie is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AdminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		cookie:  cookie,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// Register posts the extension declaration to the host and returns the
// host's description of the registered extension.
func (a *AdminClient) Register(ctx context.Context, declaration any) (map[string]any, error) {
	var out map[string]any
	if err := a.post(ctx, "/extensions", declaration, &out); err != nil {
		return nil, fmt.Errorf("register extension: %w", err)
	}
	return out, nil
}

// AssignToMap attaches a registered extension to a map.
func (a *AdminClient) AssignToMap(ctx context.Context, extensionID, mapID string) (map[string]any, error) {
	if extensionID == "" || mapID == "" {
		return nil, fmt.Errorf("extension id and map id are required")
	}
	path := "/extensions/" + url.PathEscape(extensionID) + "/maps/" + url.PathEscape(mapID) + "/assign"

	var out map[string]any
	if err := a.post(ctx, path, struct{}{}, &out); err != nil {
		return nil, fmt.Errorf("assign extension: %w", err)
	}
	return out, nil
}

func (a *AdminClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", a.cookie)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("host response %s: %s", resp.Status, strings.TrimSpace(string(data)))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
