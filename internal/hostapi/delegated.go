// Package hostapi talks to the host REST API: best-effort callbacks made with
// a user's delegated token, and the owner-authenticated admin calls used for
// registration.
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

	"github.com/bhandras/rfext/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultTimeout bounds a single delegated call.
	DefaultTimeout = 10 * time.Second
	// maxLoggedBody caps how much of an error body ends up in logs.
	maxLoggedBody = 4 << 10
)

var tracer = otel.Tracer("github.com/bhandras/rfext/internal/hostapi")

// DelegatedConfig is the wiring shared by every delegated client.
type DelegatedConfig struct {
	// BaseURL is the host API base URL.
	BaseURL string
	// Timeout bounds each call. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Delegated performs one callback into the host on behalf of the invoking
// user. Build one per command invocation: the delegated token is scoped to
// that invocation and is not reused.
//
// Calls are best effort. A non-200 reply, a transport error or a timeout is
// logged and otherwise ignored, so a failed callback never fails the
// command.
type Delegated struct {
	baseURL string
	timeout time.Duration
	token   string
}

// NewDelegated binds cfg to one delegated token.
func NewDelegated(cfg DelegatedConfig, token string) *Delegated {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Delegated{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: timeout,
		token:   token,
	}
}

// Notify asks the host to show a notification on mapID.
func (d *Delegated) Notify(ctx context.Context, mapID string, req NotificationRequest) {
	if d.post(ctx, "notification", notificationPath+url.PathEscape(mapID), req) {
		logger.Infof("Notification has been created")
	}
}

// Dialog asks the host to open a dialog on mapID.
func (d *Delegated) Dialog(ctx context.Context, mapID string, req DialogRequest) {
	if d.post(ctx, "dialog", dialogPath+url.PathEscape(mapID), req) {
		logger.Infof("Dialog has been created")
	}
}

// post sends body to path and reports whether the host answered 200. The
// HTTP client, its transport and the response are released before it
// returns.
func (d *Delegated) post(ctx context.Context, op, path string, body any) bool {
	ctx, span := tracer.Start(ctx, "hostapi.delegated."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("rfext.host.path", path)),
	)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	client := &http.Client{Transport: transport}
	defer transport.CloseIdleConnections()

	status, respBody, err := d.do(ctx, client, path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Errorf("Delegated call %s failed: %v", path, err)
		return false
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if status != http.StatusOK {
		span.SetStatus(codes.Error, http.StatusText(status))
		logger.Errorf("Delegated call %s was NOT accepted (status %d): %s", path, status, respBody)
		return false
	}
	return true
}

func (d *Delegated) do(ctx context.Context, client *http.Client, path string, body any) (int, string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, "", fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(DelegatedPrincipal, d.token)

	logger.Debugf("Delegated call %s with token %s", path, logger.Redact(d.token))

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, strings.TrimSpace(string(data)), nil
}
