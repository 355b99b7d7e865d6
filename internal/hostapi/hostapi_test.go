package hostapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captured struct {
	path     string
	user     string
	password string
	body     map[string]any
}

func recordingHost(t *testing.T, status int, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		got.path = r.URL.Path
		got.user, got.password, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"nope"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDelegatedNotifyUsesBasicAuth(t *testing.T) {
	var got captured
	srv := recordingHost(t, http.StatusOK, &got)

	d := NewDelegated(DelegatedConfig{BaseURL: srv.URL + "/"}, "tok-1")
	d.Notify(context.Background(), "m1", NotificationRequest{
		UserID:    "u1",
		SessionID: "s1",
		Type:      "info",
		Text:      "Hello again RedForester",
	})

	require.Equal(t, "/notify/notification/map/m1", got.path)
	require.Equal(t, DelegatedPrincipal, got.user)
	require.Equal(t, "tok-1", got.password)
	require.Equal(t, map[string]any{
		"user_id":           "u1",
		"session_id":        "s1",
		"notification_type": "info",
		"notification_text": "Hello again RedForester",
	}, got.body)
}

func TestDelegatedDialogOmitsMissingSession(t *testing.T) {
	var got captured
	srv := recordingHost(t, http.StatusOK, &got)

	d := NewDelegated(DelegatedConfig{BaseURL: srv.URL}, "tok-2")
	d.Dialog(context.Background(), "m 2", DialogRequest{
		UserID: "u1",
		Src:    "http://ext.test/view",
		Size:   NewDialogSize(300, 400),
		Title:  "Dialog From Kv Command",
	})

	require.Equal(t, "/notify/dialog/map/m 2", got.path)
	require.NotContains(t, got.body, "session_id")
	require.Equal(t, map[string]any{"width": "300", "height": "400"}, got.body["dialog_size"])
}

func TestDelegatedAbsorbsFailures(t *testing.T) {
	var got captured
	srv := recordingHost(t, http.StatusServiceUnavailable, &got)

	d := NewDelegated(DelegatedConfig{BaseURL: srv.URL}, "tok-3")
	require.False(t, d.post(context.Background(), "notification", notificationPath+"m1", NotificationRequest{UserID: "u1"}))
	require.Equal(t, "/notify/notification/map/m1", got.path)

	unreachable := NewDelegated(DelegatedConfig{BaseURL: "http://127.0.0.1:1"}, "tok-4")
	require.NotPanics(t, func() {
		unreachable.Notify(context.Background(), "m1", NotificationRequest{UserID: "u1"})
	})
}

func TestDelegatedTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	d := NewDelegated(DelegatedConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, "tok-5")
	start := time.Now()
	ok := d.post(context.Background(), "dialog", dialogPath+"m1", DialogRequest{UserID: "u1"})
	require.False(t, ok)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestAdminClientRegisterAndAssign(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, "session=abc", r.Header.Get("Cookie"))
		switch r.URL.Path {
		case "/extensions":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "test-extension", body["name"])
			_, _ = w.Write([]byte(`{"id":"ext-1","name":"test-extension"}`))
		case "/extensions/ext-1/maps/m1/assign":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`forbidden`))
		}
	}))
	t.Cleanup(srv.Close)

	a, err := NewAdminClient(srv.URL, "session=abc", time.Second)
	require.NoError(t, err)

	out, err := a.Register(context.Background(), map[string]any{"name": "test-extension"})
	require.NoError(t, err)
	require.Equal(t, "ext-1", out["id"])

	_, err = a.AssignToMap(context.Background(), "ext-1", "m1")
	require.NoError(t, err)

	_, err = a.AssignToMap(context.Background(), "ext-2", "m1")
	require.ErrorContains(t, err, "403")
	require.Equal(t, int32(3), calls.Load())

	_, err = NewAdminClient(srv.URL, "", time.Second)
	require.Error(t, err)
}
