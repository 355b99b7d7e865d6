package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/bhandras/rfext/internal/api/handlers"
	"github.com/bhandras/rfext/internal/command"
	"github.com/bhandras/rfext/internal/crypto"
	"github.com/bhandras/rfext/internal/hostapi"
	"github.com/bhandras/rfext/internal/maps"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	mu     sync.Mutex
	saved  map[string][]string
	purged []string
}

func (s *recordingStore) SaveServiceToken(ctx context.Context, mapID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string][]string)
	}
	s.saved[mapID] = append(s.saved[mapID], token)
	return nil
}

func (s *recordingStore) PurgeMap(ctx context.Context, mapID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purged = append(s.purged, mapID)
	return nil
}

type fixture struct {
	router   *gin.Engine
	store    *recordingStore
	hostHits *int
}

func newFixture(t *testing.T, hostStatus int) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hits := 0
	var mu sync.Mutex
	host := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, hostapi.DelegatedPrincipal, user)
		require.Equal(t, "delegated-1", pass)
		w.WriteHeader(hostStatus)
	}))
	t.Cleanup(host.Close)

	views, err := crypto.NewViewTokens("master", 15*time.Minute)
	require.NoError(t, err)

	registry, err := command.NewBuiltinRegistry()
	require.NoError(t, err)
	deps := command.NewDeps(
		command.DelegatedDialer(hostapi.DelegatedConfig{BaseURL: host.URL, Timeout: time.Second}),
		views,
		"http://ext.test",
		nil,
	)

	store := &recordingStore{}
	router := NewRouter(RouterDeps{
		Dispatcher:      command.NewDispatcher(registry, deps, command.DispatcherOptions{ExposeTraceback: true}),
		Lifecycle:       maps.NewLifecycle(store),
		Views:           views,
		ExtensionName:   "test-extension",
		AllowedOrigins:  []string{"*"},
		ExposeTraceback: true,
	})
	return fixture{router: router, store: store, hostHits: &hits}
}

func (f fixture) do(t *testing.T, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAssignMapDeliversTokenOnce(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/maps/m1", map[string]string{handlers.HeaderExtensionToken: "svc-abc"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{}`, w.Body.String())
	require.Equal(t, map[string][]string{"m1": {"svc-abc"}}, f.store.saved)
}

func TestAssignMapWithoutTokenIsRejected(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/maps/m1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	errBody := body["error"].(map[string]any)
	require.Equal(t, float64(400), errBody["code"])
	require.NotEmpty(t, errBody["message"])
	require.Empty(t, f.store.saved)
}

func TestRemoveMapIsIdempotent(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	for i := 0; i < 2; i++ {
		w := f.do(t, http.MethodDelete, "/api/maps/m1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{}`, w.Body.String())
	}
	require.Equal(t, []string{"m1", "m1"}, f.store.purged)
}

func TestUnknownCommandIsNotFound(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/commands/doesnotexist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/unmatched", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorCommandIsInternalError(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/commands/with_error?mapId=m1&userId=u1", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	errBody := decodeBody(t, w)["error"].(map[string]any)
	require.Equal(t, float64(500), errBody["code"])
	require.NotEmpty(t, errBody["message"])
	require.NotEmpty(t, errBody["traceback"])
}

func TestCommandMissingArgument(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/commands/notify?userId=u1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotifyCommand(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/commands/notify?mapId=m1&userId=u1&nodeId=n1", map[string]string{handlers.HeaderSessionID: "s1"})
	require.Equal(t, http.StatusOK, w.Code)
	notify := decodeBody(t, w)["notify"].(map[string]any)
	require.Equal(t, "Hello, RedForester!", notify["content"])
	require.Equal(t, "DEFAULT", notify["style"])
	require.Equal(t, float64(4000), notify["durationMs"])
	require.Contains(t, notify, "urlCancel")
	require.Nil(t, notify["urlCancel"])
}

func TestDelegatedCommandsAbsorbHostFailure(t *testing.T) {
	f := newFixture(t, http.StatusServiceUnavailable)
	headers := map[string]string{handlers.HeaderExtensionToken: "delegated-1", handlers.HeaderSessionID: "s1"}

	for _, name := range []string{"notify_from_kv", "dialog_from_kv"} {
		w := f.do(t, http.MethodPost, "/api/commands/"+name+"?mapId=m1&userId=u1", headers)
		require.Equal(t, http.StatusOK, w.Code, name)
		require.JSONEq(t, `{}`, w.Body.String())
	}
	require.Equal(t, 2, *f.hostHits)
}

func TestDelegatedCommandWithoutToken(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/commands/notify_from_kv?mapId=m1&userId=u1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Zero(t, *f.hostHits)
}

func TestIframeLinkOpensView(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	w := f.do(t, http.MethodPost, "/api/commands/iframe?mapId=m1&userId=u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	iframe := decodeBody(t, w)["iframe"].(map[string]any)
	require.Equal(t, float64(300), iframe["width"])
	require.Equal(t, float64(400), iframe["height"])
	require.Equal(t, "Iframe Command", iframe["title"])

	link, err := url.Parse(iframe["url"].(string))
	require.NoError(t, err)
	require.Equal(t, "ext.test", link.Host)
	require.Equal(t, "/view", link.Path)

	w = f.do(t, http.MethodGet, link.RequestURI(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/html")
	require.Contains(t, w.Body.String(), "m1")
	require.Contains(t, w.Body.String(), "iframe")

	w = f.do(t, http.MethodGet, "/view?token=forged", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAlive(t *testing.T) {
	f := newFixture(t, http.StatusOK)

	for _, path := range []string{"/", "/api/is-alive"} {
		w := f.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "I'm alive!", w.Body.String())

		w = f.do(t, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"message": "I'm alive!"}`, w.Body.String())
	}
}

func TestCORSConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	require.True(t, all.AllowAllOrigins)
	require.Empty(t, all.AllowOrigins)

	some := corsConfig([]string{"https://app.redforester.com"})
	require.False(t, some.AllowAllOrigins)
	require.True(t, some.AllowCredentials)
	require.Equal(t, []string{"https://app.redforester.com"}, some.AllowOrigins)
}
