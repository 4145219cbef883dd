package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Pyons/cypht/internal/auth"
	"github.com/Pyons/cypht/internal/core"
	"github.com/Pyons/cypht/internal/metrics"
	"github.com/Pyons/cypht/internal/middleware"
	"github.com/Pyons/cypht/internal/services"
	"github.com/Pyons/cypht/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionDump is a test-only route that reports what login left in the
// session.
type sessionDump struct {
	Username    string `json:"username"`
	HasSettings bool   `json:"has_settings"`
	Server      string `json:"server"`
}

func newTestRouter(t *testing.T, svc *services.AccountService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(sessions.Sessions("cypht_session", cookie.NewStore([]byte("test-secret"))))

	h := NewAuthHandler(svc, metrics.NewNoopMetrics())
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	sessionKey := svc.Backend().SessionKey()
	r.GET("/session-dump", func(c *gin.Context) {
		session := sessions.Default(c)
		dump := sessionDump{}
		if v := session.Get(middleware.SessionKeyUsername); v != nil {
			dump.Username = v.(string)
		}
		if v := session.Get(sessionKey); v != nil {
			settings := v.(core.ConnectionSettings)
			dump.HasSettings = true
			dump.Server = settings.Server
		}
		c.JSON(http.StatusOK, dump)
	})

	return r
}

func newLocalService(t *testing.T) *services.AccountService {
	t.Helper()
	s, err := store.New("sqlite", filepath.Join(t.TempDir(), "cypht_test.db"))
	require.NoError(t, err)
	provider := auth.NewLocalProvider(s, 0)
	svc := services.NewAccountService(s, provider, metrics.NewNoopMetrics())

	ok, msg := svc.CreateAccount("alice", "secret123")
	require.True(t, ok, msg)
	return svc
}

func postLogin(r *gin.Engine, username, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	r := newTestRouter(t, newLocalService(t))

	w := postLogin(r, "alice", "secret123")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Result().Cookies(), "login establishes a session")
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	r := newTestRouter(t, newLocalService(t))

	wrongPass := postLogin(r, "alice", "wrong")
	unknownUser := postLogin(r, "nobody", "secret123")
	missingBody := postLogin(r, "", "")

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, http.StatusUnauthorized, missingBody.Code)
	assert.Equal(t, wrongPass.Body.String(), unknownUser.Body.String(),
		"wrong password and unknown user must be indistinguishable")
	assert.Equal(t, wrongPass.Body.String(), missingBody.Body.String())
}

// stubRemoteProvider stands in for a remote mail backend.
type stubRemoteProvider struct {
	fail bool
}

func (p *stubRemoteProvider) Authenticate(
	_ context.Context,
	username, password string,
) (*core.Result, error) {
	if p.fail {
		return nil, auth.ErrCredentialsRejected
	}
	return &core.Result{
		Username: username,
		Success:  true,
		Connection: &core.ConnectionSettings{
			Backend:    "imap",
			Server:     "mail.example.org",
			Port:       993,
			TLS:        true,
			Username:   username,
			Credential: password,
		},
	}, nil
}

func (p *stubRemoteProvider) Name() string { return "imap" }

func TestLogin_ExportsRemoteSettingsToSession(t *testing.T) {
	svc := services.NewAccountService(nil, &stubRemoteProvider{}, metrics.NewNoopMetrics())
	r := newTestRouter(t, svc)

	w := postLogin(r, "bob", "secret123")
	require.Equal(t, http.StatusOK, w.Code)

	// Replay the session cookie to see what login stored.
	req := httptest.NewRequest(http.MethodGet, "/session-dump", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	dumpRec := httptest.NewRecorder()
	r.ServeHTTP(dumpRec, req)

	var dump sessionDump
	require.NoError(t, json.Unmarshal(dumpRec.Body.Bytes(), &dump))
	assert.Equal(t, "bob", dump.Username)
	assert.True(t, dump.HasSettings, "settings exported under the backend session key")
	assert.Equal(t, "mail.example.org", dump.Server)
}

func TestLogin_NoSettingsExportedOnFailure(t *testing.T) {
	svc := services.NewAccountService(nil, &stubRemoteProvider{fail: true}, metrics.NewNoopMetrics())
	r := newTestRouter(t, svc)

	w := postLogin(r, "bob", "wrong")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/session-dump", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	dumpRec := httptest.NewRecorder()
	r.ServeHTTP(dumpRec, req)

	var dump sessionDump
	require.NoError(t, json.Unmarshal(dumpRec.Body.Bytes(), &dump))
	assert.Empty(t, dump.Username)
	assert.False(t, dump.HasSettings)
}

func TestLogout_DropsSession(t *testing.T) {
	svc := services.NewAccountService(nil, &stubRemoteProvider{}, metrics.NewNoopMetrics())
	r := newTestRouter(t, svc)

	login := postLogin(r, "bob", "secret123")
	require.Equal(t, http.StatusOK, login.Code)

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	for _, c := range login.Result().Cookies() {
		logoutReq.AddCookie(c)
	}
	logoutRec := httptest.NewRecorder()
	r.ServeHTTP(logoutRec, logoutReq)
	require.Equal(t, http.StatusOK, logoutRec.Code)

	// The replacement cookie no longer carries session state.
	dumpReq := httptest.NewRequest(http.MethodGet, "/session-dump", nil)
	for _, c := range logoutRec.Result().Cookies() {
		dumpReq.AddCookie(c)
	}
	dumpRec := httptest.NewRecorder()
	r.ServeHTTP(dumpRec, dumpReq)

	var dump sessionDump
	require.NoError(t, json.Unmarshal(dumpRec.Body.Bytes(), &dump))
	assert.Empty(t, dump.Username)
	assert.False(t, dump.HasSettings)
}
