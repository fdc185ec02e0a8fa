package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"fashionhub/api"
	"fashionhub/guard"
	"fashionhub/service/profile"
	"fashionhub/theme"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testProfile := &profile.Profile{
		Mode: "dev",
		Port: 0,
		Data: t.TempDir(),
	}
	testProfile.DSN = filepath.Join(testProfile.Data, "fashionhub_test.db")

	s, err := NewService(context.Background(), testProfile)
	require.NoError(t, err)
	return s
}

type testClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func accessTokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "fashionhub.access-token" {
			return cookie.Value
		}
	}
	t.Fatal("access token cookie not set")
	return ""
}

func signUp(t *testing.T, c *testClient, username, password string, role api.Role) *api.User {
	t.Helper()
	w := c.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"username": username,
		"password": password,
		"role":     role,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := &api.User{}
	decodeData(t, w, user)
	c.token = accessTokenFrom(t, w)
	return user
}

func TestSignUpBootstrapAndGate(t *testing.T) {
	s := newTestService(t)
	admin := &testClient{t: t, engine: s.Engine()}

	// The very first account becomes the platform super admin even though
	// the request did not ask for it.
	user := signUp(t, admin, "amelia", "secret123", "")
	require.Equal(t, api.SuperAdmin, user.Role)

	// Further signups are refused until allow-signup is switched on.
	second := &testClient{t: t, engine: s.Engine()}
	w := second.do(http.MethodPost, "/api/auth/signup", map[string]any{
		"username": "storekeeper",
		"password": "secret123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = admin.do(http.MethodPost, "/api/system/setting", map[string]any{
		"name":  api.SystemSettingAllowSignUpName,
		"value": "true",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	storeAdmin := signUp(t, second, "storekeeper", "secret123", api.StoreAdmin)
	require.Equal(t, api.StoreAdmin, storeAdmin.Role)
}

func TestPreferenceRoutesEnforcePolicy(t *testing.T) {
	s := newTestService(t)
	admin := &testClient{t: t, engine: s.Engine()}
	signUp(t, admin, "amelia", "secret123", "")

	// Defaults before any write.
	w := admin.do(http.MethodGet, "/api/preference", nil)
	require.Equal(t, http.StatusOK, w.Code)
	set := &api.PreferenceSet{}
	decodeData(t, w, set)
	require.Equal(t, api.DefaultPreferenceSet(), set)

	// A super admin may pick dark but not an accent color.
	w = admin.do(http.MethodPost, "/api/preference", map[string]any{
		"key":   api.PreferenceKeyMode,
		"value": "dark",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = admin.do(http.MethodPost, "/api/preference", map[string]any{
		"key":   api.PreferenceKeyColor,
		"value": "blue",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Out-of-enum values are rejected before the policy is consulted.
	w = admin.do(http.MethodPost, "/api/preference", map[string]any{
		"key":   api.PreferenceKeyMode,
		"value": "purple",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = admin.do(http.MethodGet, "/api/preference", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, set)
	require.Equal(t, api.ThemeModeDark, set.Mode)

	// The policy menu only offers the mode field to a restricted role.
	w = admin.do(http.MethodGet, "/api/preference/policy", nil)
	require.Equal(t, http.StatusOK, w.Code)
	menu := map[string][]string{}
	decodeData(t, w, &menu)
	require.Equal(t, map[string][]string{
		api.PreferenceKeyMode.String(): {"light", "dark"},
	}, menu)
}

func TestThemeResolution(t *testing.T) {
	s := newTestService(t)

	// Anonymous viewers resolve from the defaults: system mirrors the
	// reported ambient appearance.
	anonymous := &testClient{t: t, engine: s.Engine()}
	w := anonymous.do(http.MethodGet, "/api/theme?ambientDark=true", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := theme.EffectiveState{}
	decodeData(t, w, &state)
	require.Equal(t, api.ThemeModeDark, state.Mode)

	w = anonymous.do(http.MethodGet, "/api/theme?ambientDark=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &state)
	require.Equal(t, api.ThemeModeLight, state.Mode)
	require.Equal(t, "ltr", state.Direction)

	// A restricted role on the system default coerces to light regardless
	// of ambient.
	admin := &testClient{t: t, engine: s.Engine()}
	signUp(t, admin, "amelia", "secret123", "")
	w = admin.do(http.MethodGet, "/api/theme?ambientDark=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &state)
	require.Equal(t, api.ThemeModeLight, state.Mode)
}

func TestAccessDecideRoutes(t *testing.T) {
	s := newTestService(t)

	anonymous := &testClient{t: t, engine: s.Engine()}
	w := anonymous.do(http.MethodPost, "/api/access/decide", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decision := guard.Decision{}
	decodeData(t, w, &decision)
	require.Equal(t, guard.Decision{RedirectTo: guard.LoginPath}, decision)

	admin := &testClient{t: t, engine: s.Engine()}
	signUp(t, admin, "amelia", "secret123", "")

	// The super admin visiting a store-admin route is sent to their own
	// home, not granted access.
	w = admin.do(http.MethodPost, "/api/access/decide", map[string]any{
		"requiredRole": api.StoreAdmin,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &decision)
	require.Equal(t, guard.Decision{RedirectTo: guard.SuperAdminHomePath}, decision)

	w = admin.do(http.MethodPost, "/api/access/decide", map[string]any{
		"requiredRole": api.SuperAdmin,
	})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &decision)
	require.True(t, decision.Allow)
}

func TestRoleGateOnSystemSettings(t *testing.T) {
	s := newTestService(t)
	admin := &testClient{t: t, engine: s.Engine()}
	signUp(t, admin, "amelia", "secret123", "")

	w := admin.do(http.MethodPost, "/api/system/setting", map[string]any{
		"name":  api.SystemSettingAllowSignUpName,
		"value": "true",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	customer := &testClient{t: t, engine: s.Engine()}
	signUp(t, customer, "shopper", "secret123", "")

	w = customer.do(http.MethodGet, "/api/system/setting", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	decision := guard.Decision{}
	decodeData(t, w, &decision)
	require.Equal(t, guard.AccountHomePath, decision.RedirectTo)
}

func TestSignInAndLogout(t *testing.T) {
	s := newTestService(t)
	admin := &testClient{t: t, engine: s.Engine()}
	signUp(t, admin, "amelia", "secret123", "")

	fresh := &testClient{t: t, engine: s.Engine()}
	w := fresh.do(http.MethodPost, "/api/auth/signin", map[string]any{
		"username": "amelia",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = fresh.do(http.MethodPost, "/api/auth/signin", map[string]any{
		"username": "amelia",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := &api.User{}
	decodeData(t, w, user)
	require.Equal(t, "amelia", user.Name)
	fresh.token = accessTokenFrom(t, w)

	w = fresh.do(http.MethodGet, "/api/user/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = fresh.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
