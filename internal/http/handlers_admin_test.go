package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanfield/storefront-gateway/internal/testutil"
)

type navResponse struct {
	Routes []struct {
		Path  string `json:"path"`
		Label string `json:"label"`
	} `json:"routes"`
	Landing string `json:"landing"`
}

func TestAdminHandlers_NavForGuestIsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/api/nav", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var nav navResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nav))
	assert.Empty(t, nav.Routes)
	assert.Equal(t, "/", nav.Landing)
}

func TestAdminHandlers_NavPerRole(t *testing.T) {
	env := newTestEnv(t)

	t.Run("warehouse", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
		req.AddCookie(env.loginAs(t, testutil.WarehouseIdentity()))
		rec := env.do(t, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var nav navResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nav))
		assert.Equal(t, "/admin/warehouse", nav.Landing)

		paths := navPaths(nav)
		assert.Contains(t, paths, "/admin/warehouse")
		assert.NotContains(t, paths, "/admin/sales")
		assert.NotContains(t, paths, "/admin")
	})

	t.Run("admin sees every entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/nav", nil)
		req.AddCookie(env.loginAs(t, testutil.AdminIdentity()))
		rec := env.do(t, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var nav navResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &nav))
		assert.Equal(t, "/admin", nav.Landing)

		paths := navPaths(nav)
		assert.Contains(t, paths, "/admin")
		assert.Contains(t, paths, "/admin/warehouse")
		assert.Contains(t, paths, "/admin/sales")
		assert.Contains(t, paths, "/admin/hr")
	})
}

func navPaths(nav navResponse) []string {
	paths := make([]string, 0, len(nav.Routes))
	for _, r := range nav.Routes {
		paths = append(paths, r.Path)
	}
	return paths
}

func TestAdminHandlers_SectionIncludesUserAndNav(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sales", nil)
	req.AddCookie(env.loginAs(t, testutil.SalesIdentity()))
	rec := env.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Section string         `json:"section"`
		User    map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sales", body.Section)
	assert.Equal(t, "sales", body.User["role"])
}
