package permission

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/auth"
	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
)

const testSecret = "test-secret"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Webserver.JWTSecret = testSecret

	app := fiber.New()
	app.Use(auth.BearerMiddleware(testSecret))

	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, db, auth.NewService(nil)))

	return app
}

func TestRoles(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/permissions/roles", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool `json:"success"`
		Data    []struct {
			Name         string `json:"name"`
			BranchScoped bool   `json:"branchScoped"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	require.Len(t, out.Data, 5)

	scoped := map[string]bool{}
	for _, role := range out.Data {
		scoped[role.Name] = role.BranchScoped
	}

	assert.True(t, scoped["SC_Admin"], "SC_Admin is branch scoped")
	assert.False(t, scoped["Admin"])
	assert.False(t, scoped["SC_Technician"])
}

func TestRolePermissions_UnknownRole(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/permissions/roles/Manager", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheck(t *testing.T) {
	app := setupApp(t)

	for _, tc := range []struct {
		name    string
		body    map[string]any
		allowed bool
	}{
		{
			name:    "technician can update results",
			body:    map[string]any{"role": "SC_Technician", "permissions": []string{auth.PermUpdateWorkResults}},
			allowed: true,
		},
		{
			name:    "technician cannot create recalls",
			body:    map[string]any{"role": "SC_Technician", "permissions": []string{auth.PermCreateRecall}},
			allowed: false,
		},
		{
			name:    "unknown role is false",
			body:    map[string]any{"role": "Manager", "permissions": []string{auth.PermViewReports}},
			allowed: false,
		},
		{
			name:    "empty list with any mode is false",
			body:    map[string]any{"role": "Admin", "permissions": []string{}},
			allowed: false,
		},
		{
			name:    "empty list with all mode is true",
			body:    map[string]any{"role": "SC_Staff", "permissions": []string{}, "mode": "all"},
			allowed: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/permissions/check", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)

			var out struct {
				Data struct {
					Allowed bool `json:"allowed"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tc.allowed, out.Data.Allowed)
		})
	}
}

func TestEndpointAccess(t *testing.T) {
	app := setupApp(t)

	for _, tc := range []struct {
		name    string
		body    map[string]string
		allowed bool
	}{
		{
			name:    "technician may update work orders",
			body:    map[string]string{"role": "SC_Technician", "method": "PUT", "path": "/work-orders/12/progress"},
			allowed: true,
		},
		{
			name:    "technician may not distribute vehicles",
			body:    map[string]string{"role": "SC_Technician", "method": "POST", "path": "/vehicle-distributions"},
			allowed: false,
		},
		{
			name:    "ungated endpoints are open",
			body:    map[string]string{"role": "SC_Technician", "method": "GET", "path": "/permissions/roles"},
			allowed: true,
		},
		{
			name:    "admin area needs manage_users",
			body:    map[string]string{"role": "SC_Staff", "method": "GET", "path": "/admin/users"},
			allowed: false,
		},
		{
			name:    "unknown role is denied everywhere",
			body:    map[string]string{"role": "Manager", "method": "GET", "path": "/permissions/roles"},
			allowed: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/permissions/endpoint-access", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)

			var out struct {
				Data struct {
					Allowed bool `json:"allowed"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tc.allowed, out.Data.Allowed)
		})
	}
}

func TestFeatureAccess(t *testing.T) {
	app := setupApp(t)

	for _, tc := range []struct {
		name    string
		body    map[string]string
		allowed bool
	}{
		{
			name:    "staff holds the workflow feature",
			body:    map[string]string{"role": "EVM_Staff", "feature": "campaign_workflow"},
			allowed: true,
		},
		{
			name:    "technician lacks administration",
			body:    map[string]string{"role": "SC_Technician", "feature": "administration"},
			allowed: false,
		},
		{
			name:    "unknown feature is denied",
			body:    map[string]string{"role": "Admin", "feature": "billing"},
			allowed: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/permissions/feature-access", bytes.NewReader(raw))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)

			var out struct {
				Data struct {
					Allowed bool `json:"allowed"`
				} `json:"data"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, tc.allowed, out.Data.Allowed)
		})
	}
}

func TestValidate_Denied(t *testing.T) {
	app := setupApp(t)

	raw, err := json.Marshal(map[string]string{
		"role":       "SC_Technician",
		"permission": auth.PermCreateRecall,
		"action":     "create recall campaign",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/permissions/validate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out struct {
		Data auth.Validation `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.False(t, out.Data.Allowed)
	assert.Equal(t, "Bạn không có quyền tạo chiến dịch thu hồi", out.Data.Error)
	assert.Equal(t, auth.ErrorCodePermissionDenied, out.Data.ErrorCode)
}

func TestMenuItems(t *testing.T) {
	app := setupApp(t)

	// no token
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/permissions/menu-items", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := auth.IssueToken(testSecret, 1, auth.RoleSCTechnician, "QUAN_1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/permissions/menu-items", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data []struct {
			Title    string `json:"title"`
			Children []struct {
				Title string `json:"title"`
			} `json:"children"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	titles := make([]string, 0, len(out.Data))
	for _, item := range out.Data {
		titles = append(titles, item.Title)
	}

	assert.NotContains(t, titles, "Quản trị", "technicians never see the admin section")
	assert.Contains(t, titles, "Báo cáo")
}
