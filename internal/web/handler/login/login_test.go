package login

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
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
	"github.com/EVCare-Admin/EVCare-Admin/internal/web/session"
)

type memoryStorage struct {
	data map[string][]byte
}

func (m *memoryStorage) Get(key string) ([]byte, error)                    { return m.data[key], nil }
func (m *memoryStorage) Set(key string, val []byte, _ time.Duration) error { m.data[key] = val; return nil }
func (m *memoryStorage) Delete(key string) error                           { delete(m.data, key); return nil }
func (m *memoryStorage) Reset() error                                      { m.data = map[string][]byte{}; return nil }
func (m *memoryStorage) Close() error                                      { return nil }

func setupLoginApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}, &models.User{}))

	role := models.Role{Name: auth.RoleSCTechnician.String(), IsSystem: true}
	require.NoError(t, db.Create(&role).Error)

	require.NoError(t, db.Create(&models.User{
		Active:     true,
		Username:   "ktv.an",
		Email:      "an@example.com",
		Password:   models.HashPassword("s3cret!"),
		FullName:   "Nguyễn Văn An",
		RoleID:     role.ID,
		BranchCode: "BINH_THANH",
	}).Error)

	session.Init(&memoryStorage{data: map[string][]byte{}})

	cfg := &config.Config{DevMode: true}
	cfg.Webserver.JWTSecret = "test-secret"
	cfg.Webserver.Session.ExpiryTime = time.Hour

	app := fiber.New()
	svc := Service{}
	require.NoError(t, svc.Init(app, cfg, db, nil))

	return app, cfg
}

func postLogin(t *testing.T, app *fiber.App, body map[string]string) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, Path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func TestPost_Success(t *testing.T) {
	app, cfg := setupLoginApp(t)

	resp := postLogin(t, app, map[string]string{"username": "ktv.an", "password": "s3cret!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
			User  struct {
				Role       string `json:"role"`
				BranchCode string `json:"branchCode"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.Success)
	assert.Equal(t, "SC_Technician", out.Data.User.Role)
	assert.Equal(t, "BINH_THANH", out.Data.User.BranchCode)

	claims, err := auth.ParseToken(cfg.Webserver.JWTSecret, out.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "SC_Technician", claims.Role)
	assert.Equal(t, "BINH_THANH", claims.BranchCode)

	var sessionCookie string
	for _, c := range resp.Cookies() {
		if c.Name == "session" {
			sessionCookie = c.Value
		}
	}
	require.NotEmpty(t, sessionCookie, "login sets the session cookie")

	sess := new(session.Data)
	require.NoError(t, sess.Read(sessionCookie))
	assert.Equal(t, "ktv.an", sess.User.Username)
}

func TestPost_WrongPassword(t *testing.T) {
	app, _ := setupLoginApp(t)

	resp := postLogin(t, app, map[string]string{"username": "ktv.an", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPost_UnknownUser(t *testing.T) {
	app, _ := setupLoginApp(t)

	resp := postLogin(t, app, map[string]string{"username": "nobody", "password": "s3cret!"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
