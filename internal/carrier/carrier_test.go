package carrier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&models.ShippingOrder{}))

	return db
}

func respond(t *testing.T, w http.ResponseWriter, success bool, data any, message string) {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"data":    json.RawMessage(raw),
		"message": message,
	}))
}

func TestTest(t *testing.T) {
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/status", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		respond(t, w, true, map[string]string{"version": "2.4.1"}, "")
	}))
	defer srv.Close()

	client := New(&config.Carrier{BaseURL: srv.URL, Token: "secret-token"}, nil)

	require.NoError(t, client.Test(context.Background()))
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "RCL006", req.CampaignCode)
		assert.True(t, req.Urgent)

		respond(t, w, true, Order{OrderCode: "SHP-9001", Status: "booked"}, "")
	}))
	defer srv.Close()

	db := setupTestDB(t)
	client := New(&config.Carrier{BaseURL: srv.URL}, db)

	order, err := client.CreateOrder(context.Background(), 7, &OrderRequest{
		CampaignCode: "RCL006",
		CenterCode:   "SC-Q1-01",
		PartNumber:   "BAT-VF8-001",
		Quantity:     12,
		Urgent:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "SHP-9001", order.OrderCode)

	var cached models.ShippingOrder
	require.NoError(t, db.Where("order_code = ?", "SHP-9001").First(&cached).Error)
	assert.Equal(t, "booked", cached.Status)
	assert.Equal(t, uint(7), cached.CampaignID)
}

func TestCreateOrder_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, false, nil, "quantity exceeds stock")
	}))
	defer srv.Close()

	client := New(&config.Carrier{BaseURL: srv.URL}, nil)

	_, err := client.CreateOrder(context.Background(), 0, &OrderRequest{PartNumber: "BAT-VF8-001", Quantity: 9999})
	require.ErrorIs(t, err, ErrCarrierRejected)
	assert.Contains(t, err.Error(), "quantity exceeds stock")
}

func TestOrderStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(&config.Carrier{BaseURL: srv.URL}, setupTestDB(t))

	_, err := client.OrderStatus(context.Background(), "SHP-0000")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderStatus_FallsBackToCache(t *testing.T) {
	db := setupTestDB(t)

	payload, err := json.Marshal(Order{OrderCode: "SHP-9002", Status: "in_transit"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.ShippingOrder{
		OrderCode: "SHP-9002",
		Status:    "in_transit",
		Payload:   string(payload),
	}).Error)

	// a closed server simulates an unreachable carrier
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(&config.Carrier{BaseURL: srv.URL, Timeout: time.Second}, db)

	order, err := client.OrderStatus(context.Background(), "SHP-9002")
	require.NoError(t, err, "the cached status must be served when the carrier is down")
	assert.Equal(t, "in_transit", order.Status)

	// no cache row means the transport error surfaces
	_, err = client.OrderStatus(context.Background(), "SHP-9003")
	assert.Error(t, err)
}
