// Package carrier talks to the external parts-shipping carrier. Responses
// are cached in the shipping_orders table so status lookups survive carrier
// downtime.
package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/EVCare-Admin/EVCare-Admin/internal/config"
	"github.com/EVCare-Admin/EVCare-Admin/internal/db/models"
)

const (
	defaultTimeout = 30 * time.Second
)

// envelope is the carrier's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// OrderRequest books one parts shipment.
type OrderRequest struct {
	CampaignCode string `json:"campaignCode"`
	CenterCode   string `json:"centerCode"`
	PartNumber   string `json:"partNumber"`
	Quantity     int    `json:"quantity"`
	Urgent       bool   `json:"urgent"`
}

// Order is the carrier's view of one shipment.
type Order struct {
	OrderCode string `json:"orderCode"`
	Status    string `json:"status"`
	ETA       string `json:"eta,omitempty"`
}

// Client is the carrier API client. The zero value is unusable; construct
// it with New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	db      *gorm.DB
}

// New creates a carrier client from the carrier settings. The db handle is
// used as a response cache and may be nil for probe-only clients.
func New(cfg *config.Carrier, db *gorm.DB) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		db:      db,
	}
}

// Test probes the carrier API connection.
func (c *Client) Test(ctx context.Context) error {
	if c == nil || c.http == nil {
		return ErrClientNotInitialized
	}

	var status struct {
		Version string `json:"version"`
	}

	if err := c.call(ctx, http.MethodGet, "/v1/status", nil, &status); err != nil {
		return err
	}

	log.Info().Str("version", status.Version).Msg("carrier API connection test successful")

	return nil
}

// CreateOrder books a parts shipment and caches the carrier's answer.
func (c *Client) CreateOrder(ctx context.Context, campaignID uint, req *OrderRequest) (*Order, error) {
	if c == nil || c.http == nil {
		return nil, ErrClientNotInitialized
	}

	var order Order
	if err := c.call(ctx, http.MethodPost, "/v1/orders", req, &order); err != nil {
		return nil, err
	}

	c.cache(campaignID, &order)

	return &order, nil
}

// OrderStatus fetches the current status of an order. When the carrier is
// unreachable the last cached status is returned instead, so center staff
// still see where their parts were.
func (c *Client) OrderStatus(ctx context.Context, orderCode string) (*Order, error) {
	if c == nil || c.http == nil {
		return nil, ErrClientNotInitialized
	}

	var order Order
	err := c.call(ctx, http.MethodGet, "/v1/orders/"+orderCode, nil, &order)
	if err == nil {
		c.cache(0, &order)
		return &order, nil
	}

	if errors.Is(err, ErrOrderNotFound) || errors.Is(err, ErrCarrierRejected) {
		return nil, err
	}

	cached, cacheErr := c.cached(orderCode)
	if cacheErr != nil {
		return nil, err
	}

	log.Warn().Err(err).Str("order", orderCode).Msg("carrier unreachable, serving cached order status")

	return cached, nil
}

// call performs one carrier request and unwraps the response envelope.
func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return errors.Wrap(err, "failed to encode carrier request")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
	if err != nil {
		return errors.Wrap(err, "failed to build carrier request")
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "carrier request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrOrderNotFound
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(err, "failed to decode carrier response")
	}

	if !env.Success {
		if env.Message != "" {
			return fmt.Errorf("%w: %s", ErrCarrierRejected, env.Message)
		}

		return ErrCarrierRejected
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "failed to decode carrier response data")
		}
	}

	return nil
}

// cache upserts the carrier's answer into the shipping_orders table. Cache
// writes are best effort and never fail the request.
func (c *Client) cache(campaignID uint, order *Order) {
	if c.db == nil {
		return
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return
	}

	record := models.ShippingOrder{OrderCode: order.OrderCode}
	err = c.db.Where("order_code = ?", order.OrderCode).
		Assign(map[string]any{"status": order.Status, "payload": string(payload)}).
		FirstOrCreate(&record).Error
	if err != nil {
		log.Warn().Err(err).Str("order", order.OrderCode).Msg("failed to cache shipping order")
		return
	}

	if campaignID != 0 && record.CampaignID != campaignID {
		if err := c.db.Model(&record).Update("campaign_id", campaignID).Error; err != nil {
			log.Warn().Err(err).Str("order", order.OrderCode).Msg("failed to stamp shipping order campaign")
		}
	}
}

// cached loads the last stored carrier answer for an order code.
func (c *Client) cached(orderCode string) (*Order, error) {
	if c.db == nil {
		return nil, gorm.ErrRecordNotFound
	}

	var record models.ShippingOrder
	if err := c.db.Where("order_code = ?", orderCode).First(&record).Error; err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal([]byte(record.Payload), &order); err != nil {
		return nil, err
	}

	return &order, nil
}
