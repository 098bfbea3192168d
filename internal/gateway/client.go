// Package gateway is the HTTP client side of the order API: it signs
// in an operator and carries the save, delete and fetch calls the
// order document runs against the server.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/orderdoc"
)

// Client talks to the order API over JSON/HTTP. It implements
// orderdoc.Gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SetToken sets the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope is the standard API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// legacyEnvelope is the uppercase wrapper the delete endpoints answer
// with.
type legacyEnvelope struct {
	Result  string `json:"RESULT"`
	Message string `json:"MESSAGE"`
}

// LoginResult carries the operator identity returned on login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	StoreID     string `json:"store_id"`
}

// Login authenticates the operator and stores the access token for
// subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var result LoginResult
	if err := c.call(ctx, http.MethodPost, "/api/v1/auth/login", body, &result); err != nil {
		return LoginResult{}, err
	}
	c.token = result.AccessToken
	return result, nil
}

// CreateMaster creates the order header and returns its assigned
// identity.
func (c *Client) CreateMaster(ctx context.Context, req orderdoc.CreateMasterRequest) (orderdoc.CreateMasterResult, error) {
	var result orderdoc.CreateMasterResult
	if err := c.call(ctx, http.MethodPost, "/api/v1/orders", req, &result); err != nil {
		return orderdoc.CreateMasterResult{}, err
	}
	return result, nil
}

// UpdateMaster updates an existing order header.
func (c *Client) UpdateMaster(ctx context.Context, req orderdoc.UpdateMasterRequest) error {
	return c.call(ctx, http.MethodPut, "/api/v1/orders", req, nil)
}

// CreateDetail persists a new order line.
func (c *Client) CreateDetail(ctx context.Context, req orderdoc.CreateDetailRequest) (orderdoc.DetailResult, error) {
	var result orderdoc.DetailResult
	if err := c.call(ctx, http.MethodPost, "/api/v1/orders/details", req, &result); err != nil {
		return orderdoc.DetailResult{}, err
	}
	return result, nil
}

// UpdateDetail updates an existing order line.
func (c *Client) UpdateDetail(ctx context.Context, req orderdoc.UpdateDetailRequest) (orderdoc.DetailResult, error) {
	var result orderdoc.DetailResult
	if err := c.call(ctx, http.MethodPut, "/api/v1/orders/details", req, &result); err != nil {
		return orderdoc.DetailResult{}, err
	}
	return result, nil
}

// DeleteDetail removes one order line server-side.
func (c *Client) DeleteDetail(ctx context.Context, req orderdoc.DeleteDetailRequest) error {
	return c.callLegacy(ctx, "/api/v1/orders/details/delete", req)
}

// DeleteMaster removes the whole order server-side.
func (c *Client) DeleteMaster(ctx context.Context, req orderdoc.DeleteMasterRequest) error {
	return c.callLegacy(ctx, "/api/v1/orders/delete", req)
}

// GoodsRecord is one catalog record as returned by the goods
// endpoints.
type GoodsRecord struct {
	GoodsID       string  `json:"goodsId"`
	Barcode       string  `json:"barcode"`
	GoodsName     string  `json:"goodsName"`
	BrandID       string  `json:"brandId"`
	BrandName     string  `json:"brandName"`
	VendorID      string  `json:"vendorId"`
	VendorName    string  `json:"vendorName"`
	ConsumerPrice int64   `json:"consumerPrice"`
	DiscountRate  float64 `json:"discountRate"`
}

// GetGoodsByBarcode resolves a scanned barcode to its catalog record.
func (c *Client) GetGoodsByBarcode(ctx context.Context, barcode string) (GoodsRecord, error) {
	var goods GoodsRecord
	if err := c.call(ctx, http.MethodGet, "/api/v1/goods/barcode/"+url.PathEscape(barcode), nil, &goods); err != nil {
		return GoodsRecord{}, err
	}
	return goods, nil
}

// SearchGoods queries the catalog for the item-search popup.
func (c *Client) SearchGoods(ctx context.Context, query string, limit int) ([]GoodsRecord, error) {
	var goods []GoodsRecord
	path := "/api/v1/goods?query=" + url.QueryEscape(query) + "&limit=" + strconv.Itoa(limit)
	if err := c.call(ctx, http.MethodGet, path, nil, &goods); err != nil {
		return nil, err
	}
	return goods, nil
}

// FetchDetails loads the authoritative order lines and header.
func (c *Client) FetchDetails(ctx context.Context, orderNo string) (orderdoc.FetchedOrder, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/orders/"+orderNo+"/details", nil)
	if err != nil {
		return orderdoc.FetchedOrder{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return orderdoc.FetchedOrder{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return orderdoc.FetchedOrder{}, decodeError(resp.StatusCode, raw)
	}

	// The lines ride in data and the header in masterData, both at the
	// top level of the response.
	var fetched orderdoc.FetchedOrder
	if err := json.Unmarshal(raw, &fetched); err != nil {
		return orderdoc.FetchedOrder{}, fmt.Errorf("decode fetch response: %w", err)
	}
	return fetched, nil
}

// call runs a standard-envelope request and decodes data into out when
// out is non-nil.
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return apiError(resp.StatusCode, env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// callLegacy runs a legacy-envelope request.
func (c *Client) callLegacy(ctx context.Context, path string, body interface{}) error {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env legacyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env.Result != "SUCCESS" {
		return apiError(resp.StatusCode, env.Message)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

func decodeError(status int, raw []byte) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return apiError(status, env.Message)
	}
	return apiError(status, "")
}

func apiError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("order api: %s (status %d)", message, status)
}
