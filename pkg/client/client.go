// Package client is a typed Go client for the warehouse REST API. Each method
// maps to exactly one endpoint; there is no retry or caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Bojom/Warehouse/pkg/dto"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("warehouse api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the API rooted at baseURL, e.g. "http://localhost:3000/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("warehouse api: marshal body: %w", err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, fmt.Errorf("warehouse api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// send performs the request and returns the response body of a 2xx reply.
func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("warehouse api: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("warehouse api: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return data, nil
}

// do sends a JSON request and decodes the reply into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	data, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("warehouse api: decode response: %w", err)
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

func setID(q url.Values, key string, id *int64) {
	if id != nil {
		q.Set(key, strconv.FormatInt(*id, 10))
	}
}

// ── Brands ────────────────────────────────────────────────────────────────────

func (c *Client) GetBrands(ctx context.Context) ([]dto.BrandResponse, error) {
	var out []dto.BrandResponse
	if err := c.do(ctx, http.MethodGet, "/dimensions/brands", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBrand(ctx context.Context, req dto.CreateLookupRequest) (*dto.BrandResponse, error) {
	var out dto.BrandResponse
	if err := c.do(ctx, http.MethodPost, "/dimensions/brands", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBrand(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.BrandResponse, error) {
	var out dto.BrandResponse
	if err := c.do(ctx, http.MethodPut, idPath("/dimensions/brands", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBrand(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/dimensions/brands", id), nil, nil, nil)
}

// ── Models ────────────────────────────────────────────────────────────────────

// GetModels lists models; brandID narrows the list to one brand.
func (c *Client) GetModels(ctx context.Context, brandID *int64) ([]dto.ModelResponse, error) {
	q := url.Values{}
	setID(q, "brand_id", brandID)
	var out []dto.ModelResponse
	if err := c.do(ctx, http.MethodGet, "/dimensions/models", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateModel(ctx context.Context, req dto.CreateModelRequest) (*dto.ModelResponse, error) {
	var out dto.ModelResponse
	if err := c.do(ctx, http.MethodPost, "/dimensions/models", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateModel(ctx context.Context, id int64, req dto.UpdateModelRequest) (*dto.ModelResponse, error) {
	var out dto.ModelResponse
	if err := c.do(ctx, http.MethodPut, idPath("/dimensions/models", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteModel(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/dimensions/models", id), nil, nil, nil)
}

// ── Part types ────────────────────────────────────────────────────────────────

func (c *Client) GetPartTypes(ctx context.Context) ([]dto.PartTypeResponse, error) {
	var out []dto.PartTypeResponse
	if err := c.do(ctx, http.MethodGet, "/dimensions/part-types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePartType(ctx context.Context, req dto.CreateLookupRequest) (*dto.PartTypeResponse, error) {
	var out dto.PartTypeResponse
	if err := c.do(ctx, http.MethodPost, "/dimensions/part-types", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePartType(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.PartTypeResponse, error) {
	var out dto.PartTypeResponse
	if err := c.do(ctx, http.MethodPut, idPath("/dimensions/part-types", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePartType(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/dimensions/part-types", id), nil, nil, nil)
}

// ── Colours ───────────────────────────────────────────────────────────────────

func (c *Client) GetColours(ctx context.Context) ([]dto.ColourResponse, error) {
	var out []dto.ColourResponse
	if err := c.do(ctx, http.MethodGet, "/dimensions/colours", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateColour(ctx context.Context, req dto.CreateLookupRequest) (*dto.ColourResponse, error) {
	var out dto.ColourResponse
	if err := c.do(ctx, http.MethodPost, "/dimensions/colours", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateColour(ctx context.Context, id int64, req dto.UpdateLookupRequest) (*dto.ColourResponse, error) {
	var out dto.ColourResponse
	if err := c.do(ctx, http.MethodPut, idPath("/dimensions/colours", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteColour(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/dimensions/colours", id), nil, nil, nil)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (c *Client) GetSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	var out []dto.SupplierResponse
	if err := c.do(ctx, http.MethodGet, "/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSupplier(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	var out dto.SupplierResponse
	if err := c.do(ctx, http.MethodGet, idPath("/suppliers", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	var out dto.SupplierResponse
	if err := c.do(ctx, http.MethodPost, "/suppliers", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSupplier(ctx context.Context, id int64, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	var out dto.SupplierResponse
	if err := c.do(ctx, http.MethodPut, idPath("/suppliers", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/suppliers", id), nil, nil, nil)
}

// ── Parts ─────────────────────────────────────────────────────────────────────

func partQuery(f dto.PartFilter) url.Values {
	q := url.Values{}
	setID(q, "brand_id", f.BrandID)
	setID(q, "model_id", f.ModelID)
	setID(q, "part_type_id", f.PartTypeID)
	setID(q, "colour_id", f.ColourID)
	setID(q, "supplier_id", f.SupplierID)
	if f.Query != "" {
		q.Set("q", f.Query)
	}
	if f.LowStock {
		q.Set("low_stock", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (c *Client) GetParts(ctx context.Context, filter dto.PartFilter) (*dto.PartListResponse, error) {
	var out dto.PartListResponse
	if err := c.do(ctx, http.MethodGet, "/parts", partQuery(filter), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPart(ctx context.Context, id int64) (*dto.PartResponse, error) {
	var out dto.PartResponse
	if err := c.do(ctx, http.MethodGet, idPath("/parts", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePart(ctx context.Context, req dto.CreatePartRequest) (*dto.PartResponse, error) {
	var out dto.PartResponse
	if err := c.do(ctx, http.MethodPost, "/parts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePart(ctx context.Context, id int64, req dto.UpdatePartRequest) (*dto.PartResponse, error) {
	var out dto.PartResponse
	if err := c.do(ctx, http.MethodPut, idPath("/parts", id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePart(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/parts", id), nil, nil, nil)
}

func (c *Client) AdjustStock(ctx context.Context, id int64, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	var out dto.AdjustStockResponse
	if err := c.do(ctx, http.MethodPost, idPath("/parts", id)+"/stock", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPartMovements(ctx context.Context, id int64, page, limit int) ([]dto.StockMovementResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []dto.StockMovementResponse
	if err := c.do(ctx, http.MethodGet, idPath("/parts", id)+"/movements", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetStockAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	var out []dto.StockAlertResponse
	if err := c.do(ctx, http.MethodGet, "/parts/alerts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportParts returns the raw CSV export.
func (c *Client) ExportParts(ctx context.Context) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/parts/export", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")
	return c.send(req)
}

// GetStockAlertsPDF returns the low-stock report as PDF bytes.
func (c *Client) GetStockAlertsPDF(ctx context.Context) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/parts/alerts/pdf", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")
	return c.send(req)
}

// ImportParts uploads a parts CSV using the export's column layout.
func (c *Client) ImportParts(ctx context.Context, csvData []byte) (*dto.PartImportResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/parts/import", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Body = io.NopCloser(bytes.NewReader(csvData))
	req.ContentLength = int64(len(csvData))
	req.Header.Set("Content-Type", "text/csv")

	data, err := c.send(req)
	if err != nil {
		return nil, err
	}
	var out dto.PartImportResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("warehouse api: decode response: %w", err)
	}
	return &out, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func daysQuery(days int) url.Values {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return q
}

func (c *Client) GetTrend(ctx context.Context, days int) (*dto.TrendResponse, error) {
	var out dto.TrendResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/trend", daysQuery(days), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetComposition groups stock by "part_type", "brand" or "supplier"; empty uses the server default.
func (c *Client) GetComposition(ctx context.Context, by string) (*dto.CompositionResponse, error) {
	q := url.Values{}
	if by != "" {
		q.Set("by", by)
	}
	var out dto.CompositionResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/composition", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAnomalies(ctx context.Context, days int) (*dto.AnomalyResponse, error) {
	var out dto.AnomalyResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/anomalies", daysQuery(days), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
