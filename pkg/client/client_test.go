package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorded captures the last request seen by the test server.
type recorded struct {
	method string
	path   string
	query  string
	body   string
}

func newServer(t *testing.T, status int, reply string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*rec = recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(data)}
		if reply != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL + "/v1/"), rec
}

func TestGetBrands(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[{"id":1,"name":"Apple","code":"AP"},{"id":3,"name":"Google","code":"GG"}]`)

	brands, err := c.GetBrands(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/v1/dimensions/brands", rec.path)
	require.Len(t, brands, 2)
	assert.Equal(t, "Google", brands[1].Name)
}

func TestCreateBrand_SendsJSON(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"id":9,"name":"Apple","code":"AP"}`)

	b, err := c.CreateBrand(context.Background(), dto.CreateLookupRequest{Name: "Apple", Code: "AP"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.JSONEq(t, `{"name":"Apple","code":"AP"}`, rec.body)
	assert.Equal(t, int64(9), b.ID)
}

func TestGetModels_BrandQuery(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[]`)
	brandID := int64(2)

	_, err := c.GetModels(context.Background(), &brandID)
	require.NoError(t, err)
	assert.Equal(t, "/v1/dimensions/models", rec.path)
	assert.Equal(t, "brand_id=2", rec.query)

	_, err = c.GetModels(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rec.query)
}

func TestUpdateAndDelete_Paths(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"id":4,"name":"White","code":"WHT"}`)
	name := "White"

	_, err := c.UpdateColour(context.Background(), 4, dto.UpdateLookupRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/v1/dimensions/colours/4", rec.path)
	assert.JSONEq(t, `{"name":"White","code":null}`, rec.body)

	c, rec = newServer(t, http.StatusNoContent, "")
	require.NoError(t, c.DeletePartType(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/v1/dimensions/part-types/12", rec.path)
}

func TestAPIError_NotFound(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, `{"message":"Brand not found"}`)

	err := c.DeleteBrand(context.Background(), 99)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Brand not found", apiErr.Message)
}

func TestAPIError_NonJSONBody(t *testing.T) {
	c, _ := newServer(t, http.StatusBadGateway, "")

	_, err := c.GetColours(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestGetParts_Query(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"data":[],"total":0,"page":2,"limit":10,"total_pages":0}`)
	supplier := int64(5)

	res, err := c.GetParts(context.Background(), dto.PartFilter{SupplierID: &supplier, Query: "oled", LowStock: true, Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "limit=10&low_stock=true&page=2&q=oled&supplier_id=5", rec.query)
	assert.Equal(t, 2, res.Page)
}

func TestAdjustStock(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"part":{"id":1,"stock":3},"movement":{"id":7,"direction":"out","quantity":2}}`)

	res, err := c.AdjustStock(context.Background(), 1, dto.AdjustStockRequest{Direction: "out", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "/v1/parts/1/stock", rec.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.body), &sent))
	assert.Equal(t, "out", sent["direction"])
	assert.Equal(t, 3, res.Part.Stock)
	assert.Equal(t, int64(7), res.Movement.ID)
}

func TestExportParts_RawBytes(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "id,part_number\n1,A\n")

	data, err := c.ExportParts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v1/parts/export", rec.path)
	assert.Equal(t, "id,part_number\n1,A\n", string(data))
}

func TestImportParts_PostsCSV(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"total_rows":2,"created":1,"errors":1,"details":[{"row":3,"error_code":"CONFLICT","reason":"Part already exists"}]}`)

	res, err := c.ImportParts(context.Background(), []byte("part_number,part_name,supplier_id\nA,B,1\n"))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/v1/parts/import", rec.path)
	assert.Equal(t, "part_number,part_name,supplier_id\nA,B,1\n", rec.body)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Details, 1)
	assert.Equal(t, "CONFLICT", res.Details[0].ErrorCode)
}

func TestGetStockAlertsPDF(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, "%PDF-1.3")

	data, err := c.GetStockAlertsPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/v1/parts/alerts/pdf", rec.path)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestDashboard_Queries(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"by":"brand","data":[],"option":{"series":[]}}`)

	res, err := c.GetComposition(context.Background(), "brand")
	require.NoError(t, err)
	assert.Equal(t, "by=brand", rec.query)
	assert.Equal(t, "brand", res.By)

	_, err = c.GetTrend(context.Background(), 14)
	require.NoError(t, err)
	assert.Equal(t, "/v1/dashboard/trend", rec.path)
	assert.Equal(t, "days=14", rec.query)
}
