package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/service"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// stubDimensionSvc overrides only the methods a test exercises; calling any
// other method panics through the nil embedded interface.
type stubDimensionSvc struct {
	service.DimensionService
	createBrand func(dto.CreateLookupRequest) (*dto.BrandResponse, error)
	updateBrand func(int64, dto.UpdateLookupRequest) (*dto.BrandResponse, error)
	deleteBrand func(int64) error
	listBrands  func() ([]dto.BrandResponse, error)
	listModels  func(*int64) ([]dto.ModelResponse, error)
}

func (s *stubDimensionSvc) CreateBrand(_ context.Context, req dto.CreateLookupRequest) (*dto.BrandResponse, error) {
	return s.createBrand(req)
}

func (s *stubDimensionSvc) UpdateBrand(_ context.Context, id int64, req dto.UpdateLookupRequest) (*dto.BrandResponse, error) {
	return s.updateBrand(id, req)
}

func (s *stubDimensionSvc) DeleteBrand(_ context.Context, id int64) error { return s.deleteBrand(id) }

func (s *stubDimensionSvc) ListBrands(_ context.Context) ([]dto.BrandResponse, error) {
	return s.listBrands()
}

func (s *stubDimensionSvc) ListModels(_ context.Context, brandID *int64) ([]dto.ModelResponse, error) {
	return s.listModels(brandID)
}

func dimensionRouter(svc service.DimensionService) *gin.Engine {
	h := NewDimensionsHandler(svc)
	r := gin.New()
	d := r.Group("/v1/dimensions")
	d.GET("/brands", h.ListBrands)
	d.POST("/brands", h.CreateBrand)
	d.PUT("/brands/:id", h.UpdateBrand)
	d.DELETE("/brands/:id", h.DeleteBrand)
	d.GET("/models", h.ListModels)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBrand_Created(t *testing.T) {
	svc := &stubDimensionSvc{createBrand: func(req dto.CreateLookupRequest) (*dto.BrandResponse, error) {
		return &dto.BrandResponse{ID: 1, Name: req.Name, Code: req.Code}, nil
	}}

	w := do(dimensionRouter(svc), http.MethodPost, "/v1/dimensions/brands", `{"name":"Apple","code":"AP"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Apple","code":"AP"}`, w.Body.String())
}

func TestCreateBrand_ValidationError(t *testing.T) {
	svc := &stubDimensionSvc{}

	w := do(dimensionRouter(svc), http.MethodPost, "/v1/dimensions/brands", `{"name":"Apple"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "required", body.Fields["Code"])

	w = do(dimensionRouter(svc), http.MethodPost, "/v1/dimensions/brands", `{"name":"Apple","code":"TOOLONGCODE1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(dimensionRouter(svc), http.MethodPost, "/v1/dimensions/brands", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBrand_ConflictIsBadRequest(t *testing.T) {
	svc := &stubDimensionSvc{createBrand: func(dto.CreateLookupRequest) (*dto.BrandResponse, error) {
		return nil, fmt.Errorf("Brand already exists (idx_brands_name): %w", apierror.ErrConflict)
	}}

	w := do(dimensionRouter(svc), http.MethodPost, "/v1/dimensions/brands", `{"name":"Apple","code":"AP"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"message"`)
}

func TestUpdateBrand_NotFound(t *testing.T) {
	svc := &stubDimensionSvc{updateBrand: func(int64, dto.UpdateLookupRequest) (*dto.BrandResponse, error) {
		return nil, apierror.NotFound("Brand")
	}}

	w := do(dimensionRouter(svc), http.MethodPut, "/v1/dimensions/brands/42", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Brand not found"}`, w.Body.String())
}

func TestUpdateBrand_PassesID(t *testing.T) {
	var gotID int64
	svc := &stubDimensionSvc{updateBrand: func(id int64, req dto.UpdateLookupRequest) (*dto.BrandResponse, error) {
		gotID = id
		return &dto.BrandResponse{ID: id, Name: *req.Name, Code: "AP"}, nil
	}}

	w := do(dimensionRouter(svc), http.MethodPut, "/v1/dimensions/brands/7", `{"name":"Apple Inc"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestDeleteBrand(t *testing.T) {
	svc := &stubDimensionSvc{deleteBrand: func(id int64) error {
		if id == 1 {
			return nil
		}
		return apierror.NotFound("Brand")
	}}
	r := dimensionRouter(svc)

	w := do(r, http.MethodDelete, "/v1/dimensions/brands/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(r, http.MethodDelete, "/v1/dimensions/brands/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodDelete, "/v1/dimensions/brands/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListModels_BrandFilter(t *testing.T) {
	var got *int64
	svc := &stubDimensionSvc{listModels: func(brandID *int64) ([]dto.ModelResponse, error) {
		got = brandID
		return []dto.ModelResponse{}, nil
	}}
	r := dimensionRouter(svc)

	w := do(r, http.MethodGet, "/v1/dimensions/models?brand_id=3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), *got)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/dimensions/models", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, got)

	w = do(r, http.MethodGet, "/v1/dimensions/models?brand_id=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBrands_InternalErrorIsGeneric(t *testing.T) {
	svc := &stubDimensionSvc{listBrands: func() ([]dto.BrandResponse, error) {
		return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
	}}

	w := do(dimensionRouter(svc), http.MethodGet, "/v1/dimensions/brands", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

// ── Parts / dashboard ─────────────────────────────────────────────────────────

type stubPartSvc struct {
	service.PartService
	export func(io.Writer) error
	adjust func(int64, dto.AdjustStockRequest) (*dto.AdjustStockResponse, error)
	list   func(dto.PartFilter) (*dto.PartListResponse, error)
	pdf    func(io.Writer) error
	imp    func([]byte) (*dto.PartImportResponse, error)
}

func (s *stubPartSvc) AlertsPDF(_ context.Context, w io.Writer) error { return s.pdf(w) }

func (s *stubPartSvc) ImportCSV(_ context.Context, data []byte) (*dto.PartImportResponse, error) {
	return s.imp(data)
}

func (s *stubPartSvc) ExportCSV(_ context.Context, w io.Writer) error { return s.export(w) }

func (s *stubPartSvc) AdjustStock(_ context.Context, id int64, req dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	return s.adjust(id, req)
}

func (s *stubPartSvc) List(_ context.Context, f dto.PartFilter) (*dto.PartListResponse, error) {
	return s.list(f)
}

func partRouter(svc service.PartService) *gin.Engine {
	h := NewPartsHandler(svc)
	r := gin.New()
	r.GET("/v1/parts", h.List)
	r.GET("/v1/parts/export", h.Export)
	r.GET("/v1/parts/alerts/pdf", h.AlertsPDF)
	r.POST("/v1/parts/import", h.Import)
	r.POST("/v1/parts/:id/stock", h.AdjustStock)
	return r
}

func TestExportParts_CSV(t *testing.T) {
	svc := &stubPartSvc{export: func(w io.Writer) error {
		_, err := io.WriteString(w, "id,part_number\n1,SCR-01\n")
		return err
	}}

	w := do(partRouter(svc), http.MethodGet, "/v1/parts/export", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "parts.csv")
	assert.Equal(t, "id,part_number\n1,SCR-01\n", w.Body.String())
}

func TestAlertsPDF(t *testing.T) {
	svc := &stubPartSvc{pdf: func(w io.Writer) error {
		_, err := io.WriteString(w, "%PDF-1.3 stub")
		return err
	}}

	w := do(partRouter(svc), http.MethodGet, "/v1/parts/alerts/pdf", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "low-stock.pdf")
	assert.Equal(t, "%PDF-1.3 stub", w.Body.String())
}

func TestImportParts_RawBody(t *testing.T) {
	var got []byte
	svc := &stubPartSvc{imp: func(data []byte) (*dto.PartImportResponse, error) {
		got = data
		return &dto.PartImportResponse{TotalRows: 1, Created: 1, Details: []dto.ImportErrorRow{}}, nil
	}}

	csvData := "part_number,part_name,supplier_id\nSCR-01,Screen,1\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/parts/import", strings.NewReader(csvData))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	partRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, csvData, string(got))
	var resp dto.PartImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Created)
}

func TestImportParts_MultipartFile(t *testing.T) {
	var got []byte
	svc := &stubPartSvc{imp: func(data []byte) (*dto.PartImportResponse, error) {
		got = data
		return &dto.PartImportResponse{}, nil
	}}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "parts.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "part_number,part_name,supplier_id\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/parts/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	partRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "part_number,part_name,supplier_id\n", string(got))
}

func TestImportParts_RejectedFile(t *testing.T) {
	svc := &stubPartSvc{imp: func([]byte) (*dto.PartImportResponse, error) {
		return nil, apierror.Invalid(`missing required column "supplier_id"`)
	}}

	w := do(partRouter(svc), http.MethodPost, "/v1/parts/import", "part_number\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "supplier_id")
}

func TestAdjustStock_RejectsBadDirection(t *testing.T) {
	svc := &stubPartSvc{}

	w := do(partRouter(svc), http.MethodPost, "/v1/parts/1/stock", `{"direction":"up","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(partRouter(svc), http.MethodPost, "/v1/parts/1/stock", `{"direction":"in","quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdjustStock_Insufficient(t *testing.T) {
	svc := &stubPartSvc{adjust: func(int64, dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
		return nil, apierror.Invalid("insufficient stock")
	}}

	w := do(partRouter(svc), http.MethodPost, "/v1/parts/1/stock", `{"direction":"out","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock")
}

func TestListParts_QueryDefaults(t *testing.T) {
	var got dto.PartFilter
	svc := &stubPartSvc{list: func(f dto.PartFilter) (*dto.PartListResponse, error) {
		got = f
		return &dto.PartListResponse{Data: []dto.PartResponse{}}, nil
	}}
	r := partRouter(svc)

	w := do(r, http.MethodGet, "/v1/parts?q=screen&low_stock=true&supplier_id=4", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 50, got.Limit)
	assert.Equal(t, "screen", got.Query)
	assert.True(t, got.LowStock)
	require.NotNil(t, got.SupplierID)
	assert.Equal(t, int64(4), *got.SupplierID)

	w = do(r, http.MethodGet, "/v1/parts?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type stubDashboardSvc struct {
	service.DashboardService
	days int
}

func (s *stubDashboardSvc) Trend(_ context.Context, days int) (*dto.TrendResponse, error) {
	s.days = days
	return &dto.TrendResponse{Data: []dto.DailyStockFlow{}}, nil
}

func TestDashboardTrend_DaysDefaultAndBounds(t *testing.T) {
	svc := &stubDashboardSvc{}
	h := NewDashboardHandler(svc)
	r := gin.New()
	r.GET("/v1/dashboard/trend", h.Trend)

	w := do(r, http.MethodGet, "/v1/dashboard/trend", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, svc.days)

	w = do(r, http.MethodGet, "/v1/dashboard/trend?days=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, http.MethodGet, "/v1/dashboard/trend?days=400", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
