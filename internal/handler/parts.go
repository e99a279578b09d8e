package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/Bojom/Warehouse/internal/apierror"
	"github.com/Bojom/Warehouse/internal/service"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/gin-gonic/gin"
)

// maxImportBytes caps the size of an uploaded parts CSV.
const maxImportBytes = 5 << 20

type PartsHandler struct{ svc service.PartService }

func NewPartsHandler(svc service.PartService) *PartsHandler { return &PartsHandler{svc: svc} }

// movementsQuery is bound from GET /v1/parts/:id/movements.
type movementsQuery struct {
	Page  int `form:"page,default=1"   validate:"min=1"`
	Limit int `form:"limit,default=50" validate:"min=1,max=200"`
}

// List godoc
// @Summary      List parts
// @Description  Filters combine with AND. q matches part number or name, case-insensitive.
// @Tags         parts
// @Produce      json
// @Param        brand_id     query int    false "Brand ID"
// @Param        model_id     query int    false "Model ID"
// @Param        part_type_id query int    false "Part type ID"
// @Param        colour_id    query int    false "Colour ID"
// @Param        supplier_id  query int    false "Supplier ID"
// @Param        q            query string false "Search text"
// @Param        low_stock    query bool   false "Only parts at or below stock_min"
// @Param        page         query int    false "Page (default 1)"
// @Param        limit        query int    false "Page size (default 50, max 200)"
// @Success      200  {object} dto.PartListResponse
// @Router       /v1/parts [get]
func (h *PartsHandler) List(c *gin.Context) {
	var filter dto.PartFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID godoc
// @Summary      Get a part
// @Tags         parts
// @Produce      json
// @Param        id   path     int true "Part ID"
// @Success      200  {object} dto.PartResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/parts/{id} [get]
func (h *PartsHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a part
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body body     dto.CreatePartRequest true "Part"
// @Success      201  {object} dto.PartResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/parts [post]
func (h *PartsHandler) Create(c *gin.Context) {
	var req dto.CreatePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary      Update a part
// @Description  Stock cannot be changed here; use POST /v1/parts/{id}/stock.
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        id   path     int                   true "Part ID"
// @Param        body body     dto.UpdatePartRequest true "Fields to change"
// @Success      200  {object} dto.PartResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/parts/{id} [put]
func (h *PartsHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdatePartRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a part and its movements
// @Tags         parts
// @Param        id   path     int true "Part ID"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/parts/{id} [delete]
func (h *PartsHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustStock godoc
// @Summary      Move stock in or out
// @Description  Records a stock movement. Outbound movements that leave the part at or below stock_min queue a low-stock alert.
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        id   path     int                    true "Part ID"
// @Param        body body     dto.AdjustStockRequest true "Movement"
// @Success      200  {object} dto.AdjustStockResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/parts/{id}/stock [post]
func (h *PartsHandler) AdjustStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary      Stock movements of a part, newest first
// @Tags         parts
// @Produce      json
// @Param        id    path     int true  "Part ID"
// @Param        page  query    int false "Page (default 1)"
// @Param        limit query    int false "Page size (default 50, max 200)"
// @Success      200   {array}  dto.StockMovementResponse
// @Failure      404   {object} apierror.APIError
// @Router       /v1/parts/{id}/movements [get]
func (h *PartsHandler) ListMovements(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var q movementsQuery
	if !bindQuery(c, &q) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), id, q.Page, q.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Alerts godoc
// @Summary      Parts at or below their minimum stock
// @Tags         parts
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /v1/parts/alerts [get]
func (h *PartsHandler) Alerts(c *gin.Context) {
	resp, err := h.svc.Alerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary      Export all parts as CSV
// @Tags         parts
// @Produce      text/csv
// @Success      200
// @Router       /v1/parts/export [get]
func (h *PartsHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.ExportCSV(c.Request.Context(), &buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="parts.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// AlertsPDF godoc
// @Summary      Low-stock report as PDF
// @Tags         parts
// @Produce      application/pdf
// @Success      200
// @Router       /v1/parts/alerts/pdf [get]
func (h *PartsHandler) AlertsPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.AlertsPDF(c.Request.Context(), &buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="low-stock.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Import godoc
// @Summary      Import parts from CSV
// @Description  Accepts a multipart "file" field or a raw text/csv body with the export's columns. Bad rows are reported, not fatal.
// @Tags         parts
// @Accept       mpfd
// @Produce      json
// @Param        file formData file false "CSV file"
// @Success      200  {object} dto.PartImportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/parts/import [post]
func (h *PartsHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var body io.Reader = c.Request.Body
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cannot read uploaded file"))
			return
		}
		defer f.Close()
		body = f
	}
	data, err := io.ReadAll(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("cannot read request body"))
		return
	}

	resp, err := h.svc.ImportCSV(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
