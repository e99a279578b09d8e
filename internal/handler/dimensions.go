package handler

import (
	"net/http"

	"github.com/Bojom/Warehouse/internal/service"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/gin-gonic/gin"
)

// DimensionsHandler serves the dimension route family, mounted at both
// /v1/dimensions and /dimensions.
type DimensionsHandler struct{ svc service.DimensionService }

func NewDimensionsHandler(svc service.DimensionService) *DimensionsHandler {
	return &DimensionsHandler{svc: svc}
}

// ── Brands ────────────────────────────────────────────────────────────────────

// ListBrands godoc
// @Summary      List brands
// @Tags         dimensions
// @Produce      json
// @Success      200  {array}  dto.BrandResponse
// @Router       /v1/dimensions/brands [get]
func (h *DimensionsHandler) ListBrands(c *gin.Context) {
	resp, err := h.svc.ListBrands(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateBrand godoc
// @Summary      Create a brand
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        body body     dto.CreateLookupRequest true "Brand"
// @Success      201  {object} dto.BrandResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/dimensions/brands [post]
func (h *DimensionsHandler) CreateBrand(c *gin.Context) {
	var req dto.CreateLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateBrand(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateBrand godoc
// @Summary      Update a brand
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        id   path     int                     true "Brand ID"
// @Param        body body     dto.UpdateLookupRequest true "Fields to change"
// @Success      200  {object} dto.BrandResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/brands/{id} [put]
func (h *DimensionsHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateBrand(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteBrand godoc
// @Summary      Delete a brand
// @Tags         dimensions
// @Param        id   path     int true "Brand ID"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/brands/{id} [delete]
func (h *DimensionsHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteBrand(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Models ────────────────────────────────────────────────────────────────────

// ListModels godoc
// @Summary      List models, optionally of one brand
// @Tags         dimensions
// @Produce      json
// @Param        brand_id query    int false "Brand ID"
// @Success      200      {array}  dto.ModelResponse
// @Router       /v1/dimensions/models [get]
func (h *DimensionsHandler) ListModels(c *gin.Context) {
	var filter dto.ModelFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListModels(c.Request.Context(), filter.BrandID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateModel godoc
// @Summary      Create a model
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        body body     dto.CreateModelRequest true "Model"
// @Success      201  {object} dto.ModelResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/dimensions/models [post]
func (h *DimensionsHandler) CreateModel(c *gin.Context) {
	var req dto.CreateModelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateModel(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateModel godoc
// @Summary      Update a model
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        id   path     int                     true "Model ID"
// @Param        body body     dto.UpdateModelRequest true "Fields to change"
// @Success      200  {object} dto.ModelResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/models/{id} [put]
func (h *DimensionsHandler) UpdateModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateModelRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateModel(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteModel godoc
// @Summary      Delete a model
// @Tags         dimensions
// @Param        id   path     int true "Model ID"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/models/{id} [delete]
func (h *DimensionsHandler) DeleteModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteModel(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Part types ────────────────────────────────────────────────────────────────

// ListPartTypes godoc
// @Summary      List part types
// @Tags         dimensions
// @Produce      json
// @Success      200  {array}  dto.PartTypeResponse
// @Router       /v1/dimensions/part-types [get]
func (h *DimensionsHandler) ListPartTypes(c *gin.Context) {
	resp, err := h.svc.ListPartTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreatePartType godoc
// @Summary      Create a part type
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        body body     dto.CreateLookupRequest true "Part type"
// @Success      201  {object} dto.PartTypeResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/dimensions/part-types [post]
func (h *DimensionsHandler) CreatePartType(c *gin.Context) {
	var req dto.CreateLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePartType(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdatePartType godoc
// @Summary      Update a part type
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        id   path     int                     true "Part type ID"
// @Param        body body     dto.UpdateLookupRequest true "Fields to change"
// @Success      200  {object} dto.PartTypeResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/part-types/{id} [put]
func (h *DimensionsHandler) UpdatePartType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdatePartType(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeletePartType godoc
// @Summary      Delete a part type
// @Tags         dimensions
// @Param        id   path     int true "Part type ID"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/part-types/{id} [delete]
func (h *DimensionsHandler) DeletePartType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePartType(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Colours ───────────────────────────────────────────────────────────────────

// ListColours godoc
// @Summary      List colours
// @Tags         dimensions
// @Produce      json
// @Success      200  {array}  dto.ColourResponse
// @Router       /v1/dimensions/colours [get]
func (h *DimensionsHandler) ListColours(c *gin.Context) {
	resp, err := h.svc.ListColours(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateColour godoc
// @Summary      Create a colour
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        body body     dto.CreateLookupRequest true "Colour"
// @Success      201  {object} dto.ColourResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/dimensions/colours [post]
func (h *DimensionsHandler) CreateColour(c *gin.Context) {
	var req dto.CreateLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateColour(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateColour godoc
// @Summary      Update a colour
// @Tags         dimensions
// @Accept       json
// @Produce      json
// @Param        id   path     int                     true "Colour ID"
// @Param        body body     dto.UpdateLookupRequest true "Fields to change"
// @Success      200  {object} dto.ColourResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/colours/{id} [put]
func (h *DimensionsHandler) UpdateColour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateLookupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateColour(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteColour godoc
// @Summary      Delete a colour
// @Tags         dimensions
// @Param        id   path     int true "Colour ID"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/dimensions/colours/{id} [delete]
func (h *DimensionsHandler) DeleteColour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteColour(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
