package handler

import (
	"net/http"

	"github.com/Bojom/Warehouse/internal/service"
	"github.com/Bojom/Warehouse/pkg/dto"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves chart-ready aggregates. Every response carries the
// raw series and a chart option the frontend renders as is.
type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Trend godoc
// @Summary      Daily stock in/out
// @Tags         dashboard
// @Produce      json
// @Param        days query    int false "Window in days (default 30, max 365)"
// @Success      200  {object} dto.TrendResponse
// @Router       /v1/dashboard/trend [get]
func (h *DashboardHandler) Trend(c *gin.Context) {
	var filter dto.DashboardFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Trend(c.Request.Context(), filter.Days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Composition godoc
// @Summary      Stock composition
// @Tags         dashboard
// @Produce      json
// @Param        by   query    string false "part_type (default), brand or supplier"
// @Success      200  {object} dto.CompositionResponse
// @Router       /v1/dashboard/composition [get]
func (h *DashboardHandler) Composition(c *gin.Context) {
	var filter dto.DashboardFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Composition(c.Request.Context(), filter.By)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anomalies godoc
// @Summary      Supplier outbound anomaly scores
// @Tags         dashboard
// @Produce      json
// @Param        days query    int false "Window in days (default 30, max 365)"
// @Success      200  {object} dto.AnomalyResponse
// @Router       /v1/dashboard/anomalies [get]
func (h *DashboardHandler) Anomalies(c *gin.Context) {
	var filter dto.DashboardFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Anomalies(c.Request.Context(), filter.Days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
