package handler

import (
	"net/http"

	"stockroom/internal/apierror"
	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Balance godoc
// @Summary      Inventory balance per product
// @Description  remaining + sold = originally_stocked, derived from the sale log.
// @Tags         reports
// @Produce      json
// @Success      200 {array} dto.BalanceRow
// @Router       /v1/reports/balance [get]
func (h *ReportsHandler) Balance(c *gin.Context) {
	rows, err := h.svc.Balance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute balance"))
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Summary godoc
// @Summary      Dashboard headline numbers
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.SummaryResponse
// @Router       /v1/reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to compute summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
