package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// ProcessSale godoc
// @Summary      Process a sale
// @Description  Atomically decrements stock and appends the sale record; returns a receipt.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body body dto.ProcessSaleRequest true "Sale"
// @Success      201  {object} dto.Receipt
// @Failure      409  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) ProcessSale(c *gin.Context) {
	var req dto.ProcessSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	receipt, err := h.svc.ProcessSale(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// List godoc
// @Summary      List sales
// @Tags         sales
// @Produce      json
// @Param        date  query string false "YYYY-MM-DD (empty = all)"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200   {object} dto.SaleListResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export GET /v1/sales/export — streams the full sale log as CSV.
func (h *SalesHandler) Export(c *gin.Context) {
	items, err := h.svc.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to export sales"))
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="sales.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "product_id", "product", "quantity", "unit_price", "total", "created_at"})
	for _, item := range items {
		_ = w.Write([]string{
			item.ID,
			item.ProductID,
			item.Product,
			strconv.Itoa(item.Quantity),
			item.UnitPrice.StringFixed(2),
			item.Total.StringFixed(2),
			item.CreatedAt,
		})
	}
	w.Flush()
}
