package handler

import (
	"net/http"

	"github.com/jatochnietverkeerd/dd-sub000/internal/middleware"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/service"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler exposes the finance calculator as stateless preview
// endpoints backing the live purchase and sale forms.
type CalculatorHandler struct {
	purchaseService service.PurchaseService
	saleService     service.SaleService
}

func NewCalculatorHandler(purchaseService service.PurchaseService, saleService service.SaleService) *CalculatorHandler {
	return &CalculatorHandler{purchaseService: purchaseService, saleService: saleService}
}

func (h *CalculatorHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleVerkoper)

	calculator := router.Group("/api/calculator")
	{
		calculator.POST("/purchase", staff, h.PreviewPurchase)
		calculator.POST("/sale", staff, h.PreviewSale)
	}
}

// PreviewPurchase handles POST /api/calculator/purchase
// @Summary      Preview purchase totals
// @Description  Computes VAT and total incl VAT for a purchase form without persisting anything
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.PurchaseAmounts  true  "Purchase Amounts"
// @Success      200      {object}  response.Response{data=service.PurchaseTotalsResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/calculator/purchase [post]
func (h *CalculatorHandler) PreviewPurchase(c *gin.Context) {
	var req service.PurchaseAmounts
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	totals, err := h.purchaseService.Preview(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, totals))
}

// PreviewSale handles POST /api/calculator/sale
// @Summary      Preview sale totals
// @Description  Computes VAT, gross, final price and profit for a sale form without persisting anything
// @Tags         calculator
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SalePreviewRequest  true  "Sale Amounts"
// @Success      200      {object}  response.Response{data=service.SaleTotalsResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/calculator/sale [post]
func (h *CalculatorHandler) PreviewSale(c *gin.Context) {
	var req service.SalePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	totals, err := h.saleService.Preview(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, totals))
}
