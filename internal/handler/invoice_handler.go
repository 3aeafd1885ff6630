package handler

import (
	"net/http"

	"github.com/jatochnietverkeerd/dd-sub000/internal/middleware"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/service"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleVerkoper)

	invoices := router.Group("/api/invoices")
	{
		invoices.GET("/purchase/:id", staff, h.GetPurchaseInvoice)
		invoices.GET("/sale/:id", staff, h.GetSaleInvoice)
	}
}

// GetPurchaseInvoice handles GET /api/invoices/purchase/:id
// @Summary      Get purchase invoice
// @Description  Assembles a renderable purchase invoice document from the stored record; nothing is persisted
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Purchase ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/purchase/{id} [get]
func (h *InvoiceHandler) GetPurchaseInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetPurchaseInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}

// GetSaleInvoice handles GET /api/invoices/sale/:id
// @Summary      Get sale invoice
// @Description  Assembles a renderable sale invoice document from the stored record; nothing is persisted
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sale ID"
// @Success      200  {object}  response.Response{data=service.InvoiceResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/invoices/sale/{id} [get]
func (h *InvoiceHandler) GetSaleInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetSaleInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, invoice))
}
