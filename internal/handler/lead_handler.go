package handler

import (
	"net/http"

	"github.com/jatochnietverkeerd/dd-sub000/internal/middleware"
	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"
	"github.com/jatochnietverkeerd/dd-sub000/internal/service"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/pagination"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leadService service.LeadService
}

func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleVerkoper)

	leads := router.Group("/api/leads")
	{
		// Public capture endpoint for the catalog site
		leads.POST("", h.CreateLead)

		leads.GET("", staff, h.ListLeads)
		leads.GET("/:id", staff, h.GetLead)
		leads.PUT("/:id/handle", staff, h.HandleLead)
	}
}

// CreateLead handles POST /api/leads from the public site
// @Summary      Submit lead
// @Description  Records a contact request or a vehicle reservation; reservations flip the vehicle to GERESERVEERD
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateLeadRequest  true  "Lead Payload"
// @Success      201      {object}  response.Response{data=service.LeadResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req service.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, lead))
}

// ListLeads handles GET /api/leads
// @Summary      List leads
// @Description  Retrieves leads filtered by type and status
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "CONTACT or RESERVERING"
// @Param        status  query     string  false  "NIEUW or AFGEHANDELD"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	params := pagination.Parse(c)

	filter := repository.LeadListFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	leads, total, err := h.leadService.ListLeads(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch leads"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"leads": leads,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetLead handles GET /api/leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	lead, err := h.leadService.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, lead))
}

// HandleLead handles PUT /api/leads/:id/handle
// @Summary      Handle lead
// @Description  Marks a lead as AFGEHANDELD
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Lead ID"
// @Success      200  {object}  response.Response{data=service.LeadResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/leads/{id}/handle [put]
func (h *LeadHandler) HandleLead(c *gin.Context) {
	lead, err := h.leadService.HandleLead(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, lead))
}
