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

type VehicleHandler struct {
	vehicleService service.VehicleService
}

func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func (h *VehicleHandler) RegisterRoutes(router *gin.RouterGroup) {
	vehicles := router.Group("/api/vehicles")
	{
		// Public catalog
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)

		// Back-office mutations
		staff := middleware.RequireRole(model.RoleAdmin, model.RoleVerkoper)
		vehicles.POST("", staff, h.CreateVehicle)
		vehicles.PUT("/:id", staff, h.UpdateVehicle)
		vehicles.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteVehicle)

		vehicles.POST("/:id/images", staff, h.AddImage)
		vehicles.PUT("/:id/images/:imageId/primary", staff, h.SetPrimaryImage)
		vehicles.DELETE("/:id/images/:imageId", staff, h.DeleteImage)
	}
}

// ListVehicles handles GET /api/vehicles with search and status filters
// @Summary      List vehicles
// @Description  Retrieves a paginated, filterable list of vehicles for the public catalog
// @Tags         vehicles
// @Produce      json
// @Param        search  query     string  false  "Free text search on brand/model"
// @Param        status  query     string  false  "BESCHIKBAAR, GERESERVEERD or VERKOCHT"
// @Param        brand   query     string  false  "Exact brand filter"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      400     {object}  response.Response
// @Router       /api/vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	params := pagination.Parse(c)

	filter := repository.VehicleListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Brand:  c.Query("brand"),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	vehicles, total, err := h.vehicleService.ListVehicles(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"vehicles": vehicles,
		"total":    total,
		"page":     params.Page,
		"limit":    params.Limit,
	}))
}

// GetVehicle handles GET /api/vehicles/:id
// @Summary      Get vehicle by ID
// @Description  Fetch a single vehicle with its images
// @Tags         vehicles
// @Produce      json
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  response.Response{data=service.VehicleResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// CreateVehicle handles POST /api/vehicles
// @Summary      Create vehicle
// @Description  Adds a vehicle to the inventory
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateVehicleRequest  true  "Vehicle Payload"
// @Success      201      {object}  response.Response{data=service.VehicleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req service.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, vehicle))
}

// UpdateVehicle handles PUT /api/vehicles/:id
// @Summary      Update vehicle
// @Description  Updates vehicle fields; omitted fields are left unchanged
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Vehicle ID"
// @Param        payload  body      service.UpdateVehicleRequest  true  "Vehicle Payload"
// @Success      200      {object}  response.Response{data=service.VehicleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req service.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), c.Param("id"), req, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, vehicle))
}

// DeleteVehicle handles DELETE /api/vehicles/:id
// @Summary      Delete vehicle
// @Description  Soft deletes a vehicle from the inventory
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/vehicles/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Vehicle deleted successfully"))
}

// AddImage handles POST /api/vehicles/:id/images
// @Summary      Add vehicle image
// @Description  Attaches an externally hosted image URL to a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Vehicle ID"
// @Param        payload  body      service.AddVehicleImageRequest  true  "Image Payload"
// @Success      201      {object}  response.Response{data=service.VehicleImageResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vehicles/{id}/images [post]
func (h *VehicleHandler) AddImage(c *gin.Context) {
	var req service.AddVehicleImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	image, err := h.vehicleService.AddImage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, image))
}

// SetPrimaryImage handles PUT /api/vehicles/:id/images/:imageId/primary
func (h *VehicleHandler) SetPrimaryImage(c *gin.Context) {
	if err := h.vehicleService.SetPrimaryImage(c.Request.Context(), c.Param("id"), c.Param("imageId")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Primary image updated"))
}

// DeleteImage handles DELETE /api/vehicles/:id/images/:imageId
func (h *VehicleHandler) DeleteImage(c *gin.Context) {
	if err := h.vehicleService.DeleteImage(c.Request.Context(), c.Param("imageId")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Image deleted"))
}
