package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/query"
	"github.com/charlesng35/restaurants/internal/services"
	"github.com/charlesng35/restaurants/pkg/response"
)

// RestaurantHandler exposes restaurant CRUD endpoints.
type RestaurantHandler struct {
	svc *services.RestaurantService
}

// NewRestaurantHandler constructs a RestaurantHandler.
func NewRestaurantHandler(svc *services.RestaurantService) (*RestaurantHandler, error) {
	if svc == nil {
		return nil, fmt.Errorf("restaurant handler: service is required")
	}
	return &RestaurantHandler{svc: svc}, nil
}

// GET /api/restaurant
func (h *RestaurantHandler) List(c *gin.Context) {
	spec, err := query.Parse(query.ParamsFromValues(c.Request.URL.Query()))
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.svc.GetAll(requestContext(c), spec)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page, &response.Meta{
		Page:       page.PageNumber,
		PerPage:    page.PageSize,
		Total:      page.TotalItemsCount,
		TotalPages: page.TotalPages,
	})
}

// GET /api/restaurant/:id
func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	restaurant, err := h.svc.GetByID(requestContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, restaurant)
}

// POST /api/restaurant
func (h *RestaurantHandler) Create(c *gin.Context) {
	var input services.CreateRestaurantInput
	if !bindAndValidate(c, &input) {
		return
	}

	id, err := h.svc.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fmt.Sprintf("/api/restaurant/%d", id), gin.H{"id": id})
}

// PUT /api/restaurant/:id
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var input services.UpdateRestaurantInput
	if !bindAndValidate(c, &input) {
		return
	}

	if err := h.svc.Update(requestContext(c), id, input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// DELETE /api/restaurant/:id
func (h *RestaurantHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
