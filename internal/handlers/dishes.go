package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/services"
	"github.com/charlesng35/restaurants/pkg/response"
)

// DishHandler exposes dish endpoints nested under a restaurant.
type DishHandler struct {
	svc *services.DishService
}

// NewDishHandler constructs a DishHandler.
func NewDishHandler(svc *services.DishService) (*DishHandler, error) {
	if svc == nil {
		return nil, fmt.Errorf("dish handler: service is required")
	}
	return &DishHandler{svc: svc}, nil
}

// POST /api/restaurant/:id/dish
func (h *DishHandler) Create(c *gin.Context) {
	restaurantID, ok := intParam(c, "id")
	if !ok {
		return
	}

	var input services.CreateDishInput
	if !bindAndValidate(c, &input) {
		return
	}

	dishID, err := h.svc.Create(requestContext(c), restaurantID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fmt.Sprintf("/api/restaurant/%d/dish/%d", restaurantID, dishID), gin.H{"id": dishID})
}

// GET /api/restaurant/:id/dish
func (h *DishHandler) List(c *gin.Context) {
	restaurantID, ok := intParam(c, "id")
	if !ok {
		return
	}

	dishes, err := h.svc.GetAll(requestContext(c), restaurantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dishes)
}

// GET /api/restaurant/:id/dish/:dishId
func (h *DishHandler) Get(c *gin.Context) {
	restaurantID, ok := intParam(c, "id")
	if !ok {
		return
	}
	dishID, ok := intParam(c, "dishId")
	if !ok {
		return
	}

	dish, err := h.svc.GetByID(requestContext(c), restaurantID, dishID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dish)
}

// DELETE /api/restaurant/:id/dish
func (h *DishHandler) RemoveAll(c *gin.Context) {
	restaurantID, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.svc.RemoveAll(requestContext(c), restaurantID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /api/restaurant/:id/dish/:dishId
func (h *DishHandler) Remove(c *gin.Context) {
	restaurantID, ok := intParam(c, "id")
	if !ok {
		return
	}
	dishID, ok := intParam(c, "dishId")
	if !ok {
		return
	}

	if err := h.svc.RemoveByID(requestContext(c), restaurantID, dishID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
