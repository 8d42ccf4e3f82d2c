package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/restaurants/internal/services"
	"github.com/charlesng35/restaurants/pkg/response"
)

// AccountHandler manages registration and login.
type AccountHandler struct {
	svc *services.AccountService
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(svc *services.AccountService) (*AccountHandler, error) {
	if svc == nil {
		return nil, fmt.Errorf("account handler: service is required")
	}
	return &AccountHandler{svc: svc}, nil
}

type tokenResponse struct {
	Token string `json:"token"`
}

// POST /api/account/register
func (h *AccountHandler) Register(c *gin.Context) {
	var input services.RegisterUserInput
	if !bindAndValidate(c, &input) {
		return
	}

	if err := h.svc.Register(requestContext(c), input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"registered": true})
}

// POST /api/account/login
func (h *AccountHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if !bindAndValidate(c, &input) {
		return
	}

	token, err := h.svc.Login(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, tokenResponse{Token: token})
}
