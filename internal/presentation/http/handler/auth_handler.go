package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/orderdesk/orderdesk-api/internal/application/service"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/dto/request"
	"github.com/orderdesk/orderdesk-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// loginResponse is the payload returned on a successful login.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
	StoreID     string `json:"store_id"`
}

// Login handles operator login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", loginResponse{
		AccessToken: output.AccessToken,
		Username:    output.User.Username,
		StoreID:     output.User.StoreID,
	})
}
