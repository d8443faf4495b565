package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/response"
)

type authService interface {
	SignIn(ctx context.Context, req dto.LoginRequest) (*models.SessionStatus, error)
	SignOut(ctx context.Context) error
	Status(ctx context.Context) (*models.SessionStatus, error)
}

// AuthHandler exposes the session lifecycle to the popup.
type AuthHandler struct {
	service authService
}

// NewAuthHandler builds a new handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignIn godoc
// @Summary Exchange a Google access token for a backend session
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Router /auth/session [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	status, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Status godoc
// @Summary Report the stored session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (h *AuthHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// SignOut godoc
// @Summary Clear the session and all cached snapshots
// @Tags Auth
// @Success 204
// @Router /auth/session [delete]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
