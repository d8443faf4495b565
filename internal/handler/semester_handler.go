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

type semesterService interface {
	Options(ctx context.Context) ([]models.SemesterOption, error)
	Refresh(ctx context.Context) ([]models.SemesterOption, error)
	Select(ctx context.Context, id string) (*models.SemesterOption, error)
}

// SemesterHandler exposes the semester dropdown and selection.
type SemesterHandler struct {
	service semesterService
}

// NewSemesterHandler builds a new handler.
func NewSemesterHandler(service semesterService) *SemesterHandler {
	return &SemesterHandler{service: service}
}

// List godoc
// @Summary List semester options
// @Tags Semesters
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /semesters [get]
func (h *SemesterHandler) List(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// Refresh godoc
// @Summary Re-scrape the semester dropdown from the portal
// @Tags Semesters
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /semesters/refresh [post]
func (h *SemesterHandler) Refresh(c *gin.Context) {
	options, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// Select godoc
// @Summary Switch the active semester
// @Tags Semesters
// @Accept json
// @Produce json
// @Param payload body dto.SelectSemesterRequest true "Semester selection"
// @Success 200 {object} response.Envelope
// @Router /semesters/current [put]
func (h *SemesterHandler) Select(c *gin.Context) {
	var req dto.SelectSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid semester payload"))
		return
	}
	if req.ID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "semester id is required"))
		return
	}
	selected, err := h.service.Select(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, selected)
}
