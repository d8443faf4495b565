package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/response"
)

type snapshotStore interface {
	PreviousTimetable(ctx context.Context) (models.WeeklyTimetable, error)
	PreviousAssignments(ctx context.Context) ([]models.CourseAssignments, error)
}

// SnapshotHandler serves the last synced snapshots to the popup.
type SnapshotHandler struct {
	store snapshotStore
}

// NewSnapshotHandler builds a new handler.
func NewSnapshotHandler(store snapshotStore) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

// Timetable godoc
// @Summary Last synced weekly timetable
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *SnapshotHandler) Timetable(c *gin.Context) {
	tt, err := h.store.PreviousTimetable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if tt == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no timetable has been synced yet"))
		return
	}
	response.JSON(c, http.StatusOK, tt)
}

// Assignments godoc
// @Summary Last synced digital assignments
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *SnapshotHandler) Assignments(c *gin.Context) {
	classes, err := h.store.PreviousAssignments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if classes == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "no assignments have been synced yet"))
		return
	}
	response.JSON(c, http.StatusOK, classes)
}
