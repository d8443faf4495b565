package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IEEECS-VIT/assignofast-sync/internal/dto"
	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	"github.com/IEEECS-VIT/assignofast-sync/internal/service"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/response"
)

type sessionReader interface {
	Status(ctx context.Context) (*models.SessionStatus, error)
}

type runReporter interface {
	LastRun() *models.SyncRunReport
}

// SyncHandler triggers and reports pipeline runs.
type SyncHandler struct {
	trigger  service.SyncTrigger
	sessions sessionReader
	runs     runReporter
}

// NewSyncHandler builds a new handler.
func NewSyncHandler(trigger service.SyncTrigger, sessions sessionReader, runs runReporter) *SyncHandler {
	return &SyncHandler{trigger: trigger, sessions: sessions, runs: runs}
}

// Trigger godoc
// @Summary Queue an immediate sync run
// @Tags Sync
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /sync [post]
func (h *SyncHandler) Trigger(c *gin.Context) {
	if err := h.trigger.TriggerSync("manual"); err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, gin.H{"queued": true})
}

// Status godoc
// @Summary Report the session and the last pipeline run
// @Tags Sync
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	session, err := h.sessions.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := dto.SyncStatusResponse{Session: *session, LastRun: h.runs.LastRun()}
	response.JSON(c, http.StatusOK, resp)
}
