package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IEEECS-VIT/assignofast-sync/internal/service"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/response"
)

type exportService interface {
	Timetable(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
	Assignments(ctx context.Context, format service.ExportFormat) (*service.ExportFile, error)
}

// ExportHandler serves snapshot downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Timetable godoc
// @Summary Download the last synced timetable
// @Tags Exports
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /timetable/export [get]
func (h *ExportHandler) Timetable(c *gin.Context) {
	file, err := h.service.Timetable(c.Request.Context(), exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, file)
}

// Assignments godoc
// @Summary Download the last synced assignments
// @Tags Exports
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /assignments/export [get]
func (h *ExportHandler) Assignments(c *gin.Context) {
	file, err := h.service.Assignments(c.Request.Context(), exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveExport(c, file)
}

func exportFormat(c *gin.Context) service.ExportFormat {
	return service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
}

func serveExport(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
