package service

import (
	"context"
	"strconv"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
	appErrors "github.com/IEEECS-VIT/assignofast-sync/pkg/errors"
	"github.com/IEEECS-VIT/assignofast-sync/pkg/export"
)

// ExportFormat selects the rendering of an export download.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

type exportStateReader interface {
	PreviousTimetable(ctx context.Context) (models.WeeklyTimetable, error)
	PreviousAssignments(ctx context.Context) ([]models.CourseAssignments, error)
}

// ExportService renders the last synced snapshots as CSV or PDF downloads.
type ExportService struct {
	store exportStateReader
	csv   *export.CSVExporter
	pdf   *export.PDFExporter
}

// NewExportService constructs an ExportService.
func NewExportService(store exportStateReader) *ExportService {
	return &ExportService{
		store: store,
		csv:   export.NewCSVExporter(),
		pdf:   export.NewPDFExporter(),
	}
}

// Timetable exports the last synced timetable snapshot.
func (s *ExportService) Timetable(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	tt, err := s.store.PreviousTimetable(ctx)
	if err != nil {
		return nil, err
	}
	if tt == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no timetable has been synced yet")
	}

	headers := []string{"Day", "Type", "Subject", "Timing", "Location", "Slot"}
	rows := make([]map[string]string, 0, 32)
	for _, day := range models.Weekdays {
		for _, session := range tt[day] {
			rows = append(rows, map[string]string{
				"Day":      string(day),
				"Type":     string(session.Type),
				"Subject":  session.SubjectName,
				"Timing":   session.Timing,
				"Location": session.Location,
				"Slot":     session.SlotNumber,
			})
		}
	}
	return s.render(export.Dataset{Headers: headers, Rows: rows}, format, "timetable", "Weekly Timetable")
}

// Assignments exports the last synced assignment snapshot.
func (s *ExportService) Assignments(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	classes, err := s.store.PreviousAssignments(ctx)
	if err != nil {
		return nil, err
	}
	if classes == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no assignments have been synced yet")
	}

	headers := []string{"Course Code", "Course Title", "Assessment", "Due Date", "Status", "Submitted", "Last Updated"}
	rows := make([]map[string]string, 0, 32)
	for _, class := range classes {
		for _, a := range class.CourseAssignments {
			rows = append(rows, map[string]string{
				"Course Code":  class.CourseCode,
				"Course Title": class.CourseTitle,
				"Assessment":   a.AssessmentTitle,
				"Due Date":     a.DateDue,
				"Status":       string(a.Status),
				"Submitted":    strconv.FormatBool(a.IsSubmitted),
				"Last Updated": a.LastUpdated,
			})
		}
	}
	return s.render(export.Dataset{Headers: headers, Rows: rows}, format, "assignments", "Digital Assignments")
}

func (s *ExportService) render(data export.Dataset, format ExportFormat, name, title string) (*ExportFile, error) {
	switch format {
	case FormatCSV:
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportFile{Content: content, ContentType: "text/csv", Filename: name + ".csv"}, nil
	case FormatPDF:
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportFile{Content: content, ContentType: "application/pdf", Filename: name + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
