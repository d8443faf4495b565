package service

import (
	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

// pastDueColor is the inline style colour the portal puts on overdue dates.
const pastDueColor = "red"

// AssignmentService normalizes scraped digital-assignment data into the
// canonical per-course list.
type AssignmentService struct {
	logger *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{logger: logger}
}

// Normalize validates and flattens the raw scrape. A nil input or course
// list yields nil. Courses missing their identity fields or with a
// malformed duedate list are dropped whole; individual rows are dropped
// when the title or the due date is absent. An empty due-date string is a
// defined value and is kept. Source order is preserved throughout.
func (s *AssignmentService) Normalize(raw *models.RawAssignmentData) []models.CourseAssignments {
	if raw == nil || raw.Courses == nil {
		return nil
	}

	out := make([]models.CourseAssignments, 0, len(raw.Courses))
	for _, course := range raw.Courses {
		if course.ClassID == "" || course.CourseCode == "" || course.CourseTitle == "" || course.DueDates == nil {
			s.logger.Debug("dropping invalid course",
				zap.String("class_id", course.ClassID),
				zap.String("course_code", course.CourseCode))
			continue
		}

		assignments := make([]models.Assignment, 0, len(course.DueDates))
		for _, row := range course.DueDates {
			if row.AssessmentTitle == "" || row.DateDue == nil {
				continue
			}
			assignments = append(assignments, models.Assignment{
				AssessmentTitle: row.AssessmentTitle,
				DateDue:         *row.DateDue,
				IsSubmitted:     row.LastUpdated != "",
				LastUpdated:     row.LastUpdated,
				Status:          statusForColor(row.DateColor),
			})
		}

		out = append(out, models.CourseAssignments{
			ClassID:           course.ClassID,
			CourseCode:        course.CourseCode,
			CourseTitle:       course.CourseTitle,
			CourseAssignments: assignments,
		})
	}
	return out
}

func statusForColor(color string) models.AssignmentStatus {
	if color == pastDueColor {
		return models.StatusPastDue
	}
	return models.StatusUpcoming
}
