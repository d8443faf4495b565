package dto

import "github.com/IEEECS-VIT/assignofast-sync/internal/models"

// SetTimetableRequest is the full-replace timetable payload for the backend.
type SetTimetableRequest struct {
	UID          string                 `json:"uid"`
	SemesterID   string                 `json:"semester_id"`
	SemesterName string                 `json:"semester_name"`
	Timetable    models.WeeklyTimetable `json:"timetable"`
}

// SetAssignmentsRequest is the full-replace digital-assignment payload.
type SetAssignmentsRequest struct {
	UID          string                     `json:"uid"`
	SemesterID   string                     `json:"semester_id"`
	SemesterName string                     `json:"semester_name"`
	Classes      []models.CourseAssignments `json:"classes"`
}

// SyncStatusResponse reports the session and the last pipeline run.
type SyncStatusResponse struct {
	Session models.SessionStatus  `json:"session"`
	LastRun *models.SyncRunReport `json:"last_run,omitempty"`
}
