package models

import "time"

// SyncState is the per-account session the orchestrator operates under. It
// is cleared as a whole on logout or on an authorization failure from the
// backend.
type SyncState struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	RegNo        string `json:"reg_no"`
	AuthToken    string `json:"auth_token"`
	SemesterID   string `json:"semester_id"`
	SemesterName string `json:"semester_name"`
}

// PortalSession is the CSRF token and authorized id scraped from the portal
// content page; every portal request requires both.
type PortalSession struct {
	CSRFToken    string `json:"csrf_token"`
	AuthorizedID string `json:"authorized_id"`
}

// SemesterOption is one entry of the portal semester dropdown.
type SemesterOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionStatus is the UI-facing view of the stored session.
type SessionStatus struct {
	SignedIn     bool       `json:"signed_in"`
	UID          string     `json:"uid,omitempty"`
	Email        string     `json:"email,omitempty"`
	RegNo        string     `json:"reg_no,omitempty"`
	SemesterID   string     `json:"semester_id,omitempty"`
	SemesterName string     `json:"semester_name,omitempty"`
	TokenExpiry  *time.Time `json:"token_expiry,omitempty"`
}

// SyncKind names the two independent sync chains.
type SyncKind string

const (
	KindTimetable   SyncKind = "timetable"
	KindAssignments SyncKind = "assignments"
)

// SyncResult reports the outcome of one gate decision.
type SyncResult struct {
	Kind   SyncKind `json:"kind"`
	Pushed bool     `json:"pushed"`
}

// SyncRunReport summarises one pipeline invocation for the status endpoint.
type SyncRunReport struct {
	StartedAt   time.Time   `json:"started_at"`
	FinishedAt  time.Time   `json:"finished_at"`
	Timetable   *SyncResult `json:"timetable,omitempty"`
	Assignments *SyncResult `json:"assignments,omitempty"`
	Errors      []string    `json:"errors,omitempty"`
}
