package models

// AssignmentStatus tracks whether a due date has already passed. The portal
// renders past-due dates in red; that colour is the only signal available.
type AssignmentStatus string

const (
	StatusUpcoming AssignmentStatus = "upcoming"
	StatusPastDue  AssignmentStatus = "past_due"
)

// RawDueDate is one assignment row scraped from a digital-assignment page.
// DateDue is a pointer so an absent cell is distinguishable from an empty
// one: only a missing date disqualifies the row.
type RawDueDate struct {
	AssessmentTitle string  `json:"assessment_title"`
	DateDue         *string `json:"date_due"`
	DateColor       string  `json:"date_color,omitempty"`
	LastUpdated     string  `json:"last_updated"`
}

// RawCourse is the scraped per-class assignment listing. A nil DueDates
// slice marks a malformed scrape and drops the whole course.
type RawCourse struct {
	ClassID     string       `json:"class_id"`
	CourseCode  string       `json:"course_code"`
	CourseTitle string       `json:"course_title"`
	DueDates    []RawDueDate `json:"duedates"`
}

// RawAssignmentData is the full scrape result for one account.
type RawAssignmentData struct {
	RegNo   string      `json:"reg_no"`
	Courses []RawCourse `json:"courses"`
}

// Assignment is a validated, normalized assignment entry.
type Assignment struct {
	AssessmentTitle string           `json:"assessment_title"`
	DateDue         string           `json:"date_due"`
	IsSubmitted     bool             `json:"is_submitted"`
	LastUpdated     string           `json:"last_updated"`
	Status          AssignmentStatus `json:"status"`
}

// CourseAssignments groups the retained assignments of one class, preserving
// scrape order.
type CourseAssignments struct {
	ClassID           string       `json:"class_id"`
	CourseCode        string       `json:"course_code"`
	CourseTitle       string       `json:"course_title"`
	CourseAssignments []Assignment `json:"course_assignments"`
}
