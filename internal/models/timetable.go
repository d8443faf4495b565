package models

// Weekday is a portal teaching day. VTOP timetables cover Monday to Friday.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// SessionType discriminates theory periods from two-period lab blocks.
type SessionType string

const (
	SessionTheory SessionType = "THEORY"
	SessionLab    SessionType = "LAB"
)

// RawScheduleEntry is one row scraped from the portal timetable page. The
// slot field may join several slot codes with "+" and carry a trailing "-".
// Room is the literal "NIL" when the registration has no venue.
type RawScheduleEntry struct {
	SubjectName string `json:"subjectName"`
	SlotNumber  string `json:"slotNumber"`
	Room        string `json:"classNumber"`
}

// ScheduledSession is one decoded class occurrence on a specific weekday.
type ScheduledSession struct {
	Type        SessionType `json:"type"`
	SubjectName string      `json:"subjectName"`
	Timing      string      `json:"timing"`
	Location    string      `json:"location"`
	SlotNumber  string      `json:"slotNumber"`
}

// WeeklyTimetable maps each teaching day to its sessions ordered by start
// time. All five days are always present, possibly empty.
type WeeklyTimetable map[Weekday][]ScheduledSession

// NewWeeklyTimetable returns an empty timetable with every day initialised.
func NewWeeklyTimetable() WeeklyTimetable {
	tt := make(WeeklyTimetable, len(Weekdays))
	for _, day := range Weekdays {
		tt[day] = []ScheduledSession{}
	}
	return tt
}
