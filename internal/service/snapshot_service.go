package service

import "github.com/IEEECS-VIT/assignofast-sync/internal/models"

// Snapshot comparison is structural and order-sensitive: a reordering with
// identical content counts as a change. A nil side always compares unequal
// so an unknown previous state forces a sync instead of suppressing one.

// EqualTimetables reports whether two timetable snapshots hold the same
// sessions in the same per-day order.
func EqualTimetables(a, b models.WeeklyTimetable) bool {
	if a == nil || b == nil {
		return false
	}
	for _, day := range models.Weekdays {
		left, okA := a[day]
		right, okB := b[day]
		if !okA || !okB {
			return false
		}
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if left[i] != right[i] {
				return false
			}
		}
	}
	return true
}

// EqualAssignments reports whether two assignment snapshots hold the same
// courses and rows in the same order.
func EqualAssignments(a, b []models.CourseAssignments) bool {
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		courseA, courseB := a[i], b[i]
		if courseA.ClassID != courseB.ClassID ||
			courseA.CourseCode != courseB.CourseCode ||
			courseA.CourseTitle != courseB.CourseTitle ||
			len(courseA.CourseAssignments) != len(courseB.CourseAssignments) {
			return false
		}
		for j := range courseA.CourseAssignments {
			if courseA.CourseAssignments[j] != courseB.CourseAssignments[j] {
				return false
			}
		}
	}
	return true
}
