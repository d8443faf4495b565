package service

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

// roomNilSentinel is the literal the portal prints when a registration has
// no venue. Such entries never produce sessions.
const roomNilSentinel = "NIL"

// TimetableService decodes raw portal slot strings into the weekly grid.
type TimetableService struct {
	logger *zap.Logger
}

// NewTimetableService constructs a TimetableService.
func NewTimetableService(logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{logger: logger}
}

// Decode transforms scraped schedule rows into a per-day ordered timetable.
// Unknown or malformed slot codes are skipped, never fatal; a subject mixing
// lab pairs and theory codes in one slot string yields sessions for each
// recognized chunk independently.
func (s *TimetableService) Decode(entries []models.RawScheduleEntry) models.WeeklyTimetable {
	tt := models.NewWeeklyTimetable()

	for _, entry := range entries {
		codes := splitSlotCodes(entry.SlotNumber)
		if len(codes) == 0 {
			continue
		}
		if entry.Room == roomNilSentinel {
			continue
		}
		joined := strings.Join(codes, "+")

		for _, code := range codes {
			if idx, ok := labSlotIndex(code); ok {
				s.decodeLab(tt, entry, code, idx, codes, joined)
				continue
			}
			s.decodeTheory(tt, entry, code, joined)
		}
	}

	for _, day := range models.Weekdays {
		sortSessions(tt[day])
	}
	return tt
}

// decodeLab emits one LAB session for a two-period block. The odd slot of a
// pair carries the block; its even partner is skipped so the block is never
// emitted twice. An even code whose odd partner is absent from the same slot
// string still denotes the block and is decoded once.
func (s *TimetableService) decodeLab(tt models.WeeklyTimetable, entry models.RawScheduleEntry, code string, idx int, codes []string, joined string) {
	base := idx
	if idx%2 == 0 {
		base = idx - 1
		if containsCode(codes, "L"+strconv.Itoa(base)) {
			return
		}
	}

	day, ok := labSlotDays[code]
	if !ok {
		return
	}
	first, ok := labSlotTimings["L"+strconv.Itoa(base)]
	if !ok {
		return
	}
	second, ok := labSlotTimings["L"+strconv.Itoa(base+1)]
	if !ok {
		return
	}

	start := timingStart(first)
	end := timingEnd(second)
	tt[day] = append(tt[day], models.ScheduledSession{
		Type:        models.SessionLab,
		SubjectName: entry.SubjectName,
		Timing:      start + " - " + end,
		Location:    entry.Room,
		SlotNumber:  joined,
	})
}

// decodeTheory emits one THEORY session per weekday occurrence of the code.
func (s *TimetableService) decodeTheory(tt models.WeeklyTimetable, entry models.RawScheduleEntry, code, joined string) {
	slot, ok := theorySlots[code]
	if !ok {
		s.logger.Debug("unmapped slot code", zap.String("code", code))
		return
	}
	for _, occ := range slot.Occurrences {
		if occ.TimingIndex < 0 || occ.TimingIndex >= len(slot.Timings) {
			continue
		}
		tt[occ.Day] = append(tt[occ.Day], models.ScheduledSession{
			Type:        models.SessionTheory,
			SubjectName: entry.SubjectName,
			Timing:      slot.Timings[occ.TimingIndex],
			Location:    entry.Room,
			SlotNumber:  joined,
		})
	}
}

// splitSlotCodes strips one optional trailing "-" and splits on "+".
func splitSlotCodes(raw string) []string {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "-"))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "+")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// sortSessions orders a day's sessions ascending by start time, keeping
// scrape order for equal starts.
func sortSessions(sessions []models.ScheduledSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return clockMinutes(timingStart(sessions[i].Timing)) < clockMinutes(timingStart(sessions[j].Timing))
	})
}

func timingStart(timing string) string {
	if idx := strings.Index(timing, " - "); idx >= 0 {
		return timing[:idx]
	}
	return timing
}

func timingEnd(timing string) string {
	if idx := strings.Index(timing, " - "); idx >= 0 {
		return timing[idx+3:]
	}
	return timing
}

// clockMinutes converts a 12-hour clock string like "8:50 AM" to minutes
// since midnight. "12 AM" maps to 0, "12 PM" to noon.
func clockMinutes(clock string) int {
	fields := strings.Fields(clock)
	if len(fields) != 2 {
		return 0
	}
	hm := strings.SplitN(fields[0], ":", 2)
	if len(hm) != 2 {
		return 0
	}
	hours, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0
	}
	switch fields[1] {
	case "PM":
		if hours != 12 {
			hours += 12
		}
	case "AM":
		if hours == 12 {
			hours = 0
		}
	}
	return hours*60 + minutes
}
