package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

func TestDecodePairedTheorySlot(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Operating Systems", SlotNumber: "A1", Room: "LH101"},
	})

	require.Len(t, tt[models.Monday], 1)
	require.Len(t, tt[models.Wednesday], 1)
	assert.Empty(t, tt[models.Tuesday])
	assert.Empty(t, tt[models.Thursday])
	assert.Empty(t, tt[models.Friday])

	monday := tt[models.Monday][0]
	assert.Equal(t, models.SessionTheory, monday.Type)
	assert.Equal(t, "Operating Systems", monday.SubjectName)
	assert.Equal(t, "8:00 AM - 8:50 AM", monday.Timing)
	assert.Equal(t, "LH101", monday.Location)
	assert.Equal(t, "A1", monday.SlotNumber)

	wednesday := tt[models.Wednesday][0]
	assert.Equal(t, "9:00 AM - 9:50 AM", wednesday.Timing)
}

func TestDecodeLabPairProducesOneBlock(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Networks Lab", SlotNumber: "L31+L32", Room: "LB1"},
	})

	require.Len(t, tt[models.Monday], 1)
	session := tt[models.Monday][0]
	assert.Equal(t, models.SessionLab, session.Type)
	assert.Equal(t, "2:00 PM - 3:40 PM", session.Timing)
	assert.Equal(t, "LB1", session.Location)
	assert.Equal(t, "L31+L32", session.SlotNumber)

	for _, day := range []models.Weekday{models.Tuesday, models.Wednesday, models.Thursday, models.Friday} {
		assert.Empty(t, tt[day])
	}
}

func TestDecodeEvenLabCodeAloneStillDecodesBlock(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Networks Lab", SlotNumber: "L32", Room: "LB1"},
	})

	require.Len(t, tt[models.Monday], 1)
	assert.Equal(t, "2:00 PM - 3:40 PM", tt[models.Monday][0].Timing)
}

func TestDecodeNilRoomSuppressesEntry(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Soft Skills", SlotNumber: "A1+TA1", Room: "NIL"},
	})

	for _, day := range models.Weekdays {
		assert.Empty(t, tt[day])
	}
}

func TestDecodeTrailingDashAndUnknownCodes(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Compiler Design", SlotNumber: "B1+XX9-", Room: "LH202"},
	})

	// Unknown chunk is skipped, the recognized code still decodes.
	require.Len(t, tt[models.Tuesday], 1)
	require.Len(t, tt[models.Thursday], 1)
	assert.Equal(t, "B1+XX9", tt[models.Tuesday][0].SlotNumber)
}

func TestDecodeEmptySlotString(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Ghost", SlotNumber: "-", Room: "LH303"},
	})

	for _, day := range models.Weekdays {
		assert.Empty(t, tt[day])
	}
}

func TestDecodeOrdersDayByStartTime(t *testing.T) {
	svc := NewTimetableService(nil)

	// Scrape order: afternoon lab first, then a morning theory pair.
	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "DB Lab", SlotNumber: "L31+L32", Room: "LB2"},
		{SubjectName: "Databases", SlotNumber: "F1", Room: "LH110"},
		{SubjectName: "Theory of Computation", SlotNumber: "A1", Room: "LH111"},
	})

	monday := tt[models.Monday]
	require.Len(t, monday, 3)
	assert.Equal(t, "Theory of Computation", monday[0].SubjectName) // 8:00 AM
	assert.Equal(t, "Databases", monday[1].SubjectName)             // 9:00 AM
	assert.Equal(t, "DB Lab", monday[2].SubjectName)                // 2:00 PM
}

func TestDecodeMixedLabAndTheoryEntry(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode([]models.RawScheduleEntry{
		{SubjectName: "Embedded Systems", SlotNumber: "TA1+L31+L32", Room: "LB3"},
	})

	require.Len(t, tt[models.Friday], 1)
	assert.Equal(t, models.SessionTheory, tt[models.Friday][0].Type)
	require.Len(t, tt[models.Monday], 1)
	assert.Equal(t, models.SessionLab, tt[models.Monday][0].Type)
}

func TestDecodeAlwaysReturnsAllDays(t *testing.T) {
	svc := NewTimetableService(nil)

	tt := svc.Decode(nil)
	require.NotNil(t, tt)
	for _, day := range models.Weekdays {
		sessions, ok := tt[day]
		assert.True(t, ok)
		assert.NotNil(t, sessions)
		assert.Empty(t, sessions)
	}
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 0, clockMinutes("12:00 AM"))
	assert.Equal(t, 720, clockMinutes("12:00 PM"))
	assert.Equal(t, 480, clockMinutes("8:00 AM"))
	assert.Equal(t, 14*60+50, clockMinutes("2:50 PM"))
	assert.Equal(t, 0, clockMinutes("garbage"))
}
