package service

import (
	"strconv"
	"strings"

	"github.com/IEEECS-VIT/assignofast-sync/internal/models"
)

// Static slot tables for the VTOP weekly grid. Paired theory codes (A1, B2,
// ...) occur twice a week at two different times; the occurrence carries an
// index into the timings list. Single codes (TA1, V3, ...) occur once. Lab
// codes L1-L60 are consumed as contiguous odd/even pairs forming one
// two-period block. These tables are fixed configuration, never mutated at
// runtime.

type theoryOccurrence struct {
	Day         models.Weekday
	TimingIndex int
}

type theorySlot struct {
	Timings     []string
	Occurrences []theoryOccurrence
}

var theorySlots = map[string]theorySlot{
	"A1": {
		Timings:     []string{"8:00 AM - 8:50 AM", "9:00 AM - 9:50 AM"},
		Occurrences: []theoryOccurrence{{models.Monday, 0}, {models.Wednesday, 1}},
	},
	"A2": {
		Timings:     []string{"2:00 PM - 2:50 PM", "3:00 PM - 3:50 PM"},
		Occurrences: []theoryOccurrence{{models.Monday, 0}, {models.Wednesday, 1}},
	},
	"B1": {
		Timings:     []string{"8:00 AM - 8:50 AM", "9:00 AM - 9:50 AM"},
		Occurrences: []theoryOccurrence{{models.Tuesday, 0}, {models.Thursday, 1}},
	},
	"B2": {
		Timings:     []string{"2:00 PM - 2:50 PM", "3:00 PM - 3:50 PM"},
		Occurrences: []theoryOccurrence{{models.Tuesday, 0}, {models.Thursday, 1}},
	},
	"C1": {
		Timings:     []string{"8:00 AM - 8:50 AM", "9:00 AM - 9:50 AM"},
		Occurrences: []theoryOccurrence{{models.Wednesday, 0}, {models.Friday, 1}},
	},
	"C2": {
		Timings:     []string{"2:00 PM - 2:50 PM", "3:00 PM - 3:50 PM"},
		Occurrences: []theoryOccurrence{{models.Wednesday, 0}, {models.Friday, 1}},
	},
	"D1": {
		Timings:     []string{"10:00 AM - 10:50 AM", "8:00 AM - 8:50 AM"},
		Occurrences: []theoryOccurrence{{models.Monday, 0}, {models.Thursday, 1}},
	},
	"D2": {
		Timings:     []string{"4:00 PM - 4:50 PM", "2:00 PM - 2:50 PM"},
		Occurrences: []theoryOccurrence{{models.Monday, 0}, {models.Thursday, 1}},
	},
	"E1": {
		Timings:     []string{"10:00 AM - 10:50 AM", "8:00 AM - 8:50 AM"},
		Occurrences: []theoryOccurrence{{models.Tuesday, 0}, {models.Friday, 1}},
	},
	"E2": {
		Timings:     []string{"4:00 PM - 4:50 PM", "2:00 PM - 2:50 PM"},
		Occurrences: []theoryOccurrence{{models.Tuesday, 0}, {models.Friday, 1}},
	},
	"F1": {
		Timings:     []string{"9:00 AM - 9:50 AM", "10:00 AM - 10:50 AM"},
		Occurrences: []theoryOccurrence{{models.Monday, 0}, {models.Wednesday, 1}},
	},
	"F2": {
		Timings:     []string{"3:00 PM - 3:50 PM", "4:00 PM - 4:50 PM"},
		Occurrences: []theoryOccurrence{{models.Monday, 0}, {models.Wednesday, 1}},
	},
	"G1": {
		Timings:     []string{"10:00 AM - 10:50 AM", "9:00 AM - 9:50 AM"},
		Occurrences: []theoryOccurrence{{models.Thursday, 0}, {models.Tuesday, 1}},
	},
	"G2": {
		Timings:     []string{"4:00 PM - 4:50 PM", "3:00 PM - 3:50 PM"},
		Occurrences: []theoryOccurrence{{models.Thursday, 0}, {models.Tuesday, 1}},
	},

	// Additional theory slots occur once a week.
	"TA1":  {Timings: []string{"10:00 AM - 10:50 AM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
	"TA2":  {Timings: []string{"4:00 PM - 4:50 PM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
	"TAA1": {Timings: []string{"12:00 PM - 12:50 PM"}, Occurrences: []theoryOccurrence{{models.Tuesday, 0}}},
	"TAA2": {Timings: []string{"6:00 PM - 6:50 PM"}, Occurrences: []theoryOccurrence{{models.Tuesday, 0}}},
	"TB1":  {Timings: []string{"11:00 AM - 11:50 AM"}, Occurrences: []theoryOccurrence{{models.Monday, 0}}},
	"TB2":  {Timings: []string{"5:00 PM - 5:50 PM"}, Occurrences: []theoryOccurrence{{models.Monday, 0}}},
	"TBB2": {Timings: []string{"6:00 PM - 6:50 PM"}, Occurrences: []theoryOccurrence{{models.Wednesday, 0}}},
	"TC1":  {Timings: []string{"11:00 AM - 11:50 AM"}, Occurrences: []theoryOccurrence{{models.Tuesday, 0}}},
	"TC2":  {Timings: []string{"5:00 PM - 5:50 PM"}, Occurrences: []theoryOccurrence{{models.Tuesday, 0}}},
	"TCC1": {Timings: []string{"12:00 PM - 12:50 PM"}, Occurrences: []theoryOccurrence{{models.Thursday, 0}}},
	"TCC2": {Timings: []string{"6:00 PM - 6:50 PM"}, Occurrences: []theoryOccurrence{{models.Thursday, 0}}},
	"TD1":  {Timings: []string{"12:00 PM - 12:50 PM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
	"TD2":  {Timings: []string{"5:00 PM - 5:50 PM"}, Occurrences: []theoryOccurrence{{models.Wednesday, 0}}},
	"TDD2": {Timings: []string{"6:00 PM - 6:50 PM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
	"TE1":  {Timings: []string{"11:00 AM - 11:50 AM"}, Occurrences: []theoryOccurrence{{models.Thursday, 0}}},
	"TE2":  {Timings: []string{"5:00 PM - 5:50 PM"}, Occurrences: []theoryOccurrence{{models.Thursday, 0}}},
	"TF1":  {Timings: []string{"11:00 AM - 11:50 AM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
	"TF2":  {Timings: []string{"5:00 PM - 5:50 PM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
	"TG1":  {Timings: []string{"12:00 PM - 12:50 PM"}, Occurrences: []theoryOccurrence{{models.Monday, 0}}},
	"TG2":  {Timings: []string{"6:00 PM - 6:50 PM"}, Occurrences: []theoryOccurrence{{models.Monday, 0}}},

	// Extra evening theory slots.
	"V1": {Timings: []string{"11:00 AM - 11:50 AM"}, Occurrences: []theoryOccurrence{{models.Wednesday, 0}}},
	"V2": {Timings: []string{"12:00 PM - 12:50 PM"}, Occurrences: []theoryOccurrence{{models.Wednesday, 0}}},
	"V3": {Timings: []string{"7:01 PM - 7:50 PM"}, Occurrences: []theoryOccurrence{{models.Monday, 0}}},
	"V4": {Timings: []string{"7:01 PM - 7:50 PM"}, Occurrences: []theoryOccurrence{{models.Tuesday, 0}}},
	"V5": {Timings: []string{"7:01 PM - 7:50 PM"}, Occurrences: []theoryOccurrence{{models.Wednesday, 0}}},
	"V6": {Timings: []string{"7:01 PM - 7:50 PM"}, Occurrences: []theoryOccurrence{{models.Thursday, 0}}},
	"V7": {Timings: []string{"7:01 PM - 7:50 PM"}, Occurrences: []theoryOccurrence{{models.Friday, 0}}},
}

// labSlotTimings holds the per-slot window for L1-L60. Six slots per day,
// mornings L1-L30, afternoons L31-L60.
var labSlotTimings = map[string]string{
	"L1": "8:00 AM - 8:50 AM", "L2": "8:51 AM - 9:40 AM", "L3": "9:51 AM - 10:40 AM",
	"L4": "10:41 AM - 11:30 AM", "L5": "11:40 AM - 12:30 PM", "L6": "12:31 PM - 1:20 PM",

	"L7": "8:00 AM - 8:50 AM", "L8": "8:51 AM - 9:40 AM", "L9": "9:51 AM - 10:40 AM",
	"L10": "10:41 AM - 11:30 AM", "L11": "11:40 AM - 12:30 PM", "L12": "12:31 PM - 1:20 PM",

	"L13": "8:00 AM - 8:50 AM", "L14": "8:51 AM - 9:40 AM", "L15": "9:51 AM - 10:40 AM",
	"L16": "10:41 AM - 11:30 AM", "L17": "11:40 AM - 12:30 PM", "L18": "12:31 PM - 1:20 PM",

	"L19": "8:00 AM - 8:50 AM", "L20": "8:51 AM - 9:40 AM", "L21": "9:51 AM - 10:40 AM",
	"L22": "10:41 AM - 11:30 AM", "L23": "11:40 AM - 12:30 PM", "L24": "12:31 PM - 1:20 PM",

	"L25": "8:00 AM - 8:50 AM", "L26": "8:51 AM - 9:40 AM", "L27": "9:51 AM - 10:40 AM",
	"L28": "10:41 AM - 11:30 AM", "L29": "11:40 AM - 12:30 PM", "L30": "12:31 PM - 1:20 PM",

	"L31": "2:00 PM - 2:50 PM", "L32": "2:51 PM - 3:40 PM", "L33": "3:51 PM - 4:40 PM",
	"L34": "4:41 PM - 5:30 PM", "L35": "5:40 PM - 6:30 PM", "L36": "6:31 PM - 7:20 PM",

	"L37": "2:00 PM - 2:50 PM", "L38": "2:51 PM - 3:40 PM", "L39": "3:51 PM - 4:40 PM",
	"L40": "4:41 PM - 5:30 PM", "L41": "5:40 PM - 6:30 PM", "L42": "6:31 PM - 7:20 PM",

	"L43": "2:00 PM - 2:50 PM", "L44": "2:51 PM - 3:40 PM", "L45": "3:51 PM - 4:40 PM",
	"L46": "4:41 PM - 5:30 PM", "L47": "5:40 PM - 6:30 PM", "L48": "6:31 PM - 7:20 PM",

	"L49": "2:00 PM - 2:50 PM", "L50": "2:51 PM - 3:40 PM", "L51": "3:51 PM - 4:40 PM",
	"L52": "4:41 PM - 5:30 PM", "L53": "5:40 PM - 6:30 PM", "L54": "6:31 PM - 7:20 PM",

	"L55": "2:00 PM - 2:50 PM", "L56": "2:51 PM - 3:40 PM", "L57": "3:51 PM - 4:40 PM",
	"L58": "4:41 PM - 5:30 PM", "L59": "5:40 PM - 6:30 PM", "L60": "6:31 PM - 7:20 PM",
}

var labSlotDays = map[string]models.Weekday{
	"L1": models.Monday, "L2": models.Monday, "L3": models.Monday,
	"L4": models.Monday, "L5": models.Monday, "L6": models.Monday,
	"L7": models.Tuesday, "L8": models.Tuesday, "L9": models.Tuesday,
	"L10": models.Tuesday, "L11": models.Tuesday, "L12": models.Tuesday,
	"L13": models.Wednesday, "L14": models.Wednesday, "L15": models.Wednesday,
	"L16": models.Wednesday, "L17": models.Wednesday, "L18": models.Wednesday,
	"L19": models.Thursday, "L20": models.Thursday, "L21": models.Thursday,
	"L22": models.Thursday, "L23": models.Thursday, "L24": models.Thursday,
	"L25": models.Friday, "L26": models.Friday, "L27": models.Friday,
	"L28": models.Friday, "L29": models.Friday, "L30": models.Friday,
	"L31": models.Monday, "L32": models.Monday, "L33": models.Monday,
	"L34": models.Monday, "L35": models.Monday, "L36": models.Monday,
	"L37": models.Tuesday, "L38": models.Tuesday, "L39": models.Tuesday,
	"L40": models.Tuesday, "L41": models.Tuesday, "L42": models.Tuesday,
	"L43": models.Wednesday, "L44": models.Wednesday, "L45": models.Wednesday,
	"L46": models.Wednesday, "L47": models.Wednesday, "L48": models.Wednesday,
	"L49": models.Thursday, "L50": models.Thursday, "L51": models.Thursday,
	"L52": models.Thursday, "L53": models.Thursday, "L54": models.Thursday,
	"L55": models.Friday, "L56": models.Friday, "L57": models.Friday,
	"L58": models.Friday, "L59": models.Friday, "L60": models.Friday,
}

// labSlotIndex parses the numeric suffix of a lab code. ok is false for
// anything outside L1-L60.
func labSlotIndex(code string) (int, bool) {
	if !strings.HasPrefix(code, "L") {
		return 0, false
	}
	n, err := strconv.Atoi(code[1:])
	if err != nil || n < 1 || n > 60 {
		return 0, false
	}
	return n, true
}
