package domain

import "fmt"

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// Shifts lists the daily periods in chronological order.
var Shifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}

// ParseShift accepts a shift name case-sensitively.
func ParseShift(s string) (Shift, error) {
	switch Shift(s) {
	case ShiftMorning, ShiftAfternoon, ShiftEvening:
		return Shift(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected morning, afternoon or evening)", ErrInvalidShift, s)
}
