package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidRule     = errors.New("invalid rule")
	ErrInvalidShift    = errors.New("invalid shift")
	ErrPlanningLocked  = errors.New("planning is locked")
	ErrShiftDisabled   = errors.New("shift is not staffed for this item")
	ErrShiftFull       = errors.New("shift is at capacity")
	ErrAlreadyAssigned = errors.New("user already assigned to this shift")
)
