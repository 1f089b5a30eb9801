package attendance

import "errors"

var (
	ErrAlreadyRecorded    = errors.New("attendance already recorded for this date")
	ErrPastDate           = errors.New("cannot record attendance for past dates")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
