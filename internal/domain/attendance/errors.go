package attendance

import "errors"

// Attendance domain errors. The state-conflict group always aborts before
// any mutation; callers re-fetch the record before retrying.
var (
	// State conflicts
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut     = errors.New("attendance is already checked out; submit a regularization request to correct it")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyOnBreak        = errors.New("a break is already in progress")
	ErrNotOnBreak            = errors.New("no break is in progress")
	ErrBreakStillOpen        = errors.New("end the current break before checking out")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time is earlier than check-in time")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
