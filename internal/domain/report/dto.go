package report

// CalendarEvent is shaped for the FullCalendar feed the frontend consumes.
// Leave events carry an exclusive end date (one day past the last day off).
type CalendarEvent struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Start         string                 `json:"start"`
	End           string                 `json:"end"`
	Color         string                 `json:"color,omitempty"`
	ClassName     string                 `json:"className,omitempty"`
	ExtendedProps map[string]interface{} `json:"extendedProps,omitempty"`
}

// Event colors, matching the frontend calendar styling.
const (
	ColorAttendance    = "#17a2b8"
	ColorLeavePending  = "#ffc107"
	ColorLeaveApproved = "#28a745"
)

// AttendanceReportParams are the raw query-string filters for the attendance
// report. Malformed dates are ignored, not rejected.
type AttendanceReportParams struct {
	StartDate  string
	EndDate    string
	EmployeeID string
	Location   string
}

// LeaveReportParams are the raw query-string filters for the leave report.
type LeaveReportParams struct {
	StartDate  string
	EndDate    string
	EmployeeID string
	Status     string
}
