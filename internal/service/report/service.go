package report

import (
	"context"
	"fmt"
	"time"

	"github.com/netreply/attendance-backend-go/internal/domain/attendance"
	"github.com/netreply/attendance-backend-go/internal/domain/leave"
	"github.com/netreply/attendance-backend-go/internal/domain/report"
	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

type ReportService struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
) *ReportService {
	return &ReportService{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
	}
}

// AttendanceReport lists attendance records matching the filters. Malformed
// date or employee parameters are dropped silently, so a bad query string
// widens the report instead of failing it.
func (s *ReportService) AttendanceReport(ctx context.Context, params report.AttendanceReportParams) ([]attendance.AttendanceResponse, error) {
	filter := attendance.Filter{
		StartDate: parseDate(params.StartDate),
		EndDate:   parseDate(params.EndDate),
	}
	if validator.IsValidUUID(params.EmployeeID) {
		filter.EmployeeID = &params.EmployeeID
	}
	if params.Location != "" {
		filter.Location = &params.Location
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, len(records))
	for i, record := range records {
		responses[i] = attendance.ToResponse(record)
	}
	return responses, nil
}

// LeaveReport lists leave requests whose range touches the filter bounds.
// Parameter leniency matches AttendanceReport; an unknown status value is
// dropped too.
func (s *ReportService) LeaveReport(ctx context.Context, params report.LeaveReportParams) ([]leave.LeaveRequestResponse, error) {
	filter := leave.Filter{
		StartDate: parseDate(params.StartDate),
		EndDate:   parseDate(params.EndDate),
	}
	if validator.IsValidUUID(params.EmployeeID) {
		filter.EmployeeID = &params.EmployeeID
	}
	if status := leave.LeaveRequestStatus(params.Status); validStatus(status) {
		filter.Status = &status
	}

	requests, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, len(requests))
	for i, request := range requests {
		responses[i] = leave.ToResponse(request)
	}
	return responses, nil
}

// AttendanceCalendar shapes attendance records as single-day events.
func (s *ReportService) AttendanceCalendar(ctx context.Context, params report.AttendanceReportParams) ([]report.CalendarEvent, error) {
	records, err := s.AttendanceReport(ctx, params)
	if err != nil {
		return nil, err
	}

	events := make([]report.CalendarEvent, len(records))
	for i, record := range records {
		events[i] = attendanceEvent(record)
	}
	return events, nil
}

// LeaveCalendar shapes pending and approved leave as ranged events with an
// exclusive end date, the convention the calendar widget expects.
func (s *ReportService) LeaveCalendar(ctx context.Context, params report.LeaveReportParams) ([]report.CalendarEvent, error) {
	requests, err := s.LeaveReport(ctx, params)
	if err != nil {
		return nil, err
	}

	events := make([]report.CalendarEvent, 0, len(requests))
	for _, request := range requests {
		if request.Status != string(leave.LeaveRequestStatusPending) &&
			request.Status != string(leave.LeaveRequestStatusApproved) {
			continue
		}
		events = append(events, leaveEvent(request))
	}
	return events, nil
}

// Calendar merges the attendance and leave feeds.
func (s *ReportService) Calendar(ctx context.Context, params report.AttendanceReportParams) ([]report.CalendarEvent, error) {
	attendanceEvents, err := s.AttendanceCalendar(ctx, params)
	if err != nil {
		return nil, err
	}

	leaveEvents, err := s.LeaveCalendar(ctx, report.LeaveReportParams{
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		EmployeeID: params.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	return append(attendanceEvents, leaveEvents...), nil
}

func attendanceEvent(record attendance.AttendanceResponse) report.CalendarEvent {
	title := "Attendance"
	if record.EmployeeName != nil {
		title = *record.EmployeeName
	}
	return report.CalendarEvent{
		ID:        "attendance-" + record.ID,
		Title:     title,
		Start:     record.Date,
		End:       record.Date,
		Color:     report.ColorAttendance,
		ClassName: "attendance-event",
		ExtendedProps: map[string]interface{}{
			"employee_id": record.EmployeeID,
			"location":    record.Location,
		},
	}
}

func leaveEvent(request leave.LeaveRequestResponse) report.CalendarEvent {
	title := "Leave"
	if request.EmployeeName != nil {
		title = *request.EmployeeName + " (leave)"
	}

	color := report.ColorLeavePending
	if request.Status == string(leave.LeaveRequestStatusApproved) {
		color = report.ColorLeaveApproved
	}

	// FullCalendar treats the end date as exclusive.
	end, _ := time.Parse("2006-01-02", request.EndDate)
	return report.CalendarEvent{
		ID:        "leave-" + request.ID,
		Title:     title,
		Start:     request.StartDate,
		End:       end.AddDate(0, 0, 1).Format("2006-01-02"),
		Color:     color,
		ClassName: "leave-event leave-" + request.Status,
		ExtendedProps: map[string]interface{}{
			"employee_id": request.EmployeeID,
			"status":      request.Status,
			"reason":      request.Reason,
			"days":        request.Days,
		},
	}
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	date, ok := validator.IsValidDate(raw)
	if !ok {
		return nil
	}
	return &date
}

func validStatus(status leave.LeaveRequestStatus) bool {
	switch status {
	case leave.LeaveRequestStatusPending, leave.LeaveRequestStatusApproved,
		leave.LeaveRequestStatusRejected, leave.LeaveRequestStatusCancelled:
		return true
	}
	return false
}
