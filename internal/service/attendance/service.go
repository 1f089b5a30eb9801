package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/netreply/attendance-backend-go/internal/domain/attendance"
	"github.com/netreply/attendance-backend-go/internal/pkg/validator"
)

type AttendanceService struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository) *AttendanceService {
	return &AttendanceService{attendanceRepo: attendanceRepo}
}

// Record stores one attendance entry per employee per day. Backdated entries
// are refused; re-recording the same day returns ErrAlreadyRecorded.
func (s *AttendanceService) Record(ctx context.Context, employeeID string, req *attendance.RecordAttendanceRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.Before(today()) {
		return nil, attendance.ErrPastDate
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Location:   req.Location,
	})
	if err != nil {
		return nil, err
	}

	resp := attendance.ToResponse(created)
	return &resp, nil
}

// MyAttendance lists the caller's attendance history, newest first.
func (s *AttendanceService) MyAttendance(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, len(records))
	for i, record := range records {
		responses[i] = attendance.ToResponse(record)
	}
	return responses, nil
}

// today returns the current local date in the same representation the
// request dates parse to, so date-only comparisons line up.
func today() time.Time {
	t, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
	return t
}
