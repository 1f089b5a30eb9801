package http

import (
	"net/http"

	"github.com/netreply/attendance-backend-go/internal/domain/report"
	"github.com/netreply/attendance-backend-go/internal/handler/http/response"
	reportservice "github.com/netreply/attendance-backend-go/internal/service/report"
)

type ReportHandler interface {
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	LeaveReport(w http.ResponseWriter, r *http.Request)
	AttendanceCalendar(w http.ResponseWriter, r *http.Request)
	LeaveCalendar(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService *reportservice.ReportService
}

func NewReportHandler(reportService *reportservice.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func attendanceParams(r *http.Request) report.AttendanceReportParams {
	q := r.URL.Query()
	return report.AttendanceReportParams{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
		Location:   q.Get("location"),
	}
}

func leaveParams(r *http.Request) report.LeaveReportParams {
	q := r.URL.Query()
	return report.LeaveReportParams{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		EmployeeID: q.Get("employee_id"),
		Status:     q.Get("status"),
	}
}

// AttendanceReport implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	records, err := h.reportService.AttendanceReport(r.Context(), attendanceParams(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

// LeaveReport implements ReportHandler.
func (h *ReportHandlerImpl) LeaveReport(w http.ResponseWriter, r *http.Request) {
	requests, err := h.reportService.LeaveReport(r.Context(), leaveParams(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// AttendanceCalendar implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.reportService.AttendanceCalendar(r.Context(), attendanceParams(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, events)
}

// LeaveCalendar implements ReportHandler.
func (h *ReportHandlerImpl) LeaveCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.reportService.LeaveCalendar(r.Context(), leaveParams(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, events)
}

// Calendar implements ReportHandler.
func (h *ReportHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	events, err := h.reportService.Calendar(r.Context(), attendanceParams(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, events)
}
