package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/netreply/attendance-backend-go/internal/config"
	appHTTP "github.com/netreply/attendance-backend-go/internal/handler/http"
	"github.com/netreply/attendance-backend-go/internal/pkg/database"
	"github.com/netreply/attendance-backend-go/internal/pkg/jwt"
	"github.com/netreply/attendance-backend-go/internal/pkg/oauth"
	"github.com/netreply/attendance-backend-go/internal/pkg/sse"
	"github.com/netreply/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/netreply/attendance-backend-go/internal/service/attendance"
	authService "github.com/netreply/attendance-backend-go/internal/service/auth"
	dashboardService "github.com/netreply/attendance-backend-go/internal/service/dashboard"
	employeeService "github.com/netreply/attendance-backend-go/internal/service/employee"
	leaveService "github.com/netreply/attendance-backend-go/internal/service/leave"
	notificationService "github.com/netreply/attendance-backend-go/internal/service/notification"
	reportService "github.com/netreply/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	titleRepo := postgresql.NewTitleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	transactor := postgresql.NewTransactor(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(
		cfg.OAuth2Google.ClientID,
		cfg.OAuth2Google.ClientSecret,
		cfg.OAuth2Google.RedirectURL,
		cfg.OAuth2Google.Scopes,
	)
	hub := sse.NewHub()

	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub)
	authSvc := authService.NewAuthService(employeeRepo, jwtSvc, googleSvc, cfg.Company)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, titleRepo, cfg.Company)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, notificationSvc, transactor)
	reportSvc := reportService.NewReportService(attendanceRepo, leaveRequestRepo)
	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, leaveRequestRepo, notificationRepo)

	router := appHTTP.NewRouter(cfg, jwtSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtSvc, authSvc, cfg.App.FrontendURL),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, jwtSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error:", err)
	}
}
