package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/campushr/hris-engine-go/internal/config"
	appHTTP "github.com/campushr/hris-engine-go/internal/handler/http"
	"github.com/campushr/hris-engine-go/internal/pkg/database"
	"github.com/campushr/hris-engine-go/internal/pkg/jwt"
	"github.com/campushr/hris-engine-go/internal/repository/postgresql"
	approvalService "github.com/campushr/hris-engine-go/internal/service/approval"
	attendanceService "github.com/campushr/hris-engine-go/internal/service/attendance"
	shiftService "github.com/campushr/hris-engine-go/internal/service/shift"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	workingHoursRepo := postgresql.NewWorkingHoursRepository(db)
	shiftPackageRepo := postgresql.NewShiftPackageRepository(db)
	shiftPatternRepo := postgresql.NewShiftPatternRepository(db)
	shiftSettingRepo := postgresql.NewShiftSettingRepository(db)
	shiftScheduleRepo := postgresql.NewShiftScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	officeLocationRepo := postgresql.NewOfficeLocationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	shiftSvc := shiftService.NewService(
		workingHoursRepo,
		shiftPackageRepo,
		shiftPatternRepo,
		shiftSettingRepo,
		shiftScheduleRepo,
		db,
	)
	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		shiftSvc,
		attendanceService.NewHolidayLookup(holidayRepo),
		attendanceService.NewOfficeLocationProvider(officeLocationRepo, cfg.Office),
		attendanceService.NewWfhApprovalLookup(requestRepo),
		db,
	)
	approvalSvc := approvalService.NewService(
		requestRepo,
		leaveBalanceRepo,
		approvalService.NewSupervisorResolver(employeeRepo, departmentRepo),
		db,
	)

	router := appHTTP.NewRouter(
		jwtService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewScheduleHandler(shiftSvc),
		appHTTP.NewRequestHandler(approvalSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
