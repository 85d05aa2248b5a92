package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/campushr/hris-engine-go/internal/handler/http/middleware"
	"github.com/campushr/hris-engine-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	requestHandler RequestHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-engine"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.GetToday)
				r.Get("/me", attendanceHandler.ListMine)
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/resolve", scheduleHandler.ResolveMine)
				r.Get("/range", scheduleHandler.ResolveRangeMine)
			})

			// HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.HROnly)

				r.Route("/working-hours", func(r chi.Router) {
					r.Post("/", scheduleHandler.CreateWorkingHours)
					r.Get("/", scheduleHandler.ListWorkingHours)
				})
				r.Route("/shift-packages", func(r chi.Router) {
					r.Post("/", scheduleHandler.CreateShiftPackage)
					r.Get("/", scheduleHandler.ListShiftPackages)
				})
				r.Route("/shift-patterns", func(r chi.Router) {
					r.Post("/", scheduleHandler.CreateShiftPattern)
					r.Get("/", scheduleHandler.ListShiftPatterns)
				})
				r.Route("/shift-settings", func(r chi.Router) {
					r.Post("/", scheduleHandler.AssignShiftPattern)
					r.Get("/{employeeID}", scheduleHandler.ListShiftSettings)
				})
				r.Route("/shift-overrides", func(r chi.Router) {
					r.Post("/", scheduleHandler.CreateOverride)
					r.Delete("/{id}", scheduleHandler.DeleteOverride)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", requestHandler.Submit)
				r.Get("/me", requestHandler.ListMine)
				r.Get("/pending", requestHandler.ListPending)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", requestHandler.Get)
					r.Post("/approve-supervisor", requestHandler.ApproveBySupervisor)
					r.Post("/reject-supervisor", requestHandler.RejectBySupervisor)
					r.Post("/cancel", requestHandler.Cancel)

					r.Group(func(r chi.Router) {
						r.Use(middleware.HROnly)
						r.Post("/approve-hr", requestHandler.ApproveByHR)
						r.Post("/reject-hr", requestHandler.RejectByHR)
						r.Post("/reimburse", requestHandler.ReimburseLeave)
					})
				})
			})
		})
	})
	return r
}
