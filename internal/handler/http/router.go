package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/time/rate"
)

const (
	appName    = "hrms-lite"
	appVersion = "v1.0.0"
)

func NewRouter(
	cfg *config.Config,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	dashboardHandler DashboardHandler,
	salaryHandler SalaryHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.SlogLevel(),
	})).With(
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if cfg.App.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.RequestID)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(middleware.RateLimitByIP(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL))

	r.Route("/employees", func(r chi.Router) {
		r.Get("/", employeeHandler.ListEmployees)
		r.Post("/", employeeHandler.CreateEmployee)
		r.Get("/{employee_id}", employeeHandler.GetEmployee)
		r.Delete("/{employee_id}", employeeHandler.DeleteEmployee)
	})

	r.Route("/attendance", func(r chi.Router) {
		r.Post("/", attendanceHandler.MarkAttendance)
		r.Get("/all", attendanceHandler.ListAll)
		r.Get("/roster", attendanceHandler.Roster)
		// {id} is an employee id for GET and a record id for PUT
		r.Get("/{id}", attendanceHandler.ListByEmployee)
		r.Put("/{id}", attendanceHandler.UpdateAttendance)
	})

	r.Get("/stats/attendance/today", attendanceHandler.TodayStats)
	r.Get("/dashboard", dashboardHandler.GetDashboard)

	r.Route("/salary", func(r chi.Router) {
		r.Post("/", salaryHandler.CreateSalary)
		r.Get("/month/{month}", salaryHandler.ListByMonth)
		r.Get("/employee/{employee_id}", salaryHandler.ListByEmployee)

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/summary/{month}", salaryHandler.Summary)
			r.Get("/export/{month}", salaryHandler.ExportMonth)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", salaryHandler.GetSalary)
			r.Put("/", salaryHandler.UpdateSalary)
			r.Delete("/", salaryHandler.DeleteSalary)
			r.Get("/payslip", salaryHandler.Payslip)
		})
	})

	return r
}
