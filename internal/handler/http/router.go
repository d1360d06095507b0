package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/middleware"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/jwt"
)

type Handlers struct {
	Auth         AuthHandler
	Leave        LeaveHandler
	Attendance   AttendanceHandler
	Training     TrainingHandler
	Ticket       TicketHandler
	Quotation    QuotationHandler
	Notification NotificationHandler
	Employee     EmployeeHandler
}

func NewRouter(jwtService jwt.Service, corsOrigin string, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tekrem-erp"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		// The SSE stream authenticates with its own short-lived token because
		// EventSource cannot send headers.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave", func(r chi.Router) {
				r.Post("/requests", h.Leave.CreateRequest)
				r.Get("/requests/my", h.Leave.ListMyRequests)
				r.Get("/requests/{id}", h.Leave.GetRequest)
				r.Post("/requests/{id}/cancel", h.Leave.CancelRequest)
				r.Get("/balance", h.Leave.GetMyBalance)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Post("/requests/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/requests/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Post("/break/start", h.Attendance.StartBreak)
				r.Post("/break/end", h.Attendance.EndBreak)
				r.Get("/today", h.Attendance.GetToday)
				r.Get("/my", h.Attendance.ListMine)
			})

			r.Route("/trainings", func(r chi.Router) {
				r.Post("/enrollments", h.Training.Enroll)
				r.Get("/enrollments/my", h.Training.ListMyEnrollments)
				r.Post("/enrollments/{id}/start", h.Training.Start)
				r.Put("/enrollments/{id}/progress", h.Training.UpdateProgress)
				r.Post("/enrollments/{id}/drop", h.Training.Drop)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Post("/enrollments/{id}/complete", h.Training.Complete)
					r.Post("/enrollments/{id}/fail", h.Training.Fail)
					r.Get("/{id}/report", h.Training.CompletionReport)
				})
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Post("/", h.Ticket.Create)
				r.Get("/", h.Ticket.List)
				r.Post("/{id}/comments", h.Ticket.AddComment)
				r.Get("/{id}/comments", h.Ticket.ListComments)
				r.Post("/{id}/attachments", h.Ticket.UploadAttachment)
				r.Post("/{id}/reopen", h.Ticket.Reopen)
				r.Post("/{id}/close", h.Ticket.Close)

				// Staff only
				r.Group(func(r chi.Router) {
					r.Use(middleware.StaffOnly)
					r.Post("/{id}/in-progress", h.Ticket.MarkInProgress)
					r.Post("/{id}/pending", h.Ticket.MarkPending)
					r.Post("/{id}/resolve", h.Ticket.Resolve)
				})
			})

			// Staff only
			r.Group(func(r chi.Router) {
				r.Use(middleware.StaffOnly)

				r.Get("/employees/headcount", h.Employee.DepartmentHeadcount)

				r.Route("/quotations", func(r chi.Router) {
					r.Post("/", h.Quotation.Create)
					r.Get("/", h.Quotation.List)
					r.Get("/{id}", h.Quotation.Get)
					r.Get("/{id}/pdf", h.Quotation.DownloadPDF)
					r.Post("/{id}/send", h.Quotation.Send)
					r.Post("/{id}/accept", h.Quotation.Accept)
					r.Post("/{id}/reject", h.Quotation.Reject)
					r.Post("/{id}/convert", h.Quotation.ConvertToInvoice)
				})

				r.Route("/invoices", func(r chi.Router) {
					r.Get("/{id}/pdf", h.Quotation.DownloadInvoicePDF)
					r.Post("/{id}/pay", h.Quotation.MarkInvoicePaid)
				})
			})

			r.Get("/notifications", h.Notification.List)
			r.Get("/notifications/stream/token", h.Notification.StreamToken)
			r.Put("/notifications/{id}/read", h.Notification.MarkRead)
			r.Put("/notifications/read-all", h.Notification.MarkAllRead)
		})
	})
	return r
}
