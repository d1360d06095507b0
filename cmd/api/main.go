package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/config"
	domainNotification "github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/notification"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/events"
	appHTTP "github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/cron"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/database"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/jwt"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/sse"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/storage"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/repository/postgresql"
	attendanceService "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/attendance"
	serviceAuth "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/auth"
	directoryService "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/directory"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/service/file"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/service/leave"
	notificationService "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/notification"
	quotationService "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/quotation"
	ticketService "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/ticket"
	trainingService "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/training"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	trainingRepo := postgresql.NewTrainingRepository(db)
	enrollmentRepo := postgresql.NewEnrollmentRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	commentRepo := postgresql.NewCommentRepository(db)
	slaPolicyRepo := postgresql.NewSLAPolicyRepository(db)
	quotationRepo := postgresql.NewQuotationRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	dispatcher := events.NewDispatcher()
	hub := sse.NewHub()

	directory := directoryService.NewDirectoryService(userRepo, clientRepo, employeeRepo)
	notifier := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})
	notificationService.NewHooks(notifier, directory, employeeRepo).Register(dispatcher)

	fileService := file.NewFileService(fileStorage)
	authService := serviceAuth.NewAuthService(userRepo, employeeRepo, JWTService)
	requestService := leave.NewRequestService(db, leaveTypeRepo, leaveRequestRepo, employeeRepo, dispatcher)
	balanceService := leave.NewBalanceService(leaveTypeRepo, leaveRequestRepo, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo)
	trainingSvc := trainingService.NewTrainingService(db, trainingRepo, enrollmentRepo, employeeRepo, dispatcher)
	trainingSvc.RegisterEventHandlers(dispatcher)
	ticketSvc := ticketService.NewTicketService(db, ticketRepo, commentRepo, slaPolicyRepo, directory, dispatcher)
	quotationSvc := quotationService.NewQuotationService(db, quotationRepo, invoiceRepo, directory, dispatcher)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("sla-overdue-scan", cfg.Cron.SLAScanInterval, func(ctx context.Context) error {
		overdue, err := ticketSvc.ScanOverdue(ctx)
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			return nil
		}
		agents, err := directory.SupportAgents(ctx)
		if err != nil {
			return err
		}
		for _, t := range overdue {
			for _, agent := range agents {
				notifier.Notify(domainNotification.CreateNotificationRequest{
					RecipientID: agent,
					Type:        "ticket.sla_overdue",
					Title:       "Ticket past SLA",
					Message:     fmt.Sprintf("Ticket %s has exceeded its SLA resolution window", t.Number),
					Data:        map[string]interface{}{"ticket_id": t.ID, "number": t.Number},
				})
			}
		}
		return nil
	})
	scheduler.AddJob("expired-quotations-report", cfg.Cron.ExpiredQuotationsScanAt, func(ctx context.Context) error {
		expired, err := quotationSvc.ExpiredQuotations(ctx)
		if err != nil {
			return err
		}
		for _, q := range expired {
			slog.Info("Quotation past expiry date", "quotation_id", q.ID, "number", q.Number)
		}
		return nil
	})
	scheduler.Start()

	router := appHTTP.NewRouter(JWTService, cfg.App.CORSOrigin, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authService, JWTService),
		Leave:        appHTTP.NewLeaveHandler(requestService, balanceService),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Training:     appHTTP.NewTrainingHandler(trainingSvc),
		Ticket:       appHTTP.NewTicketHandler(ticketSvc, fileService),
		Quotation:    appHTTP.NewQuotationHandler(quotationSvc),
		Notification: appHTTP.NewNotificationHandler(notifier, JWTService, hub),
		Employee:     appHTTP.NewEmployeeHandler(directory),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	scheduler.Stop()
	notifier.Stop()
	db.Close()
}
