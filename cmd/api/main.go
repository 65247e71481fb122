package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/souqsyria/backend/internal/audit"
	"github.com/souqsyria/backend/internal/cache"
	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/database"
	"github.com/souqsyria/backend/internal/database/migrations"
	"github.com/souqsyria/backend/internal/handlers"
	"github.com/souqsyria/backend/internal/jobs"
	"github.com/souqsyria/backend/internal/queue"
	"github.com/souqsyria/backend/internal/routes"
	"github.com/souqsyria/backend/internal/services/catalog"
	"github.com/souqsyria/backend/internal/services/kyc"
	"github.com/souqsyria/backend/internal/services/membership"
	"github.com/souqsyria/backend/internal/services/notification"
	"github.com/souqsyria/backend/internal/services/order"
	"github.com/souqsyria/backend/internal/services/payment"
	"github.com/souqsyria/backend/internal/services/refund"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cacheClient := cache.NewClient(cfg.Redis)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unavailable, caching disabled: %v", err)
	}

	jobQueue := queue.NewQueue(db)

	orderSvc := order.NewService(db)
	paymentSvc := payment.NewService(db)
	kycSvc := kyc.NewService(db, cfg.Kyc, jobQueue)
	refundSvc := refund.NewService(db, orderSvc, paymentSvc, jobQueue)
	catalogSvc := catalog.NewService(db, cacheClient)
	membershipSvc := membership.NewService(db, cacheClient, jobQueue)
	notificationSvc := notification.NewService(db)
	auditLogger := audit.NewLogger(db)

	notificationSvc.RegisterHandlers(jobQueue)
	jobQueue.StartProcessing()
	defer jobQueue.StopProcessing()

	scheduler := jobs.NewScheduler(kycSvc, membershipSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	router := routes.SetupRouter(cfg, routes.Handlers{
		Kyc:          handlers.NewKycHandler(kycSvc, auditLogger),
		Refund:       handlers.NewRefundHandler(refundSvc, auditLogger),
		Catalog:      handlers.NewCatalogHandler(catalogSvc),
		Membership:   handlers.NewMembershipHandler(membershipSvc),
		Governorate:  handlers.NewGovernorateHandler(db, cacheClient),
		Notification: handlers.NewNotificationHandler(notificationSvc),
		Order:        handlers.NewOrderHandler(orderSvc),
		StaffAuth:    handlers.NewStaffAuthHandler(db, cfg.JWT, auditLogger),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("SouqSyria API server running on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	_ = cacheClient.Close()
	log.Println("Server exited")
}
