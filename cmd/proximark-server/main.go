package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/proximark/server/internal/attendance/service"
	sqlitestore "github.com/proximark/server/internal/attendance/store/sqlite"
	"github.com/proximark/server/internal/auth"
	"github.com/proximark/server/internal/config"
	"github.com/proximark/server/internal/db"
	"github.com/proximark/server/internal/httpapi"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "proximark-server ", log.LstdFlags|log.LUTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if cfg.Env == "dev" {
		if err := db.SeedDev(ctx, conn); err != nil {
			logger.Fatalf("seed dev data: %v", err)
		}
	}

	writer := db.NewWorker(conn)
	defer writer.Close()

	// Stores
	sessionStore := sqlitestore.NewSessionStore(conn, writer)
	studentStore := sqlitestore.NewStudentStore(conn, writer)
	attendanceStore := sqlitestore.NewAttendanceStore(conn, writer)
	courseStore := sqlitestore.NewCourseStore(conn, writer)
	userStore := sqlitestore.NewUserStore(conn, writer)

	// Services
	authSvc := auth.NewService(userStore, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	binding := service.NewDeviceBinding(studentStore)
	sessionSvc := service.NewSessionService(sessionStore, courseStore)
	verifySvc := service.NewVerifyService(sessionStore, studentStore, attendanceStore, binding)
	statsSvc := service.NewStatsService(sessionStore, attendanceStore, courseStore, studentStore)

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:         logger,
		Addr:           cfg.HTTPAddr,
		Auth:           authSvc,
		SessionService: sessionSvc,
		VerifyService:  verifySvc,
		StatsService:   statsSvc,
	})

	go func() {
		logger.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
