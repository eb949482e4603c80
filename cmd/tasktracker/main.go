package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task-tracker/internal/bot"
	"task-tracker/internal/config"
	"task-tracker/internal/httpapi"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	analyticsSvc := service.NewAnalyticsService(taskRepo, cfg.MonthLocale, cfg.DefaultRange)
	boardSvc := service.NewBoardService(taskRepo)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, userRepo)
	projectSvc := service.NewProjectService(projectRepo, userRepo)
	dashboardSvc := service.NewDashboardService(taskRepo, projectRepo)
	summarySvc := service.NewSummaryService(analyticsSvc)

	api := httpapi.New(httpapi.Deps{
		Users:     userRepo,
		Analytics: analyticsSvc,
		Board:     boardSvc,
		Dashboard: dashboardSvc,
		Projects:  projectSvc,
		Tasks:     taskSvc,
		Logger:    log.New(os.Stdout, "", 0),
	})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[info] http listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server: %v", err)
			stop()
		}
	}()

	if cfg.BotEnabled() {
		telegramBot, err := bot.New(cfg, userRepo, taskSvc, boardSvc, analyticsSvc, summarySvc)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}

		scheduler := service.NewSchedulerService(time.UTC)
		if _, err := scheduler.ScheduleReport(cfg.ReportDay, cfg.ReportTime, cfg.ReportInterval, func() {
			jobCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := telegramBot.SendDigests(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("digest: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule digests: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()

		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("bot stopped with error: %v", err)
			}
		}()
	} else {
		log.Println("[info] TELEGRAM_TOKEN not set, bot disabled")
	}

	log.Println("Task tracker started.")
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
