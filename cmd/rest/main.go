package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-membership-be/internal/bootstrap"
	"gym-membership-be/internal/config"
	"gym-membership-be/internal/model"
	"gym-membership-be/internal/server"
	"gym-membership-be/internal/tracer"
	"gym-membership-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.Open(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()
	sysLogger := container.Logger

	shutdownTracer := tracer.InitTracer(cfg.Otel, sysLogger)

	// 4. Start Background Services
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if container.Notifications != nil {
		if err := container.Notifications.Start(bgCtx); err != nil {
			sysLogger.Error("MAIN", "Failed to start notification consumer", map[string]interface{}{"error": err.Error()})
		}
	}
	if container.Scheduler != nil {
		container.Scheduler.Start()
	}

	// 5. Run Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sysLogger.Info("MAIN", "Shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if container.Scheduler != nil {
		container.Scheduler.Stop(ctx)
	}
	stopBackground()
	if err := shutdownTracer(ctx); err != nil {
		sysLogger.Warn("MAIN", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
