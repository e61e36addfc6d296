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

	"github.com/rcliao/pulse/internal/api"
	"github.com/rcliao/pulse/internal/config"
	"github.com/rcliao/pulse/internal/domain"
	"github.com/rcliao/pulse/internal/service"
	"github.com/rcliao/pulse/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	repo, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer cleanup()

	taskService := service.NewTaskService(repo)
	insightService := service.NewInsightService(repo)

	if len(os.Args) > 1 && os.Args[1] == "--cli" {
		runCLI(taskService, insightService)
		return
	}

	runServer(cfg, taskService, insightService)
}

func openStore(cfg *config.Config) (domain.TaskRepository, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return storage.NewMemoryStore(), func() {}, nil
	case config.StorageSQLite:
		store, err := storage.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func runServer(cfg *config.Config, tasks *service.TaskService, insights *service.InsightService) {
	router := api.NewRouter(tasks, insights)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Pulse listening on %s (storage: %s)", cfg.Addr, cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Shutdown error:", err)
	}
	log.Println("Goodbye!")
}
