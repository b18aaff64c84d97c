package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"loginattendance/internal/attendance"
	"loginattendance/internal/audit"
	"loginattendance/internal/config"
	"loginattendance/internal/credentials"
	"loginattendance/internal/httpapi"
	"loginattendance/internal/httpmiddleware"
	"loginattendance/internal/live"
	"loginattendance/internal/metrics"
	"loginattendance/internal/queue"
	"loginattendance/internal/render"
	"loginattendance/internal/session"
	"loginattendance/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := live.NewHub()
	go hub.Run(ctx)

	var (
		q           queue.Queue
		redisClient *store.Redis
	)
	if cfg.QueueBackend == "redis" {
		redisClient = store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		if !redisClient.Healthy(ctx) {
			log.Printf("warning: redis not reachable at %s", cfg.RedisAddr)
		}
		q = queue.NewRedisQueue(redisClient.Client, cfg.QueueKey)
	} else {
		mem := queue.NewInMemory(64)
		q = mem
		go func() {
			n, err := audit.NewConsumer(mem, os.Stdout).Run(ctx)
			if err != nil {
				log.Printf("audit consumer failed: %v", err)
			}
			log.Printf("audit consumer stopped after %d events", n)
		}()
	}

	attendanceLog := attendance.NewLog()
	table := render.NewTable()
	board := session.NewBoard(cfg.StatusClearAfter, session.AfterFunc, hub)
	ctrl := session.NewController(credentials.Default(), attendanceLog, render.New(table, hub), board, session.Options{
		Layout:   cfg.TimestampLayout,
		Location: cfg.Location,
		Alerter:  hub,
	})

	r := httpapi.NewRouter(httpapi.Deps{
		Controller: ctrl,
		Table:      table,
		Hub:        hub,
		Queue:      q,
		Metrics:    metrics.New(prometheus.DefaultRegisterer),
		Limiter:    httpmiddleware.NewLoginLimiter(cfg.RateLimitPerMin, cfg.RateLimitPerMin, nil),
		Redis:      redisClient,
		StaticDir:  cfg.StaticDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Printf("Server exited with %d attendance records in memory", attendanceLog.Len())
	return nil
}
