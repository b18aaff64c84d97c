package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"loginattendance/internal/audit"
	"loginattendance/internal/config"
	"loginattendance/internal/queue"
	"loginattendance/internal/store"
)

// Worker tails attendance events from redis and writes an audit trail.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.QueueBackend != "redis" {
		log.Fatalf("worker needs QUEUE_BACKEND=redis (got %q); the memory backend is consumed in-process by the api", cfg.QueueBackend)
	}

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()
	if !redisClient.Healthy(ctx) {
		log.Printf("WARNING: redis not reachable at %s, will keep retrying", cfg.RedisAddr)
	}

	q := queue.NewRedisQueue(redisClient.Client, cfg.QueueKey)

	log.Println("worker started, waiting for attendance events...")
	n, err := audit.NewConsumer(q, os.Stdout).Run(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}
	log.Printf("worker stopped after %d events", n)
}
