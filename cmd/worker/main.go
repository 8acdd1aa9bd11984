// The worker consumes relayed overtime events and writes notification log
// entries. It runs alongside the API server and needs only Redis.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"dutywire/internal/infrastructure/config"
	"dutywire/internal/infrastructure/pubsub"
	"dutywire/internal/shared/logger"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting overtime notification worker", "environment", env)

	if !cfg.Redis.Enabled {
		log.Errorw("redis is disabled; the notification worker requires it")
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Infow("shutting down worker")
		cancel()
	}()

	relay := pubsub.NewRedisOvertimeRelay(redisClient, cfg.Overtime.EventChannel, log)

	err = relay.SubscribeEvents(ctx, func(envelope pubsub.EventEnvelope) {
		var payload map[string]interface{}
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			log.Warnw("undecodable event payload",
				"event_type", envelope.EventType,
				"error", err)
			return
		}

		log.Infow("overtime notification",
			"event_type", envelope.EventType,
			"posting_id", envelope.AggregateID,
			"occurred_at", envelope.OccurredAt,
			"payload", payload,
		)
	})
	if err != nil && ctx.Err() == nil {
		log.Errorw("event subscription failed", "error", err)
		os.Exit(1)
	}

	log.Infow("worker exited gracefully")
}
