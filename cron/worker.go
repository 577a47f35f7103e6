package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"kerjalink/config"
	"kerjalink/models"
	"kerjalink/services/reliability"
	"kerjalink/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitScoreWorker runs the async score-recompute worker in background.
func InitScoreWorker(reliabilitySvc reliability.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScoreRecompute, handleScoreRecomputeTask(reliabilitySvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ScoreWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ScoreWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ScoreWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleScoreRecomputeTask(reliabilitySvc reliability.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ScoreRecomputePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ScoreWorker] invalid payload: %v", err)
			return err
		}

		score, err := reliabilitySvc.RecomputeScore(ctx, p.WorkerID)
		if err != nil {
			log.Printf("[ScoreWorker] failed to recompute score for worker %s (%s): %v", p.WorkerID, p.Reason, err)
			return err
		}

		log.Printf("[ScoreWorker] recomputed score for worker %s (%s): %.2f", p.WorkerID, p.Reason, score.Score)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ScoreWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
