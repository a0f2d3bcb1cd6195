// Copyright (c) 2026 Askora. All rights reserved.
// Author: dev@askora.app

package qa

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/askora/askora/internal/platform/constants"
)

// ViewCounter buffers question view bumps so detail reads do not write a
// hot row on every request. Record returns the buffered delta after the
// bump so reads can present persisted views plus the pending count.
type ViewCounter interface {
	Record(context context.Context, questionID string) (int64, error)
}

// # Redis Implementation

// RedisViewCounter accumulates view deltas in Redis under one key per
// question and periodically folds them into the question rows.
type RedisViewCounter struct {
	client *redis.Client
	repo   QuestionRepository
	logger *slog.Logger
}

// NewRedisViewCounter constructs a counter writing through to the given
// question repository on flush.
func NewRedisViewCounter(client *redis.Client, repo QuestionRepository, logger *slog.Logger) *RedisViewCounter {
	return &RedisViewCounter{
		client: client,
		repo:   repo,
		logger: logger,
	}
}

// Record bumps the buffered counter for a question and returns the delta
// accumulated since the last flush.
func (counter *RedisViewCounter) Record(context context.Context, questionID string) (int64, error) {
	return counter.client.Incr(context, constants.RedisPrefixQuestionViews+questionID).Result()
}

// Flush drains every buffered counter into the persisted view columns.
// Each key is atomically read-and-cleared, so bumps arriving during the
// flush land in the next cycle. A question deleted since its last bump
// simply absorbs nothing.
func (counter *RedisViewCounter) Flush(context context.Context) error {
	var cursor uint64
	for {
		keys, next, err := counter.client.Scan(context, cursor, constants.RedisPrefixQuestionViews+"*", 100).Result()
		if err != nil {
			return err
		}

		for _, key := range keys {
			raw, err := counter.client.GetDel(context, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return err
			}

			delta, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || delta == 0 {
				continue
			}

			questionID := strings.TrimPrefix(key, constants.RedisPrefixQuestionViews)
			if err := counter.repo.AddQuestionViews(context, questionID, delta); err != nil {
				counter.logger.Warn("view_flush_failed",
					slog.String("question_id", questionID),
					slog.Int64("delta", delta),
					slog.String("error", err.Error()),
				)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Run flushes on the given interval until the context is cancelled, then
// performs one final drain so buffered views survive a clean shutdown.
func (counter *RedisViewCounter) Run(runContext context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := counter.Flush(runContext); err != nil {
				counter.logger.Warn("view_flush_cycle_failed", slog.String("error", err.Error()))
			}
		case <-runContext.Done():
			drainContext, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			if err := counter.Flush(drainContext); err != nil {
				counter.logger.Warn("view_flush_drain_failed", slog.String("error", err.Error()))
			}
			return
		}
	}
}
