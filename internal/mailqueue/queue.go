package mailqueue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/auth-api/internal/mailer"
)

// Sender delivers a queued email. *mailer.Mailer satisfies it.
type Sender interface {
	Send(email mailer.Email) error
}

const emailQueueKey = "email_queue"

// Queue is a redis-backed email job queue. Enqueue is fire-and-forget from the
// caller's point of view; delivery and retries happen in the worker.
type Queue struct {
	client *redis.Client
	logger *zerolog.Logger
	key    string
}

// NewQueue creates a new Queue on the given redis client.
func NewQueue(client *redis.Client, logger *zerolog.Logger) *Queue {
	return &Queue{
		client: client,
		logger: logger,
		key:    emailQueueKey,
	}
}

// Enqueue pushes an email job onto the queue.
func (q *Queue) Enqueue(ctx context.Context, email mailer.Email) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}

	return q.client.LPush(ctx, q.key, payload).Err()
}

// RunWorker consumes email jobs until the context is canceled. A failed
// delivery is logged and the job dropped; senders that need stronger
// guarantees should retry internally.
func (q *Queue) RunWorker(ctx context.Context, sender Sender) {
	for {
		result, err := q.client.BRPop(ctx, time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}

			q.logger.Error().Err(err).Msg("failed to pop email job")
			continue
		}

		// BRPop returns [key, value].
		if len(result) != 2 {
			continue
		}

		var email mailer.Email
		if err := json.Unmarshal([]byte(result[1]), &email); err != nil {
			q.logger.Error().Err(err).Msg("failed to decode email job")
			continue
		}

		if err := sender.Send(email); err != nil {
			q.logger.Error().Err(err).Strs("to", email.To).Msg("failed to send email")
		}
	}
}
