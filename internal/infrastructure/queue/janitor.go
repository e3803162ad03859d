package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ValiCoder/courseboard/internal/api/metrics"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

const (
	queueBuffer  = 64
	maxAttempts  = 5
	retryBackoff = 2 * time.Second
)

// Janitor removes courses left behind when an account deletion's inline
// cascade failed. Account deletion and the course sweep are two independent
// operations with no atomicity between them; the janitor closes the gap by
// retrying the sweep until the owner's courses are gone.
type Janitor struct {
	courses ports.CourseRepository
	jobs    chan string
	backoff time.Duration
	log     zerolog.Logger
}

// NewJanitor creates a Janitor backed by the given course repository.
func NewJanitor(courses ports.CourseRepository, log zerolog.Logger) *Janitor {
	return &Janitor{
		courses: courses,
		jobs:    make(chan string, queueBuffer),
		backoff: retryBackoff,
		log:     log,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

// Sweep schedules deletion of every course owned by ownerID. Non-blocking:
// when the queue is full the job is dropped and logged, leaving the orphaned
// courses in place.
func (j *Janitor) Sweep(ownerID string) {
	select {
	case j.jobs <- ownerID:
	default:
		metrics.CascadeSweepsTotal.WithLabelValues("dropped").Inc()
		j.log.Error().Str("owner_id", ownerID).Msg("cleanup queue full, sweep dropped")
	}
}

func (j *Janitor) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ownerID := <-j.jobs:
			j.sweep(ctx, ownerID)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context, ownerID string) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		deleted, err := j.courses.DeleteByOwner(ctx, ownerID)
		if err == nil {
			metrics.CascadeSweepsTotal.WithLabelValues("retried").Inc()
			j.log.Info().Str("owner_id", ownerID).Int64("deleted", deleted).Msg("orphaned courses swept")
			return
		}

		j.log.Warn().Err(err).
			Str("owner_id", ownerID).
			Int("attempt", attempt).
			Msg("course sweep failed")

		select {
		case <-ctx.Done():
			return
		case <-time.After(j.backoff):
		}
	}

	metrics.CascadeSweepsTotal.WithLabelValues("failed").Inc()
	j.log.Error().Str("owner_id", ownerID).Msg("course sweep abandoned after retries")
}
