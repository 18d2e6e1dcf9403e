package pipeline

import (
	"context"
	"fmt"

	"github.com/RavensCloud/trendbot/tiktok"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner sequences one batch: scrape, filter, publish each qualifying
// profile. Publishes are strictly serial; the injected Pacer spaces them.
type Runner struct {
	source    ProfileSource
	publisher Publisher
	pacer     *Pacer
	logger    *zap.Logger

	minFollowers string
	count        int
}

// NewRunner wires a Runner from its collaborators and the run settings.
func NewRunner(source ProfileSource, publisher Publisher, pacer *Pacer, cfg *Config, logger *zap.Logger) *Runner {
	return &Runner{
		source:       source,
		publisher:    publisher,
		pacer:        pacer,
		logger:       logger,
		minFollowers: cfg.MinFollowers,
		count:        cfg.TrendCount,
	}
}

// Run executes the batch and returns how many profiles were published.
// Source failures degrade to an empty batch; a single publish failure never
// stops the loop. Run itself never returns an error.
func (r *Runner) Run(ctx context.Context) int {
	logger := r.logger.With(zap.String("run_id", uuid.NewString()))

	logger.Info("fetching trending profiles", zap.Int("count", r.count))
	profiles, err := r.source.Profiles(ctx, r.count)
	if err != nil {
		logger.Warn("profile source failed, continuing with what was collected",
			zap.Error(err), zap.Int("collected", len(profiles)))
	}
	logger.Info("scrape complete", zap.Int("profiles", len(profiles)))

	filtered := Filter(profiles, r.minFollowers, logger)
	logger.Info("filter complete",
		zap.Int("qualifying", len(filtered)),
		zap.String("min_followers", r.minFollowers))

	if len(filtered) == 0 {
		logger.Info("run complete", zap.Int("published", 0))
		return 0
	}

	posted := make(map[string]struct{}, len(filtered))
	for _, profile := range filtered {
		if _, ok := posted[profile.Username]; ok {
			logger.Info("skipping duplicate username", zap.String("username", profile.Username))
			continue
		}

		if err := r.publish(ctx, profile); err != nil {
			logger.Warn("publish failed",
				zap.String("username", profile.Username), zap.Error(err))
		} else {
			posted[profile.Username] = struct{}{}
			logger.Info("publish succeeded", zap.String("username", profile.Username))
		}

		r.pacer.Wait()
	}

	logger.Info("run complete", zap.Int("published", len(posted)))
	return len(posted)
}

// publish isolates one attempt, converting a panicking collaborator into an
// ordinary failure so a single bad profile cannot take down the loop.
func (r *Runner) publish(ctx context.Context, profile tiktok.Profile) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &publishPanicError{value: rec}
		}
	}()
	return r.publisher.Publish(ctx, profile)
}

type publishPanicError struct {
	value any
}

func (e *publishPanicError) Error() string {
	return fmt.Sprintf("publisher panicked: %v", e.value)
}
