package maintenance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/internal/cache"
	"github.com/charlesng35/restaurants/pkg/logger"
)

const defaultPurgeSpec = "@every 10m"

// Cleaner coordinates background maintenance tasks such as purging expired
// cache entries left behind by rate limit windows.
type Cleaner struct {
	purgers  map[string]cache.Purger
	cron     *cron.Cron
	now      func() time.Time
	log      *zap.Logger
	schedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for cleanup comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithSchedule overrides the cron specification for purge jobs.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithPurger registers a named store whose expired entries are removed on every run.
func WithPurger(name string, purger cache.Purger) Option {
	return func(cleaner *Cleaner) {
		if name != "" && purger != nil {
			cleaner.purgers[name] = purger
		}
	}
}

// NewCleaner constructs a Cleaner. Without purgers Start is a no-op.
func NewCleaner(opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		purgers:  make(map[string]cache.Purger),
		now:      time.Now,
		schedule: defaultPurgeSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the purge job with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if len(c.purgers) == 0 {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("cache purge failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("maintenance: schedule %q: %w", c.schedule, err)
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler. The returned context is done once running jobs complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce purges every registered store and combines their failures.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	names := make([]string, 0, len(c.purgers))
	for name := range c.purgers {
		names = append(names, name)
	}
	sort.Strings(names)

	now := c.now()
	var errs error
	for _, name := range names {
		removed, err := c.purgers[name].PurgeExpired(ctx, now)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("purge %s: %w", name, err))
			continue
		}
		if removed > 0 {
			c.log.Debug("purged expired entries", zap.String("store", name), zap.Int64("removed", removed))
		}
	}
	return errs
}
