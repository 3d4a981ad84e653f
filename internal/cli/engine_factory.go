package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/internal/config"
	"github.com/aretw0/dfacheck/pkg/adapters/memory"
	"github.com/aretw0/dfacheck/pkg/adapters/redis"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/aretw0/dfacheck/pkg/observability"
	"github.com/aretw0/dfacheck/pkg/ports"
)

// CreateChecker initializes a Checker with standard CLI conventions:
// debug hooks when the logger is at debug level, the configured cache,
// and any extra hooks (e.g. metrics).
func CreateChecker(logger *slog.Logger, cache ports.VerdictCache, extra ...domain.LifecycleHooks) *dfacheck.Checker {
	hooks := extra
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = append([]domain.LifecycleHooks{createDebugHooks(logger)}, hooks...)
	}

	opts := []dfacheck.Option{dfacheck.WithLogger(logger)}
	if len(hooks) > 0 {
		opts = append(opts, dfacheck.WithLifecycleHooks(observability.Chain(hooks...)))
	}
	if cache != nil {
		opts = append(opts, dfacheck.WithCache(cache))
	}
	return dfacheck.New(opts...)
}

// CreateCache builds the verdict cache selected by cfg. It returns a nil
// cache for the "none" backend. The close function is never nil.
func CreateCache(cfg config.CacheConfig) (ports.VerdictCache, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "", "none":
		return nil, noop, nil
	case "memory":
		return memory.NewCache(), noop, nil
	case "redis":
		c := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return c, c.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
