package dfacheck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/dfacheck/internal/compiler"
	"github.com/aretw0/dfacheck/internal/logging"
	"github.com/aretw0/dfacheck/internal/runtime"
	"github.com/aretw0/dfacheck/internal/validator"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/aretw0/dfacheck/pkg/ports"
)

// Version is the current release of dfacheck.
const Version = "0.3.0"

// Format names a concrete syntax for machine descriptions.
type Format = compiler.Format

const (
	FormatText = compiler.FormatText
	FormatYAML = compiler.FormatYAML
	FormatJSON = compiler.FormatJSON
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) { return compiler.ParseFormat(s) }

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) Format { return compiler.DetectFormat(path) }

// Report summarises structural facts about a valid automaton.
type Report = validator.Report

// Checker is the high-level entry point of the library.
// A Checker holds no per-machine state and is safe for concurrent use.
type Checker struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	cache  ports.VerdictCache
}

// Option defines a functional option for configuring the Checker.
type Option func(*Checker)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Checker) {
		c.hooks = hooks
	}
}

// WithCache memoizes verdicts of Check by description digest and word.
func WithCache(cache ports.VerdictCache) Option {
	return func(c *Checker) {
		c.cache = cache
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	return c
}

// Load parses and validates a description. It is the only way to obtain an
// Automaton: every query goes through this gate first.
func Load(data []byte, format Format) (*domain.Automaton, error) {
	def, err := compiler.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return validator.Build(def)
}

// Analyze reports unreachable and dead states of a valid automaton.
func Analyze(a *domain.Automaton) Report { return validator.Analyze(a) }

// Load parses and validates data, logging and reporting the outcome.
func (c *Checker) Load(ctx context.Context, data []byte, format Format) (*domain.Automaton, error) {
	a, err := Load(data, format)

	evt := &domain.LoadEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventLoad},
		Kind:      domain.Kind(err),
		Err:       err,
	}
	if err != nil {
		c.logger.Warn("machine rejected", "kind", evt.Kind, "error", err)
	} else {
		evt.Machine = a.Name()
		evt.States = a.NumStates()
		evt.Alphabet = len(a.Alphabet())
		c.logger.Debug("machine loaded", "name", a.Name(), "states", evt.States, "alphabet", evt.Alphabet)
	}
	if c.hooks.OnLoad != nil {
		c.hooks.OnLoad(ctx, evt)
	}
	return a, err
}

// LoadFile reads path and loads it. An empty format is detected from the
// file extension.
func (c *Checker) LoadFile(ctx context.Context, path string, format Format) (*domain.Automaton, error) {
	data, format, err := ReadFile(path, format)
	if err != nil {
		return nil, err
	}
	return c.Load(ctx, data, format)
}

// ReadFile reads a description and resolves its format.
func ReadFile(path string, format Format) ([]byte, Format, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format, fmt.Errorf("failed to read machine file: %w", err)
	}
	return data, format, nil
}

// Query answers one question about w against a valid automaton.
// On failure the returned verdict rejects and the error says why.
func (c *Checker) Query(ctx context.Context, a *domain.Automaton, w domain.Word, mode domain.Mode) (domain.Verdict, error) {
	begin := time.Now()

	v := domain.Verdict{Mode: mode, Word: w.String()}
	var err error
	switch mode {
	case domain.ModeExact, "":
		v.Mode = domain.ModeExact
		var q domain.StateID
		q, err = runtime.Run(a, a.Start(), w)
		if err == nil {
			v.FinalState = a.Label(q)
			v.Accepted = a.IsAccepting(q)
		}
	case domain.ModeInfix:
		v.Accepted, err = runtime.AcceptsInfix(a, w)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		v = domain.Reject(v.Mode, w, err)
		c.logger.Info("query rejected", "kind", v.Reason, "error", err)
	} else {
		c.logger.Debug("query answered", "mode", v.Mode, "accepted", v.Accepted, "final_state", v.FinalState)
	}

	c.emitQuery(ctx, v, false, time.Since(begin))
	return v, err
}

// Check loads a description and answers one query against it. Any failure,
// whether the machine is invalid or the word is not over its alphabet,
// yields a rejecting verdict together with the typed error.
func (c *Checker) Check(ctx context.Context, data []byte, format Format, word string, mode domain.Mode) (domain.Verdict, error) {
	w := domain.ParseWord(word)
	if mode == "" {
		mode = domain.ModeExact
	}

	key := CacheKey(data, format, mode, w)
	if c.cache != nil {
		v, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.logger.Debug("verdict cache hit", "key", key)
			c.emitQuery(ctx, v, true, 0)
			return v, nil
		case !errors.Is(err, domain.ErrVerdictNotFound):
			c.logger.Warn("verdict cache lookup failed", "error", err)
		}
	}

	a, err := c.Load(ctx, data, format)
	if err != nil {
		return domain.Reject(mode, w, err), err
	}
	v, err := c.Query(ctx, a, w, mode)
	if err != nil {
		return v, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, v); err != nil {
			c.logger.Warn("verdict cache store failed", "error", err)
		}
	}
	return v, nil
}

func (c *Checker) emitQuery(ctx context.Context, v domain.Verdict, cached bool, d time.Duration) {
	if c.hooks.OnQuery == nil {
		return
	}
	c.hooks.OnQuery(ctx, &domain.QueryEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventQuery},
		Mode:      v.Mode,
		Accepted:  v.Accepted,
		Cached:    cached,
		Kind:      v.Reason,
		Duration:  d,
	})
}

// CacheKey identifies one (description, mode, word) query.
func CacheKey(data []byte, format Format, mode domain.Mode, w domain.Word) string {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write(data)
	sum := hex.EncodeToString(h.Sum(nil))
	return sum + ":" + string(mode) + ":" + w.String()
}
