package ports

import (
	"context"

	"github.com/aretw0/dfacheck/pkg/domain"
)

// VerdictCache memoizes answered queries. Keys are opaque strings built by
// the caller from the description digest, mode and word.
type VerdictCache interface {
	// Get returns the cached verdict.
	// Returns domain.ErrVerdictNotFound on a miss.
	Get(ctx context.Context, key string) (domain.Verdict, error)

	// Put stores a verdict under key, replacing any previous one.
	Put(ctx context.Context, key string, v domain.Verdict) error

	// Delete drops a single entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
