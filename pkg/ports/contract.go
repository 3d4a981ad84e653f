package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunVerdictCacheContract runs a suite of tests to verify that a VerdictCache
// implementation adheres to the defined interface contract.
func RunVerdictCacheContract(t *testing.T, cache VerdictCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		v := domain.Verdict{Accepted: true, Mode: domain.ModeExact, Word: "abba", FinalState: "3"}

		err := cache.Put(ctx, key, v)
		require.NoError(t, err, "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, v, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		v := domain.Verdict{Accepted: false, Mode: domain.ModeInfix, Word: "-"}
		require.NoError(t, cache.Put(ctx, key, v))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := cache.Get(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, domain.Verdict{Mode: domain.ModeExact}))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound, "Get after Delete should return ErrVerdictNotFound")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting twice should not fail")
	})
}
