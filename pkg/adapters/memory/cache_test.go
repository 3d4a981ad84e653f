package memory_test

import (
	"testing"

	"github.com/aretw0/dfacheck/pkg/adapters/memory"
	"github.com/aretw0/dfacheck/pkg/ports"
)

func TestMemoryCache_Contract(t *testing.T) {
	cache := memory.NewCache()
	ports.RunVerdictCacheContract(t, cache)
}
