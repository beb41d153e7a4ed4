package msm

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPoolFloorAndIdentity(t *testing.T) {
	require := require.New(t)

	p := DefaultPool()
	require.GreaterOrEqual(p.Workers(), minPoolWorkers)
	require.Same(p, DefaultPool())
}

func TestPoolRunsJobs(t *testing.T) {
	require := require.New(t)

	p := NewPool(4)
	defer p.Stop()
	require.Equal(4, p.Workers())

	var sum atomic.Int64
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		p.Submit(func() {
			defer wg.Done()
			sum.Add(int64(i))
		})
	}
	wg.Wait()
	require.Equal(int64(5050), sum.Load())
}
