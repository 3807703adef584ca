package order_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/vectis/pkg/vectis/order"
)

func TestIDSource_StrictlyIncreasing(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	steps := []time.Duration{0, 0, time.Millisecond, -5 * time.Millisecond, 10 * time.Millisecond}
	i := 0
	src := order.NewIDSource(func() time.Time {
		d := steps[i]
		i++
		return base.Add(d)
	})

	got := make([]int64, len(steps))
	for n := range steps {
		got[n] = src.Next()
	}
	assert.Equal(t, []int64{
		1_700_000_000_000,
		1_700_000_000_001,
		1_700_000_000_002,
		1_700_000_000_003,
		1_700_000_000_010,
	}, got)
}

func TestIDSource_Observe(t *testing.T) {
	src := order.NewIDSource(func() time.Time { return time.UnixMilli(5) })
	src.Observe(100)
	assert.Equal(t, int64(101), src.Next())
	src.Observe(50)
	assert.Equal(t, int64(102), src.Next())
}

func TestIDSource_Concurrent(t *testing.T) {
	src := order.NewIDSource(nil)
	var mu sync.Mutex
	seen := make(map[int64]bool)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := src.Next()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}
