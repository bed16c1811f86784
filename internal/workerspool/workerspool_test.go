package workerspool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPool_Bounded(t *testing.T) {
	pool := New().SetMaxParallelism(3)
	var running, maxRunning, count atomic.Int32
	for range 20 {
		pool.WaitToStart(func() {
			now := running.Add(1)
			for {
				prev := maxRunning.Load()
				if now <= prev || maxRunning.CompareAndSwap(prev, now) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			running.Add(-1)
			count.Add(1)
		})
	}
	pool.Wait()
	assert.Equal(t, int32(20), count.Load())
	assert.LessOrEqual(t, maxRunning.Load(), int32(3))
}

func TestPool_NoParallelism(t *testing.T) {
	pool := New().SetMaxParallelism(0)
	var count int
	for range 5 {
		pool.WaitToStart(func() { count++ })
	}
	pool.Wait()
	assert.Equal(t, 5, count)
}

func TestPool_Unlimited(t *testing.T) {
	pool := New().SetMaxParallelism(-1)
	var count atomic.Int32
	for range 10 {
		pool.WaitToStart(func() { count.Add(1) })
	}
	pool.Wait()
	assert.Equal(t, int32(10), count.Load())
}
