package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsSameLockForSameKey(t *testing.T) {
	registry := NewRegistry()

	first := registry.Get("123")
	second := registry.Get("123")
	other := registry.Get("456")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestGetConcurrentSameKey(t *testing.T) {
	registry := NewRegistry()

	const goroutines = 64
	locks := make([]*sync.RWMutex, goroutines)

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(idx int) {
			defer wg.Done()
			locks[idx] = registry.Get("123")
		}(i)
	}
	wg.Wait()

	// 並發建立下所有人拿到的必須是同一把鎖
	for i := 1; i < goroutines; i++ {
		require.Same(t, locks[0], locks[i])
	}
	assert.Equal(t, 1, registry.Len())
}

func TestLenGrowsOnlyWithNewKeys(t *testing.T) {
	registry := NewRegistry()

	registry.Get("a")
	registry.Get("b")
	registry.Get("c")
	assert.Equal(t, 3, registry.Len())

	// 重複取得不會新增條目，也不會回收舊條目
	registry.Get("a")
	registry.Get("b")
	assert.Equal(t, 3, registry.Len())
}

func TestLockProvidesMutualExclusion(t *testing.T) {
	registry := NewRegistry()

	const goroutines = 8
	const iterations = 1000
	counter := 0

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				lock := registry.Get("counter")
				lock.Lock()
				counter++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*iterations, counter)
}
