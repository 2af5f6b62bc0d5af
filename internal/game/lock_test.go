package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLocks_Serializes(t *testing.T) {
	locks := newSessionLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("same-session")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestSessionLocks_ReleasesIdleLocks(t *testing.T) {
	locks := newSessionLocks()

	unlock := locks.Lock("session-a")
	unlock()

	// 空闲锁应被回收
	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}

func TestSessionLocks_IndependentKeys(t *testing.T) {
	locks := newSessionLocks()

	// 持有A锁时B锁可以立即获取
	unlockA := locks.Lock("session-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("session-b")
		unlockB()
		close(done)
	}()

	<-done
}
