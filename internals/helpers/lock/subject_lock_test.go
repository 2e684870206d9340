package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameSubject(t *testing.T) {
	l := &SubjectLocker{}

	const writers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			unlock := l.Lock("uid-1")
			defer unlock()
			counter++ // read-modify-write; hanya aman kalau benar2 serial
		}()
	}
	wg.Wait()

	require.Equal(t, writers, counter)
}

func TestLockIndependentSubjects(t *testing.T) {
	l := &SubjectLocker{}

	unlockA := l.Lock("uid-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("uid-b") // tidak boleh ke-block oleh uid-a
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	default:
		// beri kesempatan goroutine jalan
		<-done
	}
}

func TestLockReentryAfterUnlock(t *testing.T) {
	l := &SubjectLocker{}

	unlock := l.Lock("uid-1")
	unlock()

	unlock2 := l.Lock("uid-1")
	unlock2()
}
