package syncutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountingSemaphoreWaitWithoutGoal(t *testing.T) {
	done := make(chan struct{})

	go func() { defer close(done); NewCountingSemaphore().Wait() }()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected 'Wait' to return immediately when no goal was set")
	}
}

func TestCountingSemaphoreZeroGoal(t *testing.T) {
	sema := NewCountingSemaphore()
	require.NoError(t, sema.SetGoal(0))

	done := make(chan struct{})

	go func() { defer close(done); sema.Wait() }()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected 'Wait' to return immediately for a zero goal")
	}
}

func TestCountingSemaphoreConcurrentDone(t *testing.T) {
	const goal = 64

	sema := NewCountingSemaphore()
	require.NoError(t, sema.SetGoal(goal))

	var wg sync.WaitGroup

	wg.Add(goal)

	for i := 0; i < goal; i++ {
		go func() { defer wg.Done(); sema.Done() }()
	}

	sema.Wait()
	wg.Wait()
}

func TestCountingSemaphoreSetGoalWhilstInProgress(t *testing.T) {
	sema := NewCountingSemaphore()
	require.NoError(t, sema.SetGoal(2))

	sema.Done()
	require.ErrorIs(t, sema.SetGoal(1), ErrGoalInProgress)

	sema.Done()
	require.NoError(t, sema.SetGoal(1))
}

func TestCountingSemaphoreDonePastZero(t *testing.T) {
	sema := NewCountingSemaphore()
	require.NoError(t, sema.SetGoal(1))

	sema.Done()
	require.Panics(t, sema.Done)
}

func TestCountingSemaphoreReuse(t *testing.T) {
	sema := NewCountingSemaphore()

	for cycle := 0; cycle < 3; cycle++ {
		require.NoError(t, sema.SetGoal(4))

		for i := 0; i < 4; i++ {
			go sema.Done()
		}

		sema.Wait()
	}
}
