package objxfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureWait(t *testing.T) {
	future := NewFuture[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		future.Complete(42, nil)
	}()

	value, err := future.Wait()
	require.NoError(t, err)
	require.Equal(t, 42, value)

	// Waiting again returns the same result without blocking
	value, err = future.Wait()
	require.NoError(t, err)
	require.Equal(t, 42, value)
}

func TestFutureWaitWithError(t *testing.T) {
	future := NewFuture[string]()
	future.Complete("", assert.AnError)

	_, err := future.Wait()
	require.ErrorIs(t, err, assert.AnError)
}

func TestOpWait(t *testing.T) {
	op := NewOp()
	op.Complete(nil)

	require.NoError(t, op.Wait())
	require.NoError(t, op.Wait())
}

func TestOpWaitWithError(t *testing.T) {
	op := NewOp()
	op.Complete(assert.AnError)

	require.ErrorIs(t, op.Wait(), assert.AnError)
	require.ErrorIs(t, op.Wait(), assert.AnError)
}
