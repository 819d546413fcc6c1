package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, WithInitialDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_GivesUpAfterMaxAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	persistent := errors.New("persistent error")

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return persistent
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, persistent)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	attempts := 0
	invalid := errors.New("invalid input")

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return Fatal(invalid)
	}, WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, invalid)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	err := Do(ctx, func(context.Context) error {
		attempts++
		cancel()
		return errors.New("temporary error")
	}, WithInitialDelay(time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestPolicy_Delay(t *testing.T) {
	t.Parallel()
	p := Policy{InitialDelay: time.Second, MaxDelay: 5 * time.Second, Multiplier: 2}

	assert.Equal(t, time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 4*time.Second, p.Delay(3))
	assert.Equal(t, 5*time.Second, p.Delay(4))
	assert.Equal(t, 5*time.Second, p.Delay(10))
}

func TestFatal_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fatal(nil))
	assert.False(t, IsFatal(errors.New("plain")))
}
