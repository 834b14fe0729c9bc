package tests

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendingmachine/pkg/domain/service"
)

var errStep = errors.New("step failed")

func failingUntil(succeedOn int, calls *int) service.Step[string] {
	return func() service.StepResult[string] {
		*calls++
		if *calls < succeedOn {
			return service.RetryWith[string](errStep)
		}
		return service.Succeed("ok")
	}
}

func TestAttemptWithRetry_SucceedsOnAttemptN(t *testing.T) {
	for n := 1; n <= service.DefaultMaxAttempts; n++ {
		terminal := newMockTerminal()
		retrier := service.NewRetrier(service.DefaultMaxAttempts, terminal, discardLogger())
		calls := 0

		result := service.AttemptWithRetry(retrier, failingUntil(n, &calls))

		require.Equal(t, service.StatusDone, result.Status, "attempt %d", n)
		assert.Equal(t, "ok", result.Value)
		assert.Equal(t, n, calls)
		assert.Equal(t, n, result.Attempts)
		assert.False(t, terminal.hasMessage("Maximum attempts reached."))
	}
}

func TestAttemptWithRetry_ExhaustsAfterExactlyBound(t *testing.T) {
	for _, bound := range []int{1, 3, 5} {
		terminal := newMockTerminal()
		retrier := service.NewRetrier(bound, terminal, discardLogger())
		calls := 0

		result := service.AttemptWithRetry(retrier, failingUntil(bound+10, &calls))

		assert.Equal(t, service.StatusExhausted, result.Status)
		assert.Equal(t, bound, calls)
		assert.Equal(t, bound, result.Attempts)
		assert.True(t, terminal.hasMessage("Maximum attempts reached."))
	}
}

func TestAttemptWithRetry_ExhaustionKeepsLastReason(t *testing.T) {
	retrier := service.NewRetrier(2, newMockTerminal(), discardLogger())
	calls := 0

	result := service.AttemptWithRetry(retrier, failingUntil(99, &calls))

	assert.Equal(t, service.StatusExhausted, result.Status)
	assert.ErrorIs(t, result.Err, errStep)
}

func TestAttemptWithRetry_ReportsRemainingAttempts(t *testing.T) {
	terminal := newMockTerminal()
	retrier := service.NewRetrier(3, terminal, discardLogger())
	calls := 0

	service.AttemptWithRetry(retrier, failingUntil(99, &calls))

	assert.True(t, terminal.hasMessage("Step failed."))
	assert.True(t, terminal.hasMessage("Attempt 1 failed. 2 attempts remaining."))
	assert.True(t, terminal.hasMessage("Attempt 2 failed. 1 attempts remaining."))
	assert.True(t, terminal.hasMessage("Attempt 3 failed. 0 attempts remaining."))
}

func TestAttemptWithRetry_DeclineIsNotRetried(t *testing.T) {
	retrier := service.NewRetrier(3, newMockTerminal(), discardLogger())
	calls := 0

	result := service.AttemptWithRetry(retrier, func() service.StepResult[int] {
		calls++
		return service.Decline[int]()
	})

	assert.Equal(t, service.StatusCancelled, result.Status)
	assert.Equal(t, 1, calls)
}

func TestAttemptWithRetry_AbortStopsImmediately(t *testing.T) {
	retrier := service.NewRetrier(3, newMockTerminal(), discardLogger())
	calls := 0

	result := service.AttemptWithRetry(retrier, func() service.StepResult[int] {
		calls++
		return service.AbortWith[int](io.EOF)
	})

	assert.Equal(t, service.StatusAborted, result.Status)
	assert.ErrorIs(t, result.Err, io.EOF)
	assert.Equal(t, 1, calls)
}

func TestNewRetrier_ClampsBound(t *testing.T) {
	retrier := service.NewRetrier(0, newMockTerminal(), discardLogger())
	assert.Equal(t, 1, retrier.MaxAttempts())
}
