package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultMaxAttempts = 3

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRetryable
	OutcomeCancelled
	OutcomeAborted
)

// StepResult is what a single attempt of an interactive step produces.
type StepResult[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

func Succeed[T any](value T) StepResult[T] {
	return StepResult[T]{Outcome: OutcomeSuccess, Value: value}
}

func RetryWith[T any](reason error) StepResult[T] {
	return StepResult[T]{Outcome: OutcomeRetryable, Err: reason}
}

func Decline[T any]() StepResult[T] {
	return StepResult[T]{Outcome: OutcomeCancelled}
}

func AbortWith[T any](err error) StepResult[T] {
	return StepResult[T]{Outcome: OutcomeAborted, Err: err}
}

type Step[T any] func() StepResult[T]

type Status int

const (
	StatusDone Status = iota
	StatusExhausted
	StatusCancelled
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusExhausted:
		return "exhausted"
	case StatusCancelled:
		return "cancelled"
	case StatusAborted:
		return "aborted"
	}
	return "unknown"
}

type Result[T any] struct {
	Status   Status
	Value    T
	Attempts int
	Err      error
}

// Retrier bounds the number of attempts of a step. It keeps no state between calls.
type Retrier struct {
	maxAttempts int
	terminal    Terminal
	logger      log.FieldLogger
}

func NewRetrier(maxAttempts int, terminal Terminal, logger log.FieldLogger) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrier{maxAttempts: maxAttempts, terminal: terminal, logger: logger}
}

func (r *Retrier) MaxAttempts() int {
	return r.maxAttempts
}

var (
	errStepDeclined = errors.New("step declined")
	errStepAborted  = errors.New("step aborted")
)

// AttemptWithRetry runs step until it succeeds, is declined, is aborted or the attempts run out.
// Declines and aborts are permanent for the backoff policy, so they are never retried.
func AttemptWithRetry[T any](r *Retrier, step Step[T]) Result[T] {
	var last StepResult[T]
	attempt := 0

	operation := func() error {
		attempt++
		last = step()
		switch last.Outcome {
		case OutcomeSuccess:
			return nil
		case OutcomeCancelled:
			return backoff.Permanent(errStepDeclined)
		case OutcomeAborted:
			return backoff.Permanent(errStepAborted)
		}

		remaining := r.maxAttempts - attempt
		r.terminal.RenderMessage(SeverityError, describe(last.Err))
		r.terminal.RenderMessage(SeverityWarning, fmt.Sprintf("Attempt %d failed. %d attempts remaining.", attempt, remaining))
		if last.Err == nil {
			return errors.New("attempt failed")
		}
		return last.Err
	}
	notify := func(err error, _ time.Duration) {
		r.logger.WithError(err).WithFields(log.Fields{
			"attempt":   attempt,
			"remaining": r.maxAttempts - attempt,
		}).Debug("step attempt failed")
	}

	policy := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(r.maxAttempts-1))
	_ = backoff.RetryNotify(operation, policy, notify)

	switch last.Outcome {
	case OutcomeSuccess:
		return Result[T]{Status: StatusDone, Value: last.Value, Attempts: attempt}
	case OutcomeCancelled:
		return Result[T]{Status: StatusCancelled, Attempts: attempt}
	case OutcomeAborted:
		r.logger.WithError(last.Err).Warn("step aborted")
		return Result[T]{Status: StatusAborted, Attempts: attempt, Err: last.Err}
	}

	r.terminal.RenderMessage(SeverityError, "Maximum attempts reached.")
	return Result[T]{Status: StatusExhausted, Attempts: attempt, Err: last.Err}
}

func describe(err error) string {
	if err == nil || err.Error() == "" {
		return "Attempt failed."
	}
	text := err.Error()
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	text = string(runes)
	if !strings.HasSuffix(text, ".") {
		text += "."
	}
	return text
}
