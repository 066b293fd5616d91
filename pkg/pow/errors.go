package pow

import (
	"errors"

	"git3/pkg/difficulty"
)

var (
	// ErrInvalidDifficulty is returned when a requested difficulty falls
	// outside what the engine will mine for (see MaxDifficultyBits).
	ErrInvalidDifficulty = errors.New("pow: invalid difficulty")

	// ErrMalformedTemplate is returned when a prepared template cannot
	// possibly admit a nonce (an empty prefix, for instance).
	ErrMalformedTemplate = errors.New("pow: malformed template")

	// ErrCancelled is returned when mining stops because the caller's
	// context was cancelled or its CancelToken was tripped before a
	// solution was found.
	ErrCancelled = errors.New("pow: mining cancelled")

	// ErrExhausted is returned when the engine has tried every nonce in
	// its search space without finding one that meets the required
	// difficulty.
	ErrExhausted = errors.New("pow: nonce space exhausted")

	// ErrIOError wraps a failure from a collaborator (object store, refs,
	// config) encountered while mining.
	ErrIOError = errors.New("pow: io error")

	// ErrLookupFailed is returned when a referenced parent commit cannot
	// be found while computing cumulative work. It is the same sentinel
	// difficulty.Walker.CumulativeWork returns, re-exported here so
	// callers that only import pow don't also need to import difficulty
	// to check for it.
	ErrLookupFailed = difficulty.ErrLookupFailed
)
