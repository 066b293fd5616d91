// Package pow implements the parallel proof-of-work mining engine: given a
// prepared commit or tag template and a required difficulty, it searches the
// 64-bit nonce space for a value whose resulting digest has at least that
// many leading zero bits.
package pow

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"git3/pkg/difficulty"
	"git3/pkg/hash"
	"git3/pkg/object"
)

// MaxDifficultyBits is the largest difficulty the engine will accept. A
// SHA3-256 digest has 256 bits, so nothing beyond that is meaningful.
const MaxDifficultyBits = 256

// progressSampleInterval is how often, in iterations, each worker checks for
// cancellation. Progress is reported once by each worker for every
// progressSampleInterval nonces of the whole search. Checking every iteration would pay for
// an atomic load and a channel/context check on every hash; sampling keeps
// the hot loop tight.
const progressSampleInterval = 100_000

// Result is a winning nonce together with the digest it produced and the
// exact bytes that were hashed to produce it.
type Result struct {
	Nonce  uint64
	Digest hash.Digest
	Body   []byte
}

// ProgressFunc is called periodically from whichever worker happens to reach
// a sample point; it may be called concurrently from multiple goroutines and
// must not block the caller.
type ProgressFunc func(nonce uint64, digest hash.Digest)

// ObjectWriter persists a mined object's bytes to durable storage, keyed by
// its content digest. *store.Store satisfies this.
type ObjectWriter interface {
	WriteObject(body []byte) (hash.Digest, error)
}

// Engine mines a single prepared template across a fixed worker pool.
type Engine struct {
	// Workers is the number of goroutines to partition the nonce space
	// across. A value less than 1 is treated as 1.
	Workers int

	// MaxNonce is the highest nonce any worker tries, for deterministic
	// testing of exhaustion; zero means search the entire uint64 range
	// before giving up.
	MaxNonce uint64
}

// New returns an Engine with the given worker count.
func New(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{Workers: workers}
}

// Mine searches for a nonce such that hashing prepared.Build(nonce) yields a
// digest with at least difficultyBits leading zero bits. On success it writes
// the winning body through writer before returning. It returns ErrCancelled
// if ctx is done or token is tripped before a solution is found, ErrExhausted
// if the bounded search space is exhausted, ErrInvalidDifficulty or
// ErrMalformedTemplate for a bad request, and ErrIOError if writer fails —
// in the ErrIOError case the mined Result is still returned for diagnostics.
func (e *Engine) Mine(ctx context.Context, token *CancelToken, writer ObjectWriter, prepared object.Prepared, difficultyBits uint32, progress ProgressFunc) (Result, error) {
	if difficultyBits > MaxDifficultyBits {
		return Result{}, ErrInvalidDifficulty
	}
	if len(prepared.Prefix) == 0 {
		return Result{}, ErrMalformedTemplate
	}

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	base := hash.NewCtx()
	base.Update(prepared.Prefix)

	var (
		found     atomic.Bool
		cancelled atomic.Bool
		mu        sync.Mutex
		result    Result
	)

	ctxDone := ctx.Done()
	maxNonce := e.MaxNonce
	if maxNonce == 0 {
		maxNonce = ^uint64(0)
	}

	g, _ := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		workerID := w
		g.Go(func() error {
			nonce := uint64(workerID)
			stride := uint64(workers)
			iterations := uint64(0)
			var nonceBuf [20]byte

			for nonce <= maxNonce {
				if found.Load() {
					return nil
				}

				iterations++
				if iterations >= progressSampleInterval {
					iterations = 0
					if token.Cancelled() {
						cancelled.Store(true)
						return nil
					}
					select {
					case <-ctxDone:
						cancelled.Store(true)
						return nil
					default:
					}
				}

				hctx := base.Clone()
				nonceBytes := strconv.AppendUint(nonceBuf[:0], nonce, 10)
				hctx.Update(nonceBytes)
				hctx.Update(prepared.Suffix)
				digest := hash.Digest(hctx.Finalize())

				if progress != nil && nonce%progressSampleInterval < stride {
					progress(nonce, digest)
				}

				if difficulty.MeetsDifficulty(digest, difficultyBits) {
					if found.CompareAndSwap(false, true) {
						mu.Lock()
						result = Result{Nonce: nonce, Digest: digest, Body: prepared.Build(nonce)}
						mu.Unlock()
					}
					return nil
				}

				remaining := maxNonce - nonce
				if remaining < stride {
					break
				}
				nonce += stride
			}
			return nil
		})
	}

	g.Wait()

	if found.Load() {
		mu.Lock()
		defer mu.Unlock()
		if writer != nil {
			if _, err := writer.WriteObject(result.Body); err != nil {
				return result, fmt.Errorf("%w: %w", ErrIOError, err)
			}
		}
		return result, nil
	}
	if cancelled.Load() {
		return Result{}, ErrCancelled
	}
	return Result{}, ErrExhausted
}
