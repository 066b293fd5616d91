package difficulty

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	lru "github.com/hashicorp/golang-lru"

	"git3/pkg/hash"
)

// ParentLookup resolves a commit digest to its first parent. It is the only
// capability CumulativeWork needs from the object store, narrowed to what the
// first-parent walk actually uses.
type ParentLookup interface {
	Parent(commit hash.Digest) (parent hash.Digest, ok bool, err error)
}

const cumulativeWorkCacheSize = 4096

// Walker computes the cumulative proof-of-work of a commit's first-parent
// ancestry, memoizing results across calls. A Walker is safe for concurrent
// use; the underlying cache handles its own locking.
type Walker struct {
	store ParentLookup
	cache *lru.Cache
}

// NewWalker builds a Walker backed by store, with a bounded memoization
// cache sized for a typical mining/verification session.
func NewWalker(store ParentLookup) *Walker {
	cache, err := lru.New(cumulativeWorkCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// cumulativeWorkCacheSize never is.
		panic(fmt.Sprintf("difficulty: lru.New: %v", err))
	}
	return &Walker{store: store, cache: cache}
}

// CumulativeWork sums the work of commit and every first-parent ancestor.
// The walk is iterative, not recursive, and tracks visited digests so a
// cyclic or corrupt parent chain terminates instead of looping forever.
func (w *Walker) CumulativeWork(commit hash.Digest) (uint64, error) {
	if commit.IsNull() {
		return 0, nil
	}
	if v, ok := w.cache.Get(commit); ok {
		return v.(uint64), nil
	}

	visited := mapset.NewThreadUnsafeSet[hash.Digest]()
	var chain []hash.Digest
	cur := commit
	var total uint64
	var cached bool

	for {
		if v, ok := w.cache.Get(cur); ok {
			total = v.(uint64)
			cached = true
			break
		}
		if visited.Contains(cur) {
			// Cycle in the ancestry; stop accumulating further.
			break
		}
		visited.Add(cur)
		chain = append(chain, cur)

		parent, ok, err := w.store.Parent(cur)
		if err != nil {
			return 0, fmt.Errorf("looking up parent of %s: %w: %w", cur.Hex(), ErrLookupFailed, err)
		}
		if !ok || parent.IsNull() {
			break
		}
		cur = parent
	}

	if !cached {
		total = 0
	}
	for i := len(chain) - 1; i >= 0; i-- {
		total += Work(LeadingZeroBits(chain[i]))
		w.cache.Add(chain[i], total)
	}
	return total, nil
}
