package pool

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Interner returns a canonical copy of each distinct string it sees, so
// repeated values share one backing array. The set of interned strings
// doubles as the distinct-value set of whatever was fed through it.
type Interner struct {
	mu      sync.RWMutex
	strings map[string]string
	maxSize int
	hits    int64
	misses  int64
}

// NewInterner creates an interner holding at most maxSize strings.
// A non-positive maxSize means no limit.
func NewInterner(maxSize int) *Interner {
	return &Interner{
		strings: make(map[string]string),
		maxSize: maxSize,
	}
}

// Intern returns the canonical version of s. Once the size limit is
// reached, unseen strings are returned unchanged and not remembered.
func (in *Interner) Intern(s string) string {
	// Fast path: check if already interned
	in.mu.RLock()
	if interned, ok := in.strings[s]; ok {
		in.mu.RUnlock()
		atomic.AddInt64(&in.hits, 1)
		return interned
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()

	// Double-check after acquiring write lock
	if interned, ok := in.strings[s]; ok {
		atomic.AddInt64(&in.hits, 1)
		return interned
	}

	atomic.AddInt64(&in.misses, 1)
	if in.maxSize > 0 && len(in.strings) >= in.maxSize {
		return s
	}
	in.strings[s] = s
	return s
}

// Contains reports whether s has been interned.
func (in *Interner) Contains(s string) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	_, ok := in.strings[s]
	return ok
}

// Len returns the number of interned strings.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}

// Strings returns the interned strings, sorted.
func (in *Interner) Strings() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Sorted(maps.Keys(in.strings))
}

// Stats returns interner statistics.
func (in *Interner) Stats() (size, hits, misses int64) {
	return int64(in.Len()),
		atomic.LoadInt64(&in.hits),
		atomic.LoadInt64(&in.misses)
}
