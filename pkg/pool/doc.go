// Package pool provides type-safe object pooling and string interning.
//
// Pool[T] wraps sync.Pool with a reset hook and allocation statistics. The
// json package keeps its encode buffers in one.
//
// Interner hands out one canonical copy of every distinct string. Category
// columns intern their values through it, which both shares the memory of
// repeated values and records the distinct set.
//
// Basic pool usage:
//
//	buffers := pool.New(
//		func() *bytes.Buffer { return new(bytes.Buffer) },
//		func(b *bytes.Buffer) { b.Reset() },
//	)
//	buf := buffers.Get()
//	defer buffers.Put(buf)
//
// Interning:
//
//	in := pool.NewInterner(0)
//	a := in.Intern(strings.Clone("Female"))
//	b := in.Intern(strings.Clone("Female")) // same backing array as a
package pool
