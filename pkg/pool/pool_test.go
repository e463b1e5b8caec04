package pool

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolResetsOnPut(t *testing.T) {
	p := New(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(b *bytes.Buffer) { b.Reset() },
	)

	buf := p.Get()
	buf.WriteString("dirty")
	p.Put(buf)

	// sync.Pool may drop objects, so only the reset is guaranteed
	assert.Equal(t, 0, buf.Len())

	allocated, inUse, hits, misses := p.Stats()
	assert.Equal(t, int64(1), allocated)
	assert.Equal(t, int64(0), inUse)
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(1), misses)
}

func TestPoolConcurrentUse(t *testing.T) {
	p := New(func() []string { return make([]string, 0, 8) }, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s := p.Get()
				p.Put(s[:0])
			}
		}()
	}
	wg.Wait()

	allocated, inUse, hits, misses := p.Stats()
	assert.Equal(t, int64(0), inUse)
	assert.Equal(t, int64(800), hits+misses)
	assert.Equal(t, allocated, misses)
}

func TestInternerSharesBackingArrays(t *testing.T) {
	in := NewInterner(0)
	a := in.Intern(strings.Clone("Female"))
	b := in.Intern(strings.Clone("Female"))

	assert.Equal(t, unsafe.StringData(a), unsafe.StringData(b))
	assert.Equal(t, 1, in.Len())

	size, hits, misses := in.Stats()
	assert.Equal(t, int64(1), size)
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestInternerStrings(t *testing.T) {
	in := NewInterner(0)
	for _, s := range []string{"Male", "Female", "Male", ""} {
		in.Intern(s)
	}
	assert.Equal(t, []string{"", "Female", "Male"}, in.Strings())
	assert.True(t, in.Contains(""))
	assert.False(t, in.Contains("Other"))
}

func TestInternerLimit(t *testing.T) {
	in := NewInterner(2)
	in.Intern("a")
	in.Intern("b")
	require.Equal(t, "c", in.Intern("c"))

	assert.Equal(t, 2, in.Len())
	assert.False(t, in.Contains("c"))
}
