package gcptr

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// fakeAllocator always fails, with err when set and a nil block otherwise.
type fakeAllocator struct {
	err error
}

func (a fakeAllocator) Alloc(uintptr) (unsafe.Pointer, error) { return nil, a.err }
func (fakeAllocator) Free(unsafe.Pointer)                     {}
func (fakeAllocator) FreeArray(unsafe.Pointer)                {}

func TestNewArrayValidation(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	_, err := NewArray[int32](h, 0)
	require.ErrorIs(t, err, ErrBadLength)
	_, err = NewArray[int32](h, -3)
	require.ErrorIs(t, err, ErrBadLength)
	require.Equal(t, 0, h.Len())
}

func TestArrayByteSizeOverflow(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	// One element past the largest count whose byte size fits a uintptr.
	huge := int(^uintptr(0)/sizeOf[int64]()) + 1

	_, err := NewArray[int64](h, huge)
	require.ErrorIs(t, err, ErrBadLength)
	require.Equal(t, 0, h.Len(), "an impossible array must not be allocated or tracked")

	raw, err := h.Allocator().Alloc(8)
	require.NoError(t, err)
	p := AdoptArray[int64](h, raw, huge)
	require.True(t, p.IsNil(), "an impossible element count must not bind")
	require.Equal(t, 0, h.Len())
	h.Allocator().Free(raw)
}

func TestAllocatorFailure(t *testing.T) {
	h := NewHeap(fakeAllocator{})
	defer h.Close()

	_, err := New[int32](h)
	require.ErrorIs(t, err, ErrOutOfMemory)
	_, err = NewArray[int32](h, 4)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 0, h.Len())

	// An allocator error is passed through unchanged.
	broken := errors.New("backing store gone")
	h2 := NewHeap(fakeAllocator{err: broken})
	defer h2.Close()

	_, err = New[int32](h2)
	require.ErrorIs(t, err, broken)
	require.Equal(t, 0, h2.Len())
}

func TestArrayAccess(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	p, err := NewArray[int32](h, 5)
	require.NoError(t, err)
	require.True(t, p.IsArray())
	require.Equal(t, 5, p.Len())

	s := p.Slice()
	require.Len(t, s, 5)
	for i := range s {
		require.Zero(t, s[i], "fresh blocks must be zeroed")
		s[i] = int32(i * 10)
	}
	for i := 0; i < 5; i++ {
		require.Equal(t, int32(i*10), *p.At(i))
	}

	p.Release()
	require.True(t, p.IsNil())
	require.Nil(t, p.Slice())
	require.Equal(t, 0, p.Len())
}

func TestSetRebindsAndFreesOld(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	p1, err := New[int64](h)
	require.NoError(t, err)
	*p1.Get() = 1

	p2, err := New[int64](h)
	require.NoError(t, err)
	*p2.Get() = 2
	require.Equal(t, 2, h.Len())

	// Rebinding p2 to p1's block drops the last reference to p2's old
	// block, which must be swept immediately.
	p2.Set(p1)
	require.Equal(t, 1, h.Len())
	require.Equal(t, p1.Raw(), p2.Raw())
	require.Equal(t, 2, h.Records()[0].Refs)
	require.Equal(t, int64(1), *p2.Get())
	require.Equal(t, uint64(1), h.Stats().Frees)

	p1.Release()
	p2.Release()
	require.Equal(t, 0, h.Len())
}

func TestSetSelfIsNoOp(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	p, err := New[int8](h)
	require.NoError(t, err)

	p.Set(p)
	require.Equal(t, 1, h.Len())
	require.Equal(t, 1, h.Records()[0].Refs)

	p.Release()
	require.Equal(t, 0, h.Len())
}

func TestRebindRaw(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	p, err := New[int32](h)
	require.NoError(t, err)
	oldAddr := p.Addr()

	raw, err := h.Allocator().Alloc(3 * 4)
	require.NoError(t, err)

	p.Rebind(raw, 3)
	require.Equal(t, 1, h.Len(), "old block freed, new block tracked")
	require.NotEqual(t, oldAddr, p.Addr())
	require.True(t, p.IsArray())
	require.Equal(t, 3, p.Len())
	require.Equal(t, uint64(1), h.Stats().Frees)

	p.Rebind(nil, 0)
	require.True(t, p.IsNil())
	require.Equal(t, 0, h.Len())
}

func TestAdoptRaw(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	raw, err := h.Allocator().Alloc(8)
	require.NoError(t, err)

	p := Adopt[uint64](h, raw)
	require.False(t, p.IsNil())
	require.False(t, p.IsArray())
	require.Equal(t, 1, p.Len())
	require.Equal(t, raw, p.Raw())
	require.Same(t, h, p.Heap())
	require.Equal(t, 1, h.Len())

	*p.Get() = 0xfeed
	require.Equal(t, uint64(0xfeed), *p.Get())

	p.Release()
	require.Equal(t, 0, h.Len())
}

func TestAdoptNilIsUnbound(t *testing.T) {
	h := NewHeap(nil)
	defer h.Close()

	p := Adopt[int](h, nil)
	require.True(t, p.IsNil())
	require.Equal(t, 0, h.Len())

	// All operations on an unbound handle are safe no-ops.
	p.Release()
	q := p.Clone()
	require.True(t, q.IsNil())
	require.Nil(t, p.Get())
	require.Equal(t, uintptr(0), p.Addr())
}

func TestCloneOfUnboundIsUnbound(t *testing.T) {
	var p Ptr[int32]
	q := p.Clone()
	require.True(t, q.IsNil())
	p.Release() // no-op, must not panic
}
