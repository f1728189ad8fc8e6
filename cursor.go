package gcptr

import "unsafe"

// Cursor is a bounds-checked position within one managed block. It knows the
// block's valid range and refuses to move or dereference outside it: the
// checked tier of the API, next to the unchecked Ptr.Get and Ptr.At.
//
// A cursor at index Len() is the end sentinel. It can be compared against
// but never dereferenced. The conventional traversal is
//
//	for c := p.Begin(); !c.AtEnd(); c.Next() {
//		v, _ := c.Value()
//		...
//	}
//
// Cursors are cheap values; a fresh pair can always be re-derived from the
// handle, so traversal is restartable.
type Cursor[T any] struct {
	base   unsafe.Pointer
	index  int
	length int
}

// Next advances the cursor by one element. Landing exactly on the end
// sentinel is allowed; moving past it returns ErrOutOfRange and leaves the
// cursor where it was.
func (c *Cursor[T]) Next() error {
	if c.index >= c.length {
		return ErrOutOfRange
	}
	c.index++
	return nil
}

// Prev moves the cursor back by one element. Moving before the start of the
// block returns ErrOutOfRange and leaves the cursor where it was.
func (c *Cursor[T]) Prev() error {
	if c.index <= 0 {
		return ErrOutOfRange
	}
	c.index--
	return nil
}

// Value returns a pointer to the element under the cursor, or ErrOutOfRange
// at or beyond the end sentinel (and for cursors over an unbound handle).
func (c Cursor[T]) Value() (*T, error) {
	if c.base == nil || c.index < 0 || c.index >= c.length {
		return nil, ErrOutOfRange
	}
	return (*T)(unsafe.Add(c.base, uintptr(c.index)*sizeOf[T]())), nil
}

// Index returns the cursor's position within the block.
func (c Cursor[T]) Index() int {
	return c.index
}

// Len returns the element count of the block the cursor traverses.
func (c Cursor[T]) Len() int {
	return c.length
}

// AtEnd reports whether the cursor sits on the end sentinel.
func (c Cursor[T]) AtEnd() bool {
	return c.index >= c.length
}

// Equal reports whether two cursors over the same block sit at the same
// position. Cursors over different blocks are never equal.
func (c Cursor[T]) Equal(o Cursor[T]) bool {
	return c.base == o.base && c.index == o.index
}

// Before reports whether c precedes o within the same block.
func (c Cursor[T]) Before(o Cursor[T]) bool {
	return c.base == o.base && c.index < o.index
}
