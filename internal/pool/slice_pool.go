package pool

import "sync"

// Byte slice pool for short-lived, exact-size scratch slices, such as the
// intermediate stage buffers used when chaining encoders.
var byteSlicePool = sync.Pool{
	New: func() any { return &[]byte{} },
}

// GetByteSlice retrieves and resizes a byte slice from the pool.
//
// The returned slice will have the exact length specified by the size
// parameter. If the pooled slice has insufficient capacity, a new slice will
// be allocated. The caller must call the returned cleanup function to return
// the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []byte: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	buf, cleanup := pool.GetByteSlice(4096)
//	defer cleanup()
//	// Use buf...
func GetByteSlice(size int) ([]byte, func()) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]byte, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { byteSlicePool.Put(ptr) }
}
