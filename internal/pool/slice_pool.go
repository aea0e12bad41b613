package pool

import "sync"

// Typed slice pools for matrix multiply operands.
var (
	float32SlicePool = sync.Pool{
		New: func() any { return &[]float32{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
)

func getSlice[T any](p *sync.Pool, size int) ([]T, func()) {
	ptr, _ := p.Get().(*[]T)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
		clear(slice)
	}
	*ptr = slice

	return slice, func() { p.Put(ptr) }
}

// GetFloat32Slice retrieves a zeroed float32 slice of length size from the pool.
//
// The caller must call the returned cleanup function to return the slice to the pool,
// and must not use the slice afterwards.
//
// Example:
//
//	values, cleanup := pool.GetFloat32Slice(rows * cols)
//	defer cleanup()
func GetFloat32Slice(size int) ([]float32, func()) {
	return getSlice[float32](&float32SlicePool, size)
}

// GetFloat64Slice retrieves a zeroed float64 slice of length size from the pool.
//
// The caller must call the returned cleanup function to return the slice to the pool.
func GetFloat64Slice(size int) ([]float64, func()) {
	return getSlice[float64](&float64SlicePool, size)
}
