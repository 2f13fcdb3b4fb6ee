package binder

// Little-endian scalar helpers shared by the encoder and decoder. Packed
// buffers always use little-endian storage regardless of host order.

func putUintLE(b []byte, size int, v uint64) {
	for i := 0; i < size; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getUintLE(b []byte, size int) uint64 {
	var v uint64
	for i := 0; i < size; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// signExtend interprets the low size bytes of v as a two's-complement
// signed integer.
func signExtend(v uint64, size int) int64 {
	shift := 64 - 8*size
	return int64(v<<shift) >> shift
}

// fitsSigned reports whether v fits in a signed integer of size bytes.
func fitsSigned(v int64, size int) bool {
	if size >= 8 {
		return true
	}
	bits := 8 * size
	min := int64(-1) << (bits - 1)
	max := int64(1)<<(bits-1) - 1
	return v >= min && v <= max
}

// fitsUnsigned reports whether v fits in an unsigned integer of size bytes.
func fitsUnsigned(v uint64, size int) bool {
	if size >= 8 {
		return true
	}
	return v>>(8*size) == 0
}

func dimsProduct(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}
