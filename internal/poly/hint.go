package poly

// HintPackedBytes returns the size of an encoded hint vector.
func HintPackedBytes(k, omega int) int {
	return omega + k
}

// PackHint encodes the positions of the ones in h: first the indices of
// each polynomial in increasing order, then for each polynomial the
// running total of indices written.  h may have at most omega ones.
func PackHint(out []byte, h Vec, omega int) {
	for i := range out[:omega+len(h)] {
		out[i] = 0
	}
	k := 0
	for i := range h {
		for j := 0; j < N; j++ {
			if h[i][j] != 0 {
				out[k] = byte(j)
				k++
			}
		}
		out[omega+i] = byte(k)
	}
}

// UnpackHint decodes a hint vector of length k.  It returns false for any
// encoding PackHint would not produce, so that hints are unique.
func UnpackHint(in []byte, k, omega int) (Vec, bool) {
	h := make(Vec, k)
	idx := 0
	for i := 0; i < k; i++ {
		end := int(in[omega+i])
		if end < idx || end > omega {
			return nil, false
		}
		for j := idx; j < end; j++ {
			// Indices must be strictly increasing within a polynomial.
			if j > idx && in[j] <= in[j-1] {
				return nil, false
			}
			h[i][in[j]] = 1
		}
		idx = end
	}
	for j := idx; j < omega; j++ {
		if in[j] != 0 {
			return nil, false
		}
	}
	return h, true
}
