package poly

// Sizes of the packed polynomials.
const (
	T1PackedBytes = N * 10 / 8
	T0PackedBytes = N * D / 8
)

// EtaPackedBytes returns the size of a packed polynomial with
// coefficients in [-eta, eta].
func EtaPackedBytes(eta int) int {
	return N * etaBits(eta) / 8
}

// ZPackedBytes returns the size of a packed polynomial with coefficients
// in (-gamma1, gamma1] where gamma1 = 2^gamma1Bits.
func ZPackedBytes(gamma1Bits int) int {
	return N * (gamma1Bits + 1) / 8
}

// W1PackedBytes returns the size of the packed high bits.
func W1PackedBytes(gamma2 int32) int {
	return N * w1Bits(gamma2) / 8
}

func etaBits(eta int) int {
	if eta == 2 {
		return 3
	}
	return 4
}

func w1Bits(gamma2 int32) int {
	if gamma2 == (Q-1)/88 {
		return 6
	}
	return 4
}

// Packs the low bits of each value little endian.
func packBits(out []byte, vals *[N]uint32, bits int) {
	var acc uint64
	n, o := 0, 0
	for _, v := range vals {
		acc |= uint64(v) << uint(n)
		n += bits
		for n >= 8 {
			out[o] = byte(acc)
			o++
			acc >>= 8
			n -= 8
		}
	}
}

func unpackBits(in []byte, vals *[N]uint32, bits int) {
	var acc uint64
	n, i := 0, 0
	mask := uint64(1)<<uint(bits) - 1
	for k := range vals {
		for n < bits {
			acc |= uint64(in[i]) << uint(n)
			i++
			n += 8
		}
		vals[k] = uint32(acc & mask)
		acc >>= uint(bits)
		n -= bits
	}
}

// PackT1 packs the 10-bit high part of t into out.
func PackT1(out []byte, a *Poly) {
	var v [N]uint32
	for i := 0; i < N; i++ {
		v[i] = uint32(a[i])
	}
	packBits(out, &v, 10)
}

// UnpackT1 is the inverse of PackT1.
func UnpackT1(in []byte) (a Poly) {
	var v [N]uint32
	unpackBits(in, &v, 10)
	for i := 0; i < N; i++ {
		a[i] = int32(v[i])
	}
	return
}

// PackT0 packs the low part of t, with coefficients in (-2^12, 2^12].
func PackT0(out []byte, a *Poly) {
	var v [N]uint32
	for i := 0; i < N; i++ {
		v[i] = uint32((1 << (D - 1)) - a[i])
	}
	packBits(out, &v, D)
}

// UnpackT0 is the inverse of PackT0.
func UnpackT0(in []byte) (a Poly) {
	var v [N]uint32
	unpackBits(in, &v, D)
	for i := 0; i < N; i++ {
		a[i] = (1 << (D - 1)) - int32(v[i])
	}
	return
}

// PackEta packs a polynomial with coefficients in [-eta, eta].
func PackEta(out []byte, a *Poly, eta int) {
	var v [N]uint32
	for i := 0; i < N; i++ {
		v[i] = uint32(int32(eta) - a[i])
	}
	packBits(out, &v, etaBits(eta))
}

// UnpackEta is the inverse of PackEta.  It returns false if a coefficient
// is out of range.
func UnpackEta(in []byte, eta int) (a Poly, ok bool) {
	var v [N]uint32
	unpackBits(in, &v, etaBits(eta))
	for i := 0; i < N; i++ {
		if v[i] > uint32(2*eta) {
			return a, false
		}
		a[i] = int32(eta) - int32(v[i])
	}
	return a, true
}

// PackZ packs a polynomial with coefficients in (-gamma1, gamma1].
func PackZ(out []byte, a *Poly, gamma1Bits int) {
	var v [N]uint32
	gamma1 := int32(1) << uint(gamma1Bits)
	for i := 0; i < N; i++ {
		v[i] = uint32(gamma1 - a[i])
	}
	packBits(out, &v, gamma1Bits+1)
}

// UnpackZ is the inverse of PackZ.
func UnpackZ(in []byte, gamma1Bits int) (a Poly) {
	var v [N]uint32
	gamma1 := int32(1) << uint(gamma1Bits)
	unpackBits(in, &v, gamma1Bits+1)
	for i := 0; i < N; i++ {
		a[i] = gamma1 - int32(v[i])
	}
	return
}

// PackW1 packs the high bits of w.
func PackW1(out []byte, a *Poly, gamma2 int32) {
	var v [N]uint32
	for i := 0; i < N; i++ {
		v[i] = uint32(a[i])
	}
	packBits(out, &v, w1Bits(gamma2))
}
