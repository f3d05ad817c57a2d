package poly

// Vec is a vector of polynomials in the standard domain, of length K or L.
type Vec []Poly

// NTTVec is a vector of polynomials in the NTT domain.
type NTTVec []NTTPoly

// Matrix is the K by L matrix A, in the NTT domain.
type Matrix [][]NTTPoly

func assertLen(a, b int) {
	if a != b {
		panic("poly: vector length mismatch")
	}
}

// ExpandMatrix derives A from the seed rho.
func ExpandMatrix(rho []byte, k, l int) Matrix {
	ret := make(Matrix, k)
	for i := 0; i < k; i++ {
		ret[i] = make([]NTTPoly, l)
		for j := 0; j < l; j++ {
			ret[i][j] = UniformNTT(rho, uint16(i<<8|j))
		}
	}
	return ret
}

// MulVec computes A v.  The result is not reduced.
func (m Matrix) MulVec(v NTTVec) NTTVec {
	ret := make(NTTVec, len(m))
	for i, row := range m {
		assertLen(len(row), len(v))
		for j := range row {
			t := PointwiseMontgomery(&row[j], &v[j])
			ret[i] = Add(&ret[i], &t)
		}
	}
	return ret
}

// NTT transforms each entry of v.
func (v Vec) NTT() NTTVec {
	ret := make(NTTVec, len(v))
	for i := range v {
		ret[i] = NTT(&v[i])
	}
	return ret
}

// InvNTT transforms each entry of v back to the standard domain.
func (v NTTVec) InvNTT() Vec {
	ret := make(Vec, len(v))
	for i := range v {
		ret[i] = InvNTT(&v[i])
	}
	return ret
}

// ScalarMul multiplies each entry of v by c.
func (v NTTVec) ScalarMul(c *NTTPoly) NTTVec {
	ret := make(NTTVec, len(v))
	for i := range v {
		ret[i] = PointwiseMontgomery(c, &v[i])
	}
	return ret
}

// Reduce applies Reduce32 to all coefficients.
func (v NTTVec) Reduce() {
	for i := range v {
		Reduce(&v[i])
	}
}

// Sub returns v - w.
func (v NTTVec) Sub(w NTTVec) NTTVec {
	assertLen(len(v), len(w))
	ret := make(NTTVec, len(v))
	for i := range v {
		ret[i] = Sub(&v[i], &w[i])
	}
	return ret
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	assertLen(len(v), len(w))
	ret := make(Vec, len(v))
	for i := range v {
		ret[i] = Add(&v[i], &w[i])
	}
	return ret
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	assertLen(len(v), len(w))
	ret := make(Vec, len(v))
	for i := range v {
		ret[i] = Sub(&v[i], &w[i])
	}
	return ret
}

// Reduce applies Reduce32 to all coefficients.
func (v Vec) Reduce() {
	for i := range v {
		Reduce(&v[i])
	}
}

// Caddq applies Caddq to all coefficients.
func (v Vec) Caddq() {
	for i := range v {
		CaddqAll(&v[i])
	}
}

// ShiftL multiplies all coefficients by 2^D.
func (v Vec) ShiftL() {
	for i := range v {
		v[i].ShiftL()
	}
}

// ChkNorm returns true if any coefficient has absolute value at least
// bound.
func (v Vec) ChkNorm(bound int32) bool {
	for i := range v {
		if v[i].ChkNorm(bound) {
			return true
		}
	}
	return false
}

// Power2Round splits each coefficient of v.
func (v Vec) Power2Round() (v1, v0 Vec) {
	v1 = make(Vec, len(v))
	v0 = make(Vec, len(v))
	for i := range v {
		for j := 0; j < N; j++ {
			v1[i][j], v0[i][j] = Power2Round(v[i][j])
		}
	}
	return
}

// Decompose splits each coefficient of v into high and low bits.
func (v Vec) Decompose(gamma2 int32) (v1, v0 Vec) {
	v1 = make(Vec, len(v))
	v0 = make(Vec, len(v))
	for i := range v {
		for j := 0; j < N; j++ {
			v1[i][j], v0[i][j] = Decompose(v[i][j], gamma2)
		}
	}
	return
}

// MakeHintVec computes the hint vector for low bits v0 and high bits v1 and
// returns the number of ones in it.
func MakeHintVec(v0, v1 Vec, gamma2 int32) (h Vec, ones int) {
	assertLen(len(v0), len(v1))
	h = make(Vec, len(v0))
	for i := range v0 {
		for j := 0; j < N; j++ {
			h[i][j] = MakeHint(v0[i][j], v1[i][j], gamma2)
			ones += int(h[i][j])
		}
	}
	return
}

// UseHint corrects the high bits of v according to h.
func (v Vec) UseHint(h Vec, gamma2 int32) Vec {
	assertLen(len(v), len(h))
	ret := make(Vec, len(v))
	for i := range v {
		for j := 0; j < N; j++ {
			ret[i][j] = UseHint(v[i][j], h[i][j], gamma2)
		}
	}
	return ret
}
