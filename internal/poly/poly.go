package poly

// Add returns a + b without reduction.
func Add[T Elem](a, b *T) (r T) {
	for i := 0; i < N; i++ {
		r[i] = (*a)[i] + (*b)[i]
	}
	return
}

// Sub returns a - b without reduction.
func Sub[T Elem](a, b *T) (r T) {
	for i := 0; i < N; i++ {
		r[i] = (*a)[i] - (*b)[i]
	}
	return
}

// Reduce applies Reduce32 to each coefficient of a.
func Reduce[T Elem](a *T) {
	for i := 0; i < N; i++ {
		(*a)[i] = Reduce32((*a)[i])
	}
}

// CaddqAll applies Caddq to each coefficient of a.
func CaddqAll[T Elem](a *T) {
	for i := 0; i < N; i++ {
		(*a)[i] = Caddq((*a)[i])
	}
}

// ShiftL multiplies a by 2^D.
func (a *Poly) ShiftL() {
	for i := 0; i < N; i++ {
		a[i] <<= D
	}
}

// ChkNorm returns true if some coefficient of a has absolute value at
// least bound, or if bound is too large to be meaningful.  The
// coefficients must be reduced with Reduce32.
func (a *Poly) ChkNorm(bound int32) bool {
	if bound > (Q-1)/8 {
		return true
	}
	for i := 0; i < N; i++ {
		// Absolute value without branching on the coefficient.
		t := a[i] >> 31
		t = a[i] - (t & (2 * a[i]))
		if t >= bound {
			return true
		}
	}
	return false
}
