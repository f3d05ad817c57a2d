package poly

// Power2Round splits a standard representative a into a1 2^D + a0 with
// -2^(D-1) < a0 <= 2^(D-1).
func Power2Round(a int32) (a1, a0 int32) {
	a1 = (a + (1 << (D - 1)) - 1) >> D
	a0 = a - (a1 << D)
	return
}

// Decompose splits a standard representative a into a1 2 gamma2 + a0 with
// -gamma2 < a0 <= gamma2, except that when a1 would be (q-1)/(2 gamma2)
// it is set to 0 and a0 is decreased by one.  gamma2 is (q-1)/32 or
// (q-1)/88.
func Decompose(a, gamma2 int32) (a1, a0 int32) {
	a1 = (a + 127) >> 7
	if gamma2 == (Q-1)/32 {
		a1 = (a1*1025 + (1 << 21)) >> 22
		a1 &= 15
	} else {
		a1 = (a1*11275 + (1 << 23)) >> 24
		a1 ^= ((43 - a1) >> 31) & a1
	}
	a0 = a - a1*2*gamma2
	a0 -= (((Q-1)/2 - a0) >> 31) & Q
	return
}

// HighBits returns the a1 of Decompose.
func HighBits(a, gamma2 int32) int32 {
	a1, _ := Decompose(a, gamma2)
	return a1
}

// MakeHint returns 1 if the low bits a0 overflow into the high bits a1.
func MakeHint(a0, a1, gamma2 int32) int32 {
	if a0 > gamma2 || a0 < -gamma2 || (a0 == -gamma2 && a1 != 0) {
		return 1
	}
	return 0
}

// UseHint corrects the high bits of a according to hint.
func UseHint(a, hint, gamma2 int32) int32 {
	a1, a0 := Decompose(a, gamma2)
	if hint == 0 {
		return a1
	}
	if gamma2 == (Q-1)/32 {
		if a0 > 0 {
			return (a1 + 1) & 15
		}
		return (a1 - 1) & 15
	}
	if a0 > 0 {
		if a1 == 43 {
			return 0
		}
		return a1 + 1
	}
	if a1 == 0 {
		return 43
	}
	return a1 - 1
}
