package poly

import (
	"testing"

	"pgregory.net/rapid"
)

func drawPoly(t *rapid.T, bound int32, label string) (a Poly) {
	coeffs := rapid.SliceOfN(rapid.Int32Range(-bound, bound), N, N).Draw(t, label)
	copy(a[:], coeffs)
	return
}

// Multiplies a and b in Z_q[X]/(X^256+1) the slow way.
func schoolbook(a, b *Poly) (r Poly) {
	var acc [2 * N]int64
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			acc[i+j] = (acc[i+j] + int64(a[i])*int64(b[j])) % Q
		}
	}
	for i := 0; i < N; i++ {
		v := (acc[i] - acc[i+N]) % Q
		if v < 0 {
			v += Q
		}
		r[i] = int32(v)
	}
	return
}

func TestNTTRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawPoly(t, Q-1, "a")
		ahat := NTT(&a)
		b := InvNTT(&ahat)
		for i := 0; i < N; i++ {
			// InvNTT leaves a factor 2^32.
			got := Freeze(MontgomeryReduce(int64(b[i])))
			if got != Freeze(a[i]) {
				t.Fatalf("coefficient %d: %d != %d", i, got, Freeze(a[i]))
			}
		}
	})
}

func TestNTTMultiplication(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawPoly(t, (Q-1)/2, "a")
		b := drawPoly(t, (Q-1)/2, "b")
		ahat := NTT(&a)
		bhat := NTT(&b)
		chat := PointwiseMontgomery(&ahat, &bhat)
		c := InvNTT(&chat)
		expect := schoolbook(&a, &b)
		for i := 0; i < N; i++ {
			if Freeze(c[i]) != expect[i] {
				t.Fatalf("coefficient %d: %d != %d", i, Freeze(c[i]), expect[i])
			}
		}
	})
}

func TestReductions(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int32Range(-(1 << 31), (1<<31)-(1<<22)-1).Draw(t, "a")
		r := Reduce32(a)
		if r < -6283008 || r > 6283008 {
			t.Fatalf("Reduce32(%d) = %d out of range", a, r)
		}
		if (int64(a)-int64(r))%Q != 0 {
			t.Fatalf("Reduce32(%d) = %d not congruent", a, r)
		}
		f := Freeze(a)
		if f < 0 || f >= Q {
			t.Fatalf("Freeze(%d) = %d", a, f)
		}

		x := rapid.Int64Range(-(1<<31)*Q+1, (1<<31)*Q-1).Draw(t, "x")
		m := MontgomeryReduce(x)
		if m <= -Q || m >= Q {
			t.Fatalf("MontgomeryReduce(%d) = %d out of range", x, m)
		}
		// m 2^32 = x mod q
		if ((int64(m)<<32)-x)%Q != 0 {
			t.Fatalf("MontgomeryReduce(%d) = %d not congruent", x, m)
		}
	})
}

func TestPower2Round(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int32Range(0, Q-1).Draw(t, "a")
		a1, a0 := Power2Round(a)
		if a1<<D+a0 != a {
			t.Fatalf("Power2Round(%d) = (%d, %d)", a, a1, a0)
		}
		if a0 <= -(1<<(D-1)) || a0 > 1<<(D-1) {
			t.Fatalf("Power2Round(%d) low part %d out of range", a, a0)
		}
	})
}

func testDecompose(t *rapid.T, gamma2 int32) {
	a := rapid.Int32Range(0, Q-1).Draw(t, "a")
	a1, a0 := Decompose(a, gamma2)
	if ((int64(a1)*2*int64(gamma2)+int64(a0))-int64(a))%Q != 0 {
		t.Fatalf("Decompose(%d) = (%d, %d)", a, a1, a0)
	}
	if a0 < -gamma2 || a0 > gamma2 {
		t.Fatalf("Decompose(%d) low part %d out of range", a, a0)
	}
	if a1 < 0 || a1 >= (Q-1)/(2*gamma2) {
		t.Fatalf("Decompose(%d) high part %d out of range", a, a1)
	}
}

func TestDecompose(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		testDecompose(t, (Q-1)/88)
		testDecompose(t, (Q-1)/32)
	})
}

// The verifier recovers the signer's high bits of r from r + z using the
// hint made from the low bits, as long as the low bits of r and z are
// small enough.
func testHint(t *rapid.T, gamma2, beta int32) {
	r := rapid.Int32Range(0, Q-1).Draw(t, "r")
	r1, r0 := Decompose(r, gamma2)
	if r0 >= gamma2-beta || r0 <= -(gamma2-beta) {
		t.Skip("low bits too large")
	}
	z := rapid.Int32Range(-gamma2+1, gamma2-1).Draw(t, "z")
	h := MakeHint(r0+z, r1, gamma2)
	if got := UseHint(Freeze(r+z), h, gamma2); got != r1 {
		t.Fatalf("UseHint(%d+%d, %d) = %d instead of %d", r, z, h, got, r1)
	}
}

func TestHint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) { testHint(t, (Q-1)/88, 78) })
	rapid.Check(t, func(t *rapid.T) { testHint(t, (Q-1)/32, 196) })
}

func TestChkNorm(t *testing.T) {
	var a Poly
	a[17] = -100
	if !a.ChkNorm(100) {
		t.Fatal("ChkNorm should reject |-100| >= 100")
	}
	if a.ChkNorm(101) {
		t.Fatal("ChkNorm should accept |-100| < 101")
	}
	if !a.ChkNorm((Q-1)/8 + 1) {
		t.Fatal("ChkNorm should reject an oversized bound")
	}
}

func TestVecLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	make(Vec, 4).Add(make(Vec, 5))
}
