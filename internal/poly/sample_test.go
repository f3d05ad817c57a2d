package poly

import (
	"testing"

	"pgregory.net/rapid"
)

func TestPackRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		buf := make([]byte, 1024)

		var t1 Poly
		for i := range t1 {
			t1[i] = rapid.Int32Range(0, 1023).Draw(t, "t1")
		}
		PackT1(buf, &t1)
		if UnpackT1(buf[:T1PackedBytes]) != t1 {
			t.Fatal("t1 round trip")
		}

		t0 := drawPoly(t, 1<<(D-1)-1, "t0")
		PackT0(buf, &t0)
		if UnpackT0(buf[:T0PackedBytes]) != t0 {
			t.Fatal("t0 round trip")
		}

		for _, eta := range []int{2, 4} {
			s := drawPoly(t, int32(eta), "s")
			PackEta(buf, &s, eta)
			got, ok := UnpackEta(buf[:EtaPackedBytes(eta)], eta)
			if !ok || got != s {
				t.Fatalf("eta=%d round trip", eta)
			}
		}

		for _, bits := range []int{17, 19} {
			z := drawPoly(t, (1<<bits)-1, "z")
			PackZ(buf, &z, bits)
			if UnpackZ(buf[:ZPackedBytes(bits)], bits) != z {
				t.Fatalf("z gamma1=2^%d round trip", bits)
			}
		}
	})
}

func TestUnpackEtaRange(t *testing.T) {
	buf := make([]byte, EtaPackedBytes(2))
	for i := range buf {
		buf[i] = 0xff // every 3-bit value is 7 > 2 eta
	}
	if _, ok := UnpackEta(buf, 2); ok {
		t.Fatal("UnpackEta accepted out of range coefficients")
	}
}

func TestHintRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k, omega := 4, 80
		h := make(Vec, k)
		ones := rapid.IntRange(0, omega).Draw(t, "ones")
		for n := 0; n < ones; n++ {
			h[rapid.IntRange(0, k-1).Draw(t, "i")][rapid.IntRange(0, N-1).Draw(t, "j")] = 1
		}
		buf := make([]byte, HintPackedBytes(k, omega))
		PackHint(buf, h, omega)
		got, ok := UnpackHint(buf, k, omega)
		if !ok {
			t.Fatal("UnpackHint rejected PackHint output")
		}
		for i := 0; i < k; i++ {
			if got[i] != h[i] {
				t.Fatalf("hint polynomial %d differs", i)
			}
		}
	})
}

func TestUnpackHintMalformed(t *testing.T) {
	k, omega := 4, 80
	h := make(Vec, k)
	h[0][3] = 1
	h[0][9] = 1
	h[2][200] = 1
	good := make([]byte, HintPackedBytes(k, omega))
	PackHint(good, h, omega)

	unordered := append([]byte{}, good...)
	unordered[0], unordered[1] = unordered[1], unordered[0]

	trailing := append([]byte{}, good...)
	trailing[omega-1] = 1

	decreasing := append([]byte{}, good...)
	decreasing[omega+1] = 0

	tooMany := append([]byte{}, good...)
	tooMany[omega+k-1] = byte(omega + 1)

	for name, buf := range map[string][]byte{
		"unordered":  unordered,
		"trailing":   trailing,
		"decreasing": decreasing,
		"too many":   tooMany,
	} {
		if _, ok := UnpackHint(buf, k, omega); ok {
			t.Fatalf("UnpackHint accepted %s hint", name)
		}
	}
}

func TestUniformNTTRange(t *testing.T) {
	rho := make([]byte, 32)
	for i := range rho {
		rho[i] = byte(i)
	}
	a := UniformNTT(rho, 0x0102)
	b := UniformNTT(rho, 0x0201)
	if a == b {
		t.Fatal("different nonces gave the same polynomial")
	}
	for i := 0; i < N; i++ {
		if a[i] < 0 || a[i] >= Q {
			t.Fatalf("coefficient %d out of range", a[i])
		}
	}
}

func TestUniformEtaRange(t *testing.T) {
	seed := make([]byte, 64)
	for _, eta := range []int{2, 4} {
		a := UniformEta(seed, 7, eta)
		for i := 0; i < N; i++ {
			if a[i] < -int32(eta) || a[i] > int32(eta) {
				t.Fatalf("eta=%d coefficient %d out of range", eta, a[i])
			}
		}
	}
}

func TestUniformGamma1Range(t *testing.T) {
	seed := make([]byte, 64)
	for _, bits := range []int{17, 19} {
		a := UniformGamma1(seed, 3, bits)
		for i := 0; i < N; i++ {
			if a[i] <= -(1<<bits) || a[i] > 1<<bits {
				t.Fatalf("gamma1=2^%d coefficient %d out of range", bits, a[i])
			}
		}
	}
}

func TestChallengeWeight(t *testing.T) {
	seed := make([]byte, 48)
	for _, tau := range []int{39, 49, 60} {
		seed[0] = byte(tau)
		c := Challenge(seed, tau)
		weight := 0
		for i := 0; i < N; i++ {
			switch c[i] {
			case 0:
			case 1, -1:
				weight++
			default:
				t.Fatalf("coefficient %d is not 0 or ±1", c[i])
			}
		}
		if weight != tau {
			t.Fatalf("challenge has weight %d instead of %d", weight, tau)
		}
	}
}
