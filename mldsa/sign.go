package mldsa

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/bwesterb/go-pqc/internal/misc"
	"github.com/bwesterb/go-pqc/internal/poly"
	"github.com/bwesterb/go-pqc/prehash"
	"github.com/bwesterb/go-pqc/sha3"
)

// Sign signs msg with context string ctx using hedged randomness from rnd,
// or from crypto/rand if rnd is nil.
func (sk *PrivateKey) Sign(rnd io.Reader, msg, ctx []byte) ([]byte, Error) {
	if err := misc.CheckContext(ctx); err != nil {
		return nil, err
	}
	return sk.signRandomized(rnd, prehash.PureMessage(msg, ctx))
}

// SignDeterministic signs msg with context string ctx without randomness.
func (sk *PrivateKey) SignDeterministic(msg, ctx []byte) ([]byte, Error) {
	if err := misc.CheckContext(ctx); err != nil {
		return nil, err
	}
	var zero [RndSize]byte
	return sk.signInternal(prehash.PureMessage(msg, ctx), &zero), nil
}

// HashSign signs the digest of msg under ph (HashML-DSA).
func (sk *PrivateKey) HashSign(rnd io.Reader, msg, ctx []byte,
	ph prehash.Function) ([]byte, Error) {
	if err := misc.CheckContext(ctx); err != nil {
		return nil, err
	}
	mPrime, err := prehash.Message(ph, msg, ctx)
	if err != nil {
		return nil, err
	}
	return sk.signRandomized(rnd, mPrime)
}

// HashSignDeterministic is HashSign without randomness.
func (sk *PrivateKey) HashSignDeterministic(msg, ctx []byte,
	ph prehash.Function) ([]byte, Error) {
	if err := misc.CheckContext(ctx); err != nil {
		return nil, err
	}
	mPrime, err := prehash.Message(ph, msg, ctx)
	if err != nil {
		return nil, err
	}
	var zero [RndSize]byte
	return sk.signInternal(mPrime, &zero), nil
}

// SignInternal signs the already formatted message mPrime with the given
// 32 bytes of randomness; all zeroes for deterministic signing.
func (sk *PrivateKey) SignInternal(mPrime, rnd []byte) ([]byte, Error) {
	if len(rnd) != RndSize {
		return nil, misc.Usagef("rnd must be %d bytes, not %d", RndSize, len(rnd))
	}
	var r [RndSize]byte
	copy(r[:], rnd)
	return sk.signInternal(mPrime, &r), nil
}

func (sk *PrivateKey) signRandomized(rnd io.Reader, mPrime []byte) ([]byte, Error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var r [RndSize]byte
	if _, err := io.ReadFull(rnd, r[:]); err != nil {
		return nil, misc.WrapErrorf(err, "Failed to read randomness")
	}
	return sk.signInternal(mPrime, &r), nil
}

func (sk *PrivateKey) signInternal(mPrime []byte, rnd *[RndSize]byte) []byte {
	p := sk.p

	var mu [muSize]byte
	h := sha3.NewShake256()
	h.Write(sk.tr[:])
	h.Write(mPrime)
	h.Read(mu[:])

	var rhoPrime [crhSize]byte
	h.Reset()
	h.Write(sk.key[:])
	h.Write(rnd[:])
	h.Write(mu[:])
	h.Read(rhoPrime[:])

	A := poly.ExpandMatrix(sk.rho[:], p.K, p.L)
	s1hat := sk.s1.NTT()
	s2hat := sk.s2.NTT()
	t0hat := sk.t0.NTT()

	sig := make([]byte, p.SignatureSize())
	ctilde := sig[:p.ctildeSize()]
	w1b := p.w1Bytes()
	w1Packed := make([]byte, p.K*w1b)
	y := make(poly.Vec, p.L)

	for attempt := 0; ; attempt++ {
		for i := 0; i < p.L; i++ {
			y[i] = poly.UniformGamma1(rhoPrime[:], uint16(p.L*attempt+i),
				p.Gamma1Bits)
		}

		// w = A y, w1 = HighBits(w)
		what := A.MulVec(y.NTT())
		what.Reduce()
		w := what.InvNTT()
		w.Caddq()
		w1, w0 := w.Decompose(p.Gamma2)
		for i := 0; i < p.K; i++ {
			poly.PackW1(w1Packed[i*w1b:], &w1[i], p.Gamma2)
		}

		h.Reset()
		h.Write(mu[:])
		h.Write(w1Packed)
		h.Read(ctilde)

		c := poly.Challenge(ctilde, p.Tau)
		chat := poly.NTT(&c)

		z := s1hat.ScalarMul(&chat).InvNTT().Add(y)
		z.Reduce()
		if z.ChkNorm(p.gamma1() - p.Beta) {
			continue
		}

		// r0 = LowBits(w - c s2)
		w0 = w0.Sub(s2hat.ScalarMul(&chat).InvNTT())
		w0.Reduce()
		if w0.ChkNorm(p.Gamma2 - p.Beta) {
			continue
		}

		ct0 := t0hat.ScalarMul(&chat).InvNTT()
		ct0.Reduce()
		if ct0.ChkNorm(p.Gamma2) {
			continue
		}

		hint, ones := poly.MakeHintVec(w0.Add(ct0), w1, p.Gamma2)
		if ones > p.Omega {
			continue
		}

		off := p.ctildeSize()
		for i := 0; i < p.L; i++ {
			poly.PackZ(sig[off:], &z[i], p.Gamma1Bits)
			off += p.zBytes()
		}
		poly.PackHint(sig[off:], hint, p.Omega)

		misc.Log.Logf("%s: signed after %d attempts", p.Name, attempt+1)
		return sig
	}
}

// Verify checks sig on msg with context string ctx.  A false result always
// comes with an error: a usage error for bad input, and
// misc.ErrInvalidSignature otherwise.
func (pk *PublicKey) Verify(msg, ctx, sig []byte) (bool, Error) {
	if err := misc.CheckContext(ctx); err != nil {
		return false, err
	}
	return pk.verifyResult(prehash.PureMessage(msg, ctx), sig)
}

// HashVerify checks a signature made by HashSign.
func (pk *PublicKey) HashVerify(msg, ctx, sig []byte,
	ph prehash.Function) (bool, Error) {
	if err := misc.CheckContext(ctx); err != nil {
		return false, err
	}
	mPrime, err := prehash.Message(ph, msg, ctx)
	if err != nil {
		return false, err
	}
	return pk.verifyResult(mPrime, sig)
}

// VerifyInternal checks sig on the already formatted message mPrime.
func (pk *PublicKey) VerifyInternal(mPrime, sig []byte) (bool, Error) {
	return pk.verifyResult(mPrime, sig)
}

func (pk *PublicKey) verifyResult(mPrime, sig []byte) (bool, Error) {
	if !pk.verifyInternal(mPrime, sig) {
		return false, misc.ErrInvalidSignature
	}
	return true, nil
}

func (pk *PublicKey) verifyInternal(mPrime, sig []byte) bool {
	p := pk.p
	if len(sig) != p.SignatureSize() {
		return false
	}

	ctilde := sig[:p.ctildeSize()]
	off := p.ctildeSize()
	z := make(poly.Vec, p.L)
	for i := 0; i < p.L; i++ {
		z[i] = poly.UnpackZ(sig[off:off+p.zBytes()], p.Gamma1Bits)
		off += p.zBytes()
	}
	hint, ok := poly.UnpackHint(sig[off:], p.K, p.Omega)
	if !ok {
		return false
	}
	if z.ChkNorm(p.gamma1() - p.Beta) {
		return false
	}

	var mu [muSize]byte
	h := sha3.NewShake256()
	h.Write(pk.tr[:])
	h.Write(mPrime)
	h.Read(mu[:])

	c := poly.Challenge(ctilde, p.Tau)
	chat := poly.NTT(&c)

	// w1' = UseHint(A z - c t1 2^d, h)
	A := poly.ExpandMatrix(pk.rho[:], p.K, p.L)
	azhat := A.MulVec(z.NTT())
	t1 := append(poly.Vec{}, pk.t1...)
	t1.ShiftL()
	what := azhat.Sub(t1.NTT().ScalarMul(&chat))
	what.Reduce()
	w := what.InvNTT()
	w.Caddq()
	w1 := w.UseHint(hint, p.Gamma2)

	w1b := p.w1Bytes()
	w1Packed := make([]byte, p.K*w1b)
	for i := 0; i < p.K; i++ {
		poly.PackW1(w1Packed[i*w1b:], &w1[i], p.Gamma2)
	}

	ctilde2 := make([]byte, p.ctildeSize())
	h.Reset()
	h.Write(mu[:])
	h.Write(w1Packed)
	h.Read(ctilde2)

	return subtle.ConstantTimeCompare(ctilde, ctilde2) == 1
}
