// Package mldsa implements the ML-DSA signature scheme of FIPS 204.
package mldsa

import (
	"crypto/rand"
	"io"

	"github.com/bwesterb/go-pqc/internal/misc"
	"github.com/bwesterb/go-pqc/internal/poly"
	"github.com/bwesterb/go-pqc/sha3"
)

// Error is the error type returned by this package.
type Error = misc.Error

// ML-DSA public key
type PublicKey struct {
	p      *Params
	rho    [32]byte
	t1     poly.Vec
	tr     [trSize]byte // H(packed)
	packed []byte
}

// ML-DSA private key
type PrivateKey struct {
	p   *Params
	rho [32]byte
	key [32]byte
	tr  [trSize]byte
	s1  poly.Vec
	s2  poly.Vec
	t0  poly.Vec
	pk  *PublicKey
}

// GenerateKey generates a key pair using randomness from rand, or from
// crypto/rand if rand is nil.
func (p *Params) GenerateKey(rnd io.Reader) (*PublicKey, *PrivateKey, Error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, nil, misc.WrapErrorf(err, "Failed to read randomness")
	}
	return p.NewKeyFromSeed(seed[:])
}

// NewKeyFromSeed deterministically derives a key pair from a 32 byte seed.
func (p *Params) NewKeyFromSeed(seed []byte) (*PublicKey, *PrivateKey, Error) {
	if len(seed) != SeedSize {
		return nil, nil, misc.Usagef("%s: seed must be %d bytes, not %d",
			p.Name, SeedSize, len(seed))
	}

	var buf [32 + crhSize + 32]byte
	h := sha3.NewShake256()
	h.Write(seed)
	h.Write([]byte{byte(p.K), byte(p.L)})
	h.Read(buf[:])

	sk := &PrivateKey{p: p}
	copy(sk.rho[:], buf[:32])
	rhoPrime := buf[32 : 32+crhSize]
	copy(sk.key[:], buf[32+crhSize:])

	sk.s1 = make(poly.Vec, p.L)
	for i := 0; i < p.L; i++ {
		sk.s1[i] = poly.UniformEta(rhoPrime, uint16(i), p.Eta)
	}
	sk.s2 = make(poly.Vec, p.K)
	for i := 0; i < p.K; i++ {
		sk.s2[i] = poly.UniformEta(rhoPrime, uint16(p.L+i), p.Eta)
	}

	var t1 poly.Vec
	t1, sk.t0 = sk.computeT()
	sk.pk = newPublicKey(p, sk.rho, t1)
	sk.tr = sk.pk.tr
	return sk.pk, sk, nil
}

// Computes t = A s1 + s2 and splits it into high and low parts.
func (sk *PrivateKey) computeT() (t1, t0 poly.Vec) {
	p := sk.p
	A := poly.ExpandMatrix(sk.rho[:], p.K, p.L)
	that := A.MulVec(sk.s1.NTT())
	that.Reduce()
	t := that.InvNTT().Add(sk.s2)
	t.Caddq()
	return t.Power2Round()
}

func newPublicKey(p *Params, rho [32]byte, t1 poly.Vec) *PublicKey {
	pk := &PublicKey{p: p, rho: rho, t1: t1}
	pk.packed = make([]byte, p.PublicKeySize())
	copy(pk.packed, rho[:])
	for i := 0; i < p.K; i++ {
		poly.PackT1(pk.packed[32+i*poly.T1PackedBytes:], &t1[i])
	}
	sha3.ShakeSum256(pk.tr[:], pk.packed)
	return pk
}

// NewPublicKey unpacks a public key.
func (p *Params) NewPublicKey(buf []byte) (*PublicKey, Error) {
	if len(buf) != p.PublicKeySize() {
		return nil, misc.Usagef("%s: public key must be %d bytes, not %d",
			p.Name, p.PublicKeySize(), len(buf))
	}
	var rho [32]byte
	copy(rho[:], buf)
	t1 := make(poly.Vec, p.K)
	for i := 0; i < p.K; i++ {
		off := 32 + i*poly.T1PackedBytes
		t1[i] = poly.UnpackT1(buf[off : off+poly.T1PackedBytes])
	}
	return newPublicKey(p, rho, t1), nil
}

// NewPrivateKey unpacks a private key.
func (p *Params) NewPrivateKey(buf []byte) (*PrivateKey, Error) {
	if len(buf) != p.PrivateKeySize() {
		return nil, misc.Usagef("%s: private key must be %d bytes, not %d",
			p.Name, p.PrivateKeySize(), len(buf))
	}

	sk := &PrivateKey{p: p}
	copy(sk.rho[:], buf[:32])
	copy(sk.key[:], buf[32:64])
	copy(sk.tr[:], buf[64:64+trSize])
	off := 64 + trSize

	var ok bool
	eb := p.etaBytes()
	sk.s1 = make(poly.Vec, p.L)
	for i := 0; i < p.L; i++ {
		if sk.s1[i], ok = poly.UnpackEta(buf[off:off+eb], p.Eta); !ok {
			return nil, misc.Usagef("%s: private key has s1 out of range", p.Name)
		}
		off += eb
	}
	sk.s2 = make(poly.Vec, p.K)
	for i := 0; i < p.K; i++ {
		if sk.s2[i], ok = poly.UnpackEta(buf[off:off+eb], p.Eta); !ok {
			return nil, misc.Usagef("%s: private key has s2 out of range", p.Name)
		}
		off += eb
	}
	sk.t0 = make(poly.Vec, p.K)
	for i := 0; i < p.K; i++ {
		sk.t0[i] = poly.UnpackT0(buf[off : off+poly.T0PackedBytes])
		off += poly.T0PackedBytes
	}

	t1, _ := sk.computeT()
	sk.pk = newPublicKey(p, sk.rho, t1)
	return sk, nil
}

// Bytes returns the packed public key: rho || t1.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte{}, pk.packed...)
}

// Params returns the parameters of the key.
func (pk *PublicKey) Params() *Params { return pk.p }

// Equal reports whether pk and other are the same key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.p == other.p && string(pk.packed) == string(other.packed)
}

// Bytes returns the packed private key: rho || key || tr || s1 || s2 || t0.
func (sk *PrivateKey) Bytes() []byte {
	p := sk.p
	ret := make([]byte, p.PrivateKeySize())
	copy(ret, sk.rho[:])
	copy(ret[32:], sk.key[:])
	copy(ret[64:], sk.tr[:])
	off := 64 + trSize
	eb := p.etaBytes()
	for i := range sk.s1 {
		poly.PackEta(ret[off:], &sk.s1[i], p.Eta)
		off += eb
	}
	for i := range sk.s2 {
		poly.PackEta(ret[off:], &sk.s2[i], p.Eta)
		off += eb
	}
	for i := range sk.t0 {
		poly.PackT0(ret[off:], &sk.t0[i])
		off += poly.T0PackedBytes
	}
	return ret
}

// Params returns the parameters of the key.
func (sk *PrivateKey) Params() *Params { return sk.p }

// Public returns the public key belonging to sk.
func (sk *PrivateKey) Public() *PublicKey {
	return sk.pk
}
