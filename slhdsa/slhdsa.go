// Package slhdsa implements the stateless hash-based signature scheme
// SLH-DSA of FIPS 205 for all twelve parameter sets.
//
// An instance is described by a Context, which couples Params to the
// Hasher that provides the tweakable hash functions.  Signing builds
// a FORS signature on the message digest and climbs a hypertree of
// XMSS trees.  The WOTS+ leaves of those trees are computed in parallel;
// see Context.Threads.
package slhdsa

import (
	"crypto/rand"
	"io"

	"github.com/bwesterb/go-pqc/internal/misc"
	"github.com/bwesterb/go-pqc/prehash"
)

// Error is the error type returned by this package.
type Error = misc.Error

// SLH-DSA private key
type PrivateKey struct {
	ctx    *Context
	skSeed []byte
	skPrf  []byte
	pkSeed []byte
	pkRoot []byte
}

// SLH-DSA public key
type PublicKey struct {
	ctx    *Context
	pkSeed []byte
	pkRoot []byte
}

// Generates a key pair using randomness from rnd, or from crypto/rand if
// rnd is nil.
func (ctx *Context) GenerateKey(rnd io.Reader) (*PublicKey, *PrivateKey, Error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	n := ctx.p.N
	seeds := make([]byte, 3*n)
	if _, err := io.ReadFull(rnd, seeds); err != nil {
		return nil, nil, misc.WrapErrorf(err, "Failed to read randomness")
	}
	return ctx.NewKeyFromSeed(seeds[:n], seeds[n:2*n], seeds[2*n:])
}

// Derives a key pair from the given n-byte seeds.
func (ctx *Context) NewKeyFromSeed(skSeed, skPrf, pkSeed []byte) (
	*PublicKey, *PrivateKey, Error) {
	n := ctx.p.N
	if len(skSeed) != n || len(skPrf) != n || len(pkSeed) != n {
		return nil, nil, misc.Usagef("Seeds must be %d bytes each", n)
	}

	buf := make([]byte, 4*n)
	sk := &PrivateKey{
		ctx:    ctx,
		skSeed: buf[:n],
		skPrf:  buf[n : 2*n],
		pkSeed: buf[2*n : 3*n],
		pkRoot: buf[3*n:],
	}
	copy(sk.skSeed, skSeed)
	copy(sk.skPrf, skPrf)
	copy(sk.pkSeed, pkSeed)

	// The root of the public key is the root of the single tree on the
	// top layer.
	mt := ctx.genSubTree(ctx.newScratchPad(), sk.skSeed, sk.pkSeed,
		uint32(ctx.p.D-1), 0)
	copy(sk.pkRoot, mt.Root())
	return sk.Public(), sk, nil
}

// Unpacks a public key: PK.seed || PK.root.
func (ctx *Context) NewPublicKey(buf []byte) (*PublicKey, Error) {
	n := ctx.p.N
	if len(buf) != ctx.p.PublicKeySize() {
		return nil, misc.Usagef("Public key must be %d bytes, not %d",
			ctx.p.PublicKeySize(), len(buf))
	}
	buf = append([]byte{}, buf...)
	return &PublicKey{ctx: ctx, pkSeed: buf[:n], pkRoot: buf[n:]}, nil
}

// Unpacks a private key: SK.seed || SK.prf || PK.seed || PK.root.
// The root is not recomputed.
func (ctx *Context) NewPrivateKey(buf []byte) (*PrivateKey, Error) {
	n := ctx.p.N
	if len(buf) != ctx.p.PrivateKeySize() {
		return nil, misc.Usagef("Private key must be %d bytes, not %d",
			ctx.p.PrivateKeySize(), len(buf))
	}
	buf = append([]byte{}, buf...)
	return &PrivateKey{
		ctx:    ctx,
		skSeed: buf[:n],
		skPrf:  buf[n : 2*n],
		pkSeed: buf[2*n : 3*n],
		pkRoot: buf[3*n:],
	}, nil
}

// Returns the packed public key.
func (pk *PublicKey) Bytes() []byte {
	ret := make([]byte, 0, 2*len(pk.pkSeed))
	ret = append(ret, pk.pkSeed...)
	return append(ret, pk.pkRoot...)
}

// Returns the context of the key.
func (pk *PublicKey) Context() *Context { return pk.ctx }

// Reports whether pk and other are the same key.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.ctx.p == other.ctx.p &&
		string(pk.pkSeed) == string(other.pkSeed) &&
		string(pk.pkRoot) == string(other.pkRoot)
}

// Returns the packed private key.
func (sk *PrivateKey) Bytes() []byte {
	ret := make([]byte, 0, 4*len(sk.skSeed))
	ret = append(ret, sk.skSeed...)
	ret = append(ret, sk.skPrf...)
	ret = append(ret, sk.pkSeed...)
	return append(ret, sk.pkRoot...)
}

// Returns the context of the key.
func (sk *PrivateKey) Context() *Context { return sk.ctx }

// Returns the public key belonging to sk.
func (sk *PrivateKey) Public() *PublicKey {
	return &PublicKey{
		ctx:    sk.ctx,
		pkSeed: append([]byte{}, sk.pkSeed...),
		pkRoot: append([]byte{}, sk.pkRoot...),
	}
}

// Signs msg with the given context string using fresh randomness from
// rnd, or from crypto/rand if rnd is nil.
func (sk *PrivateKey) Sign(rnd io.Reader, msg, context []byte) ([]byte, Error) {
	if err := misc.CheckContext(context); err != nil {
		return nil, err
	}
	return sk.signRandomized(rnd, prehash.PureMessage(msg, context))
}

// Signs msg with the given context string without randomness.
func (sk *PrivateKey) SignDeterministic(msg, context []byte) ([]byte, Error) {
	if err := misc.CheckContext(context); err != nil {
		return nil, err
	}
	return sk.signInternal(prehash.PureMessage(msg, context), nil), nil
}

// Signs the digest of msg under ph (HashSLH-DSA) using randomness from rnd,
// or from crypto/rand if rnd is nil.
func (sk *PrivateKey) HashSign(rnd io.Reader, msg, context []byte,
	ph prehash.Function) ([]byte, Error) {
	if err := misc.CheckContext(context); err != nil {
		return nil, err
	}
	mPrime, err := prehash.Message(ph, msg, context)
	if err != nil {
		return nil, err
	}
	return sk.signRandomized(rnd, mPrime)
}

// HashSign without randomness.
func (sk *PrivateKey) HashSignDeterministic(msg, context []byte,
	ph prehash.Function) ([]byte, Error) {
	if err := misc.CheckContext(context); err != nil {
		return nil, err
	}
	mPrime, err := prehash.Message(ph, msg, context)
	if err != nil {
		return nil, err
	}
	return sk.signInternal(mPrime, nil), nil
}

// Signs the already formatted message mPrime.  optRand must be n bytes,
// or nil for deterministic signing.
func (sk *PrivateKey) SignInternal(mPrime, optRand []byte) ([]byte, Error) {
	if optRand != nil && len(optRand) != sk.ctx.p.N {
		return nil, misc.Usagef("optRand must be %d bytes, not %d",
			sk.ctx.p.N, len(optRand))
	}
	return sk.signInternal(mPrime, optRand), nil
}

func (sk *PrivateKey) signRandomized(rnd io.Reader, mPrime []byte) (
	[]byte, Error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	optRand := make([]byte, sk.ctx.p.N)
	if _, err := io.ReadFull(rnd, optRand); err != nil {
		return nil, misc.WrapErrorf(err, "Failed to read randomness")
	}
	return sk.signInternal(mPrime, optRand), nil
}

// Splits the message digest into the FORS message and the position of
// the FORS key pair in the hypertree.
func (ctx *Context) splitDigest(digest []byte) (
	md []byte, tree uint64, leaf uint32) {
	p := &ctx.p
	off := p.mdBytes()
	md = digest[:off]
	tree = toInt(digest[off:off+p.treeIdxBytes()]) & lowMask(p.H-p.HPrime)
	off += p.treeIdxBytes()
	leaf = uint32(toInt(digest[off:off+p.leafIdxBytes()]) & lowMask(p.HPrime))
	return
}

func (sk *PrivateKey) signInternal(mPrime, optRand []byte) []byte {
	ctx := sk.ctx
	p := &ctx.p
	n := p.N
	if optRand == nil {
		optRand = sk.pkSeed
	}

	pad := ctx.newScratchPad()
	sig := make([]byte, p.SignatureSize())
	r := sig[:n]
	ctx.h.PRFMsg(r, sk.skPrf, optRand, mPrime)

	digest := make([]byte, p.M)
	ctx.h.HMsg(digest, r, sk.pkSeed, sk.pkRoot, mPrime)
	md, tree, leaf := ctx.splitDigest(digest)

	var addr Address
	addr.setTree(tree)
	addr.setTypeAndClear(ADDR_TYPE_FORS_TREE)
	addr.setKeyPair(leaf)

	forsSigEnd := n + p.forsSignatureSize()
	forsPk := make([]byte, n)
	ctx.forsSignInto(pad, md, sk.skSeed, sk.pkSeed, addr,
		sig[n:forsSigEnd], forsPk)
	ctx.htSignInto(pad, forsPk, sk.skSeed, sk.pkSeed, tree, leaf,
		sig[forsSigEnd:])

	misc.Log.Logf("%s: signed with FORS key pair %d of tree %d",
		ctx.name, leaf, tree)
	return sig
}

// Checks sig on msg with the given context string.  A false result always
// comes with an error: a usage error for bad input, and
// misc.ErrInvalidSignature otherwise.
func (pk *PublicKey) Verify(msg, context, sig []byte) (bool, Error) {
	if err := misc.CheckContext(context); err != nil {
		return false, err
	}
	return pk.verifyResult(prehash.PureMessage(msg, context), sig)
}

// Checks a signature made by HashSign.
func (pk *PublicKey) HashVerify(msg, context, sig []byte,
	ph prehash.Function) (bool, Error) {
	if err := misc.CheckContext(context); err != nil {
		return false, err
	}
	mPrime, err := prehash.Message(ph, msg, context)
	if err != nil {
		return false, err
	}
	return pk.verifyResult(mPrime, sig)
}

// Checks sig on the already formatted message mPrime.
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
	ctx := pk.ctx
	p := &ctx.p
	n := p.N
	if len(sig) != p.SignatureSize() {
		return false
	}

	pad := ctx.newScratchPad()
	r := sig[:n]
	digest := make([]byte, p.M)
	ctx.h.HMsg(digest, r, pk.pkSeed, pk.pkRoot, mPrime)
	md, tree, leaf := ctx.splitDigest(digest)

	var addr Address
	addr.setTree(tree)
	addr.setTypeAndClear(ADDR_TYPE_FORS_TREE)
	addr.setKeyPair(leaf)

	forsSigEnd := n + p.forsSignatureSize()
	forsPk := make([]byte, n)
	ctx.forsPkFromSigInto(pad, sig[n:forsSigEnd], md, pk.pkSeed, addr, forsPk)
	return ctx.htVerify(pad, forsPk, sig[forsSigEnd:], pk.pkSeed, pk.pkRoot,
		tree, leaf)
}
