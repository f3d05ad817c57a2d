package slhdsa

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/bwesterb/go-pqc/internal/f1600x4"
	"github.com/bwesterb/go-pqc/sha3"
)

// Hasher provides the tweakable hash functions and pseudorandom functions
// of an SLH-DSA instance.  All outputs are written to out, whose length
// determines how many bytes are produced.  Implementations must be safe
// for concurrent use.
type Hasher interface {
	// PRF(PK.seed, SK.seed, ADRS): derives WOTS+ and FORS secret values.
	PRF(out, pkSeed, skSeed []byte, addr *Address)

	// PRFmsg(SK.prf, opt_rand, M): derives the randomizer R.
	PRFMsg(out, skPrf, optRand, msg []byte)

	// Hmsg(R, PK.seed, PK.root, M): the message digest of M bytes.
	HMsg(out, r, pkSeed, pkRoot, msg []byte)

	// F(PK.seed, ADRS, M1) with len(M1) = n.
	F(out, pkSeed []byte, addr *Address, m []byte)

	// H(PK.seed, ADRS, M2) with len(M2) = 2n.
	H(out, pkSeed []byte, addr *Address, m []byte)

	// T_l(PK.seed, ADRS, M) for arbitrary multiples of n.
	T(out, pkSeed []byte, addr *Address, m []byte)
}

// Hashers that can compute F and PRF on four inputs at once.
type hasherX4 interface {
	fX4(out *[4][]byte, pkSeed []byte, addrs *[4]Address, in *[4][]byte)
	prfX4(out *[4][]byte, pkSeed, skSeed []byte, addrs *[4]Address)
}

// NewHasher returns the hash functions FIPS 205 prescribes for the given
// family and security parameter n.
func NewHasher(f HashFunc, n int) Hasher {
	if f == SHAKE {
		return NewShakeHasher(n)
	}
	return NewSha2Hasher(n)
}

var shakePool = sync.Pool{
	New: func() interface{} { return sha3.NewShake256() },
}

type shakeHasher struct{}

// NewShakeHasher returns the SHAKE256 based hash functions.  They do not
// depend on n other than through the length of their output.
func NewShakeHasher(n int) Hasher {
	return shakeHasher{}
}

func shake256(out []byte, in ...[]byte) {
	h := shakePool.Get().(*sha3.State)
	h.Reset()
	for _, p := range in {
		h.Write(p)
	}
	h.Read(out)
	shakePool.Put(h)
}

func (shakeHasher) PRF(out, pkSeed, skSeed []byte, addr *Address) {
	shake256(out, pkSeed, addr[:], skSeed)
}

func (shakeHasher) PRFMsg(out, skPrf, optRand, msg []byte) {
	shake256(out, skPrf, optRand, msg)
}

func (shakeHasher) HMsg(out, r, pkSeed, pkRoot, msg []byte) {
	shake256(out, r, pkSeed, pkRoot, msg)
}

func (shakeHasher) F(out, pkSeed []byte, addr *Address, m []byte) {
	shake256(out, pkSeed, addr[:], m)
}

func (shakeHasher) H(out, pkSeed []byte, addr *Address, m []byte) {
	shake256(out, pkSeed, addr[:], m)
}

func (shakeHasher) T(out, pkSeed []byte, addr *Address, m []byte) {
	shake256(out, pkSeed, addr[:], m)
}

// Computes SHAKE256(pkSeed || addrs[i] || in[i]) for i = 0, ..., 3 in
// one run of the fourway permutation.
func (shakeHasher) fX4(out *[4][]byte, pkSeed []byte, addrs *[4]Address,
	in *[4][]byte) {
	var bufs [4][3 * 32]byte
	var msgs [4][]byte
	for i := 0; i < 4; i++ {
		l := copy(bufs[i][:], pkSeed)
		l += copy(bufs[i][l:], addrs[i][:])
		l += copy(bufs[i][l:], in[i])
		msgs[i] = bufs[i][:l]
	}
	sha3.ShakeSum256X4(*out, msgs)
}

func (h shakeHasher) prfX4(out *[4][]byte, pkSeed, skSeed []byte,
	addrs *[4]Address) {
	in := [4][]byte{skSeed, skSeed, skSeed, skSeed}
	h.fX4(out, pkSeed, addrs, &in)
}

var zeroes [128]byte

// The SHA2 instances.  Category 1 (n=16) uses SHA-256 throughout.  For
// categories 3 and 5, H, T, Hmsg and PRFmsg use SHA-512 instead.
type sha2Hasher struct {
	n        int
	big      bool // H, T, Hmsg and PRFmsg use SHA-512
	pool256  sync.Pool
	pool512  sync.Pool
	newHMsgH func() hash.Hash
}

// NewSha2Hasher returns the SHA2 based hash functions for n = 16, 24 or 32.
func NewSha2Hasher(n int) Hasher {
	h := &sha2Hasher{n: n, big: n > 16}
	h.pool256.New = func() interface{} { return sha256.New() }
	h.pool512.New = func() interface{} { return sha512.New() }
	h.newHMsgH = sha256.New
	if h.big {
		h.newHMsgH = sha512.New
	}
	return h
}

// Computes Trunc_n(SHA-x(pkSeed || 0^(blockSize-n) || ADRSc || m...)).
func (h *sha2Hasher) tweak(big bool, out, pkSeed []byte, addr *Address,
	m ...[]byte) {
	pool := &h.pool256
	if big {
		pool = &h.pool512
	}
	hh := pool.Get().(hash.Hash)
	hh.Reset()

	var addrc [22]byte
	addr.compressInto(addrc[:])
	hh.Write(pkSeed)
	hh.Write(zeroes[:hh.BlockSize()-len(pkSeed)])
	hh.Write(addrc[:])
	for _, p := range m {
		hh.Write(p)
	}

	var digest [sha512.Size]byte
	copy(out, hh.Sum(digest[:0]))
	pool.Put(hh)
}

func (h *sha2Hasher) PRF(out, pkSeed, skSeed []byte, addr *Address) {
	h.tweak(false, out, pkSeed, addr, skSeed)
}

func (h *sha2Hasher) F(out, pkSeed []byte, addr *Address, m []byte) {
	h.tweak(false, out, pkSeed, addr, m)
}

func (h *sha2Hasher) H(out, pkSeed []byte, addr *Address, m []byte) {
	h.tweak(h.big, out, pkSeed, addr, m)
}

func (h *sha2Hasher) T(out, pkSeed []byte, addr *Address, m []byte) {
	h.tweak(h.big, out, pkSeed, addr, m)
}

func (h *sha2Hasher) PRFMsg(out, skPrf, optRand, msg []byte) {
	mac := hmac.New(h.newHMsgH, skPrf)
	mac.Write(optRand)
	mac.Write(msg)
	var digest [sha512.Size]byte
	copy(out, mac.Sum(digest[:0]))
}

// Hmsg is MGF1 over R || PK.seed || SHA-x(R || PK.seed || PK.root || M).
func (h *sha2Hasher) HMsg(out, r, pkSeed, pkRoot, msg []byte) {
	hh := h.newHMsgH()
	hh.Write(r)
	hh.Write(pkSeed)
	hh.Write(pkRoot)
	hh.Write(msg)

	seed := make([]byte, 0, len(r)+len(pkSeed)+sha512.Size)
	seed = append(seed, r...)
	seed = append(seed, pkSeed...)
	seed = hh.Sum(seed)
	mgf1(h.newHMsgH, out, seed)
}

// Fills out with MGF1 from RFC 8017 on seed.
func mgf1(newHash func() hash.Hash, out, seed []byte) {
	hh := newHash()
	var ctr [4]byte
	var digest [sha512.Size]byte
	for i := uint32(0); len(out) > 0; i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		hh.Reset()
		hh.Write(seed)
		hh.Write(ctr[:])
		out = out[copy(out, hh.Sum(digest[:0])):]
	}
}

// Returns the fourway variant of h if there is one and f1600x4.Available.
func toHasherX4(h Hasher) hasherX4 {
	if !f1600x4.Available {
		return nil
	}
	ret, _ := h.(hasherX4)
	return ret
}
