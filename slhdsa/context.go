package slhdsa

import (
	"github.com/bwesterb/go-pqc/internal/misc"
)

// SLH-DSA instance: parameters together with the hash functions.
// Create one using NewContextFromName or NewContext.
type Context struct {
	// Number of worker goroutines ("threads") to use for expensive operations.
	// Will guess an appropriate number if set to 0.
	Threads int

	p    Params   // parameters.
	h    Hasher   // tweakable hash functions
	x4   hasherX4 // fourway variant of h; nil if not available
	name string   // name of algorithm; empty if not from the registry

	wotsLen1 int // WOTS+ chains for message
	wotsLen2 int // WOTS+ chains for checksum
	wotsLen  int // total number of WOTS+ chains
}

// Return new context for the given SLH-DSA algorithm name (and nil if the
// algorithm name is unknown).  It uses the hash functions of FIPS 205.
func NewContextFromName(name string) *Context {
	entry, ok := registryNameLut[name]
	if !ok {
		return nil
	}
	ctx, _ := NewContext(entry.params,
		NewHasher(entry.params.Func, entry.params.N))
	ctx.name = name
	return ctx
}

// Creates a new context with the given hash functions.
func NewContext(params Params, h Hasher) (*Context, Error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, misc.Usagef("No hash functions given")
	}
	ctx := &Context{
		p:        params,
		h:        h,
		x4:       toHasherX4(h),
		wotsLen1: params.WotsLen1(),
		wotsLen2: params.WotsLen2(),
		wotsLen:  params.WotsLen(),
	}
	return ctx, nil
}

// Returns the name of the SLH-DSA instance and an empty string if it has
// no name.
func (ctx *Context) Name() string {
	return ctx.name
}

// Get parameters of an SLH-DSA instance
func (ctx *Context) Params() Params {
	return ctx.p
}

// Returns the size of signatures of this SLH-DSA instance
func (ctx *Context) SignatureSize() int {
	return ctx.p.SignatureSize()
}

// Returns the size of packed public keys of this SLH-DSA instance
func (ctx *Context) PublicKeySize() int {
	return ctx.p.PublicKeySize()
}

// Returns the size of packed private keys of this SLH-DSA instance
func (ctx *Context) PrivateKeySize() int {
	return ctx.p.PrivateKeySize()
}

// A scratchpad used by a single goroutine to avoid memory allocation.
type scratchPad struct {
	buf []byte
	n   int

	lengths []uint8 // WOTS+ chain lengths
}

// Buffer for the WOTS+ chains.
func (pad scratchPad) wotsBuf() []byte {
	return pad.buf[:pad.n*(len(pad.lengths))]
}

// Buffer for the WOTS+ checksum.
func (pad scratchPad) csumBuf() []byte {
	off := pad.n * len(pad.lengths)
	return pad.buf[off : off+4]
}

// Buffer holding two nodes that are hashed together.
func (pad scratchPad) hBuf() []byte {
	off := pad.n*len(pad.lengths) + 4
	return pad.buf[off : off+2*pad.n]
}

func (ctx *Context) newScratchPad() scratchPad {
	n := ctx.p.N
	return scratchPad{
		buf:     make([]byte, n*ctx.wotsLen+4+2*n),
		n:       n,
		lengths: make([]uint8, ctx.wotsLen),
	}
}
