// Package sha3 implements the KeccaK sponge with the SHA3-224/256/384/512
// and SHAKE128/256 instances of FIPS 202, and a fourway variant that
// computes four independent hashes of the same instance in lockstep.
package sha3

import (
	"encoding/binary"

	"github.com/templexxx/xorsimd"
)

const (
	// Domain separation suffixes including the first bit of padding.
	dsbyteSHA3  = 0x06
	dsbyteShake = 0x1f

	maxRate = 168
)

// State is a KeccaK sponge.  The 1600 bit state is stored as 200 bytes:
// the 25 lanes of KeccaK-f[1600] in little endian order.
type State struct {
	a         [200]byte
	rate      int  // in bytes
	pos       int  // cursor in the current block
	dsbyte    byte // domain separation suffix
	outputLen int  // digest size for the fixed-length instances; 0 for XOFs
	squeezing bool
}

// Creates a sponge with the given rate in bytes.  A rate that does not leave
// a whole number of lanes of capacity is a programming error.
func newState(rate int, dsbyte byte, outputLen int) *State {
	ret := new(State)
	ret.init(rate, dsbyte, outputLen)
	return ret
}

func (d *State) init(rate int, dsbyte byte, outputLen int) {
	if rate <= 0 || rate >= 200 || rate%8 != 0 {
		panic("sha3: invalid rate")
	}
	d.rate = rate
	d.dsbyte = dsbyte
	d.outputLen = outputLen
	d.Reset()
}

// Reset zeroes the state and makes the sponge ready to absorb.
func (d *State) Reset() {
	d.a = [200]byte{}
	d.pos = 0
	d.squeezing = false
}

// Rate returns the number of bytes absorbed or squeezed per permutation.
func (d *State) Rate() int { return d.rate }

// BlockSize returns the rate.  Part of hash.Hash.
func (d *State) BlockSize() int { return d.rate }

// Size returns the digest length of the fixed-output instances, and
// 0 for SHAKE.  Part of hash.Hash.
func (d *State) Size() int { return d.outputLen }

// Clone returns an independent copy of the sponge.
func (d *State) Clone() *State {
	ret := *d
	return &ret
}

func (d *State) permute() {
	var a [25]uint64
	for i := 0; i < 25; i++ {
		a[i] = binary.LittleEndian.Uint64(d.a[8*i:])
	}
	KeccakF1600(&a)
	for i := 0; i < 25; i++ {
		binary.LittleEndian.PutUint64(d.a[8*i:], a[i])
	}
}

// Absorb XORs p into the state, permuting whenever a block is full, and
// returns the position of the cursor in the current block.
func (d *State) Absorb(p []byte) int {
	if d.squeezing {
		panic("sha3: absorb after squeeze")
	}

	for len(p) > 0 {
		todo := d.rate - d.pos
		if todo > len(p) {
			todo = len(p)
		}
		xorsimd.Bytes(d.a[d.pos:d.pos+todo], d.a[d.pos:d.pos+todo], p[:todo])
		d.pos += todo
		p = p[todo:]

		if d.pos == d.rate {
			d.permute()
			d.pos = 0
		}
	}
	return d.pos
}

// Write absorbs p.  It never returns an error.
func (d *State) Write(p []byte) (int, error) {
	d.Absorb(p)
	return len(p), nil
}

// FinalizeAbsorb applies the domain suffix and the final padding bit
// and switches the sponge to squeezing.
func (d *State) FinalizeAbsorb() {
	if d.squeezing {
		return
	}
	d.a[d.pos] ^= d.dsbyte
	d.a[d.rate-1] ^= 0x80
	d.permute()
	d.pos = 0
	d.squeezing = true
}

// AbsorbOnce resets the sponge, absorbs p and finalizes.
func (d *State) AbsorbOnce(p []byte) {
	d.Reset()
	d.Absorb(p)
	d.FinalizeAbsorb()
}

// Squeeze fills out with output, finalizing first if needed.
func (d *State) Squeeze(out []byte) {
	if !d.squeezing {
		d.FinalizeAbsorb()
	}

	for len(out) > 0 {
		if d.pos == d.rate {
			d.permute()
			d.pos = 0
		}
		n := copy(out, d.a[d.pos:d.rate])
		d.pos += n
		out = out[n:]
	}
}

// Read squeezes len(out) bytes.  It never returns an error.
func (d *State) Read(out []byte) (int, error) {
	d.Squeeze(out)
	return len(out), nil
}

// Sum appends the digest of the data absorbed so far to b without
// changing the state.  For SHAKE it appends 32 or 64 bytes, matching
// the collision resistance of the instance.  Part of hash.Hash.
func (d *State) Sum(b []byte) []byte {
	n := d.outputLen
	if n == 0 {
		n = (200 - d.rate) / 2
	}
	dup := d.Clone()
	ret := make([]byte, n)
	dup.Squeeze(ret)
	return append(b, ret...)
}
