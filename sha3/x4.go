package sha3

import (
	"encoding/binary"

	"github.com/bwesterb/go-pqc/internal/f1600x4"
)

// StateX4 runs four independent sponges of the same instance in lockstep.
// Its output is identical to four separate State computations.
type StateX4 struct {
	s         f1600x4.State
	rate      int
	dsbyte    byte
	pos       int
	squeezing bool
}

func newStateX4(rate int, dsbyte byte) *StateX4 {
	if rate <= 0 || rate > maxRate || rate%8 != 0 {
		panic("sha3: invalid rate")
	}
	return &StateX4{rate: rate, dsbyte: dsbyte}
}

// NewShake128X4 returns four SHAKE128 instances.
func NewShake128X4() *StateX4 { return newStateX4(RateShake128, dsbyteShake) }

// NewShake256X4 returns four SHAKE256 instances.
func NewShake256X4() *StateX4 { return newStateX4(RateShake256, dsbyteShake) }

// NewSHA3X4 returns four SHA3 instances with the given rate.  The caller
// squeezes the digest length itself.
func NewSHA3X4(rate int) *StateX4 { return newStateX4(rate, dsbyteSHA3) }

// Reset zeroes the four states.
func (s *StateX4) Reset() {
	s.s.Zero()
	s.pos = 0
	s.squeezing = false
}

// Absorb feeds in[i] in full to the i-th sponge and finalizes all four.
// The streams may have different lengths.
func (s *StateX4) Absorb(in [4][]byte) {
	if s.squeezing {
		panic("sha3: absorb after squeeze")
	}

	rate := s.rate
	lanes := rate / 8

	// Number of padded blocks per stream.
	var nb [4]int
	maxNb := 0
	for i := 0; i < 4; i++ {
		nb[i] = len(in[i])/rate + 1
		if nb[i] > maxNb {
			maxNb = nb[i]
		}
	}

	var snap [4][25]uint64
	var pad [4][maxRate]byte
	var buf [4 * maxRate]byte

	for blk := 0; blk < maxNb; blk++ {
		full := true
		for i := 0; i < 4; i++ {
			if blk >= nb[i]-1 {
				full = false
			}
		}

		if full {
			// All four streams have a whole block of data.
			off := blk * rate
			for j := 0; j < lanes; j++ {
				for i := 0; i < 4; i++ {
					s.s[j][i] ^= binary.LittleEndian.Uint64(in[i][off+8*j:])
				}
			}
		} else {
			for i := 0; i < 4; i++ {
				pad[i] = [maxRate]byte{}
				switch {
				case blk < nb[i]-1:
					copy(pad[i][:rate], in[i][blk*rate:])
				case blk == nb[i]-1:
					n := copy(pad[i][:rate], in[i][blk*rate:])
					pad[i][n] ^= s.dsbyte
					pad[i][rate-1] ^= 0x80
				}
			}
			interleave(buf[:4*rate], &pad, rate)
			for k := 0; k < 4*lanes; k++ {
				s.s[k/4][k%4] ^= binary.LittleEndian.Uint64(buf[8*k:])
			}
		}

		s.s.Permute()

		for i := 0; i < 4; i++ {
			if blk == nb[i]-1 && nb[i] < maxNb {
				snap[i] = s.s.Extract(i)
			}
		}
	}

	// Undo the permutations applied to streams that ended early.
	for i := 0; i < 4; i++ {
		if nb[i] < maxNb {
			s.s.Insert(i, &snap[i])
		}
	}

	s.pos = 0
	s.squeezing = true
}

// Puts the 8-byte words of the four blocks round-robin into buf.
func interleave(buf []byte, blocks *[4][maxRate]byte, rate int) {
	for j := 0; j < rate/8; j++ {
		for i := 0; i < 4; i++ {
			copy(buf[8*(4*j+i):8*(4*j+i+1)], blocks[i][8*j:8*(j+1)])
		}
	}
}

// Squeeze fills out[i] from the i-th sponge.  The lengths may differ.
func (s *StateX4) Squeeze(out [4][]byte) {
	if !s.squeezing {
		panic("sha3: squeeze before absorb")
	}

	maxLen := 0
	for i := 0; i < 4; i++ {
		if len(out[i]) > maxLen {
			maxLen = len(out[i])
		}
	}

	for off := 0; off < maxLen; {
		if s.pos == s.rate {
			s.s.Permute()
			s.pos = 0
		}
		n := s.rate - s.pos
		if n > maxLen-off {
			n = maxLen - off
		}
		for i := 0; i < 4; i++ {
			if off >= len(out[i]) {
				continue
			}
			m := n
			if m > len(out[i])-off {
				m = len(out[i]) - off
			}
			s.extract(i, s.pos, out[i][off:off+m])
		}
		off += n
		s.pos += n
	}
}

// Copies bytes pos, pos+1, ... of the rate of state i into dst.
func (s *StateX4) extract(i, pos int, dst []byte) {
	for k := 0; k < len(dst); {
		b := pos + k
		if b%8 == 0 && len(dst)-k >= 8 {
			binary.LittleEndian.PutUint64(dst[k:], s.s[b/8][i])
			k += 8
			continue
		}
		dst[k] = byte(s.s[b/8][i] >> (8 * uint(b%8)))
		k++
	}
}

// ShakeSum128X4 computes four SHAKE128 outputs.
func ShakeSum128X4(out, in [4][]byte) {
	s := NewShake128X4()
	s.Absorb(in)
	s.Squeeze(out)
}

// ShakeSum256X4 computes four SHAKE256 outputs.
func ShakeSum256X4(out, in [4][]byte) {
	s := NewShake256X4()
	s.Absorb(in)
	s.Squeeze(out)
}
