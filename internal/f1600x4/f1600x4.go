// f1600x4 implements a fourway KeccaK-f[1600] permutation.  KeccaK-f[1600]
// is the permutation underlying KeccaK, SHA3 and SHAKE.
//
// The four states are interleaved lane-wise: lane j of state i is
// State[j][i].  The permutation itself is portable Go that processes
// the four states in lockstep.
package f1600x4

import (
	"math/bits"

	"golang.org/x/sys/cpu"
)

// Available is true when the CPU has 256-bit vector units.  Permute is
// portable Go either way; the fourway path is only taken on such CPUs as
// the compiler keeps the four lanes of a column in registers there.  Compare
// BenchmarkPermuteX4 with BenchmarkPermuteScalar4 in package sha3 on new
// targets before relying on it.
var Available = cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD

// RC are the KeccaK-f[1600] round constants.
var RC = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A,
	0x8000000080008000, 0x000000000000808B, 0x0000000080000001,
	0x8000000080008081, 0x8000000000008009, 0x000000000000008A,
	0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089,
	0x8000000000008003, 0x8000000000008002, 0x8000000000000080,
	0x000000000000800A, 0x800000008000000A, 0x8000000080008081,
	0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// Rotation offsets and lane targets of the combined rho and pi steps,
// walked starting from lane 1.
var (
	Rotc = [24]int{
		1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14,
		27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44,
	}
	PiLane = [24]int{
		10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4,
		15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1,
	}
)

// State holds four interleaved KeccaK-f[1600] states.
type State [25][4]uint64

// Zero resets all four states.
func (s *State) Zero() {
	*s = State{}
}

// Extract copies the lanes of state i.
func (s *State) Extract(i int) (ret [25]uint64) {
	for j := 0; j < 25; j++ {
		ret[j] = s[j][i]
	}
	return
}

// Insert overwrites the lanes of state i.
func (s *State) Insert(i int, lanes *[25]uint64) {
	for j := 0; j < 25; j++ {
		s[j][i] = lanes[j]
	}
}

// Permute applies KeccaK-f[1600] to each of the four states.
func (s *State) Permute() {
	var bc [5][4]uint64
	var t, tmp [4]uint64

	for round := 0; round < 24; round++ {
		// theta
		for x := 0; x < 5; x++ {
			for i := 0; i < 4; i++ {
				bc[x][i] = s[x][i] ^ s[x+5][i] ^ s[x+10][i] ^
					s[x+15][i] ^ s[x+20][i]
			}
		}
		for x := 0; x < 5; x++ {
			for i := 0; i < 4; i++ {
				d := bc[(x+4)%5][i] ^ bits.RotateLeft64(bc[(x+1)%5][i], 1)
				s[x][i] ^= d
				s[x+5][i] ^= d
				s[x+10][i] ^= d
				s[x+15][i] ^= d
				s[x+20][i] ^= d
			}
		}

		// rho and pi
		t = s[1]
		for j := 0; j < 24; j++ {
			p := PiLane[j]
			tmp = s[p]
			for i := 0; i < 4; i++ {
				s[p][i] = bits.RotateLeft64(t[i], Rotc[j])
			}
			t = tmp
		}

		// chi
		for y := 0; y < 25; y += 5 {
			for i := 0; i < 4; i++ {
				b0, b1, b2, b3, b4 := s[y][i], s[y+1][i], s[y+2][i],
					s[y+3][i], s[y+4][i]
				s[y][i] = b0 ^ (^b1 & b2)
				s[y+1][i] = b1 ^ (^b2 & b3)
				s[y+2][i] = b2 ^ (^b3 & b4)
				s[y+3][i] = b3 ^ (^b4 & b0)
				s[y+4][i] = b4 ^ (^b0 & b1)
			}
		}

		// iota
		for i := 0; i < 4; i++ {
			s[0][i] ^= RC[round]
		}
	}
}
