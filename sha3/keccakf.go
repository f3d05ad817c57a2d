package sha3

import (
	"math/bits"

	"github.com/bwesterb/go-pqc/internal/f1600x4"
)

// KeccakF1600 applies the 24 round KeccaK-f[1600] permutation to a.
func KeccakF1600(a *[25]uint64) {
	var bc0, bc1, bc2, bc3, bc4, d, t, tmp uint64

	for round := 0; round < 24; round++ {
		// theta
		bc0 = a[0] ^ a[5] ^ a[10] ^ a[15] ^ a[20]
		bc1 = a[1] ^ a[6] ^ a[11] ^ a[16] ^ a[21]
		bc2 = a[2] ^ a[7] ^ a[12] ^ a[17] ^ a[22]
		bc3 = a[3] ^ a[8] ^ a[13] ^ a[18] ^ a[23]
		bc4 = a[4] ^ a[9] ^ a[14] ^ a[19] ^ a[24]
		d = bc4 ^ bits.RotateLeft64(bc1, 1)
		a[0] ^= d
		a[5] ^= d
		a[10] ^= d
		a[15] ^= d
		a[20] ^= d
		d = bc0 ^ bits.RotateLeft64(bc2, 1)
		a[1] ^= d
		a[6] ^= d
		a[11] ^= d
		a[16] ^= d
		a[21] ^= d
		d = bc1 ^ bits.RotateLeft64(bc3, 1)
		a[2] ^= d
		a[7] ^= d
		a[12] ^= d
		a[17] ^= d
		a[22] ^= d
		d = bc2 ^ bits.RotateLeft64(bc4, 1)
		a[3] ^= d
		a[8] ^= d
		a[13] ^= d
		a[18] ^= d
		a[23] ^= d
		d = bc3 ^ bits.RotateLeft64(bc0, 1)
		a[4] ^= d
		a[9] ^= d
		a[14] ^= d
		a[19] ^= d
		a[24] ^= d

		// rho and pi
		t = a[1]
		for j := 0; j < 24; j++ {
			p := f1600x4.PiLane[j]
			tmp = a[p]
			a[p] = bits.RotateLeft64(t, f1600x4.Rotc[j])
			t = tmp
		}

		// chi
		for y := 0; y < 25; y += 5 {
			bc0, bc1, bc2, bc3, bc4 = a[y], a[y+1], a[y+2], a[y+3], a[y+4]
			a[y] = bc0 ^ (^bc1 & bc2)
			a[y+1] = bc1 ^ (^bc2 & bc3)
			a[y+2] = bc2 ^ (^bc3 & bc4)
			a[y+3] = bc3 ^ (^bc4 & bc0)
			a[y+4] = bc4 ^ (^bc0 & bc1)
		}

		// iota
		a[0] ^= f1600x4.RC[round]
	}
}
