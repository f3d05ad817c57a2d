package sha3

import (
	"crypto/sha256"
	"testing"

	"github.com/bwesterb/go-pqc/internal/f1600x4"
	xsha3 "golang.org/x/crypto/sha3"
)

var benchSink [32]byte

func benchmarkSum(b *testing.B, size int, sum func([]byte) [32]byte) {
	msg := testMessage(size)
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchSink = sum(msg)
	}
}

func BenchmarkSum256_1K(b *testing.B) { benchmarkSum(b, 1024, Sum256) }
func BenchmarkXCryptoSum256_1K(b *testing.B) { benchmarkSum(b, 1024, xsha3.Sum256) }
func BenchmarkSHA256_1K(b *testing.B) { benchmarkSum(b, 1024, sha256.Sum256) }

func BenchmarkShake256X4(b *testing.B) {
	var in, out [4][]byte
	for i := 0; i < 4; i++ {
		in[i] = testMessage(64)
		out[i] = make([]byte, 32)
	}
	b.SetBytes(4 * 64)
	for i := 0; i < b.N; i++ {
		ShakeSum256X4(out, in)
	}
}

func BenchmarkShake256Scalar4(b *testing.B) {
	var in, out [4][]byte
	for i := 0; i < 4; i++ {
		in[i] = testMessage(64)
		out[i] = make([]byte, 32)
	}
	b.SetBytes(4 * 64)
	for i := 0; i < b.N; i++ {
		for j := 0; j < 4; j++ {
			ShakeSum256(out[j], in[j])
		}
	}
}

func BenchmarkPermuteX4(b *testing.B) {
	var s f1600x4.State
	for i := 0; i < b.N; i++ {
		s.Permute()
	}
}

func BenchmarkPermuteScalar4(b *testing.B) {
	var a [4][25]uint64
	for i := 0; i < b.N; i++ {
		for j := 0; j < 4; j++ {
			KeccakF1600(&a[j])
		}
	}
}
