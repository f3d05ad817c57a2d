package slhdsa

import (
	"bytes"
	"testing"
)

func TestMerkleTree(t *testing.T) {
	var th uint32 = 3
	var h, i uint32
	mt := newMerkleTree(th, 2)
	for h = 0; h < th; h++ {
		for i = 0; i < 1<<(th-h-1); i++ {
			mt.Node(h, i)[0] = byte(h)
			mt.Node(h, i)[1] = byte(i)
		}
	}
	for h = 0; h < th; h++ {
		for i = 0; i < 1<<(th-h-1); i++ {
			if mt.Node(h, i)[0] != byte(h) ||
				mt.Node(h, i)[1] != byte(i) {
				t.Errorf("Node (%d,%d) has wrong value", h, i)
			}
		}
	}
	if !bytes.Equal(mt.Root(), []byte{2, 0}) {
		t.Errorf("Root() is not the top node")
	}

	auth := make([]byte, 4)
	mt.AuthPathInto(2, auth)
	if !bytes.Equal(auth, []byte{0, 3, 1, 0}) {
		t.Errorf("AuthPathInto(2) = %v", auth)
	}
}

// The tree must not depend on the number of threads.
func TestGenSubTreeThreads(t *testing.T) {
	ctx := NewContextFromName("SLH-DSA-SHA2-128s")
	skSeed := make([]byte, 16)
	pkSeed := make([]byte, 16)
	for i := 0; i < 16; i++ {
		skSeed[i] = byte(i)
		pkSeed[i] = byte(2 * i)
	}

	ctx.Threads = 1
	mt1 := ctx.genSubTree(ctx.newScratchPad(), skSeed, pkSeed, 2, 77)
	ctx.Threads = 4
	mt2 := ctx.genSubTree(ctx.newScratchPad(), skSeed, pkSeed, 2, 77)
	if !bytes.Equal(mt1.buf, mt2.buf) {
		t.Fatal("subtree depends on the number of threads")
	}
}

// Every authentication path of a subtree leads back to its root.
func TestSubTreeAuthPaths(t *testing.T) {
	ctx := NewContextFromName("SLH-DSA-SHAKE-256f")
	n := ctx.p.N
	seed := make([]byte, n)
	pad := ctx.newScratchPad()
	mt := ctx.genSubTree(pad, seed, seed, 1, 3)

	var addr Address
	addr.setLayer(1)
	addr.setTree(3)
	addr.setTypeAndClear(ADDR_TYPE_TREE)
	auth := make([]byte, ctx.p.HPrime*n)
	node := make([]byte, n)
	for leaf := uint32(0); leaf < 1<<uint(ctx.p.HPrime); leaf++ {
		mt.AuthPathInto(leaf, auth)
		copy(node, mt.Node(0, leaf))
		ctx.rootFromAuthPath(pad, seed, addr, leaf, auth, node)
		if !bytes.Equal(node, mt.Root()) {
			t.Fatalf("auth path of leaf %d does not lead to the root", leaf)
		}
	}
}

func TestFors(t *testing.T) {
	ctx := NewContextFromName("SLH-DSA-SHA2-128f")
	n := ctx.p.N
	seed := make([]byte, n)
	md := make([]byte, ctx.p.mdBytes())
	for i := range md {
		md[i] = byte(37 * i)
	}
	var addr Address
	addr.setTree(12345)
	addr.setTypeAndClear(ADDR_TYPE_FORS_TREE)
	addr.setKeyPair(6)

	pad := ctx.newScratchPad()
	sig := make([]byte, ctx.p.forsSignatureSize())
	pk1 := make([]byte, n)
	pk2 := make([]byte, n)
	ctx.forsSignInto(pad, md, seed, seed, addr, sig, pk1)
	ctx.forsPkFromSigInto(pad, sig, md, seed, addr, pk2)
	if !bytes.Equal(pk1, pk2) {
		t.Fatal("FORS public key from signature does not match")
	}

	md[0] ^= 0x80
	ctx.forsPkFromSigInto(pad, sig, md, seed, addr, pk2)
	if bytes.Equal(pk1, pk2) {
		t.Fatal("FORS signature is valid for another digest")
	}
}

func TestBase2b(t *testing.T) {
	out := make([]uint32, 4)
	base2b([]byte{0xab, 0xcd, 0xef}, 6, out)
	// 101010 111100 110111 101111
	for i, v := range []uint32{0x2a, 0x3c, 0x37, 0x2f} {
		if out[i] != v {
			t.Fatalf("base2b = %v", out)
		}
	}
	out = out[:1]
	base2b([]byte{0x12, 0x34, 0x56}, 14, out)
	if out[0] != 0x048d {
		t.Fatalf("base2b 14 bits = %x", out[0])
	}
	if toInt([]byte{1, 2, 3}) != 0x010203 {
		t.Fatal("toInt")
	}
	if lowMask(64) != ^uint64(0) || lowMask(3) != 7 {
		t.Fatal("lowMask")
	}
}

func BenchmarkGenSubTreeSHAKE128s(b *testing.B) {
	benchmarkGenSubTree(NewContextFromName("SLH-DSA-SHAKE-128s"), b)
}
func BenchmarkGenSubTreeSHA2_128s(b *testing.B) {
	benchmarkGenSubTree(NewContextFromName("SLH-DSA-SHA2-128s"), b)
}

func benchmarkGenSubTree(ctx *Context, b *testing.B) {
	seed := make([]byte, ctx.p.N)
	pad := ctx.newScratchPad()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx.genSubTree(pad, seed, seed, 0, uint64(i))
	}
}
