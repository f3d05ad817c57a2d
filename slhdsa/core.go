package slhdsa

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/bwesterb/go-pqc/internal/misc"
)

// Represents a height t merkle tree of n-byte strings T[i,j] as
//
//	                  T[t-1,0]
//	               /
//	             (...)        (...)
//	          /           \            \
//	       T[1,0]        T[1,1]  ...  T[1,2^(t-2)-1]
//	      /     \       /      \          \
//	   T[0,0] T[0,1] T[0,2]  T[0,3]  ...  T[0,2^(t-1)-1]
//
// as an (2^t-1)*n byte array.
type merkleTree struct {
	height uint32
	n      uint32
	buf    []byte
}

// Allocates memory for a merkle tree of n-byte strings of the given height.
func newMerkleTree(height, n uint32) merkleTree {
	return merkleTree{
		height: height,
		n:      n,
		buf:    make([]byte, ((1<<height)-1)*n),
	}
}

// Returns a slice to the given node.
func (mt *merkleTree) Node(height, index uint32) []byte {
	ptr := mt.n * ((1 << mt.height) - (1 << (mt.height - height)) + index)
	return mt.buf[ptr : ptr+mt.n]
}

// Returns the root of the tree.
func (mt *merkleTree) Root() []byte {
	return mt.Node(mt.height-1, 0)
}

// Writes the authentication path of the given leaf into out.
func (mt *merkleTree) AuthPathInto(leaf uint32, out []byte) {
	for h := uint32(0); h < mt.height-1; h++ {
		copy(out[h*mt.n:], mt.Node(h, (leaf>>h)^1))
	}
}

// Number of leaves a worker computes before it picks up the next batch.
const leavesPerBatch = 32

// Computes the leaves of mt with leaf(pad, idx, out).  The leaves are
// distributed over ctx.Threads goroutines.
func (ctx *Context) genLeavesInto(mt merkleTree,
	leaf func(pad scratchPad, idx uint32, out []byte)) {
	nLeaves := uint32(1) << (mt.height - 1)

	threads := ctx.Threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	if threads == 1 || nLeaves <= leavesPerBatch {
		pad := ctx.newScratchPad()
		for idx := uint32(0); idx < nLeaves; idx++ {
			leaf(pad, idx, mt.Node(0, idx))
		}
		return
	}

	// The code below does exactly the same as the branch above, but then
	// in parallel.  Every batch writes a disjoint part of mt.
	misc.Log.Logf("Computing %d leaves with %d threads", nLeaves, threads)
	var g errgroup.Group
	g.SetLimit(threads)
	for start := uint32(0); start < nLeaves; start += leavesPerBatch {
		start := start
		g.Go(func() error {
			pad := ctx.newScratchPad()
			end := start + leavesPerBatch
			if end > nLeaves {
				end = nLeaves
			}
			for idx := start; idx < end; idx++ {
				leaf(pad, idx, mt.Node(0, idx))
			}
			return nil
		})
	}
	g.Wait()
}

// Computes the internal nodes of mt from its leaves.  node is the address
// of the tree with its type set; offset is the index of the first leaf of
// mt among all leaves on its layer.
func (ctx *Context) genInternalNodesInto(pad scratchPad, pkSeed []byte,
	node Address, offset uint32, mt merkleTree) {
	buf := pad.hBuf()
	n := ctx.p.N
	for height := uint32(1); height < mt.height; height++ {
		node.setTreeHeight(height)
		for idx := uint32(0); idx < 1<<(mt.height-1-height); idx++ {
			node.setTreeIndex(offset>>height + idx)
			copy(buf[:n], mt.Node(height-1, 2*idx))
			copy(buf[n:], mt.Node(height-1, 2*idx+1))
			ctx.h.H(mt.Node(height, idx), pkSeed, &node, buf)
		}
	}
}

// Compute the XMSS tree at the given layer and tree address by
// generating all WOTS+ key pairs and then hashing up.
func (ctx *Context) genSubTree(pad scratchPad, skSeed, pkSeed []byte,
	layer uint32, tree uint64) merkleTree {
	mt := newMerkleTree(uint32(ctx.p.HPrime)+1, uint32(ctx.p.N))

	var otsAddr, nodeAddr Address
	otsAddr.setLayer(layer)
	otsAddr.setTree(tree)
	otsAddr.setTypeAndClear(ADDR_TYPE_WOTS_HASH)
	nodeAddr.setLayer(layer)
	nodeAddr.setTree(tree)
	nodeAddr.setTypeAndClear(ADDR_TYPE_TREE)

	ctx.genLeavesInto(mt, func(pad scratchPad, idx uint32, out []byte) {
		addr := otsAddr
		addr.setKeyPair(idx)
		ctx.wotsPkGenInto(pad, skSeed, pkSeed, addr, out)
	})
	ctx.genInternalNodesInto(pad, pkSeed, nodeAddr, 0, mt)
	return mt
}

// Hashes up an authentication path.  node holds the leaf on entry and
// the root on return.  addr is the address of the tree with its type set;
// idx is the global index of the leaf on its layer.
func (ctx *Context) rootFromAuthPath(pad scratchPad, pkSeed []byte,
	addr Address, idx uint32, authPath []byte, node []byte) {
	n := ctx.p.N
	buf := pad.hBuf()
	height := uint32(len(authPath) / n)
	for h := uint32(0); h < height; h++ {
		addr.setTreeHeight(h + 1)
		addr.setTreeIndex(idx >> (h + 1))
		sibling := authPath[int(h)*n : int(h+1)*n]
		if (idx>>h)&1 == 0 {
			// we're on the left, so the sibling hash from the
			// auth path is on the right
			copy(buf[:n], node)
			copy(buf[n:], sibling)
		} else {
			copy(buf[:n], sibling)
			copy(buf[n:], node)
		}
		ctx.h.H(node, pkSeed, &addr, buf)
	}
}

// Computes the root of the XMSS tree from an XMSS signature on msg.
func (ctx *Context) xmssPkFromSigInto(pad scratchPad, idx uint32,
	sig, msg, pkSeed []byte, layer uint32, tree uint64, out []byte) {
	wotsSigBytes := ctx.p.WotsSignatureSize()

	var addr Address
	addr.setLayer(layer)
	addr.setTree(tree)
	addr.setTypeAndClear(ADDR_TYPE_WOTS_HASH)
	addr.setKeyPair(idx)
	ctx.wotsPkFromSigInto(pad, sig[:wotsSigBytes], msg, pkSeed, addr, out)

	addr.setTypeAndClear(ADDR_TYPE_TREE)
	ctx.rootFromAuthPath(pad, pkSeed, addr, idx, sig[wotsSigBytes:], out)
}

// Signs msg (the FORS public key) with the hypertree.  out must be
// D * xmssSignatureSize bytes.
func (ctx *Context) htSignInto(pad scratchPad, msg, skSeed, pkSeed []byte,
	tree uint64, leaf uint32, out []byte) {
	n := ctx.p.N
	hp := uint(ctx.p.HPrime)
	xmssSigBytes := ctx.p.xmssSignatureSize()
	wotsSigBytes := ctx.p.WotsSignatureSize()
	root := make([]byte, n)
	copy(root, msg)

	for layer := 0; layer < ctx.p.D; layer++ {
		if layer > 0 {
			leaf = uint32(tree & lowMask(int(hp)))
			tree >>= hp
		}
		sig := out[layer*xmssSigBytes : (layer+1)*xmssSigBytes]

		var addr Address
		addr.setLayer(uint32(layer))
		addr.setTree(tree)
		addr.setTypeAndClear(ADDR_TYPE_WOTS_HASH)
		addr.setKeyPair(leaf)
		ctx.wotsSignInto(pad, root, skSeed, pkSeed, addr, sig[:wotsSigBytes])

		mt := ctx.genSubTree(pad, skSeed, pkSeed, uint32(layer), tree)
		mt.AuthPathInto(leaf, sig[wotsSigBytes:])
		copy(root, mt.Root())
	}
}

// Checks a hypertree signature on msg against the root of the public key.
func (ctx *Context) htVerify(pad scratchPad, msg, sig, pkSeed, pkRoot []byte,
	tree uint64, leaf uint32) bool {
	n := ctx.p.N
	hp := uint(ctx.p.HPrime)
	xmssSigBytes := ctx.p.xmssSignatureSize()
	node := make([]byte, n)
	copy(node, msg)

	for layer := 0; layer < ctx.p.D; layer++ {
		if layer > 0 {
			leaf = uint32(tree & lowMask(int(hp)))
			tree >>= hp
		}
		ctx.xmssPkFromSigInto(pad, leaf,
			sig[layer*xmssSigBytes:(layer+1)*xmssSigBytes],
			node, pkSeed, uint32(layer), tree, node)
	}
	return subtleEqual(node, pkRoot)
}
