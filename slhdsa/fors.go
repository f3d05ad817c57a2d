package slhdsa

// Derives the FORS secret value with the given index.  addr is the
// FORS_TREE address of the key pair.
func (ctx *Context) forsSkGenInto(skSeed, pkSeed []byte, addr Address,
	idx uint32, out []byte) {
	skAddr := addr
	skAddr.setTypeAndClear(ADDR_TYPE_FORS_PRF)
	skAddr.setKeyPair(addr.keyPair())
	skAddr.setTreeIndex(idx)
	ctx.h.PRF(out, pkSeed, skSeed, &skAddr)
}

// Returns the indices of the revealed leaves: md split into K integers
// of A bits.
func (ctx *Context) forsIndices(md []byte) []uint32 {
	ret := make([]uint32, ctx.p.K)
	base2b(md, ctx.p.A, ret)
	return ret
}

// Signs the message digest md with the FORS key pair at addr and writes
// the FORS public key into pk.
func (ctx *Context) forsSignInto(pad scratchPad, md, skSeed, pkSeed []byte,
	addr Address, sig, pk []byte) {
	n := ctx.p.N
	a := uint32(ctx.p.A)
	indices := ctx.forsIndices(md)
	roots := make([]byte, ctx.p.K*n)
	mt := newMerkleTree(a+1, uint32(n))

	for i, leaf := range indices {
		offset := uint32(i) << a
		treeSig := sig[i*(ctx.p.A+1)*n : (i+1)*(ctx.p.A+1)*n]

		ctx.forsSkGenInto(skSeed, pkSeed, addr, offset+leaf, treeSig[:n])

		ctx.genLeavesInto(mt, func(pad scratchPad, j uint32, out []byte) {
			leafAddr := addr
			ctx.forsSkGenInto(skSeed, pkSeed, leafAddr, offset+j, out)
			leafAddr.setTreeHeight(0)
			leafAddr.setTreeIndex(offset + j)
			ctx.h.F(out, pkSeed, &leafAddr, out)
		})
		ctx.genInternalNodesInto(pad, pkSeed, addr, offset, mt)
		mt.AuthPathInto(leaf, treeSig[n:])
		copy(roots[i*n:], mt.Root())
	}

	ctx.forsRootsToPkInto(pkSeed, addr, roots, pk)
}

// Computes the FORS public key from a FORS signature on md.
func (ctx *Context) forsPkFromSigInto(pad scratchPad, sig, md, pkSeed []byte,
	addr Address, pk []byte) {
	n := ctx.p.N
	a := uint32(ctx.p.A)
	indices := ctx.forsIndices(md)
	roots := make([]byte, ctx.p.K*n)

	for i, leaf := range indices {
		idx := uint32(i)<<a + leaf
		treeSig := sig[i*(ctx.p.A+1)*n : (i+1)*(ctx.p.A+1)*n]
		root := roots[i*n : (i+1)*n]

		leafAddr := addr
		leafAddr.setTreeHeight(0)
		leafAddr.setTreeIndex(idx)
		ctx.h.F(root, pkSeed, &leafAddr, treeSig[:n])
		ctx.rootFromAuthPath(pad, pkSeed, addr, idx, treeSig[n:], root)
	}

	ctx.forsRootsToPkInto(pkSeed, addr, roots, pk)
}

func (ctx *Context) forsRootsToPkInto(pkSeed []byte, addr Address,
	roots, pk []byte) {
	pkAddr := addr
	pkAddr.setTypeAndClear(ADDR_TYPE_FORS_ROOTS)
	pkAddr.setKeyPair(addr.keyPair())
	ctx.h.T(pk, pkSeed, &pkAddr, roots)
}
