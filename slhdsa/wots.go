package slhdsa

// Converts an n-byte message into positions on the WOTS+ chains, which
// are called "chain lengths", followed by those of the checksum.
func (ctx *Context) wotsChainLengths(pad scratchPad, msg []byte) []uint8 {
	ret := pad.lengths
	w := uint32(1) << uint(ctx.p.LgW)

	// compute the chain lengths for the message itself
	ctx.toBaseW(msg, ret[:ctx.wotsLen1])

	// compute the checksum
	var csum uint32
	for i := 0; i < ctx.wotsLen1; i++ {
		csum += w - 1 - uint32(ret[i])
	}
	csumBits := ctx.wotsLen2 * ctx.p.LgW
	csum <<= uint((8 - csumBits%8) % 8)

	// put checksum in buffer
	csumBuf := pad.csumBuf()[:(csumBits+7)/8]
	toByte(uint64(csum), csumBuf)
	ctx.toBaseW(csumBuf, ret[ctx.wotsLen1:])
	return ret
}

// Converts the given array of bytes into base w for the WOTS+ one-time
// signature scheme.  Only works if LgW divides into 8.
func (ctx *Context) toBaseW(input []byte, output []uint8) {
	logW := uint8(ctx.p.LgW)
	mask := uint8(1)<<logW - 1
	var in int
	var total uint8
	var bits uint8

	for out := range output {
		if bits == 0 {
			total = input[in]
			in++
			bits = 8
		}
		bits -= logW
		output[out] = (total >> bits) & mask
	}
}

// Compute the (start + steps)th value in the WOTS+ chain, given
// the start'th value in the chain.
func (ctx *Context) wotsGenChainInto(in []byte, start, steps uint32,
	pkSeed []byte, addr Address, out []byte) {
	w := uint32(1) << uint(ctx.p.LgW)
	copy(out, in)
	for i := start; i < start+steps && i < w; i++ {
		addr.setHash(i)
		ctx.h.F(out, pkSeed, &addr, out)
	}
}

// Returns the address of the secret values of the WOTS+ key pair at addr.
func wotsPrfAddress(addr Address) Address {
	ret := addr
	ret.setTypeAndClear(ADDR_TYPE_WOTS_PRF)
	ret.setKeyPair(addr.keyPair())
	return ret
}

// Compresses the WOTS+ public key in pad.wotsBuf() into out.
func (ctx *Context) wotsCompressInto(pad scratchPad, pkSeed []byte,
	addr Address, out []byte) {
	pkAddr := addr
	pkAddr.setTypeAndClear(ADDR_TYPE_WOTS_PK)
	pkAddr.setKeyPair(addr.keyPair())
	ctx.h.T(out, pkSeed, &pkAddr, pad.wotsBuf())
}

// Generate the compressed WOTS+ public key of the key pair at addr.
func (ctx *Context) wotsPkGenInto(pad scratchPad, skSeed, pkSeed []byte,
	addr Address, out []byte) {
	n := ctx.p.N
	w := uint32(1) << uint(ctx.p.LgW)
	skAddr := wotsPrfAddress(addr)
	buf := pad.wotsBuf()

	i := 0
	if ctx.x4 != nil {
		for ; i+4 <= ctx.wotsLen; i += 4 {
			ctx.wotsPkChainsX4(buf, i, skSeed, pkSeed, skAddr, addr)
		}
	}
	for ; i < ctx.wotsLen; i++ {
		chain := buf[i*n : (i+1)*n]
		skAddr.setChain(uint32(i))
		ctx.h.PRF(chain, pkSeed, skSeed, &skAddr)
		addr.setChain(uint32(i))
		ctx.wotsGenChainInto(chain, 0, w-1, pkSeed, addr, chain)
	}

	ctx.wotsCompressInto(pad, pkSeed, addr, out)
}

// Computes the four full chains starting at chain first with the fourway
// hash functions.
func (ctx *Context) wotsPkChainsX4(buf []byte, first int,
	skSeed, pkSeed []byte, skAddr, addr Address) {
	n := ctx.p.N
	w := uint32(1) << uint(ctx.p.LgW)
	var skAddrs, addrs [4]Address
	var chains [4][]byte
	for j := 0; j < 4; j++ {
		skAddrs[j] = skAddr
		skAddrs[j].setChain(uint32(first + j))
		addrs[j] = addr
		addrs[j].setChain(uint32(first + j))
		chains[j] = buf[(first+j)*n : (first+j+1)*n]
	}

	ctx.x4.prfX4(&chains, pkSeed, skSeed, &skAddrs)
	for k := uint32(0); k < w-1; k++ {
		for j := 0; j < 4; j++ {
			addrs[j].setHash(k)
		}
		ctx.x4.fX4(&chains, pkSeed, &addrs, &chains)
	}
}

// Create a WOTS+ signature of an n-byte message into out.
func (ctx *Context) wotsSignInto(pad scratchPad, msg, skSeed, pkSeed []byte,
	addr Address, out []byte) {
	n := ctx.p.N
	lengths := ctx.wotsChainLengths(pad, msg)
	skAddr := wotsPrfAddress(addr)
	for i := 0; i < ctx.wotsLen; i++ {
		chain := out[i*n : (i+1)*n]
		skAddr.setChain(uint32(i))
		ctx.h.PRF(chain, pkSeed, skSeed, &skAddr)
		addr.setChain(uint32(i))
		ctx.wotsGenChainInto(chain, 0, uint32(lengths[i]), pkSeed, addr, chain)
	}
}

// Computes the compressed WOTS+ public key from a message and its WOTS+
// signature.
func (ctx *Context) wotsPkFromSigInto(pad scratchPad, sig, msg, pkSeed []byte,
	addr Address, out []byte) {
	n := ctx.p.N
	w := uint32(1) << uint(ctx.p.LgW)
	lengths := ctx.wotsChainLengths(pad, msg)
	buf := pad.wotsBuf()
	for i := 0; i < ctx.wotsLen; i++ {
		addr.setChain(uint32(i))
		ctx.wotsGenChainInto(sig[i*n:(i+1)*n],
			uint32(lengths[i]), w-1-uint32(lengths[i]),
			pkSeed, addr, buf[i*n:(i+1)*n])
	}
	ctx.wotsCompressInto(pad, pkSeed, addr, out)
}
