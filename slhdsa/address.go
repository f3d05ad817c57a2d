package slhdsa

import (
	"encoding/binary"
)

const (
	ADDR_TYPE_WOTS_HASH  = 0
	ADDR_TYPE_WOTS_PK    = 1
	ADDR_TYPE_TREE       = 2
	ADDR_TYPE_FORS_TREE  = 3
	ADDR_TYPE_FORS_ROOTS = 4
	ADDR_TYPE_WOTS_PRF   = 5
	ADDR_TYPE_FORS_PRF   = 6
)

// Address used in SLH-DSA to diversify the hashes.  Its layout is
//
//	layer (4) | tree (12) | type (4) | keypair (4) | chain/height (4) | hash/index (4)
//
// with all fields big endian.
type Address [32]byte

func (addr *Address) setLayer(layer uint32) {
	binary.BigEndian.PutUint32(addr[0:4], layer)
}

// Tree indices fit in 64 bits for all parameter sets.
func (addr *Address) setTree(tree uint64) {
	binary.BigEndian.PutUint32(addr[4:8], 0)
	binary.BigEndian.PutUint64(addr[8:16], tree)
}

// Sets the type and zeroes the last 12 bytes.
func (addr *Address) setTypeAndClear(typ uint32) {
	binary.BigEndian.PutUint32(addr[16:20], typ)
	for i := 20; i < 32; i++ {
		addr[i] = 0
	}
}

func (addr *Address) setKeyPair(keyPair uint32) {
	binary.BigEndian.PutUint32(addr[20:24], keyPair)
}

func (addr *Address) keyPair() uint32 {
	return binary.BigEndian.Uint32(addr[20:24])
}

func (addr *Address) setChain(chain uint32) {
	binary.BigEndian.PutUint32(addr[24:28], chain)
}

func (addr *Address) setHash(hash uint32) {
	binary.BigEndian.PutUint32(addr[28:32], hash)
}

func (addr *Address) setTreeHeight(treeHeight uint32) {
	binary.BigEndian.PutUint32(addr[24:28], treeHeight)
}

func (addr *Address) setTreeIndex(treeIndex uint32) {
	binary.BigEndian.PutUint32(addr[28:32], treeIndex)
}

func (addr *Address) treeIndex() uint32 {
	return binary.BigEndian.Uint32(addr[28:32])
}

// Writes the 22 byte compressed form used by the SHA2 instances:
// the low bytes of layer and type, the low 8 bytes of the tree
// and the last 12 bytes.
func (addr *Address) compressInto(buf []byte) {
	buf[0] = addr[3]
	copy(buf[1:9], addr[8:16])
	buf[9] = addr[19]
	copy(buf[10:22], addr[20:32])
}
