package slhdsa

import (
	"github.com/bwesterb/go-pqc/internal/misc"
)

// HashFunc selects the family of the tweakable hash functions.
type HashFunc uint8

const (
	SHA2 HashFunc = iota
	SHAKE
)

func (f HashFunc) String() string {
	switch f {
	case SHA2:
		return "SHA2"
	case SHAKE:
		return "SHAKE"
	}
	return "unknown"
}

// Parameters of an SLH-DSA instance
type Params struct {
	Func   HashFunc // which hash function family to use
	N      int      // security parameter: length of hashes in bytes
	H      int      // full height of the hypertree
	D      int      // number of layers of the hypertree
	HPrime int      // height of a single XMSS tree; H = D * HPrime
	A      int      // height of a FORS tree
	K      int      // number of FORS trees
	LgW    int      // log2 of the Winternitz parameter.  Only 4 is supported.
	M      int      // length of the message digest in bytes
}

// Entry in the registry of algorithms
type regEntry struct {
	name   string // name, eg. SLH-DSA-SHAKE-128s
	params Params
}

// Registry of named SLH-DSA instances
var registry = []regEntry{
	{"SLH-DSA-SHA2-128s", Params{SHA2, 16, 63, 7, 9, 12, 14, 4, 30}},
	{"SLH-DSA-SHAKE-128s", Params{SHAKE, 16, 63, 7, 9, 12, 14, 4, 30}},
	{"SLH-DSA-SHA2-128f", Params{SHA2, 16, 66, 22, 3, 6, 33, 4, 34}},
	{"SLH-DSA-SHAKE-128f", Params{SHAKE, 16, 66, 22, 3, 6, 33, 4, 34}},
	{"SLH-DSA-SHA2-192s", Params{SHA2, 24, 63, 7, 9, 14, 17, 4, 39}},
	{"SLH-DSA-SHAKE-192s", Params{SHAKE, 24, 63, 7, 9, 14, 17, 4, 39}},
	{"SLH-DSA-SHA2-192f", Params{SHA2, 24, 66, 22, 3, 8, 33, 4, 42}},
	{"SLH-DSA-SHAKE-192f", Params{SHAKE, 24, 66, 22, 3, 8, 33, 4, 42}},
	{"SLH-DSA-SHA2-256s", Params{SHA2, 32, 64, 8, 8, 14, 22, 4, 47}},
	{"SLH-DSA-SHAKE-256s", Params{SHAKE, 32, 64, 8, 8, 14, 22, 4, 47}},
	{"SLH-DSA-SHA2-256f", Params{SHA2, 32, 68, 17, 4, 9, 35, 4, 49}},
	{"SLH-DSA-SHAKE-256f", Params{SHAKE, 32, 68, 17, 4, 9, 35, 4, 49}},
}

var registryNameLut map[string]regEntry

// Initializes algorithm lookup tables.
func init() {
	registryNameLut = make(map[string]regEntry)
	for _, entry := range registry {
		registryNameLut[entry.name] = entry
	}
}

// Returns parameters for the named SLH-DSA instance (and nil if there is no
// such algorithm).
func ParamsFromName(name string) *Params {
	entry, ok := registryNameLut[name]
	if !ok {
		return nil
	}
	ret := entry.params
	return &ret
}

// List all named SLH-DSA instances
func ListNames() (names []string) {
	names = make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return
}

// Checks whether the parameters describe an instance we can run.
func (p *Params) validate() Error {
	switch {
	case p.N != 16 && p.N != 24 && p.N != 32:
		return misc.Usagef("N must be 16, 24 or 32, not %d", p.N)
	case p.LgW != 4:
		return misc.Usagef("Only LgW=4 is supported at the moment")
	case p.D <= 0 || p.HPrime <= 0 || p.H != p.D*p.HPrime:
		return misc.Usagef("H must equal D * HPrime")
	case p.HPrime > 20:
		return misc.Usagef("HPrime must be at most 20")
	case p.H-p.HPrime > 64:
		return misc.Usagef("The tree index must fit in 64 bits")
	case p.A <= 0 || p.A > 24 || p.K <= 0:
		return misc.Usagef("A must be in 1..24 and K positive")
	case p.M != p.mdBytes()+p.treeIdxBytes()+p.leafIdxBytes():
		return misc.Usagef("M does not match K, A, H and HPrime")
	}
	return nil
}

// Returns the number of WOTS+ chains for the message.
func (p *Params) WotsLen1() int {
	return 8 * p.N / p.LgW
}

// Returns the number of WOTS+ chains for the checksum.
func (p *Params) WotsLen2() int {
	// floor(log2(len1 * (w-1)) / lgw) + 1, which is 3 for all lgw=4 sets.
	w := 1 << uint(p.LgW)
	maxSum := p.WotsLen1() * (w - 1)
	bits := 0
	for ; maxSum > 0; maxSum >>= 1 {
		bits++
	}
	return (bits-1)/p.LgW + 1
}

// Returns the total number of WOTS+ chains.
func (p *Params) WotsLen() int {
	return p.WotsLen1() + p.WotsLen2()
}

// Returns the size of a WOTS+ signature.
func (p *Params) WotsSignatureSize() int {
	return p.WotsLen() * p.N
}

func (p *Params) xmssSignatureSize() int {
	return p.WotsSignatureSize() + p.HPrime*p.N
}

func (p *Params) forsSignatureSize() int {
	return p.K * (p.A + 1) * p.N
}

func (p *Params) mdBytes() int {
	return (p.K*p.A + 7) / 8
}

func (p *Params) treeIdxBytes() int {
	return (p.H - p.HPrime + 7) / 8
}

func (p *Params) leafIdxBytes() int {
	return (p.HPrime + 7) / 8
}

// Returns the size of a signature.
func (p *Params) SignatureSize() int {
	return p.N + p.forsSignatureSize() + p.D*p.xmssSignatureSize()
}

// Returns the size of a public key: PK.seed || PK.root.
func (p *Params) PublicKeySize() int {
	return 2 * p.N
}

// Returns the size of a private key: SK.seed || SK.prf || PK.seed || PK.root.
func (p *Params) PrivateKeySize() int {
	return 4 * p.N
}
