package mldsa

import (
	"github.com/bwesterb/go-pqc/internal/poly"
)

// Params holds the parameters of an ML-DSA instance.
type Params struct {
	Name       string
	K, L       int   // dimensions of the matrix A
	Eta        int   // bound on the coefficients of s1 and s2
	Tau        int   // number of ±1 coefficients of the challenge
	Beta       int32 // tau * eta
	Gamma1Bits int   // gamma1 = 2^Gamma1Bits bounds the masking vector y
	Gamma2     int32 // low-order rounding range
	Omega      int   // maximum number of ones in the hint
	Lambda     int   // collision strength of the challenge hash in bits
}

// The parameter sets of FIPS 204.
var (
	MLDSA44 = &Params{
		Name: "ML-DSA-44", K: 4, L: 4, Eta: 2, Tau: 39, Beta: 78,
		Gamma1Bits: 17, Gamma2: (poly.Q - 1) / 88, Omega: 80, Lambda: 128,
	}
	MLDSA65 = &Params{
		Name: "ML-DSA-65", K: 6, L: 5, Eta: 4, Tau: 49, Beta: 196,
		Gamma1Bits: 19, Gamma2: (poly.Q - 1) / 32, Omega: 55, Lambda: 192,
	}
	MLDSA87 = &Params{
		Name: "ML-DSA-87", K: 8, L: 7, Eta: 2, Tau: 60, Beta: 120,
		Gamma1Bits: 19, Gamma2: (poly.Q - 1) / 32, Omega: 75, Lambda: 256,
	}
)

// Registry of named ML-DSA instances
var registry = []*Params{MLDSA44, MLDSA65, MLDSA87}

var registryNameLut map[string]*Params

func init() {
	registryNameLut = make(map[string]*Params)
	for _, p := range registry {
		registryNameLut[p.Name] = p
	}
}

// ParamsFromName returns the named instance, or nil if there is none.
func ParamsFromName(name string) *Params {
	return registryNameLut[name]
}

// ListNames lists the named instances.
func ListNames() (names []string) {
	names = make([]string, len(registry))
	for i, p := range registry {
		names[i] = p.Name
	}
	return
}

const (
	// SeedSize is the size of the seed from which a key pair is derived.
	SeedSize = 32

	// RndSize is the size of the randomness used by hedged signing.
	RndSize = 32

	trSize  = 64
	muSize  = 64
	crhSize = 64
)

func (p *Params) gamma1() int32 {
	return 1 << uint(p.Gamma1Bits)
}

func (p *Params) ctildeSize() int {
	return p.Lambda / 4
}

func (p *Params) etaBytes() int {
	return poly.EtaPackedBytes(p.Eta)
}

func (p *Params) zBytes() int {
	return poly.ZPackedBytes(p.Gamma1Bits)
}

func (p *Params) w1Bytes() int {
	return poly.W1PackedBytes(p.Gamma2)
}

// PublicKeySize returns the size of a packed public key.
func (p *Params) PublicKeySize() int {
	return 32 + p.K*poly.T1PackedBytes
}

// PrivateKeySize returns the size of a packed private key.
func (p *Params) PrivateKeySize() int {
	return 2*32 + trSize + (p.K+p.L)*p.etaBytes() + p.K*poly.T0PackedBytes
}

// SignatureSize returns the size of a signature.
func (p *Params) SignatureSize() int {
	return p.ctildeSize() + p.L*p.zBytes() + poly.HintPackedBytes(p.K, p.Omega)
}
