// Go implementation of the NIST post-quantum signature schemes ML-DSA
// (FIPS 204) and SLH-DSA (FIPS 205).
//
// The schemes live in the mldsa and slhdsa packages.  This package puts
// all of their instances behind a single byte-oriented Scheme interface,
// which is what the pqc command uses.
package pqc

// Contains the scheme registry

import (
	"io"

	"github.com/bwesterb/go-pqc/internal/misc"
	"github.com/bwesterb/go-pqc/mldsa"
	"github.com/bwesterb/go-pqc/prehash"
	"github.com/bwesterb/go-pqc/slhdsa"
)

// A signature scheme instance, such as ML-DSA-65 or SLH-DSA-SHA2-128s.
// Keys and signatures are passed around in their packed form.
type Scheme interface {
	Name() string

	PublicKeySize() int
	PrivateKeySize() int
	SignatureSize() int

	// Size of the seed accepted by DeriveKey.
	SeedSize() int

	// Generates a key pair using randomness from rnd, or from crypto/rand
	// if rnd is nil.
	GenerateKey(rnd io.Reader) (pk, sk []byte, err Error)

	// Derives a key pair from a SeedSize() byte seed.
	DeriveKey(seed []byte) (pk, sk []byte, err Error)

	// Signs msg with the context string ctx.  Hedged signatures use
	// crypto/rand.
	Sign(sk, msg, ctx []byte, deterministic bool) ([]byte, Error)

	// Checks sig.  A false result always comes with an error.
	Verify(pk, msg, ctx, sig []byte) (bool, Error)

	// Like Sign, but signs the digest of msg under ph.
	HashSign(sk, msg, ctx []byte, ph prehash.Function,
		deterministic bool) ([]byte, Error)

	// Checks a signature made by HashSign.
	HashVerify(pk, msg, ctx, sig []byte, ph prehash.Function) (bool, Error)
}

// Entry in the registry of schemes
type regEntry struct {
	name string
	new  func() Scheme
}

var registry []regEntry
var registryNameLut map[string]regEntry

func init() {
	for _, name := range mldsa.ListNames() {
		p := mldsa.ParamsFromName(name)
		registry = append(registry, regEntry{name, func() Scheme {
			return &mldsaScheme{p}
		}})
	}
	for _, name := range slhdsa.ListNames() {
		name := name
		registry = append(registry, regEntry{name, func() Scheme {
			return &slhdsaScheme{slhdsa.NewContextFromName(name)}
		}})
	}

	registryNameLut = make(map[string]regEntry)
	for _, entry := range registry {
		registryNameLut[entry.name] = entry
	}
}

// Returns a new instance of the named scheme, or nil if the name is
// unknown.
func SchemeByName(name string) Scheme {
	entry, ok := registryNameLut[name]
	if !ok {
		return nil
	}
	return entry.new()
}

// List the names of all supported schemes.
func ListNames() (names []string) {
	names = make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return
}

type mldsaScheme struct {
	p *mldsa.Params
}

func (s *mldsaScheme) Name() string        { return s.p.Name }
func (s *mldsaScheme) PublicKeySize() int  { return s.p.PublicKeySize() }
func (s *mldsaScheme) PrivateKeySize() int { return s.p.PrivateKeySize() }
func (s *mldsaScheme) SignatureSize() int  { return s.p.SignatureSize() }
func (s *mldsaScheme) SeedSize() int       { return mldsa.SeedSize }

func (s *mldsaScheme) GenerateKey(rnd io.Reader) ([]byte, []byte, Error) {
	pk, sk, err := s.p.GenerateKey(rnd)
	if err != nil {
		return nil, nil, err
	}
	return pk.Bytes(), sk.Bytes(), nil
}

func (s *mldsaScheme) DeriveKey(seed []byte) ([]byte, []byte, Error) {
	pk, sk, err := s.p.NewKeyFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return pk.Bytes(), sk.Bytes(), nil
}

func (s *mldsaScheme) Sign(skBytes, msg, ctx []byte, deterministic bool) (
	[]byte, Error) {
	sk, err := s.p.NewPrivateKey(skBytes)
	if err != nil {
		return nil, err
	}
	if deterministic {
		return sk.SignDeterministic(msg, ctx)
	}
	return sk.Sign(nil, msg, ctx)
}

func (s *mldsaScheme) Verify(pkBytes, msg, ctx, sig []byte) (bool, Error) {
	pk, err := s.p.NewPublicKey(pkBytes)
	if err != nil {
		return false, err
	}
	return pk.Verify(msg, ctx, sig)
}

func (s *mldsaScheme) HashSign(skBytes, msg, ctx []byte, ph prehash.Function,
	deterministic bool) ([]byte, Error) {
	sk, err := s.p.NewPrivateKey(skBytes)
	if err != nil {
		return nil, err
	}
	if deterministic {
		return sk.HashSignDeterministic(msg, ctx, ph)
	}
	return sk.HashSign(nil, msg, ctx, ph)
}

func (s *mldsaScheme) HashVerify(pkBytes, msg, ctx, sig []byte,
	ph prehash.Function) (bool, Error) {
	pk, err := s.p.NewPublicKey(pkBytes)
	if err != nil {
		return false, err
	}
	return pk.HashVerify(msg, ctx, sig, ph)
}

type slhdsaScheme struct {
	ctx *slhdsa.Context
}

func (s *slhdsaScheme) Name() string        { return s.ctx.Name() }
func (s *slhdsaScheme) PublicKeySize() int  { return s.ctx.PublicKeySize() }
func (s *slhdsaScheme) PrivateKeySize() int { return s.ctx.PrivateKeySize() }
func (s *slhdsaScheme) SignatureSize() int  { return s.ctx.SignatureSize() }
func (s *slhdsaScheme) SeedSize() int       { return 3 * s.ctx.Params().N }

func (s *slhdsaScheme) GenerateKey(rnd io.Reader) ([]byte, []byte, Error) {
	pk, sk, err := s.ctx.GenerateKey(rnd)
	if err != nil {
		return nil, nil, err
	}
	return pk.Bytes(), sk.Bytes(), nil
}

// The seed is SK.seed || SK.prf || PK.seed.
func (s *slhdsaScheme) DeriveKey(seed []byte) ([]byte, []byte, Error) {
	n := s.ctx.Params().N
	if len(seed) != 3*n {
		return nil, nil, misc.Usagef("%s: seed must be %d bytes, not %d",
			s.Name(), 3*n, len(seed))
	}
	pk, sk, err := s.ctx.NewKeyFromSeed(seed[:n], seed[n:2*n], seed[2*n:])
	if err != nil {
		return nil, nil, err
	}
	return pk.Bytes(), sk.Bytes(), nil
}

func (s *slhdsaScheme) Sign(skBytes, msg, ctx []byte, deterministic bool) (
	[]byte, Error) {
	sk, err := s.ctx.NewPrivateKey(skBytes)
	if err != nil {
		return nil, err
	}
	if deterministic {
		return sk.SignDeterministic(msg, ctx)
	}
	return sk.Sign(nil, msg, ctx)
}

func (s *slhdsaScheme) Verify(pkBytes, msg, ctx, sig []byte) (bool, Error) {
	pk, err := s.ctx.NewPublicKey(pkBytes)
	if err != nil {
		return false, err
	}
	return pk.Verify(msg, ctx, sig)
}

func (s *slhdsaScheme) HashSign(skBytes, msg, ctx []byte, ph prehash.Function,
	deterministic bool) ([]byte, Error) {
	sk, err := s.ctx.NewPrivateKey(skBytes)
	if err != nil {
		return nil, err
	}
	if deterministic {
		return sk.HashSignDeterministic(msg, ctx, ph)
	}
	return sk.HashSign(nil, msg, ctx, ph)
}

func (s *slhdsaScheme) HashVerify(pkBytes, msg, ctx, sig []byte,
	ph prehash.Function) (bool, Error) {
	pk, err := s.ctx.NewPublicKey(pkBytes)
	if err != nil {
		return false, err
	}
	return pk.HashVerify(msg, ctx, sig, ph)
}
