// Package prehash computes the OID and digest signed by the pre-hash
// variants of ML-DSA and SLH-DSA.
package prehash

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/bwesterb/go-pqc/internal/misc"
	"github.com/bwesterb/go-pqc/sha3"
)

// Error is the error type returned by this package.
type Error = misc.Error

// Function selects the hash applied to the message before signing.
type Function uint8

const (
	SHA2_224 Function = iota + 1
	SHA2_256
	SHA2_384
	SHA2_512
	SHA2_512_224
	SHA2_512_256
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	SHAKE128
	SHAKE256
)

type entry struct {
	name string
	arc  byte // last arc of 2.16.840.1.101.3.4.2
	size int  // digest length in bytes
}

var table = map[Function]entry{
	SHA2_224:     {"SHA2-224", 0x04, 28},
	SHA2_256:     {"SHA2-256", 0x01, 32},
	SHA2_384:     {"SHA2-384", 0x02, 48},
	SHA2_512:     {"SHA2-512", 0x03, 64},
	SHA2_512_224: {"SHA2-512/224", 0x05, 28},
	SHA2_512_256: {"SHA2-512/256", 0x06, 32},
	SHA3_224:     {"SHA3-224", 0x07, 28},
	SHA3_256:     {"SHA3-256", 0x08, 32},
	SHA3_384:     {"SHA3-384", 0x09, 48},
	SHA3_512:     {"SHA3-512", 0x0a, 64},
	SHAKE128:     {"SHAKE-128", 0x0b, 32},
	SHAKE256:     {"SHAKE-256", 0x0c, 64},
}

// DER encoding of the hash algorithm arc, without the final byte.
var oidPrefix = [10]byte{0x06, 0x09, 0x60, 0x86, 0x48, 0x01, 0x65, 0x03, 0x04, 0x02}

// OIDLen is the length of every encoded OID.
const OIDLen = 11

func (fn Function) String() string {
	if e, ok := table[fn]; ok {
		return e.name
	}
	return "unknown"
}

// Valid returns whether fn is a supported function.
func (fn Function) Valid() bool {
	_, ok := table[fn]
	return ok
}

// Size returns the length of the digest, and 0 for unsupported functions.
func (fn Function) Size() int {
	return table[fn].size
}

// OID returns the DER encoded object identifier of fn.
func (fn Function) OID() ([]byte, Error) {
	if !fn.Valid() {
		return nil, misc.Usagef("Unsupported pre-hash function %d", uint8(fn))
	}
	ret := make([]byte, OIDLen)
	copy(ret, oidPrefix[:])
	ret[OIDLen-1] = table[fn].arc
	return ret, nil
}

// FromName returns the function with the given name, such as SHA2-256
// or SHAKE-128.
func FromName(name string) (Function, Error) {
	for fn, e := range table {
		if e.name == name {
			return fn, nil
		}
	}
	return 0, misc.Usagef("Unsupported pre-hash function %s", name)
}

// Names lists the supported functions.
func Names() []string {
	ret := make([]string, 0, len(table))
	for fn := SHA2_224; fn <= SHAKE256; fn++ {
		ret = append(ret, fn.String())
	}
	return ret
}

// Digest returns the OID of fn and the digest of msg.
func Digest(fn Function, msg []byte) (oid, digest []byte, err Error) {
	oid, err = fn.OID()
	if err != nil {
		return nil, nil, err
	}

	switch fn {
	case SHA2_224:
		d := sha256.Sum224(msg)
		digest = d[:]
	case SHA2_256:
		d := sha256.Sum256(msg)
		digest = d[:]
	case SHA2_384:
		d := sha512.Sum384(msg)
		digest = d[:]
	case SHA2_512:
		d := sha512.Sum512(msg)
		digest = d[:]
	case SHA2_512_224:
		d := sha512.Sum512_224(msg)
		digest = d[:]
	case SHA2_512_256:
		d := sha512.Sum512_256(msg)
		digest = d[:]
	case SHA3_224:
		d := sha3.Sum224(msg)
		digest = d[:]
	case SHA3_256:
		d := sha3.Sum256(msg)
		digest = d[:]
	case SHA3_384:
		d := sha3.Sum384(msg)
		digest = d[:]
	case SHA3_512:
		d := sha3.Sum512(msg)
		digest = d[:]
	case SHAKE128:
		digest = make([]byte, 32)
		sha3.ShakeSum128(digest, msg)
	case SHAKE256:
		digest = make([]byte, 64)
		sha3.ShakeSum256(digest, msg)
	}
	return oid, digest, nil
}

// Message builds the pre-hash message 1 || len(ctx) || ctx || OID || digest.
// The caller checks the length of ctx.
func Message(fn Function, msg, ctx []byte) ([]byte, Error) {
	oid, digest, err := Digest(fn, msg)
	if err != nil {
		return nil, err
	}
	ret := make([]byte, 0, 2+len(ctx)+len(oid)+len(digest))
	ret = append(ret, 1, byte(len(ctx)))
	ret = append(ret, ctx...)
	ret = append(ret, oid...)
	return append(ret, digest...), nil
}

// PureMessage builds 0 || len(ctx) || ctx || msg, the message signed by
// the pure variants.
func PureMessage(msg, ctx []byte) []byte {
	ret := make([]byte, 0, 2+len(ctx)+len(msg))
	ret = append(ret, 0, byte(len(ctx)))
	ret = append(ret, ctx...)
	return append(ret, msg...)
}
