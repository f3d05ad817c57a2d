package pqc

import (
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/bwesterb/go-pqc/internal/misc"
	"github.com/bwesterb/go-pqc/prehash"
)

// Derives a key pair for each of the named schemes (all of them if names
// is empty), signs and verifies a message and checks that a tampered
// signature is rejected.  Failures of all schemes are collected into a
// *multierror.Error.
func SelfTest(names ...string) error {
	if len(names) == 0 {
		names = ListNames()
	}

	var mux sync.Mutex
	var result *multierror.Error
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, name := range names {
		name := name
		g.Go(func() error {
			err := selfTest(name)
			if err != nil {
				misc.Log.Logf("selftest %s: %v", name, err)
				mux.Lock()
				result = multierror.Append(result, err)
				mux.Unlock()
				return nil
			}
			misc.Log.Logf("selftest %s: ok", name)
			return nil
		})
	}
	g.Wait()
	return result.ErrorOrNil()
}

func selfTest(name string) Error {
	s := SchemeByName(name)
	if s == nil {
		return misc.Usagef("Unknown scheme %s", name)
	}

	seed := make([]byte, s.SeedSize())
	for i := range seed {
		seed[i] = byte(i)
	}
	pk, sk, err := s.DeriveKey(seed)
	if err != nil {
		return misc.WrapErrorf(err, "%s: key derivation failed", name)
	}
	if len(pk) != s.PublicKeySize() || len(sk) != s.PrivateKeySize() {
		return misc.Errorf("%s: keys have the wrong size", name)
	}

	msg := []byte("self test")
	ctx := []byte(name)
	sig, err := s.Sign(sk, msg, ctx, false)
	if err != nil {
		return misc.WrapErrorf(err, "%s: signing failed", name)
	}
	if len(sig) != s.SignatureSize() {
		return misc.Errorf("%s: signature has the wrong size", name)
	}
	if _, err := s.Verify(pk, msg, ctx, sig); err != nil {
		return misc.WrapErrorf(err, "%s: signature did not verify", name)
	}

	sig[len(sig)/2] ^= 1
	if ok, _ := s.Verify(pk, msg, ctx, sig); ok {
		return misc.Errorf("%s: tampered signature verified", name)
	}

	sig, err = s.HashSign(sk, msg, ctx, prehash.SHA2_256, true)
	if err != nil {
		return misc.WrapErrorf(err, "%s: pre-hash signing failed", name)
	}
	if _, err := s.HashVerify(pk, msg, ctx, sig, prehash.SHA2_256); err != nil {
		return misc.WrapErrorf(err, "%s: pre-hash signature did not verify",
			name)
	}
	return nil
}
