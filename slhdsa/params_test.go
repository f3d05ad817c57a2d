package slhdsa

import (
	"testing"
)

func TestSizes(t *testing.T) {
	for _, tc := range []struct {
		name    string
		pk, sig int
	}{
		{"SLH-DSA-SHA2-128s", 32, 7856},
		{"SLH-DSA-SHAKE-128f", 32, 17088},
		{"SLH-DSA-SHA2-192s", 48, 16224},
		{"SLH-DSA-SHAKE-192f", 48, 35664},
		{"SLH-DSA-SHAKE-256s", 64, 29792},
		{"SLH-DSA-SHA2-256f", 64, 49856},
	} {
		params := ParamsFromName(tc.name)
		if params == nil {
			t.Fatalf("ParamsFromName(%s) is nil", tc.name)
		}
		if params.PublicKeySize() != tc.pk {
			t.Errorf("%s: public key size %d", tc.name, params.PublicKeySize())
		}
		if params.PrivateKeySize() != 2*tc.pk {
			t.Errorf("%s: private key size %d", tc.name, params.PrivateKeySize())
		}
		if params.SignatureSize() != tc.sig {
			t.Errorf("%s: signature size %d", tc.name, params.SignatureSize())
		}

		ctx := NewContextFromName(tc.name)
		if ctx.PublicKeySize() != tc.pk || ctx.PrivateKeySize() != 2*tc.pk ||
			ctx.SignatureSize() != tc.sig {
			t.Errorf("%s: context sizes differ from its parameters", tc.name)
		}
	}
}

func TestNamedParamsAreValid(t *testing.T) {
	names := ListNames()
	if len(names) != 12 {
		t.Fatalf("%d named instances", len(names))
	}
	for _, name := range names {
		params := ParamsFromName(name)
		if err := params.validate(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if params.WotsLen2() != 3 {
			t.Fatalf("%s: len2 = %d", name, params.WotsLen2())
		}
		ctx := NewContextFromName(name)
		if ctx == nil || ctx.Name() != name {
			t.Fatalf("NewContextFromName(%s) failed", name)
		}
	}
	if ParamsFromName("SLH-DSA-MD5-128s") != nil {
		t.Fatal("ParamsFromName returned an unknown instance")
	}
	if NewContextFromName("SLH-DSA-MD5-128s") != nil {
		t.Fatal("NewContextFromName returned an unknown instance")
	}
}

func TestInvalidParams(t *testing.T) {
	base := *ParamsFromName("SLH-DSA-SHAKE-128f")
	for _, mod := range []func(p *Params){
		func(p *Params) { p.N = 20 },
		func(p *Params) { p.LgW = 8 },
		func(p *Params) { p.D = 2 },
		func(p *Params) { p.M = 33 },
		func(p *Params) { p.A = 0 },
	} {
		params := base
		mod(&params)
		if _, err := NewContext(params, NewShakeHasher(params.N)); err == nil || !err.Usage() {
			t.Fatalf("NewContext(%+v) did not fail with a usage error", params)
		}
	}
	if _, err := NewContext(base, nil); err == nil {
		t.Fatal("NewContext accepted a nil Hasher")
	}
}
