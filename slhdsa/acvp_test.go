package slhdsa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bwesterb/go-pqc/internal/acvp"
	"github.com/bwesterb/go-pqc/prehash"
)

// The vectors are not checked in.  Copy gen-val/json-files/SLH-DSA-*-FIPS205
// from the ACVP-Server repository into testdata/ to run these.

func loadOrSkip(t *testing.T, dir string, prompt, results interface{}) {
	if err := acvp.Load("testdata/"+dir, prompt, results); err != nil {
		t.Skipf("Could not read test data: %v", err)
	}
}

func acvpContext(t *testing.T, name string) *Context {
	ctx := NewContextFromName(name)
	if ctx == nil {
		t.Fatalf("Unknown parameter set %s", name)
	}
	return ctx
}

func TestACVPKeyGen(t *testing.T) {
	var prompt struct {
		TestGroups []struct {
			TgID         int    `json:"tgId"`
			ParameterSet string `json:"parameterSet"`
			Tests        []struct {
				TcID   int           `json:"tcId"`
				SkSeed acvp.HexBytes `json:"skSeed"`
				SkPrf  acvp.HexBytes `json:"skPrf"`
				PkSeed acvp.HexBytes `json:"pkSeed"`
			} `json:"tests"`
		} `json:"testGroups"`
	}
	var results struct {
		TestGroups []struct {
			TgID  int `json:"tgId"`
			Tests []struct {
				TcID int           `json:"tcId"`
				Pk   acvp.HexBytes `json:"pk"`
				Sk   acvp.HexBytes `json:"sk"`
			} `json:"tests"`
		} `json:"testGroups"`
	}
	loadOrSkip(t, "SLH-DSA-keyGen-FIPS205", &prompt, &results)

	type keys struct{ pk, sk []byte }
	expected := make(map[acvp.Key]keys)
	for _, g := range results.TestGroups {
		for _, tc := range g.Tests {
			expected[acvp.Key{TgID: g.TgID, TcID: tc.TcID}] = keys{tc.Pk, tc.Sk}
		}
	}

	for _, g := range prompt.TestGroups {
		ctx := acvpContext(t, g.ParameterSet)
		if testing.Short() && !strings.HasSuffix(g.ParameterSet, "f") {
			continue
		}
		for _, tc := range g.Tests {
			want := expected[acvp.Key{TgID: g.TgID, TcID: tc.TcID}]
			pk, sk, err := ctx.NewKeyFromSeed(tc.SkSeed, tc.SkPrf, tc.PkSeed)
			if err != nil {
				t.Fatalf("tcId=%d: %v", tc.TcID, err)
			}
			if !bytes.Equal(pk.Bytes(), want.pk) {
				t.Errorf("tcId=%d: public key mismatch", tc.TcID)
			}
			if !bytes.Equal(sk.Bytes(), want.sk) {
				t.Errorf("tcId=%d: private key mismatch", tc.TcID)
			}
		}
	}
}

// Formats the message the way the signature interface of the test group
// asks for.
func acvpMessage(t *testing.T, iface, preHash string,
	msg, context []byte, hashAlg string) []byte {
	if iface == "internal" {
		return msg
	}
	if preHash == "preHash" {
		fn, err := prehash.FromName(hashAlg)
		if err != nil {
			t.Fatal(err)
		}
		mPrime, err := prehash.Message(fn, msg, context)
		if err != nil {
			t.Fatal(err)
		}
		return mPrime
	}
	return prehash.PureMessage(msg, context)
}

func TestACVPSigGen(t *testing.T) {
	var prompt struct {
		TestGroups []struct {
			TgID               int    `json:"tgId"`
			ParameterSet       string `json:"parameterSet"`
			Deterministic      bool   `json:"deterministic"`
			SignatureInterface string `json:"signatureInterface"`
			PreHash            string `json:"preHash"`
			Tests              []struct {
				TcID                 int           `json:"tcId"`
				Sk                   acvp.HexBytes `json:"sk"`
				Message              acvp.HexBytes `json:"message"`
				AdditionalRandomness acvp.HexBytes `json:"additionalRandomness"`
				Context              acvp.HexBytes `json:"context"`
				HashAlg              string        `json:"hashAlg"`
			} `json:"tests"`
		} `json:"testGroups"`
	}
	var results struct {
		TestGroups []struct {
			TgID  int `json:"tgId"`
			Tests []struct {
				TcID      int           `json:"tcId"`
				Signature acvp.HexBytes `json:"signature"`
			} `json:"tests"`
		} `json:"testGroups"`
	}
	loadOrSkip(t, "SLH-DSA-sigGen-FIPS205", &prompt, &results)

	expected := make(map[acvp.Key][]byte)
	for _, g := range results.TestGroups {
		for _, tc := range g.Tests {
			expected[acvp.Key{TgID: g.TgID, TcID: tc.TcID}] = tc.Signature
		}
	}

	for _, g := range prompt.TestGroups {
		ctx := acvpContext(t, g.ParameterSet)
		if testing.Short() && !strings.HasSuffix(g.ParameterSet, "f") {
			continue
		}
		for _, tc := range g.Tests {
			mPrime := acvpMessage(t, g.SignatureInterface, g.PreHash,
				tc.Message, tc.Context, tc.HashAlg)
			sk, err := ctx.NewPrivateKey(tc.Sk)
			if err != nil {
				t.Fatalf("tcId=%d: %v", tc.TcID, err)
			}
			var optRand []byte
			if !g.Deterministic {
				optRand = tc.AdditionalRandomness
			}
			sig, err := sk.SignInternal(mPrime, optRand)
			if err != nil {
				t.Fatalf("tcId=%d: %v", tc.TcID, err)
			}
			if !bytes.Equal(sig, expected[acvp.Key{TgID: g.TgID, TcID: tc.TcID}]) {
				t.Errorf("tcId=%d: signature mismatch", tc.TcID)
			}
		}
	}
}

func TestACVPSigVer(t *testing.T) {
	var prompt struct {
		TestGroups []struct {
			TgID               int    `json:"tgId"`
			ParameterSet       string `json:"parameterSet"`
			SignatureInterface string `json:"signatureInterface"`
			PreHash            string `json:"preHash"`
			Tests              []struct {
				TcID      int           `json:"tcId"`
				Pk        acvp.HexBytes `json:"pk"`
				Message   acvp.HexBytes `json:"message"`
				Signature acvp.HexBytes `json:"signature"`
				Context   acvp.HexBytes `json:"context"`
				HashAlg   string        `json:"hashAlg"`
			} `json:"tests"`
		} `json:"testGroups"`
	}
	var results struct {
		TestGroups []struct {
			TgID  int `json:"tgId"`
			Tests []struct {
				TcID       int  `json:"tcId"`
				TestPassed bool `json:"testPassed"`
			} `json:"tests"`
		} `json:"testGroups"`
	}
	loadOrSkip(t, "SLH-DSA-sigVer-FIPS205", &prompt, &results)

	expected := make(map[acvp.Key]bool)
	for _, g := range results.TestGroups {
		for _, tc := range g.Tests {
			expected[acvp.Key{TgID: g.TgID, TcID: tc.TcID}] = tc.TestPassed
		}
	}

	for _, g := range prompt.TestGroups {
		ctx := acvpContext(t, g.ParameterSet)
		for _, tc := range g.Tests {
			mPrime := acvpMessage(t, g.SignatureInterface, g.PreHash,
				tc.Message, tc.Context, tc.HashAlg)
			pk, err := ctx.NewPublicKey(tc.Pk)
			if err != nil {
				t.Fatalf("tcId=%d: %v", tc.TcID, err)
			}
			got, _ := pk.VerifyInternal(mPrime, tc.Signature)
			if got != expected[acvp.Key{TgID: g.TgID, TcID: tc.TcID}] {
				t.Errorf("tcId=%d: got %v", tc.TcID, got)
			}
		}
	}
}
