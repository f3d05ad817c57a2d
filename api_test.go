package pqc

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"

	"github.com/bwesterb/go-pqc/prehash"
)

func TestListNames(t *testing.T) {
	names := ListNames()
	require.Len(t, names, 15)
	require.Equal(t, "ML-DSA-44", names[0])
	for _, name := range names {
		s := SchemeByName(name)
		require.NotNil(t, s, name)
		require.Equal(t, name, s.Name())
	}
	require.Nil(t, SchemeByName("ML-DSA-128"))

	// Every call gives a fresh instance.
	require.NotSame(t, SchemeByName("SLH-DSA-SHA2-128f"),
		SchemeByName("SLH-DSA-SHA2-128f"))
}

func TestSizes(t *testing.T) {
	for _, tc := range []struct {
		name            string
		pk, sk, sig, sd int
	}{
		{"ML-DSA-44", 1312, 2560, 2420, 32},
		{"ML-DSA-87", 2592, 4896, 4627, 32},
		{"SLH-DSA-SHA2-128s", 32, 64, 7856, 48},
		{"SLH-DSA-SHAKE-192f", 48, 96, 35664, 72},
		{"SLH-DSA-SHAKE-256f", 64, 128, 49856, 96},
	} {
		s := SchemeByName(tc.name)
		require.Equal(t, tc.pk, s.PublicKeySize(), tc.name)
		require.Equal(t, tc.sk, s.PrivateKeySize(), tc.name)
		require.Equal(t, tc.sig, s.SignatureSize(), tc.name)
		require.Equal(t, tc.sd, s.SeedSize(), tc.name)
	}
}

func TestSignVerify(t *testing.T) {
	SetLogger(t)
	defer SetLogger(nil)

	for _, name := range []string{"ML-DSA-65", "SLH-DSA-SHAKE-128f",
		"SLH-DSA-SHA2-192f"} {
		s := SchemeByName(name)
		pk, sk, err := s.GenerateKey(nil)
		require.Nil(t, err)

		msg := []byte("test message")
		sig, err := s.Sign(sk, msg, nil, false)
		require.Nil(t, err)
		ok, err := s.Verify(pk, msg, nil, sig)
		require.True(t, ok)
		require.Nil(t, err)

		ok, err = s.Verify(pk, msg, []byte("ctx"), sig)
		require.False(t, ok)
		require.Equal(t, ErrInvalidSignature, err)

		sig1, err := s.Sign(sk, msg, nil, true)
		require.Nil(t, err)
		sig2, err := s.Sign(sk, msg, nil, true)
		require.Nil(t, err)
		require.Equal(t, sig1, sig2, name)

		sig, err = s.HashSign(sk, msg, nil, prehash.SHA3_256, false)
		require.Nil(t, err)
		ok, _ = s.HashVerify(pk, msg, nil, sig, prehash.SHA3_256)
		require.True(t, ok, name)
	}
}

func TestDeriveKey(t *testing.T) {
	s := SchemeByName("SLH-DSA-SHAKE-128f")
	seed := make([]byte, s.SeedSize())
	for i := range seed {
		seed[i] = byte(i)
	}
	pk, _, err := s.DeriveKey(seed)
	require.Nil(t, err)
	require.Equal(t, "202122232425262728292a2b2c2d2e2f"+
		"a90e4715b9a925c332801767fd786371", hex.EncodeToString(pk))

	_, _, err = s.DeriveKey(seed[1:])
	require.True(t, err.Usage())
	_, _, err = SchemeByName("ML-DSA-44").DeriveKey(seed)
	require.True(t, err.Usage())
}

func TestUsageErrors(t *testing.T) {
	for _, name := range []string{"ML-DSA-44", "SLH-DSA-SHA2-128f"} {
		s := SchemeByName(name)
		_, err := s.Sign(make([]byte, 3), nil, nil, true)
		require.True(t, err.Usage(), name)
		_, err = s.Verify(make([]byte, 3), nil, nil, nil)
		require.True(t, err.Usage(), name)

		pk, sk, _ := s.GenerateKey(nil)
		_, err = s.Sign(sk, nil, make([]byte, 256), true)
		require.True(t, err.Usage(), name)
		_, err = s.HashSign(sk, nil, nil, prehash.Function(99), true)
		require.True(t, err.Usage(), name)
		ok, err := s.Verify(pk, nil, nil, []byte{1, 2, 3})
		require.False(t, ok)
		require.False(t, err.Usage(), name)
	}
}

func TestSelfTest(t *testing.T) {
	SetLogger(t)
	defer SetLogger(nil)

	names := ListNames()
	if testing.Short() {
		names = []string{"ML-DSA-44", "SLH-DSA-SHAKE-128f", "SLH-DSA-SHA2-256f"}
	}
	require.NoError(t, SelfTest(names...))

	err := SelfTest("ML-DSA-44", "nope", "nope either")
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	require.True(t, strings.Contains(err.Error(), "Unknown scheme nope"))
}
