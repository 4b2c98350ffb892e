// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mldsa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := GenerateKey()
	require.NoError(t, err)

	msg := []byte("btpc transaction preimage")
	sig, err := Sign(priv, msg)
	require.NoError(t, err)

	require.True(t, Verify(pub, msg, sig))
	require.False(t, Verify(pub, []byte("different message"), sig))
}

// TestSignatureDeterminism mirrors the reference implementation's
// guarantee that signing the same message twice with a key derived from
// the same seed produces byte-identical signatures.
func TestSignatureDeterminism(t *testing.T) {
	var seed [SeedSize]byte
	for i := range seed {
		seed[i] = byte(i)
	}

	_, priv1, err := FromSeed(seed[:])
	require.NoError(t, err)
	_, priv2, err := FromSeed(seed[:])
	require.NoError(t, err)

	msg := []byte("deterministic signing")
	sig1, err := Sign(priv1, msg)
	require.NoError(t, err)
	sig2, err := Sign(priv2, msg)
	require.NoError(t, err)

	require.Equal(t, sig1.Bytes(), sig2.Bytes())
}

func TestFromSeedRejectsWrongLength(t *testing.T) {
	_, _, err := FromSeed(make([]byte, 10))
	require.ErrorIs(t, err, ErrInvalidSeedSize)
}

// TestBatchVerification mirrors the reference implementation: five
// keypairs and messages verify correctly except one deliberately
// mismatched signature.
func TestBatchVerification(t *testing.T) {
	const n = 5
	pubs := make([]*PublicKey, n)
	msgs := make([][]byte, n)
	sigs := make([]*Signature, n)

	for i := 0; i < n; i++ {
		pub, priv, err := GenerateKey()
		require.NoError(t, err)
		msg := []byte{byte(i), byte(i), byte(i)}
		sig, err := Sign(priv, msg)
		require.NoError(t, err)

		pubs[i] = pub
		msgs[i] = msg
		sigs[i] = sig
	}

	// Swap in a signature that doesn't belong to index 2.
	sigs[2] = sigs[3]

	results, err := BatchVerify(pubs, msgs, sigs)
	require.NoError(t, err)
	for i, ok := range results {
		if i == 2 {
			require.False(t, ok)
			continue
		}
		require.True(t, ok)
	}
}

func TestBatchVerifyRejectsLengthMismatch(t *testing.T) {
	_, err := BatchVerify([]*PublicKey{nil}, nil, nil)
	require.ErrorIs(t, err, ErrBatchSizeMismatch)
}

func TestPrivateKeyWithoutSeedCanSignButNotReveal(t *testing.T) {
	_, priv, err := GenerateKey()
	require.NoError(t, err)

	bare, err := PrivateKeyFromBytes(priv.Bytes())
	require.NoError(t, err)

	_, hasSeed := bare.Seed()
	require.False(t, hasSeed)

	msg := []byte("signed without seed on hand")
	sig, err := Sign(bare, msg)
	require.NoError(t, err)
	require.True(t, Verify(bare.Public(), msg, sig))
}

func TestKeyEntryPublicOnlyCannotSign(t *testing.T) {
	pub, _, err := GenerateKey()
	require.NoError(t, err)

	entry := NewPublicOnlyKeyEntry(pub)
	require.False(t, entry.CanSign())

	_, err = entry.Sign([]byte("x"))
	require.ErrorIs(t, err, ErrSigningFailed)
}

func TestSignatureFromBytesRejectsWrongSize(t *testing.T) {
	_, err := SignatureFromBytes(make([]byte, 10))
	require.ErrorIs(t, err, ErrInvalidSignatureSize)
}

func TestAlgorithmIdentifier(t *testing.T) {
	require.Equal(t, "ML-DSA-65", Algorithm)
}
