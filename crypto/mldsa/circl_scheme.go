// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mldsa

import (
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// This file is the single point of contact with the backing ML-DSA-65
// implementation. If a future circl release changes this package's
// surface, only the functions below need updating; nothing else in
// this tree imports circl directly.

func init() {
	if mldsa65.PublicKeySize != PublicKeySize {
		panic(fmt.Sprintf("mldsa: circl public key size %d does not match expected %d",
			mldsa65.PublicKeySize, PublicKeySize))
	}
	if mldsa65.PrivateKeySize != PrivateKeySize {
		panic(fmt.Sprintf("mldsa: circl private key size %d does not match expected %d",
			mldsa65.PrivateKeySize, PrivateKeySize))
	}
	if mldsa65.SignatureSize != SignatureSize {
		panic(fmt.Sprintf("mldsa: circl signature size %d does not match expected %d",
			mldsa65.SignatureSize, SignatureSize))
	}
	if mldsa65.SeedSize != SeedSize {
		panic(fmt.Sprintf("mldsa: circl seed size %d does not match expected %d",
			mldsa65.SeedSize, SeedSize))
	}
}

// GenerateKey creates a fresh random keypair, retaining its seed so the
// private key can later be regenerated from that seed alone.
func GenerateKey() (*PublicKey, *PrivateKey, error) {
	var seed [SeedSize]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, nil, fmt.Errorf("mldsa: reading random seed: %w", err)
	}
	return FromSeed(seed[:])
}

// FromSeed deterministically derives a keypair from a 32-byte seed. The
// same seed always yields the same keypair and, combined with Sign's
// determinism, the same signature over the same message.
func FromSeed(seed []byte) (*PublicKey, *PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, nil, fmt.Errorf("%w: got %d want %d", ErrInvalidSeedSize, len(seed), SeedSize)
	}

	var seedArr [SeedSize]byte
	copy(seedArr[:], seed)

	circlPub, circlPriv := mldsa65.NewKeyFromSeed(&seedArr)

	pub := new(PublicKey)
	var pubBytes [PublicKeySize]byte
	circlPub.Pack(&pubBytes)
	pub.bytes = pubBytes

	priv := new(PrivateKey)
	var privBytes [PrivateKeySize]byte
	circlPriv.Pack(&privBytes)
	priv.bytes = privBytes
	var storedSeed [SeedSize]byte
	copy(storedSeed[:], seed)
	priv.seed = &storedSeed

	return pub, priv, nil
}

// Sign deterministically signs message with sk. Signing the same
// message with the same key always produces the identical signature
// bytes; there is no random nonce in ML-DSA-65 signing.
func Sign(sk *PrivateKey, message []byte) (*Signature, error) {
	var circlPriv mldsa65.PrivateKey
	if err := circlPriv.UnmarshalBinary(sk.bytes[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	sigBytes := make([]byte, SignatureSize)
	mldsa65.SignTo(&circlPriv, message, sigBytes)

	sig := new(Signature)
	copy(sig.bytes[:], sigBytes)
	return sig, nil
}

// Verify reports whether sig is a valid ML-DSA-65 signature over message
// under pk. It never panics on malformed input; any parsing failure is
// treated as a failed verification.
func Verify(pk *PublicKey, message []byte, sig *Signature) bool {
	var circlPub mldsa65.PublicKey
	if err := circlPub.UnmarshalBinary(pk.bytes[:]); err != nil {
		return false
	}
	return mldsa65.Verify(&circlPub, message, sig.bytes[:])
}

// derivePublic recovers the public key matching sk by re-deriving it
// from the retained seed when available, or by unpacking the expanded
// private key's embedded public key material otherwise.
func derivePublic(sk *PrivateKey) *PublicKey {
	if sk.seed != nil {
		pub, _, err := FromSeed(sk.seed[:])
		if err == nil {
			return pub
		}
	}

	var circlPriv mldsa65.PrivateKey
	if err := circlPriv.UnmarshalBinary(sk.bytes[:]); err != nil {
		return nil
	}
	circlPub := circlPriv.Public().(*mldsa65.PublicKey)

	pub := new(PublicKey)
	var pubBytes [PublicKeySize]byte
	circlPub.Pack(&pubBytes)
	pub.bytes = pubBytes
	return pub
}
