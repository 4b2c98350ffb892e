// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mldsa wraps the ML-DSA-65 (FIPS 204) post-quantum signature
// scheme that BTPC uses in place of ECDSA. All of the scheme-specific
// API surface lives in circl_scheme.go; everything else in this package
// is scheme-agnostic bookkeeping around fixed-size byte arrays so a
// future change of backend only touches one file.
package mldsa

import "fmt"

// Algorithm is the exact, case-sensitive identifier this package stamps
// on every signature it produces. Consensus code must reject any other
// string here, since a different spelling signals a different (and here
// unsupported) signature algorithm.
const Algorithm = "ML-DSA-65"

// Fixed sizes for ML-DSA-65, per FIPS 204. These are asserted against
// the backing scheme's own reported sizes in init() so a mismatched
// circl release fails fast at program start rather than silently
// truncating keys or signatures.
const (
	SeedSize       = 32
	PublicKeySize  = 1952
	PrivateKeySize = 4032
	SignatureSize  = 3309
)

// PublicKey is an ML-DSA-65 public key.
type PublicKey struct {
	bytes [PublicKeySize]byte
}

// PrivateKey is an ML-DSA-65 private key. When seed is non-nil the key
// was derived from (and can be reconstructed from) that 32-byte seed;
// a key loaded from raw expanded key bytes alone has seed == nil and can
// still sign and verify, but callers that need to persist and later
// regenerate the identical key must keep the seed around separately (see
// KeyEntry).
type PrivateKey struct {
	bytes [PrivateKeySize]byte
	seed  *[SeedSize]byte
}

// Signature is an ML-DSA-65 signature.
type Signature struct {
	bytes [SignatureSize]byte
}

// Bytes returns a copy of the public key's raw encoding.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk.bytes[:])
	return out
}

// Bytes returns a copy of the private key's raw expanded
// encoding. This is NOT the seed; use Seed for the compact form.
func (sk *PrivateKey) Bytes() []byte {
	out := make([]byte, PrivateKeySize)
	copy(out, sk.bytes[:])
	return out
}

// Seed returns the 32-byte seed this key was derived from, and true, if
// the key retains one. Keys loaded from expanded bytes only (no seed)
// return (nil, false); such a key can still Sign, since signing only
// needs the expanded private key, but cannot be re-derived from a
// shorter secret later.
func (sk *PrivateKey) Seed() ([]byte, bool) {
	if sk.seed == nil {
		return nil, false
	}
	out := make([]byte, SeedSize)
	copy(out, sk.seed[:])
	return out, true
}

// Public returns the public key matching sk.
func (sk *PrivateKey) Public() *PublicKey {
	pub := derivePublic(sk)
	return pub
}

// Bytes returns a copy of the signature's raw encoding.
func (s *Signature) Bytes() []byte {
	out := make([]byte, SignatureSize)
	copy(out, s.bytes[:])
	return out
}

// SignatureFromBytes parses a raw ML-DSA-65 signature. It returns
// ErrInvalidSignatureSize if b is not exactly SignatureSize bytes.
func SignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf("%w: got %d want %d", ErrInvalidSignatureSize, len(b), SignatureSize)
	}
	sig := new(Signature)
	copy(sig.bytes[:], b)
	return sig, nil
}

// PublicKeyFromBytes parses a raw ML-DSA-65 public key. It returns
// ErrInvalidPublicKeySize if b is not exactly PublicKeySize bytes.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("%w: got %d want %d", ErrInvalidPublicKeySize, len(b), PublicKeySize)
	}
	pk := new(PublicKey)
	copy(pk.bytes[:], b)
	return pk, nil
}

// PrivateKeyFromBytes parses a raw expanded ML-DSA-65 private key with
// no seed attached. The resulting key can Sign and derive its Public
// key, but Seed will report false: it cannot be regenerated from a
// shorter secret later. This is the path a legacy or imported key takes.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("mldsa: invalid private key size: got %d want %d", len(b), PrivateKeySize)
	}
	sk := new(PrivateKey)
	copy(sk.bytes[:], b)
	return sk, nil
}

// Algorithm returns the fixed algorithm identifier for this signature
// scheme, matching Algorithm. It exists so callers comparing a wire
// value against the locally supported algorithm don't need a separate
// package-level constant.
func (s *Signature) Algorithm() string {
	return Algorithm
}
