// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mldsa

import "fmt"

// KeyEntry is what a key store persists for one identity. It mirrors
// the distinction the reference wallet format draws between a
// full entry, which retains the seed and can sign, and a legacy entry
// that only has public material and can verify or derive an address.
// A KeyEntry never silently downgrades: a caller that loaded a seeded
// entry keeps the ability to sign for as long as the entry lives.
type KeyEntry struct {
	Public  *PublicKey
	private *PrivateKey // nil for a public-only entry
}

// NewKeyEntry wraps a freshly generated or loaded private key.
func NewKeyEntry(sk *PrivateKey) *KeyEntry {
	return &KeyEntry{Public: sk.Public(), private: sk}
}

// NewPublicOnlyKeyEntry wraps a public key with no signing capability,
// matching a legacy store entry that was never given a seed.
func NewPublicOnlyKeyEntry(pk *PublicKey) *KeyEntry {
	return &KeyEntry{Public: pk}
}

// CanSign reports whether this entry retains a private key together
// with the seed it was derived from. A private key without its seed
// does not make the entry able to sign.
func (e *KeyEntry) CanSign() bool {
	if e.private == nil {
		return false
	}
	_, hasSeed := e.private.Seed()
	return hasSeed
}

// Sign signs message if CanSign reports true, otherwise returns
// ErrSigningFailed wrapping a description of the missing key material.
func (e *KeyEntry) Sign(message []byte) (*Signature, error) {
	if !e.CanSign() {
		return nil, fmt.Errorf("%w: key entry has no seeded private key", ErrSigningFailed)
	}
	return Sign(e.private, message)
}
