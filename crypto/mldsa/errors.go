// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mldsa

import "errors"

// Sentinel errors returned by this package. Callers should compare with
// errors.Is rather than string-matching.
var (
	ErrInvalidSignatureSize = errors.New("mldsa: invalid signature size")
	ErrInvalidPublicKeySize = errors.New("mldsa: invalid public key size")
	ErrInvalidSeedSize      = errors.New("mldsa: invalid seed size")
	ErrSigningFailed        = errors.New("mldsa: signing failed")
	ErrVerificationFailed   = errors.New("mldsa: signature verification failed")
	ErrBatchSizeMismatch    = errors.New("mldsa: public keys, messages and signatures must have equal length")
)
