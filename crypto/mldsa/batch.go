// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mldsa

// BatchVerify checks each (publicKeys[i], messages[i], signatures[i])
// triple independently and returns the per-item results in order. It is
// a convenience for verifying many unrelated signatures together, not a
// cryptographic batch-verification optimization: the cost is the same
// as calling Verify len(signatures) times. Every slice must have the
// same length, or ErrBatchSizeMismatch is returned.
func BatchVerify(publicKeys []*PublicKey, messages [][]byte, signatures []*Signature) ([]bool, error) {
	if len(publicKeys) != len(messages) || len(messages) != len(signatures) {
		return nil, ErrBatchSizeMismatch
	}

	results := make([]bool, len(signatures))
	for i := range signatures {
		results[i] = Verify(publicKeys[i], messages[i], signatures[i])
	}
	return results, nil
}
