// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import "crypto/subtle"

// MeetsTarget reports whether hash, read as a big-endian 64-byte integer,
// is less than or equal to target. The comparison runs in constant time:
// every byte position is inspected exactly once regardless of where the
// hashes first differ, so proof-of-work validation never leaks timing
// information about how close a candidate hash came to the target.
func (hash Hash) MeetsTarget(target Hash) bool {
	// lessOrEqual starts as "equal so far" (1) and foundDiff starts as
	// "no difference observed yet" (0). Every byte updates both flags
	// unconditionally; only after all 64 bytes have been folded in do we
	// read the accumulated result.
	lessOrEqual := 1
	foundDiff := 0

	for i := 0; i < HashSize; i++ {
		a := int(hash[i])
		b := int(target[i])

		eqHere := subtle.ConstantTimeByteEq(uint8(a), uint8(b))
		diffHere := eqHere ^ 1
		lessHere := subtle.ConstantTimeLessOrEq(a, b) & diffHere

		// Only the first differing byte (scanning from the most
		// significant end) should determine the outcome. We select
		// the running result on first difference and otherwise keep
		// the (currently "equal") running result.
		takeThis := diffHere &^ foundDiff
		lessOrEqual = selectInt(takeThis, lessHere, lessOrEqual)
		foundDiff = foundDiff | diffHere
	}

	// If no difference was ever found the hashes are equal, which
	// satisfies "less than or equal".
	return lessOrEqual == 1
}

// selectInt returns b if v == 1, a if v == 0. v must be 0 or 1.
func selectInt(v, b, a int) int {
	return subtle.ConstantTimeSelect(v, b, a)
}
