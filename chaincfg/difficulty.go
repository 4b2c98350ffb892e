// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// CompactToBig expands a 4-byte compact "bits" encoding into a big.Int
// target: an exponent byte plus a 3-byte mantissa, the same convention
// Bitcoin uses, extended naturally to BTPC's wider 64-byte target space
// (a bigger exponent range, same packing rule).
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := compact >> 24

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, uint(8*(exponent-3)))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact packs a big.Int target into its minimal 4-byte compact
// encoding.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	isNegative := n.Sign() < 0
	work := new(big.Int).Abs(n)

	exponent := uint((len(work.Bytes())))
	var mantissa uint32
	if exponent <= 3 {
		mantissa = uint32(work.Int64())
		mantissa <<= 8 * (3 - exponent)
	} else {
		shifted := new(big.Int).Rsh(work, 8*(exponent-3))
		mantissa = uint32(shifted.Int64())
	}

	// The mantissa's high bit is reserved as a sign flag; if it would
	// collide, shift one more byte into the exponent.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent)<<24 | mantissa
	if isNegative {
		compact |= 0x00800000
	}
	return compact
}

// TargetFromBits expands compact bits into a 64-byte big-endian target
// hash, clamped into range so an oversized expansion never silently
// truncates: values too large for 64 bytes are clamped to the maximum
// representable target.
func TargetFromBits(bits uint32) chainhash.Hash {
	target := CompactToBig(bits)
	return bigToTargetHash(target)
}

// BitsFromTarget packs a 64-byte big-endian target hash back into its
// compact representation.
func BitsFromTarget(target chainhash.Hash) uint32 {
	n := new(big.Int).SetBytes(target[:])
	return BigToCompact(n)
}

func bigToTargetHash(n *big.Int) chainhash.Hash {
	var out chainhash.Hash
	if n.Sign() <= 0 {
		return out
	}

	b := n.Bytes()
	if len(b) > chainhash.HashSize {
		// Clamp to the maximum representable target rather than
		// silently truncate high-order bytes.
		for i := range out {
			out[i] = 0xff
		}
		return out
	}

	copy(out[chainhash.HashSize-len(b):], b)
	return out
}

// HashToBig converts a hash into a big.Int for work arithmetic, reading
// it as a big-endian unsigned integer.
func HashToBig(h chainhash.Hash) *big.Int {
	return new(big.Int).SetBytes(h[:])
}
