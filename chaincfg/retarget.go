// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// RetargetInterval is the number of blocks between difficulty
// adjustments.
const RetargetInterval = 2016

// TargetTimePerBlock is the intended spacing between blocks, in
// seconds.
const TargetTimePerBlock = 600

// ExpectedRetargetTimespan is the timestamp span a full retarget
// interval should cover if blocks land exactly on schedule.
const ExpectedRetargetTimespan = RetargetInterval * TargetTimePerBlock

// clampTimespan bounds actualTimespan to [expected/4, expected*4], the
// 4x clamp of §4.7.
func clampTimespan(actualTimespan int64) int64 {
	min := ExpectedRetargetTimespan / 4
	max := ExpectedRetargetTimespan * 4
	if actualTimespan < min {
		return min
	}
	if actualTimespan > max {
		return max
	}
	return actualTimespan
}

// NextTarget computes the retargeted difficulty bits given the bits and
// timestamp of the first block in the interval just completed, the
// timestamp of its last block, and the network's powLimit ceiling. The
// result is clamped to powLimit.
func NextTarget(firstBlockTime, lastBlockTime uint64, oldBits uint32, powLimit chainhash.Hash) uint32 {
	actualTimespan := int64(lastBlockTime) - int64(firstBlockTime)
	actualTimespan = clampTimespan(actualTimespan)

	oldTarget := CompactToBig(oldBits)
	newTarget := new(big.Int).Mul(oldTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(ExpectedRetargetTimespan))

	limit := HashToBig(powLimit)
	if newTarget.Cmp(limit) > 0 {
		newTarget = limit
	}

	return BigToCompact(newTarget)
}

// oneLsh512 is 2^512, used by CalcWork.
var oneLsh512 = new(big.Int).Lsh(big.NewInt(1), 512)

// CalcWork computes the work a block with the given target represents:
// (2^512 - 1) / (target + 1), a monotone decreasing function of target
// so smaller targets (harder proofs) contribute more work.
func CalcWork(bits uint32) *big.Int {
	target := CompactToBig(bits)
	if target.Sign() <= 0 {
		return big.NewInt(0)
	}

	denominator := new(big.Int).Add(target, big.NewInt(1))
	maxVal := new(big.Int).Sub(oneLsh512, big.NewInt(1))
	return new(big.Int).Div(maxVal, denominator)
}
