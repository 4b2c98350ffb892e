// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"math/big"
)

// EmissionParams holds the four values that define a network's linear
// decay emission curve.
type EmissionParams struct {
	InitialReward  uint64
	TailEmission   uint64
	BlocksPerYear  uint32
	DecayYears     uint32
}

var (
	ErrEmissionParamZero      = errors.New("chaincfg: emission parameters must all be non-zero")
	ErrEmissionParamOrdering  = errors.New("chaincfg: initial reward must exceed tail emission")
	ErrEmissionDecayOverflow  = errors.New("chaincfg: decay_years * blocks_per_year overflows uint32")
)

// Validate checks the parameter-validation rules of §4.8.
func (p EmissionParams) Validate() error {
	if p.InitialReward == 0 || p.TailEmission == 0 || p.BlocksPerYear == 0 || p.DecayYears == 0 {
		return ErrEmissionParamZero
	}
	if p.InitialReward <= p.TailEmission {
		return ErrEmissionParamOrdering
	}
	total := uint64(p.DecayYears) * uint64(p.BlocksPerYear)
	if total > math_MaxUint32 {
		return ErrEmissionDecayOverflow
	}
	return nil
}

const math_MaxUint32 = 1<<32 - 1

// decayBlocks returns decay_years * blocks_per_year, the height at
// which tail emission begins.
func (p EmissionParams) decayBlocks() uint64 {
	return uint64(p.DecayYears) * uint64(p.BlocksPerYear)
}

// RewardAtHeight computes the block subsidy for height h using the
// integer-only linear decay formula of §4.8: height 0 pays the initial
// reward, heights at or beyond the decay horizon pay the flat tail
// emission, and every height in between interpolates linearly using a
// wide (128-bit via big.Int) intermediate product so the floor division
// never loses precision a narrower type would silently round away.
func (p EmissionParams) RewardAtHeight(h uint64) uint64 {
	D := p.decayBlocks()

	if h == 0 {
		return p.InitialReward
	}
	if h >= D {
		return p.TailEmission
	}

	drop := p.InitialReward - p.TailEmission
	delta := new(big.Int).Mul(big.NewInt(0).SetUint64(drop), big.NewInt(0).SetUint64(h))
	delta.Div(delta, big.NewInt(0).SetUint64(D))

	current := new(big.Int).Sub(big.NewInt(0).SetUint64(p.InitialReward), delta)
	tail := big.NewInt(0).SetUint64(p.TailEmission)
	if current.Cmp(tail) < 0 {
		return p.TailEmission
	}
	return current.Uint64()
}

// CumulativeSupply sums the reward paid at every height from 0 through
// upToHeight inclusive. For heights past the decay horizon the tail
// portion is added in closed form rather than iterated, keeping this
// cheap even for very high blockchains.
func (p EmissionParams) CumulativeSupply(upToHeight uint64) uint64 {
	D := p.decayBlocks()

	decayLimit := upToHeight
	tailBlocks := uint64(0)
	if upToHeight >= D {
		decayLimit = D - 1
		tailBlocks = upToHeight - D + 1
	}

	var total big.Int
	for h := uint64(0); h <= decayLimit; h++ {
		total.Add(&total, big.NewInt(0).SetUint64(p.RewardAtHeight(h)))
	}
	if tailBlocks > 0 {
		tailTotal := new(big.Int).Mul(big.NewInt(0).SetUint64(p.TailEmission), big.NewInt(0).SetUint64(tailBlocks))
		total.Add(&total, tailTotal)
	}

	return total.Uint64()
}

// RewardAtYear returns the subsidy paid at the first block of the given
// year (year 0 is genesis).
func (p EmissionParams) RewardAtYear(year uint32) uint64 {
	return p.RewardAtHeight(uint64(year) * uint64(p.BlocksPerYear))
}

// TailEmissionStartHeight returns the height at which tail emission
// begins.
func (p EmissionParams) TailEmissionStartHeight() uint64 {
	return p.decayBlocks()
}
