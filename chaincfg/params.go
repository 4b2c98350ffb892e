// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines network parameters (mainnet/testnet/regtest)
// and the consensus constants — emission curve, difficulty limits,
// coinbase maturity, checkpoints — that vary per network.
package chaincfg

import (
	"errors"
	"fmt"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// BTPCNet represents which BTPC network a block or transaction belongs
// to, playing the role Bitcoin's magic bytes play in peer-to-peer
// framing.
type BTPCNet uint32

const (
	MainNet BTPCNet = 0x42545043 // "BTPC" in ASCII
	TestNet BTPCNet = 0x42545454 // "BTTT"
	RegTest BTPCNet = 0x42545252 // "BTRR"
)

func (n BTPCNet) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet:
		return "testnet"
	case RegTest:
		return "regtest"
	default:
		return fmt.Sprintf("unknown BTPCNet (%d)", uint32(n))
	}
}

// Checkpoint is a hard-coded (height, hash) pair. A reorg that would
// rewrite a block at or below the highest checkpoint height a node
// knows about is rejected, resolving Open Question 4.
type Checkpoint struct {
	Height int64
	Hash   chainhash.Hash
}

// CoinbaseMaturity is the number of blocks a coinbase output must wait
// before it becomes spendable, uniform across all BTPC networks.
const CoinbaseMaturity = 100

// CoinbaseForkID is the fixed fork_id value every BTPC transaction
// carries today, per Open Question 3's resolution: kept at zero and
// excluded from the signing preimage.
const CoinbaseForkID = 0

// Params groups together the consensus parameters for a BTPC network.
type Params struct {
	Name BTPCNet

	DefaultPort string

	GenesisBlockMessage string

	PowLimit     chainhash.Hash
	PowLimitBits uint32

	CoinbaseMaturity uint16

	Emission EmissionParams

	Checkpoints []Checkpoint
}

var (
	registeredNets = make(map[BTPCNet]*Params)

	ErrDuplicateNet = errors.New("chaincfg: duplicate network registration")
	ErrUnknownNet   = errors.New("chaincfg: unknown network")
)

// Register records params so LookupParams can find it by network magic.
// It is an error to register the same network twice.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Name] = params
	return nil
}

func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic(err)
	}
}

// LookupParams returns the registered Params for net, or ErrUnknownNet.
func LookupParams(net BTPCNet) (*Params, error) {
	p, ok := registeredNets[net]
	if !ok {
		return nil, ErrUnknownNet
	}
	return p, nil
}

// MainNetParams defines the mainnet consensus rules.
var MainNetParams = Params{
	Name:        MainNet,
	DefaultPort: "8733",

	GenesisBlockMessage: "BTPC Genesis Block",

	// PowLimitBits encodes a 64-byte target whose top four bytes are
	// 0x00, followed by two 0xff bytes and zeros, a Bitcoin-style
	// "minimum difficulty" ceiling widened for the 64-byte target space
	// (exponent 61, mantissa 0x00ffff).
	PowLimitBits: 0x3d00ffff,

	CoinbaseMaturity: CoinbaseMaturity,

	Emission: EmissionParams{
		InitialReward: 3_237_500_000,
		TailEmission:  50_000_000,
		BlocksPerYear: 52_560,
		DecayYears:    24,
	},
}

// TestNetParams defines the public test network's consensus rules: same
// emission curve as mainnet, looser difficulty.
var TestNetParams = Params{
	Name:        TestNet,
	DefaultPort: "18733",

	GenesisBlockMessage: "BTPC Testnet Genesis Block",

	PowLimitBits: 0x3f00ffff,

	CoinbaseMaturity: CoinbaseMaturity,

	Emission: EmissionParams{
		InitialReward: 3_237_500_000,
		TailEmission:  50_000_000,
		BlocksPerYear: 52_560,
		DecayYears:    24,
	},
}

// RegressionNetParams defines the regtest network's consensus rules: an
// easy near-maximum target so local tests can mine blocks quickly, and
// the exact genesis parameters spec.md's end-to-end test scenario
// specifies.
var RegressionNetParams = Params{
	Name:        RegTest,
	DefaultPort: "18444",

	GenesisBlockMessage: "BTPC Regtest Genesis Block",

	PowLimitBits: 0x207fffff,

	CoinbaseMaturity: CoinbaseMaturity,

	Emission: EmissionParams{
		InitialReward: 5_000_000_000,
		TailEmission:  50_000_000,
		BlocksPerYear: 52_560,
		DecayYears:    24,
	},
}

func init() {
	MainNetParams.PowLimit = TargetFromBits(MainNetParams.PowLimitBits)
	TestNetParams.PowLimit = TargetFromBits(TestNetParams.PowLimitBits)
	RegressionNetParams.PowLimit = TargetFromBits(RegressionNetParams.PowLimitBits)

	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
	mustRegister(&RegressionNetParams)
}
