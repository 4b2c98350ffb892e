// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "errors"

// Chain errors (spec §7 "Chain errors").
var (
	ErrAlreadyInitialized  = errors.New("blockchain: chain already initialized")
	ErrInvalidGenesis      = errors.New("blockchain: invalid genesis block")
	ErrDoesNotConnect      = errors.New("blockchain: block does not connect to the current tip")
	ErrDuplicateBlock      = errors.New("blockchain: block hash already present in chain")
	ErrBrokenChain         = errors.New("blockchain: chain is not initialized")
	ErrReorganizationNeeded = errors.New("blockchain: competing chain requires reorganization")
	ErrCheckpointMismatch  = errors.New("blockchain: reorg would rewrite a block at or below a known checkpoint")
	ErrRecentlyRejected    = errors.New("blockchain: block hash was recently rejected")
)

// Consensus errors (spec §7 "Consensus errors").
var (
	ErrInvalidPrevHash       = errors.New("blockchain: header prev_hash does not match expected previous block")
	ErrInvalidDifficulty     = errors.New("blockchain: header bits do not match the expected retarget value")
	ErrInvalidProofOfWork    = errors.New("blockchain: block hash does not meet its target")
	ErrInvalidCoinbaseReward = errors.New("blockchain: coinbase output value exceeds reward plus fees")
	ErrLockTimeNotMet        = errors.New("blockchain: transaction lock_time not satisfied")
	ErrInsufficientInputs    = errors.New("blockchain: transaction inputs do not cover its outputs")
	ErrTimestampNotIncreasing = errors.New("blockchain: header timestamp does not strictly exceed the previous block's")
)
