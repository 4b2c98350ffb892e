// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"time"

	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/txscript"
	"github.com/btpc-network/btpc/wire"
)

var ErrScriptValidationFailed = fmt.Errorf("blockchain: input script evaluation failed")

// BlockByHeighter is the minimal chain-history lookup the retarget rule
// needs: the block at a given height, if known. *Chain satisfies this;
// tests can supply a bare map-backed fake.
type BlockByHeighter interface {
	GetBlockAtHeight(height uint32) (*wire.MsgBlock, bool)
}

// PrevBlockInfo describes the block a candidate extends. A nil
// *PrevBlockInfo passed to ValidateBlock signals the genesis case.
type PrevBlockInfo struct {
	Block  *wire.MsgBlock
	Height uint32
}

// ExpectedBits computes the bits a block at height must carry, per
// §4.7: unchanged from the previous block except at every 2016th block,
// where the retarget rule runs against the timestamps bracketing the
// interval just completed.
func ExpectedBits(height uint32, prevBits uint32, lookup BlockByHeighter, params *chaincfg.Params) (uint32, error) {
	if height%chaincfg.RetargetInterval != 0 {
		return prevBits, nil
	}

	firstHeight := height - chaincfg.RetargetInterval
	first, ok := lookup.GetBlockAtHeight(firstHeight)
	if !ok {
		return 0, fmt.Errorf("%w: missing interval-start block at height %d", ErrDoesNotConnect, firstHeight)
	}
	last, ok := lookup.GetBlockAtHeight(height - 1)
	if !ok {
		return 0, fmt.Errorf("%w: missing interval-end block at height %d", ErrDoesNotConnect, height-1)
	}

	return chaincfg.NextTarget(first.Header.Timestamp, last.Header.Timestamp, prevBits, params.PowLimit), nil
}

// ValidateBlock is the consensus engine's public operation (C11):
// `validate_block` of §4.11. prev is nil exactly for the genesis case,
// in which only structural validity and proof-of-work under the
// network's maximum target are enforced. utxoSnapshot must reflect
// chain state immediately before candidate is applied; it is read-only
// here, never mutated.
func ValidateBlock(candidate *wire.MsgBlock, prev *PrevBlockInfo, params *chaincfg.Params, lookup BlockByHeighter, utxoSnapshot *UTXOSet, now uint64) error {
	txids := make([]chainhash.Hash, len(candidate.Transactions))
	for i, tx := range candidate.Transactions {
		h, err := tx.TxHash()
		if err != nil {
			return err
		}
		txids[i] = h
	}
	var merkleRoot chainhash.Hash
	if len(txids) > 0 {
		root, err := CalcMerkleRoot(txids)
		if err != nil {
			return err
		}
		merkleRoot = root
	}

	// 1. Block structural validation (§4.6).
	if err := candidate.CheckBlockSanity(now, merkleRoot); err != nil {
		return err
	}

	var height uint32
	if prev != nil {
		height = prev.Height + 1

		// 2. prev_hash linkage and strict timestamp monotonicity.
		prevHash := prev.Block.BlockHash()
		if candidate.Header.PrevBlock != prevHash {
			return ErrInvalidPrevHash
		}
		if candidate.Header.Timestamp <= prev.Block.Header.Timestamp {
			return ErrTimestampNotIncreasing
		}

		// 3. Expected difficulty bits.
		expectedBits, err := ExpectedBits(height, prev.Block.Header.Bits, lookup, params)
		if err != nil {
			return err
		}
		if candidate.Header.Bits != expectedBits {
			return ErrInvalidDifficulty
		}

		// 4. Proof of work under the block's own (now-verified) target.
		target := chaincfg.TargetFromBits(candidate.Header.Bits)
		if !candidate.BlockHash().MeetsTarget(target) {
			return ErrInvalidProofOfWork
		}
	} else {
		height = 0
		// Genesis: proof of work is checked against the network's
		// maximum target, independent of whatever bits the candidate
		// carries.
		if !candidate.BlockHash().MeetsTarget(params.PowLimit) {
			return ErrInvalidProofOfWork
		}
		return nil
	}

	// 5. Coinbase value constraint and 6/7. Per-transaction checks.
	localSpent := make(map[wire.OutPoint]struct{})
	var totalFees uint64

	for _, tx := range candidate.Transactions[1:] {
		fee, inputSum, outputSum, err := validateNonCoinbaseTx(tx, height, candidate.Header.Timestamp, utxoSnapshot, localSpent)
		if err != nil {
			return err
		}
		if inputSum < outputSum {
			return ErrInsufficientInputs
		}
		totalFees += fee
	}

	var coinbaseSum uint64
	for _, out := range candidate.Transactions[0].TxOut {
		coinbaseSum += out.Value
	}
	reward := params.Emission.RewardAtHeight(uint64(height))
	if coinbaseSum > reward+totalFees {
		return ErrInvalidCoinbaseReward
	}

	return nil
}

// validateNonCoinbaseTx checks one non-coinbase transaction against the
// rules of §4.11(6)-(7): spendable inputs (coinbase maturity, no
// double-spend within the block), script authorization per input, and
// lock-time. It returns the transaction's fee and its input/output
// totals for the caller's running tally.
func validateNonCoinbaseTx(tx *wire.MsgTx, height uint32, blockTimestamp uint64, set *UTXOSet, localSpent map[wire.OutPoint]struct{}) (fee, inputSum, outputSum uint64, err error) {
	for i, in := range tx.TxIn {
		if _, dup := localSpent[in.PreviousOutPoint]; dup {
			return 0, 0, 0, ErrUTXOAlreadySpent
		}

		u, ok := set.Get(in.PreviousOutPoint)
		if !ok {
			return 0, 0, 0, ErrUTXONotFound
		}
		if u.IsCoinbase && !set.CanSpend(in.PreviousOutPoint, height) {
			return 0, 0, 0, ErrUTXONotMature
		}

		message, err := tx.SigningPreimage(i)
		if err != nil {
			return 0, 0, 0, err
		}
		ok2, err := txscript.Execute(in.SignatureScript, u.Output.PkScript, &txscript.Context{Message: message})
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%w: %v", ErrScriptValidationFailed, err)
		}
		if !ok2 {
			return 0, 0, 0, ErrScriptValidationFailed
		}

		localSpent[in.PreviousOutPoint] = struct{}{}
		inputSum += u.Output.Value
	}

	for _, out := range tx.TxOut {
		outputSum += out.Value
	}

	if inputSum < outputSum {
		return 0, 0, 0, ErrInsufficientInputs
	}
	fee = inputSum - outputSum

	if err := checkLockTime(tx, height, blockTimestamp); err != nil {
		return 0, 0, 0, err
	}

	return fee, inputSum, outputSum, nil
}

// checkLockTime applies §4.11(7): a transaction is exempt if every
// input carries the maximum sequence number; otherwise lock_time is
// interpreted as a block height below wire.LockTimeThreshold and a Unix
// timestamp at or above it.
func checkLockTime(tx *wire.MsgTx, height uint32, blockTimestamp uint64) error {
	exempt := true
	for _, in := range tx.TxIn {
		if in.Sequence != wire.MaxTxInSequenceNum {
			exempt = false
			break
		}
	}
	if exempt {
		return nil
	}

	if tx.LockTime < wire.LockTimeThreshold {
		if uint64(tx.LockTime) > uint64(height) {
			return ErrLockTimeNotMet
		}
		return nil
	}
	if uint64(tx.LockTime) > blockTimestamp {
		return ErrLockTimeNotMet
	}
	return nil
}

// wallClockNow returns the current Unix time, the `now` ValidateBlock
// needs to bound how far into the future a header's timestamp may sit.
// Collaborators (storage, mining) own their own clocks; this is the
// single place the consensus core itself reads the wall clock, and only
// to pass it through as an argument, never internally.
func wallClockNow() uint64 {
	return uint64(time.Now().Unix())
}
