// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"math"

	"github.com/btpc-network/btpc/wire"
)

var (
	ErrInputMissing = errors.New("blockchain: transaction references a missing utxo")
	ErrFeeNegative  = errors.New("blockchain: transaction outputs exceed its inputs")
	ErrFeeOverflow  = errors.New("blockchain: fee calculation overflowed")
)

// CalculateFee computes tx's fee against set per §4.4: the sum of the
// UTXOs its inputs reference, minus the sum of its own outputs. A
// coinbase transaction (no real inputs to look up) always has a fee of
// zero.
func CalculateFee(tx *wire.MsgTx, set *UTXOSet) (uint64, error) {
	if tx.IsCoinBase() {
		return 0, nil
	}

	var inputTotal uint64
	for _, in := range tx.TxIn {
		u, ok := set.Get(in.PreviousOutPoint)
		if !ok {
			return 0, ErrInputMissing
		}
		if inputTotal > math.MaxUint64-u.Output.Value {
			return 0, ErrFeeOverflow
		}
		inputTotal += u.Output.Value
	}

	var outputTotal uint64
	for _, out := range tx.TxOut {
		if outputTotal > math.MaxUint64-out.Value {
			return 0, ErrFeeOverflow
		}
		outputTotal += out.Value
	}

	if outputTotal > inputTotal {
		return 0, ErrFeeNegative
	}
	return inputTotal - outputTotal, nil
}
