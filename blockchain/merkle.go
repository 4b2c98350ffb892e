// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the merkle engine (C5), UTXO set (C9),
// chain state (C10), and consensus engine (C11) that together decide
// whether a candidate block extends the canonical chain.
package blockchain

import (
	"errors"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

var ErrEmptyMerkleInput = errors.New("blockchain: merkle root requires at least one transaction")

// hashMerkleBranches combines two sibling node hashes into their
// parent: double_sha512(left || right).
func hashMerkleBranches(left, right chainhash.Hash) chainhash.Hash {
	return chainhash.DoubleHashRaw(func(w *chainhash.HashWriter) {
		w.Write(left[:])
		w.Write(right[:])
	})
}

// CalcMerkleRoot computes the merkle root over txids per §4.5: a single
// transaction's root is double_sha512(txid); otherwise pair adjacent
// hashes level by level, duplicating the last hash of an odd-length
// level to pair it, until one hash remains.
func CalcMerkleRoot(txids []chainhash.Hash) (chainhash.Hash, error) {
	if len(txids) == 0 {
		return chainhash.Hash{}, ErrEmptyMerkleInput
	}
	if len(txids) == 1 {
		return chainhash.DoubleHashH(txids[0][:]), nil
	}

	level := make([]chainhash.Hash, len(txids))
	copy(level, txids)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]chainhash.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = hashMerkleBranches(level[i], level[i+1])
		}
		level = next
	}

	return level[0], nil
}
