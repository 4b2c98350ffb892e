// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

func txidOf(b byte) chainhash.Hash {
	return chainhash.HashH([]byte{b})
}

func TestCalcMerkleRootSingleTx(t *testing.T) {
	txid := txidOf('a')
	root, err := CalcMerkleRoot([]chainhash.Hash{txid})
	require.NoError(t, err)
	require.Equal(t, chainhash.DoubleHashH(txid[:]), root)
}

func TestCalcMerkleRootRejectsEmptyInput(t *testing.T) {
	_, err := CalcMerkleRoot(nil)
	require.ErrorIs(t, err, ErrEmptyMerkleInput)
}

func TestCalcMerkleRootOddLevelDuplicatesLast(t *testing.T) {
	txids := []chainhash.Hash{txidOf('a'), txidOf('b'), txidOf('c')}
	root, err := CalcMerkleRoot(txids)
	require.NoError(t, err)

	// Three leaves: duplicate the third to pair it with itself, then
	// combine the two resulting level-1 hashes.
	left := hashMerkleBranches(txids[0], txids[1])
	right := hashMerkleBranches(txids[2], txids[2])
	require.Equal(t, hashMerkleBranches(left, right), root)
}

func TestMerkleProofRoundTrip(t *testing.T) {
	txids := []chainhash.Hash{txidOf('a'), txidOf('b'), txidOf('c'), txidOf('d')}

	proof, err := GenerateMerkleProof(txids, 1)
	require.NoError(t, err)
	require.True(t, proof.Verify())

	root, err := CalcMerkleRoot(txids)
	require.NoError(t, err)
	require.Equal(t, root, proof.Root)
}

func TestMerkleProofTamperFailsVerification(t *testing.T) {
	txids := []chainhash.Hash{txidOf('a'), txidOf('b'), txidOf('c'), txidOf('d')}

	proof, err := GenerateMerkleProof(txids, 1)
	require.NoError(t, err)
	require.True(t, proof.Verify())

	proof.Steps[0].Sibling[0] ^= 0x01
	require.False(t, proof.Verify())
}

func TestMerkleProofRejectsOutOfRangeIndex(t *testing.T) {
	txids := []chainhash.Hash{txidOf('a'), txidOf('b')}
	_, err := GenerateMerkleProof(txids, 2)
	require.ErrorIs(t, err, ErrInvalidMerkleIndex)
}

func TestMerkleProofSerializationRoundTrip(t *testing.T) {
	txids := []chainhash.Hash{txidOf('a'), txidOf('b'), txidOf('c')}
	proof, err := GenerateMerkleProof(txids, 2)
	require.NoError(t, err)

	encoded, err := proof.Bytes()
	require.NoError(t, err)

	decoded, err := DeserializeMerkleProof(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, proof.Root, decoded.Root)
	require.Equal(t, proof.TxID, decoded.TxID)
	require.Equal(t, proof.Steps, decoded.Steps)
	require.True(t, decoded.Verify())
}

func TestMerkleProofSingleTx(t *testing.T) {
	txid := txidOf('a')
	proof, err := GenerateMerkleProof([]chainhash.Hash{txid}, 0)
	require.NoError(t, err)
	require.Empty(t, proof.Steps)
	require.True(t, proof.Verify())
}
