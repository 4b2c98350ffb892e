// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btpc-network/btpc/wire"
)

func coinbaseTx(value uint64) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.CoinbaseOutPoint(),
		SignatureScript:  []byte("coinbase"),
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{Value: value, PkScript: []byte{0x01}})
	return tx
}

func spendTx(outpoint wire.OutPoint, value uint64) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: outpoint, Sequence: wire.MaxTxInSequenceNum})
	tx.AddTxOut(&wire.TxOut{Value: value, PkScript: []byte{0x02}})
	return tx
}

func TestUTXOSetApplyBlockAddsOutputs(t *testing.T) {
	set := NewUTXOSet(100)
	cb := coinbaseTx(5_000_000_000)

	require.NoError(t, set.ApplyBlock([]*wire.MsgTx{cb}))
	require.Equal(t, uint32(1), set.Height())

	txHash, err := cb.TxHash()
	require.NoError(t, err)
	outpoint := wire.OutPoint{Hash: txHash, Index: 0}

	u, ok := set.Get(outpoint)
	require.True(t, ok)
	require.True(t, u.IsCoinbase)
	require.Equal(t, uint32(1), u.CreationHeight)
}

func TestUTXOSetCoinbaseMaturity(t *testing.T) {
	set := NewUTXOSet(100)
	cb := coinbaseTx(5_000_000_000)
	require.NoError(t, set.ApplyBlock([]*wire.MsgTx{cb}))

	txHash, err := cb.TxHash()
	require.NoError(t, err)
	outpoint := wire.OutPoint{Hash: txHash, Index: 0}

	require.False(t, set.CanSpend(outpoint, 99))
	require.True(t, set.CanSpend(outpoint, 100))
}

func TestUTXOSetDoubleSpendInSameBlockRejected(t *testing.T) {
	set := NewUTXOSet(100)
	cb := coinbaseTx(5_000_000_000)
	require.NoError(t, set.ApplyBlock([]*wire.MsgTx{cb}))

	txHash, err := cb.TxHash()
	require.NoError(t, err)
	outpoint := wire.OutPoint{Hash: txHash, Index: 0}

	first := spendTx(outpoint, 4_000_000_000)
	second := spendTx(outpoint, 3_000_000_000)

	cbHeight2 := coinbaseTx(5_000_000_000)
	err = set.ApplyBlock([]*wire.MsgTx{cbHeight2, first, second})
	require.ErrorIs(t, err, ErrUTXOAlreadySpent)

	// No partial state: the original outpoint must still be spendable.
	_, ok := set.Get(outpoint)
	require.True(t, ok)
	require.Equal(t, uint32(1), set.Height())
}

func TestUTXOSetCheckpointRollbackIsExact(t *testing.T) {
	set := NewUTXOSet(100)
	cb := coinbaseTx(5_000_000_000)
	require.NoError(t, set.ApplyBlock([]*wire.MsgTx{cb}))

	before := set.Stats()
	cp := set.Checkpoint()

	txHash, err := cb.TxHash()
	require.NoError(t, err)
	spend := spendTx(wire.OutPoint{Hash: txHash, Index: 0}, 4_000_000_000)

	cbHeight2 := coinbaseTx(5_000_000_000)
	cbHeight2.TxIn[0].SignatureScript = []byte("coinbase 2")
	require.NoError(t, set.ApplyBlock([]*wire.MsgTx{cbHeight2, spend}))
	require.NotEqual(t, before, set.Stats())

	set.Rollback(cp)
	require.Equal(t, before, set.Stats())
	require.Equal(t, uint32(1), set.Height())
}

func TestUTXOSetSpendMissingOutpointFails(t *testing.T) {
	set := NewUTXOSet(100)
	_, err := set.Spend(wire.OutPoint{})
	require.ErrorIs(t, err, ErrUTXONotFound)
}

func TestUTXOSetAddDuplicateFails(t *testing.T) {
	set := NewUTXOSet(100)
	u := UTXO{Outpoint: wire.OutPoint{Index: 0}, Output: wire.TxOut{Value: 1}}
	require.NoError(t, set.AddUTXO(u))
	require.ErrorIs(t, set.AddUTXO(u), ErrUTXOAlreadyExists)
}
