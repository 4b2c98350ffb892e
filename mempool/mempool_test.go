// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btpc-network/btpc/wire"
)

func makeTx(seed byte, fee uint64) (*wire.MsgTx, uint64) {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: uint32(seed)},
		SignatureScript:  []byte{seed},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{Value: 1000, PkScript: []byte{0x01}})
	return tx, fee
}

func TestMempoolAddAndGet(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	tx, fee := makeTx(1, 500)

	require.NoError(t, mp.Add(tx, fee, 1))

	txid, err := tx.TxHash()
	require.NoError(t, err)
	require.True(t, mp.Contains(txid))

	entry, ok := mp.Get(txid)
	require.True(t, ok)
	require.Equal(t, fee, entry.Fee)
}

func TestMempoolRejectsDuplicate(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	tx, fee := makeTx(1, 500)

	require.NoError(t, mp.Add(tx, fee, 1))
	require.ErrorIs(t, mp.Add(tx, fee, 2), ErrAlreadyInMempool)
}

func TestMempoolRejectsDoubleSpend(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})

	outpoint := wire.OutPoint{Index: 7}
	tx1 := wire.NewMsgTx(1)
	tx1.AddTxIn(&wire.TxIn{PreviousOutPoint: outpoint, SignatureScript: []byte("a"), Sequence: wire.MaxTxInSequenceNum})
	tx1.AddTxOut(&wire.TxOut{Value: 1000, PkScript: []byte{0x01}})

	tx2 := wire.NewMsgTx(1)
	tx2.AddTxIn(&wire.TxIn{PreviousOutPoint: outpoint, SignatureScript: []byte("b"), Sequence: wire.MaxTxInSequenceNum})
	tx2.AddTxOut(&wire.TxOut{Value: 900, PkScript: []byte{0x02}})

	require.NoError(t, mp.Add(tx1, 500, 1))
	require.ErrorIs(t, mp.Add(tx2, 500, 2), ErrDoubleSpend)
}

func TestMempoolRejectsLowFeeRate(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 10})
	tx, _ := makeTx(1, 1)

	require.ErrorIs(t, mp.Add(tx, 1, 1), ErrFeeTooLow)
}

func TestMempoolRemove(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	tx, fee := makeTx(1, 500)
	require.NoError(t, mp.Add(tx, fee, 1))

	txid, err := tx.TxHash()
	require.NoError(t, err)

	mp.Remove(txid)
	require.False(t, mp.Contains(txid))

	stats := mp.Stats()
	require.Equal(t, 0, stats.Count)
	require.Equal(t, uint64(0), stats.TotalSizeBytes)
}

func TestMempoolRemoveMinedTransactions(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	tx1, fee1 := makeTx(1, 500)
	tx2, fee2 := makeTx(2, 600)
	require.NoError(t, mp.Add(tx1, fee1, 1))
	require.NoError(t, mp.Add(tx2, fee2, 2))

	mp.RemoveMinedTransactions([]*wire.MsgTx{tx1})

	txid1, _ := tx1.TxHash()
	txid2, _ := tx2.TxHash()
	require.False(t, mp.Contains(txid1))
	require.True(t, mp.Contains(txid2))
}

func TestMempoolEvictsLowestFeeRateFirst(t *testing.T) {
	tx1, _ := makeTx(1, 100)
	size1 := uint64(tx1.SerializeSize())

	mp := New(Config{MaxSizeBytes: size1 + 1, MinFeeRate: 0})
	require.NoError(t, mp.Add(tx1, 100, 1))

	tx2, _ := makeTx(2, 10_000)
	require.NoError(t, mp.Add(tx2, 10_000, 2))

	txid1, _ := tx1.TxHash()
	txid2, _ := tx2.TxHash()
	require.False(t, mp.Contains(txid1))
	require.True(t, mp.Contains(txid2))
	require.True(t, mp.WasRecentlyEvicted(txid1))
}

func TestMempoolRejectsTxLargerThanCapacity(t *testing.T) {
	tx, _ := makeTx(1, 100)
	size := uint64(tx.SerializeSize())

	mp := New(Config{MaxSizeBytes: size - 1, MinFeeRate: 0})
	require.ErrorIs(t, mp.Add(tx, 100, 1), ErrTxTooLarge)
}

func TestMempoolSelectByFeeRateOrdersDescending(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	txLow, _ := makeTx(1, 100)
	txHigh, _ := makeTx(2, 10_000)
	require.NoError(t, mp.Add(txLow, 100, 1))
	require.NoError(t, mp.Add(txHigh, 10_000, 2))

	selected := mp.SelectByFeeRate(10)
	require.Len(t, selected, 2)
	require.GreaterOrEqual(t, selected[0].FeePerByte(), selected[1].FeePerByte())
}

func TestMempoolEstimateSmartFeeEmptyReturnsFloor(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 3.5})
	require.Equal(t, 3.5, mp.EstimateSmartFee(50))
}

func TestMempoolEstimateSmartFeeTracksDistribution(t *testing.T) {
	mp := New(Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	tx1, _ := makeTx(1, 100)
	tx2, _ := makeTx(2, 10_000)
	require.NoError(t, mp.Add(tx1, 100, 1))
	require.NoError(t, mp.Add(tx2, 10_000, 2))

	estimate := mp.EstimateSmartFee(100)
	require.Greater(t, estimate, mp.EstimateSmartFee(1))
}
