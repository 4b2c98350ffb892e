// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/txscript"
	"github.com/btpc-network/btpc/wire"
)

// mineNonce brute-forces header.Nonce until the header's block hash
// meets target. Regtest's target is easy enough that this terminates
// quickly in a test.
func mineNonce(t *testing.T, header *wire.BlockHeader, target chainhash.Hash) {
	t.Helper()
	for nonce := uint32(0); ; nonce++ {
		header.Nonce = nonce
		if header.BlockHash().MeetsTarget(target) {
			return
		}
		if nonce == 1<<20 {
			t.Fatalf("failed to mine a block under target within %d attempts", nonce)
		}
	}
}

func regtestGenesis(t *testing.T) *wire.MsgBlock {
	t.Helper()
	params := &chaincfg.RegressionNetParams
	block, err := chaincfg.GenesisBlock(params, 1735344000, 0)
	require.NoError(t, err)
	mineNonce(t, &block.Header, params.PowLimit)
	return block
}

func TestGenesisAccept(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	block := regtestGenesis(t)

	chain := NewChain(params)
	require.NoError(t, chain.InitializeWithGenesis(block))
	require.Equal(t, uint32(0), chain.Height())
	require.Equal(t, block.BlockHash(), chain.BestHash())
	require.Equal(t, block.BlockHash(), chain.GenesisHash())
}

func TestInitializeWithGenesisTwiceFails(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	block := regtestGenesis(t)

	chain := NewChain(params)
	require.NoError(t, chain.InitializeWithGenesis(block))
	require.ErrorIs(t, chain.InitializeWithGenesis(block), ErrAlreadyInitialized)
}

func TestAddBlockExtendsChainAndWork(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	genesis := regtestGenesis(t)

	chain := NewChain(params)
	require.NoError(t, chain.InitializeWithGenesis(genesis))
	initialWork := chain.TotalWork()

	cb := wire.NewMsgTx(1)
	pkScript, err := txscript.PayToPubKeyHashScript(make([]byte, 20))
	require.NoError(t, err)
	cb.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.CoinbaseOutPoint(),
		SignatureScript:  []byte("block 1"),
		Sequence:         wire.MaxTxInSequenceNum,
	})
	cb.AddTxOut(&wire.TxOut{Value: params.Emission.RewardAtHeight(1), PkScript: pkScript})

	txHash, err := cb.TxHash()
	require.NoError(t, err)
	merkleRoot, err := CalcMerkleRoot([]chainhash.Hash{txHash})
	require.NoError(t, err)

	next := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  genesis.BlockHash(),
			MerkleRoot: merkleRoot,
			Timestamp:  genesis.Header.Timestamp + 1,
			Bits:       params.PowLimitBits,
		},
		Transactions: []*wire.MsgTx{cb},
	}
	mineNonce(t, &next.Header, params.PowLimit)

	require.NoError(t, chain.AddBlock(next))
	require.Equal(t, uint32(1), chain.Height())
	require.Equal(t, next.BlockHash(), chain.BestHash())
	require.Equal(t, 1, chain.TotalWork().Cmp(initialWork))
}

func TestAddBlockRejectsWrongPrevHash(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	genesis := regtestGenesis(t)

	chain := NewChain(params)
	require.NoError(t, chain.InitializeWithGenesis(genesis))

	cb := wire.NewMsgTx(1)
	cb.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.CoinbaseOutPoint(), SignatureScript: []byte("x"), Sequence: wire.MaxTxInSequenceNum})
	cb.AddTxOut(&wire.TxOut{Value: params.Emission.RewardAtHeight(1), PkScript: []byte{0x01}})
	txHash, err := cb.TxHash()
	require.NoError(t, err)
	merkleRoot, err := CalcMerkleRoot([]chainhash.Hash{txHash})
	require.NoError(t, err)

	var bogusPrev chainhash.Hash
	bogusPrev[0] = 0x01

	bogus := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  bogusPrev,
			MerkleRoot: merkleRoot,
			Timestamp:  genesis.Header.Timestamp + 1,
			Bits:       params.PowLimitBits,
		},
		Transactions: []*wire.MsgTx{cb},
	}
	mineNonce(t, &bogus.Header, params.PowLimit)

	require.ErrorIs(t, chain.AddBlock(bogus), ErrDoesNotConnect)
	require.Equal(t, uint32(0), chain.Height())
}

func TestAddBlockRemembersRejectedHash(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	genesis := regtestGenesis(t)

	chain := NewChain(params)
	require.NoError(t, chain.InitializeWithGenesis(genesis))

	cb := wire.NewMsgTx(1)
	cb.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.CoinbaseOutPoint(), SignatureScript: []byte("x"), Sequence: wire.MaxTxInSequenceNum})
	cb.AddTxOut(&wire.TxOut{Value: params.Emission.RewardAtHeight(1) * 2, PkScript: []byte{0x01}})
	txHash, err := cb.TxHash()
	require.NoError(t, err)
	merkleRoot, err := CalcMerkleRoot([]chainhash.Hash{txHash})
	require.NoError(t, err)

	overpaying := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  genesis.BlockHash(),
			MerkleRoot: merkleRoot,
			Timestamp:  genesis.Header.Timestamp + 1,
			Bits:       params.PowLimitBits,
		},
		Transactions: []*wire.MsgTx{cb},
	}
	mineNonce(t, &overpaying.Header, params.PowLimit)

	require.ErrorIs(t, chain.AddBlock(overpaying), ErrInvalidCoinbaseReward)
	require.ErrorIs(t, chain.AddBlock(overpaying), ErrRecentlyRejected)
}
