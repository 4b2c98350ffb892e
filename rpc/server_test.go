// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btpc-network/btpc/blockchain"
	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/mempool"
	"github.com/btpc-network/btpc/wire"
)

func mineRegtestNonce(t *testing.T, header *wire.BlockHeader, target chainhash.Hash) {
	t.Helper()
	for nonce := uint32(0); ; nonce++ {
		header.Nonce = nonce
		if header.BlockHash().MeetsTarget(target) {
			return
		}
		if nonce == 1<<20 {
			t.Fatalf("failed to mine a block under target")
		}
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	params := &chaincfg.RegressionNetParams
	genesis, err := chaincfg.GenesisBlock(params, 1735344000, 0)
	require.NoError(t, err)
	mineRegtestNonce(t, &genesis.Header, params.PowLimit)

	chain := blockchain.NewChain(params)
	require.NoError(t, chain.InitializeWithGenesis(genesis))

	pool := mempool.New(mempool.Config{MaxSizeBytes: 1 << 20, MinFeeRate: 0})
	return NewServer(chain, pool, nil, params)
}

func TestDispatchUnknownMethod(t *testing.T) {
	s := newTestServer(t)
	_, err := s.Dispatch("notamethod", nil)
	require.Error(t, err)
}

func TestGetBlockTemplateReturnsNextHeight(t *testing.T) {
	s := newTestServer(t)
	result, err := s.Dispatch("getblocktemplate", nil)
	require.NoError(t, err)

	tmpl, ok := result.(*BlockTemplate)
	require.True(t, ok)
	require.Equal(t, uint32(1), tmpl.Height)
}

func TestGetBlockChainInfoReportsGenesis(t *testing.T) {
	s := newTestServer(t)
	result, err := s.Dispatch("getblockchaininfo", nil)
	require.NoError(t, err)

	info, ok := result.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, uint32(0), info["blocks"])
}

func TestEstimateSmartFeeEmptyPoolReturnsFloor(t *testing.T) {
	s := newTestServer(t)
	result, err := s.Dispatch("estimatesmartfee", []interface{}{50.0})
	require.NoError(t, err)

	m, ok := result.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, 0.0, m["fee_rate"])
}
