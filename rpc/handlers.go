// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/hex"
	"fmt"

	"github.com/btpc-network/btpc/blockchain"
	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/wire"
)

// BlockTemplate is the getblocktemplate result: the fields a miner
// needs to assemble and submit a candidate block.
type BlockTemplate struct {
	Version       uint32   `json:"version"`
	PreviousHash  string   `json:"previous_hash"`
	Height        uint32   `json:"height"`
	Bits          string   `json:"bits"`
	Target        string   `json:"target"`
	CurTime       uint64   `json:"cur_time"`
	CoinbaseValue uint64   `json:"coinbase_value"`
	Transactions  []string `json:"transactions"`
}

func handleGetBlockTemplate(s *Server, _ []interface{}) (interface{}, error) {
	if !s.Chain.Initialized() {
		return nil, newRPCError(ErrRPCInternal, "chain not initialized")
	}

	tipHeight := s.Chain.Height()
	tip, ok := s.Chain.GetBlockAtHeight(tipHeight)
	if !ok {
		return nil, newRPCError(ErrRPCInternal, "missing tip block at height %d", tipHeight)
	}

	nextHeight := tipHeight + 1
	bits, err := blockchain.ExpectedBits(nextHeight, tip.Header.Bits, s.Chain, s.Params)
	if err != nil {
		return nil, newRPCError(ErrRPCInternal, "%v", err)
	}

	entries := s.Pool.SelectByFeeRate(0)
	txHexes := make([]string, 0, len(entries))
	var totalFees uint64
	for _, e := range entries {
		raw, err := e.Tx.Bytes()
		if err != nil {
			continue
		}
		txHexes = append(txHexes, hex.EncodeToString(raw))
		totalFees += e.Fee
	}

	reward := s.Params.Emission.RewardAtHeight(uint64(nextHeight))
	target := chaincfg.TargetFromBits(bits)

	return &BlockTemplate{
		Version:       1,
		PreviousHash:  tip.BlockHash().String(),
		Height:        nextHeight,
		Bits:          fmt.Sprintf("%08x", bits),
		Target:        target.String(),
		CurTime:       wallClock(),
		CoinbaseValue: reward + totalFees,
		Transactions:  txHexes,
	}, nil
}

func handleSubmitBlock(s *Server, params []interface{}) (interface{}, error) {
	hexBlock, ok := singleStringParam(params)
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected hex-encoded block")
	}

	raw, err := hex.DecodeString(hexBlock)
	if err != nil {
		return nil, newRPCError(ErrRPCDeserialization, "invalid hex: %v", err)
	}

	block, err := decodeBlock(raw)
	if err != nil {
		return nil, newRPCError(ErrRPCDeserialization, "block decode failed: %v", err)
	}

	if err := s.Chain.AddBlock(block); err != nil {
		return nil, newRPCError(ErrRPCVerify, "rejected: %v", err)
	}

	s.Pool.RemoveMinedTransactions(block.Transactions)

	if s.Store != nil {
		if err := s.Store.PutBlock(block); err == nil {
			s.Store.PutHeightIndex(s.Chain.Height(), block.BlockHash())
		}
		for _, tx := range block.Transactions {
			s.Store.PutTransaction(tx)
		}
	}

	if s.Notifier != nil {
		s.Notifier.NotifyBlockConnected(block.BlockHash(), s.Chain.Height())
	}

	return nil, nil
}

func handleGetBlock(s *Server, params []interface{}) (interface{}, error) {
	hashStr, ok := singleStringParam(params)
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected a block hash")
	}
	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		return nil, newRPCError(ErrRPCInvalidParameter, "invalid hash: %v", err)
	}

	block, ok := s.Chain.GetBlockByHash(*hash)
	if !ok {
		return nil, newRPCError(ErrRPCBlockNotFound, "block not found")
	}

	raw, err := block.Bytes()
	if err != nil {
		return nil, newRPCError(ErrRPCInternal, "serialize failed: %v", err)
	}
	return hex.EncodeToString(raw), nil
}

func handleGetBlockHeader(s *Server, params []interface{}) (interface{}, error) {
	hashStr, ok := singleStringParam(params)
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected a block hash")
	}
	hash, err := chainhash.NewHashFromStr(hashStr)
	if err != nil {
		return nil, newRPCError(ErrRPCInvalidParameter, "invalid hash: %v", err)
	}

	block, ok := s.Chain.GetBlockByHash(*hash)
	if !ok {
		return nil, newRPCError(ErrRPCBlockNotFound, "block not found")
	}

	return map[string]interface{}{
		"version":     block.Header.Version,
		"prev_block":  block.Header.PrevBlock.String(),
		"merkle_root": block.Header.MerkleRoot.String(),
		"timestamp":   block.Header.Timestamp,
		"bits":        fmt.Sprintf("%08x", block.Header.Bits),
		"nonce":       block.Header.Nonce,
	}, nil
}

func handleGetBlockChainInfo(s *Server, _ []interface{}) (interface{}, error) {
	return map[string]interface{}{
		"chain":           s.Params.Name.String(),
		"blocks":          s.Chain.Height(),
		"best_block_hash": s.Chain.BestHash().String(),
		"total_work":      s.Chain.TotalWork().String(),
	}, nil
}

func handleGetTxOut(s *Server, params []interface{}) (interface{}, error) {
	if len(params) < 2 {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected txid and output index")
	}
	txidStr, ok := params[0].(string)
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected a string txid")
	}
	index, ok := toUint32(params[1])
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected a numeric output index")
	}

	txid, err := chainhash.NewHashFromStr(txidStr)
	if err != nil {
		return nil, newRPCError(ErrRPCInvalidParameter, "invalid txid: %v", err)
	}

	set := s.Chain.UTXOSnapshot()
	u, ok := set.Get(wire.OutPoint{Hash: *txid, Index: index})
	if !ok {
		return nil, nil
	}

	return map[string]interface{}{
		"value":           u.Output.Value,
		"pk_script":       hex.EncodeToString(u.Output.PkScript),
		"creation_height": u.CreationHeight,
		"is_coinbase":     u.IsCoinbase,
	}, nil
}

func handleGetRawTransaction(s *Server, params []interface{}) (interface{}, error) {
	txidStr, ok := singleStringParam(params)
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected a txid")
	}
	txid, err := chainhash.NewHashFromStr(txidStr)
	if err != nil {
		return nil, newRPCError(ErrRPCInvalidParameter, "invalid txid: %v", err)
	}

	if s.Store == nil {
		return nil, newRPCError(ErrRPCInternal, "no transaction index configured")
	}
	tx, err := s.Store.GetTransaction(*txid)
	if err != nil {
		return nil, newRPCError(ErrRPCTxNotFound, "transaction not found")
	}

	raw, err := tx.Bytes()
	if err != nil {
		return nil, newRPCError(ErrRPCInternal, "serialize failed: %v", err)
	}
	return hex.EncodeToString(raw), nil
}

func handleSendRawTransaction(s *Server, params []interface{}) (interface{}, error) {
	hexTx, ok := singleStringParam(params)
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "expected a hex-encoded transaction")
	}
	raw, err := hex.DecodeString(hexTx)
	if err != nil {
		return nil, newRPCError(ErrRPCDeserialization, "invalid hex: %v", err)
	}

	tx, err := decodeTx(raw)
	if err != nil {
		return nil, newRPCError(ErrRPCDeserialization, "tx decode failed: %v", err)
	}

	set := s.Chain.UTXOSnapshot()
	fee, err := blockchain.CalculateFee(tx, set)
	if err != nil {
		return nil, newRPCError(ErrRPCVerify, "%v", err)
	}

	if err := s.Pool.Add(tx, fee, wallClock()); err != nil {
		return nil, newRPCError(ErrRPCVerify, "rejected: %v", err)
	}

	txid, err := tx.TxHash()
	if err != nil {
		return nil, newRPCError(ErrRPCInternal, "%v", err)
	}
	return txid.String(), nil
}

func handleEstimateSmartFee(s *Server, params []interface{}) (interface{}, error) {
	percentile := 50.0
	if len(params) > 0 {
		if p, ok := toFloat64(params[0]); ok {
			percentile = p
		}
	}
	return map[string]interface{}{
		"fee_rate": s.Pool.EstimateSmartFee(percentile),
	}, nil
}
