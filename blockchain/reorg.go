// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/wire"
)

// reorgLookup resolves retarget history lookups during a reorg: blocks
// belonging to the not-yet-committed replacement segment take priority
// over the chain's current (about-to-be-discarded) blocks at the same
// height.
type reorgLookup struct {
	original map[uint32]*wire.MsgBlock
	overlay  map[uint32]*wire.MsgBlock
}

func (l *reorgLookup) GetBlockAtHeight(height uint32) (*wire.MsgBlock, bool) {
	if b, ok := l.overlay[height]; ok {
		return b, true
	}
	b, ok := l.original[height]
	return b, ok
}

// Reorganize implements the reorg semantics of §4.10: newBlocks is an
// ordered replacement segment whose first block's prev_hash must name a
// block already known to the chain (the common ancestor). If the
// replacement segment's cumulative work (ancestor work plus its own)
// exceeds the current tip's total work, and doing so would not rewrite
// a block at or below a known checkpoint, the chain unwinds to the
// ancestor and applies the new segment forward. On success it returns
// the non-coinbase transactions of every unwound block, so the caller
// can offer them back to the mempool for re-validation; on any failure
// the chain is left exactly as it was found.
func (c *Chain) Reorganize(newBlocks []*wire.MsgBlock) ([]*wire.MsgTx, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil, ErrBrokenChain
	}
	if len(newBlocks) == 0 {
		return nil, ErrDoesNotConnect
	}

	ancestorHash := newBlocks[0].Header.PrevBlock
	ancestorHeight, ok := c.heightByHash[ancestorHash]
	if !ok {
		return nil, ErrDoesNotConnect
	}

	for _, ckpt := range c.params.Checkpoints {
		height := uint32(ckpt.Height)
		if height > ancestorHeight && height <= c.tipHeight {
			return nil, ErrCheckpointMismatch
		}
	}

	var ancestorWork big.Int
	for h := uint32(0); h <= ancestorHeight; h++ {
		ancestorWork.Add(&ancestorWork, c.workByHeight[h])
	}
	candidateWork := new(big.Int).Set(&ancestorWork)
	for _, b := range newBlocks {
		candidateWork.Add(candidateWork, chaincfg.CalcWork(b.Header.Bits))
	}
	if candidateWork.Cmp(c.totalWork) <= 0 {
		return nil, ErrReorganizationNeeded
	}

	baseUTXO := NewUTXOSet(uint32(c.params.CoinbaseMaturity))
	for h := uint32(0); h <= ancestorHeight; h++ {
		if err := baseUTXO.ApplyBlock(c.blocksByHeight[h].Transactions); err != nil {
			return nil, err
		}
	}

	var unwound []*wire.MsgTx
	for h := ancestorHeight + 1; h <= c.tipHeight; h++ {
		for _, tx := range c.blocksByHeight[h].Transactions {
			if !tx.IsCoinBase() {
				unwound = append(unwound, tx)
			}
		}
	}

	newBlocksByHeight := make(map[uint32]*wire.MsgBlock, len(newBlocks))
	newHeightByHash := make(map[chainhash.Hash]uint32, len(newBlocks))
	newWorkByHeight := make(map[uint32]*big.Int, len(newBlocks))
	lookup := &reorgLookup{original: c.blocksByHeight, overlay: newBlocksByHeight}

	prevBlock := c.blocksByHeight[ancestorHeight]
	prevHeight := ancestorHeight
	for _, b := range newBlocks {
		prevInfo := &PrevBlockInfo{Block: prevBlock, Height: prevHeight}
		if err := ValidateBlock(b, prevInfo, c.params, lookup, baseUTXO, wallClockNow()); err != nil {
			return nil, err
		}
		if err := baseUTXO.ApplyBlock(b.Transactions); err != nil {
			return nil, err
		}

		newHeight := prevHeight + 1
		hash := b.BlockHash()
		newBlocksByHeight[newHeight] = b
		newHeightByHash[hash] = newHeight
		newWorkByHeight[newHeight] = chaincfg.CalcWork(b.Header.Bits)

		prevBlock = b
		prevHeight = newHeight
	}

	for h := ancestorHeight + 1; h <= c.tipHeight; h++ {
		if blk, ok := c.blocksByHeight[h]; ok {
			delete(c.heightByHash, blk.BlockHash())
		}
		delete(c.blocksByHeight, h)
		delete(c.workByHeight, h)
	}
	for h, b := range newBlocksByHeight {
		c.blocksByHeight[h] = b
	}
	for hash, h := range newHeightByHash {
		c.heightByHash[hash] = h
	}
	for h, w := range newWorkByHeight {
		c.workByHeight[h] = w
	}

	c.utxo = baseUTXO
	c.tipHeight = prevHeight
	c.tipHash = prevBlock.BlockHash()
	c.totalWork = candidateWork

	return unwound, nil
}
