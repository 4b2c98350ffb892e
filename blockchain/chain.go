// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/wire"
)

// Chain holds the ordered sequence of accepted blocks (C10): a
// height-keyed block store, a hash-to-height index, the running tip and
// its cumulative work, and the live UTXO set the tip's state implies.
// Exactly one writer may mutate a Chain at a time; readers (height,
// best hash, block lookups) may proceed concurrently with each other.
type Chain struct {
	mu sync.RWMutex

	params *chaincfg.Params

	blocksByHeight map[uint32]*wire.MsgBlock
	heightByHash   map[chainhash.Hash]uint32
	workByHeight   map[uint32]*big.Int

	initialized bool
	tipHeight   uint32
	tipHash     chainhash.Hash
	genesisHash chainhash.Hash
	totalWork   *big.Int

	utxo *UTXOSet

	rejects *RejectCache
}

// NewChain returns an empty, uninitialized chain for params. Call
// InitializeWithGenesis before adding further blocks.
func NewChain(params *chaincfg.Params) *Chain {
	return &Chain{
		params:         params,
		blocksByHeight: make(map[uint32]*wire.MsgBlock),
		heightByHash:   make(map[chainhash.Hash]uint32),
		workByHeight:   make(map[uint32]*big.Int),
		totalWork:      new(big.Int),
		utxo:           NewUTXOSet(uint32(params.CoinbaseMaturity)),
		rejects:        NewRejectCache(),
	}
}

// Params returns the network parameters this chain validates against.
func (c *Chain) Params() *chaincfg.Params {
	return c.params
}

// InitializeWithGenesis accepts block as the chain's genesis block: the
// chain must currently be empty and block.Header.PrevBlock must be the
// zero hash. On success the chain's height is 0 and its tip is block's
// hash.
func (c *Chain) InitializeWithGenesis(block *wire.MsgBlock) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return ErrAlreadyInitialized
	}
	if !block.Header.PrevBlock.IsZero() {
		return fmt.Errorf("%w: prev_hash must be zero", ErrInvalidGenesis)
	}

	if err := ValidateBlock(block, nil, c.params, c, c.utxo, wallClockNow()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGenesis, err)
	}

	if err := c.utxo.ApplyBlock(block.Transactions); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGenesis, err)
	}

	hash := block.BlockHash()
	c.blocksByHeight[0] = block
	c.heightByHash[hash] = 0
	work := chaincfg.CalcWork(block.Header.Bits)
	c.workByHeight[0] = work
	c.totalWork.Add(c.totalWork, work)

	c.tipHeight = 0
	c.tipHash = hash
	c.genesisHash = hash
	c.initialized = true
	return nil
}

// AddBlock validates block against the current tip and, on success,
// extends the chain by one. On any failure the chain (and its UTXO set)
// is left exactly as it was found, per §4.10.
func (c *Chain) AddBlock(block *wire.MsgBlock) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return ErrBrokenChain
	}

	hash := block.BlockHash()
	if _, exists := c.heightByHash[hash]; exists {
		return ErrDuplicateBlock
	}
	if c.rejects.Contains(hash) {
		return ErrRecentlyRejected
	}
	if block.Header.PrevBlock != c.tipHash {
		return ErrDoesNotConnect
	}

	prevBlock := c.blocksByHeight[c.tipHeight]
	prevInfo := &PrevBlockInfo{Block: prevBlock, Height: c.tipHeight}

	cp := c.utxo.Checkpoint()
	if err := ValidateBlock(block, prevInfo, c.params, c, c.utxo, wallClockNow()); err != nil {
		c.utxo.Rollback(cp)
		c.rejects.Add(hash)
		return err
	}
	if err := c.utxo.ApplyBlock(block.Transactions); err != nil {
		c.utxo.Rollback(cp)
		c.rejects.Add(hash)
		return err
	}

	newHeight := c.tipHeight + 1
	c.blocksByHeight[newHeight] = block
	c.heightByHash[hash] = newHeight
	work := chaincfg.CalcWork(block.Header.Bits)
	c.workByHeight[newHeight] = work
	c.totalWork.Add(c.totalWork, work)

	c.tipHeight = newHeight
	c.tipHash = hash
	return nil
}

// GetBlockAtHeight returns the block at height, if any. It satisfies
// BlockByHeighter for the retarget rule's history lookups.
func (c *Chain) GetBlockAtHeight(height uint32) (*wire.MsgBlock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocksByHeight[height]
	return b, ok
}

// GetBlockByHash returns the block with the given hash, if known.
func (c *Chain) GetBlockByHash(hash chainhash.Hash) (*wire.MsgBlock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	height, ok := c.heightByHash[hash]
	if !ok {
		return nil, false
	}
	return c.blocksByHeight[height], true
}

// Height returns the tip's height. Height is 0 at genesis and undefined
// (returns 0) before initialization; callers should check Initialized.
func (c *Chain) Height() uint32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tipHeight
}

// Initialized reports whether InitializeWithGenesis has succeeded.
func (c *Chain) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// BestHash returns the tip block's hash.
func (c *Chain) BestHash() chainhash.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tipHash
}

// GenesisHash returns the genesis block's hash.
func (c *Chain) GenesisHash() chainhash.Hash {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.genesisHash
}

// TotalWork returns the chain's cumulative proof-of-work, the sum of
// CalcWork(bits) over every block from genesis to the tip.
func (c *Chain) TotalWork() *big.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return new(big.Int).Set(c.totalWork)
}

// UTXOSnapshot returns the chain's live UTXO set itself, not a copy or
// a checkpoint: later blocks applied to the chain change it in place.
func (c *Chain) UTXOSnapshot() *UTXOSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.utxo
}

// FindCommonAncestor returns the height of the most recent block shared
// by the two block hashes' histories, walking each back to genesis.
// Both hashes must already be known to the chain.
func (c *Chain) FindCommonAncestor(h1, h2 chainhash.Hash) (uint32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	height1, ok := c.heightByHash[h1]
	if !ok {
		return 0, false
	}
	height2, ok := c.heightByHash[h2]
	if !ok {
		return 0, false
	}

	a, b := h1, h2
	ha, hb := height1, height2
	for ha > hb {
		blk := c.blocksByHeight[ha]
		a = blk.Header.PrevBlock
		ha--
	}
	for hb > ha {
		blk := c.blocksByHeight[hb]
		b = blk.Header.PrevBlock
		hb--
	}
	for a != b {
		if ha == 0 {
			return 0, false
		}
		a = c.blocksByHeight[ha].Header.PrevBlock
		b = c.blocksByHeight[hb].Header.PrevBlock
		ha--
		hb--
	}
	return ha, true
}

// BuildUTXOSet replays every block from genesis through the tip into a
// fresh UTXOSet, independent of the chain's own live set. This is the
// reconciliation path a node uses after loading block data from
// storage, where the live set wasn't persisted directly.
func (c *Chain) BuildUTXOSet() (*UTXOSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	set := NewUTXOSet(uint32(c.params.CoinbaseMaturity))
	for h := uint32(0); h <= c.tipHeight; h++ {
		blk, ok := c.blocksByHeight[h]
		if !ok {
			return nil, fmt.Errorf("%w: missing block at height %d", ErrBrokenChain, h)
		}
		if err := set.ApplyBlock(blk.Transactions); err != nil {
			return nil, err
		}
	}
	return set, nil
}
