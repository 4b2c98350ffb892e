// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool implements BTPC's pending-transaction pool (C12):
// fee-ordered, double-spend-guarded storage for transactions that have
// passed validation but not yet been mined into a block.
package mempool

import (
	"errors"
	"sort"
	"sync"

	"github.com/decred/dcrd/lru"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/wire"
)

// recentlyEvictedLimit bounds how many recently-evicted txids a
// Mempool remembers. Add does not consult this cache, so an evicted
// transaction can be admitted again.
const recentlyEvictedLimit = 1000

var (
	ErrAlreadyInMempool = errors.New("mempool: transaction already present")
	ErrDoubleSpend      = errors.New("mempool: input already spent by another mempool entry")
	ErrFeeTooLow        = errors.New("mempool: fee per byte below the configured floor")
	ErrTxTooLarge       = errors.New("mempool: transaction larger than the pool's entire capacity")
	ErrNotFound         = errors.New("mempool: transaction not found")
)

// Entry is one pending transaction (§3 MempoolEntry): the transaction
// itself, its fee, when it arrived, and its serialized size.
type Entry struct {
	Tx          *wire.MsgTx
	Fee         uint64
	ArrivalTime uint64
	SizeBytes   uint64
}

// FeePerByte is the entry's fee rate, the key eviction and selection
// order in this package.
func (e *Entry) FeePerByte() float64 {
	if e.SizeBytes == 0 {
		return 0
	}
	return float64(e.Fee) / float64(e.SizeBytes)
}

// Stats summarizes the pool's current contents.
type Stats struct {
	Count          int
	TotalSizeBytes uint64
	AvgFeePerByte  float64
}

// Config bounds a Mempool's behavior.
type Config struct {
	// MaxSizeBytes is the total serialized size the pool will hold
	// before evicting low-fee-rate entries to make room for new ones.
	MaxSizeBytes uint64

	// MinFeeRate is the minimum fee-per-byte a transaction must carry
	// to be admitted at all, regardless of available room.
	MinFeeRate float64
}

// Mempool holds pending transactions keyed by txid, subject to a single
// writer at a time; readers (Contains, Get, Stats) may proceed
// concurrently with each other.
type Mempool struct {
	mu  sync.RWMutex
	cfg Config

	entries       map[chainhash.Hash]*Entry
	outpointOwner map[wire.OutPoint]chainhash.Hash
	totalSize     uint64

	recentlyEvicted *lru.Cache
}

// New returns an empty mempool governed by cfg.
func New(cfg Config) *Mempool {
	return &Mempool{
		cfg:             cfg,
		entries:         make(map[chainhash.Hash]*Entry),
		outpointOwner:   make(map[wire.OutPoint]chainhash.Hash),
		recentlyEvicted: lru.NewCache(recentlyEvictedLimit),
	}
}

// WasRecentlyEvicted reports whether txid was dropped by a past
// eviction round and is still in the bounded recently-evicted cache.
// Add and the estimatesmartfee handler do not call it.
func (mp *Mempool) WasRecentlyEvicted(txid chainhash.Hash) bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	return mp.recentlyEvicted.Contains(txid)
}

// Add admits tx at the given fee and arrival time. It rejects a
// transaction already present, one whose inputs collide with an
// outpoint another mempool entry already spends, or one whose fee rate
// falls below the configured floor. If the pool is full, the
// lowest-fee-rate entries (oldest arrival breaking ties) are evicted to
// make room before tx is admitted.
func (mp *Mempool) Add(tx *wire.MsgTx, fee uint64, arrivalTime uint64) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	txid, err := tx.TxHash()
	if err != nil {
		return err
	}
	if _, exists := mp.entries[txid]; exists {
		return ErrAlreadyInMempool
	}
	for _, in := range tx.TxIn {
		if _, spent := mp.outpointOwner[in.PreviousOutPoint]; spent {
			return ErrDoubleSpend
		}
	}

	size := uint64(tx.SerializeSize())
	entry := &Entry{Tx: tx, Fee: fee, ArrivalTime: arrivalTime, SizeBytes: size}
	if entry.FeePerByte() < mp.cfg.MinFeeRate {
		return ErrFeeTooLow
	}
	if mp.cfg.MaxSizeBytes > 0 && size > mp.cfg.MaxSizeBytes {
		return ErrTxTooLarge
	}

	if mp.cfg.MaxSizeBytes > 0 {
		mp.evictToFitLocked(size, entry)
	}

	mp.entries[txid] = entry
	for _, in := range tx.TxIn {
		mp.outpointOwner[in.PreviousOutPoint] = txid
	}
	mp.totalSize += size
	return nil
}

// evictToFitLocked removes the lowest-fee-rate entries (oldest arrival
// breaking ties), skipping candidate itself, until adding size more
// bytes would not exceed MaxSizeBytes.
func (mp *Mempool) evictToFitLocked(size uint64, candidate *Entry) {
	if mp.totalSize+size <= mp.cfg.MaxSizeBytes {
		return
	}

	victims := make([]*Entry, 0, len(mp.entries))
	for _, e := range mp.entries {
		victims = append(victims, e)
	}
	sort.Slice(victims, func(i, j int) bool {
		fi, fj := victims[i].FeePerByte(), victims[j].FeePerByte()
		if fi != fj {
			return fi < fj
		}
		return victims[i].ArrivalTime < victims[j].ArrivalTime
	})

	for _, victim := range victims {
		if mp.totalSize+size <= mp.cfg.MaxSizeBytes {
			return
		}
		if candidate.FeePerByte() <= victim.FeePerByte() {
			// Nothing left worth evicting in candidate's favor.
			return
		}
		txid, err := victim.Tx.TxHash()
		if err != nil {
			continue
		}
		mp.removeLocked(txid)
		mp.recentlyEvicted.Add(txid)
	}
}

// Remove drops the entry for txid, if present.
func (mp *Mempool) Remove(txid chainhash.Hash) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.removeLocked(txid)
}

func (mp *Mempool) removeLocked(txid chainhash.Hash) {
	entry, ok := mp.entries[txid]
	if !ok {
		return
	}
	for _, in := range entry.Tx.TxIn {
		if owner, ok := mp.outpointOwner[in.PreviousOutPoint]; ok && owner == txid {
			delete(mp.outpointOwner, in.PreviousOutPoint)
		}
	}
	mp.totalSize -= entry.SizeBytes
	delete(mp.entries, txid)
}

// Contains reports whether txid is currently pending.
func (mp *Mempool) Contains(txid chainhash.Hash) bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	_, ok := mp.entries[txid]
	return ok
}

// Get returns the entry for txid, if present.
func (mp *Mempool) Get(txid chainhash.Hash) (*Entry, bool) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()
	e, ok := mp.entries[txid]
	return e, ok
}

// Stats summarizes the pool's current contents.
func (mp *Mempool) Stats() Stats {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	stats := Stats{Count: len(mp.entries), TotalSizeBytes: mp.totalSize}
	if len(mp.entries) == 0 {
		return stats
	}
	var total float64
	for _, e := range mp.entries {
		total += e.FeePerByte()
	}
	stats.AvgFeePerByte = total / float64(len(mp.entries))
	return stats
}

// RemoveMinedTransactions drops every entry whose transaction appears
// in txs, called when a block containing them is accepted. Coinbase
// transactions are ignored: they never occupy mempool slots.
func (mp *Mempool) RemoveMinedTransactions(txs []*wire.MsgTx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	for _, tx := range txs {
		if tx.IsCoinBase() {
			continue
		}
		txid, err := tx.TxHash()
		if err != nil {
			continue
		}
		mp.removeLocked(txid)
	}
}

// SelectByFeeRate returns up to limit pending transactions in
// descending fee-rate order, the inclusion order a block template (§6.3
// getblocktemplate) offers to a miner.
func (mp *Mempool) SelectByFeeRate(limit int) []*Entry {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	all := make([]*Entry, 0, len(mp.entries))
	for _, e := range mp.entries {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		fi, fj := all[i].FeePerByte(), all[j].FeePerByte()
		if fi != fj {
			return fi > fj
		}
		return all[i].ArrivalTime < all[j].ArrivalTime
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// EstimateSmartFee returns the fee rate (in satoshis per byte) at the
// given percentile of the pool's current fee-rate distribution, the
// estimate §6.3's estimatesmartfee endpoint serves. percentile must be
// in (0, 100]; an empty pool estimates the configured floor.
func (mp *Mempool) EstimateSmartFee(percentile float64) float64 {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if len(mp.entries) == 0 {
		return mp.cfg.MinFeeRate
	}

	rates := make([]float64, 0, len(mp.entries))
	for _, e := range mp.entries {
		rates = append(rates, e.FeePerByte())
	}
	sort.Float64s(rates)

	if percentile <= 0 {
		percentile = 1
	}
	if percentile > 100 {
		percentile = 100
	}
	idx := int(float64(len(rates)-1) * percentile / 100)
	return rates[idx]
}
