// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"sync"

	"github.com/btpc-network/btpc/wire"
)

var (
	ErrUTXONotFound      = errors.New("blockchain: utxo not found")
	ErrUTXOAlreadyExists = errors.New("blockchain: utxo already exists")
	ErrUTXOAlreadySpent  = errors.New("blockchain: utxo already spent")
	ErrUTXONotMature     = errors.New("blockchain: coinbase utxo not yet mature")
)

// UTXO is an unspent transaction output together with the bookkeeping
// the consensus engine needs to decide spendability: the height it was
// created at, and whether it came from a coinbase transaction.
type UTXO struct {
	Outpoint       wire.OutPoint
	Output         wire.TxOut
	CreationHeight uint32
	IsCoinbase     bool
}

// UTXOSetStats summarizes the current contents of a UTXOSet.
type UTXOSetStats struct {
	TotalCount    int
	TotalValue    uint64
	CoinbaseCount int
	RegularCount  int
}

// UTXOSet holds every unspent output of the chain it tracks, plus the
// set of every outpoint it has seen spent (consulted so a spent
// outpoint is neither spent nor added again). CoinbaseMaturity gates
// when a coinbase-derived UTXO becomes spendable.
type UTXOSet struct {
	mu sync.RWMutex

	entries map[wire.OutPoint]UTXO
	spent   map[wire.OutPoint]struct{}

	currentHeight    uint32
	coinbaseMaturity uint32
}

// NewUTXOSet returns an empty set at height 0.
func NewUTXOSet(coinbaseMaturity uint32) *UTXOSet {
	return &UTXOSet{
		entries:          make(map[wire.OutPoint]UTXO),
		spent:            make(map[wire.OutPoint]struct{}),
		coinbaseMaturity: coinbaseMaturity,
	}
}

// Height returns the height the set has been built up to.
func (s *UTXOSet) Height() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentHeight
}

// AddUTXO records a new unspent output. It fails if the outpoint is
// already present or was already recorded as spent.
func (s *UTXOSet) AddUTXO(u UTXO) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUTXOLocked(u)
}

func (s *UTXOSet) addUTXOLocked(u UTXO) error {
	if _, ok := s.entries[u.Outpoint]; ok {
		return ErrUTXOAlreadyExists
	}
	if _, ok := s.spent[u.Outpoint]; ok {
		return ErrUTXOAlreadyExists
	}
	s.entries[u.Outpoint] = u
	return nil
}

// Spend removes the UTXO at outpoint and moves it into the spent set,
// returning the output that was spent. It fails with
// ErrUTXOAlreadySpent if the outpoint is in the spent set, and with
// ErrUTXONotFound if it was never present.
func (s *UTXOSet) Spend(outpoint wire.OutPoint) (UTXO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spendLocked(outpoint)
}

func (s *UTXOSet) spendLocked(outpoint wire.OutPoint) (UTXO, error) {
	u, ok := s.entries[outpoint]
	if !ok {
		if _, spent := s.spent[outpoint]; spent {
			return UTXO{}, ErrUTXOAlreadySpent
		}
		return UTXO{}, ErrUTXONotFound
	}
	delete(s.entries, outpoint)
	s.spent[outpoint] = struct{}{}
	return u, nil
}

// CanSpend reports whether outpoint is present and, for coinbase
// outputs, mature at currentHeight.
func (s *UTXOSet) CanSpend(outpoint wire.OutPoint, currentHeight uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.entries[outpoint]
	if !ok {
		return false
	}
	if !u.IsCoinbase {
		return true
	}
	return currentHeight >= u.CreationHeight+s.coinbaseMaturity
}

// Get returns the UTXO at outpoint, if present.
func (s *UTXOSet) Get(outpoint wire.OutPoint) (UTXO, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.entries[outpoint]
	return u, ok
}

// ApplyBlock advances the set by one block: every non-coinbase
// transaction's inputs are spent, then every transaction's outputs
// (including the coinbase's) are added at height = current_height + 1.
// On any failure the set is left exactly as it was found.
func (s *UTXOSet) ApplyBlock(txs []*wire.MsgTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := s.snapshotLocked()
	if err := s.applyBlockLocked(txs); err != nil {
		s.restoreLocked(cp)
		return err
	}
	return nil
}

func (s *UTXOSet) applyBlockLocked(txs []*wire.MsgTx) error {
	h := s.currentHeight + 1

	for _, tx := range txs {
		if tx.IsCoinBase() {
			continue
		}
		spentInThisTx := make(map[wire.OutPoint]struct{})
		for _, in := range tx.TxIn {
			if _, dup := spentInThisTx[in.PreviousOutPoint]; dup {
				return ErrUTXOAlreadySpent
			}
			if _, err := s.spendLocked(in.PreviousOutPoint); err != nil {
				return err
			}
			spentInThisTx[in.PreviousOutPoint] = struct{}{}
		}
	}

	for _, tx := range txs {
		txHash, err := tx.TxHash()
		if err != nil {
			return err
		}
		for i, out := range tx.TxOut {
			u := UTXO{
				Outpoint: wire.OutPoint{
					Hash:  txHash,
					Index: uint32(i),
				},
				Output:         *out,
				CreationHeight: h,
				IsCoinbase:     tx.IsCoinBase(),
			}
			if err := s.addUTXOLocked(u); err != nil {
				return err
			}
		}
	}

	s.currentHeight = h
	return nil
}

// UTXOCheckpoint is an opaque snapshot of a UTXOSet's full state.
type UTXOCheckpoint struct {
	entries map[wire.OutPoint]UTXO
	spent   map[wire.OutPoint]struct{}
	height  uint32
}

// Checkpoint snapshots the set's (entries, spent, height) triple.
func (s *UTXOSet) Checkpoint() UTXOCheckpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *UTXOSet) snapshotLocked() UTXOCheckpoint {
	entries := make(map[wire.OutPoint]UTXO, len(s.entries))
	for k, v := range s.entries {
		entries[k] = v
	}
	spent := make(map[wire.OutPoint]struct{}, len(s.spent))
	for k := range s.spent {
		spent[k] = struct{}{}
	}
	return UTXOCheckpoint{entries: entries, spent: spent, height: s.currentHeight}
}

// Rollback restores the set to a previously taken checkpoint.
func (s *UTXOSet) Rollback(cp UTXOCheckpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(cp)
}

func (s *UTXOSet) restoreLocked(cp UTXOCheckpoint) {
	s.entries = cp.entries
	s.spent = cp.spent
	s.currentHeight = cp.height
}

// Stats summarizes the set's current contents.
func (s *UTXOSet) Stats() UTXOSetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats UTXOSetStats
	for _, u := range s.entries {
		stats.TotalCount++
		stats.TotalValue += u.Output.Value
		if u.IsCoinbase {
			stats.CoinbaseCount++
		} else {
			stats.RegularCount++
		}
	}
	return stats
}
