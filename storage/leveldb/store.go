// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldb implements the storage collaborator contract (§6.1)
// atop a single LevelDB database: blocks, the height index, the UTXO
// set, and transaction lookups share one key space, distinguished by a
// one-byte prefix per record kind, in the manner of the teacher's block
// index (chainio.go's bucket-per-kind convention, flattened onto a
// plain key-value store).
package leveldb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/wire"
)

// Key prefixes, one byte each, partitioning the single LevelDB key
// space into the record kinds the storage contract names.
const (
	prefixBlock       byte = 0x01 // block hash -> serialized MsgBlock
	prefixHeightIndex byte = 0x02 // height (8 bytes BE) -> block hash
	prefixUTXO        byte = 0x03 // outpoint -> serialized UTXO
	prefixTx          byte = 0x04 // txid -> serialized MsgTx
	prefixMeta        byte = 0x05 // fixed meta keys (e.g. max height)
)

var metaMaxHeightKey = []byte{prefixMeta, 0x01}

var ErrNotFound = errors.New("storage: key not found")

// Store is the storage collaborator the consensus core reads and
// writes through: one writer at a time expected of callers (the chain
// already serializes block application), LevelDB itself handles
// concurrent reads safely.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a LevelDB database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func blockKey(hash chainhash.Hash) []byte {
	key := make([]byte, 1+chainhash.HashSize)
	key[0] = prefixBlock
	copy(key[1:], hash[:])
	return key
}

func heightKey(height uint32) []byte {
	key := make([]byte, 1+8)
	key[0] = prefixHeightIndex
	binary.BigEndian.PutUint64(key[1:], uint64(height))
	return key
}

func utxoKey(op wire.OutPoint) []byte {
	key := make([]byte, 1+chainhash.HashSize+4)
	key[0] = prefixUTXO
	copy(key[1:1+chainhash.HashSize], op.Hash[:])
	binary.BigEndian.PutUint32(key[1+chainhash.HashSize:], op.Index)
	return key
}

func txKey(txid chainhash.Hash) []byte {
	key := make([]byte, 1+chainhash.HashSize)
	key[0] = prefixTx
	copy(key[1:], txid[:])
	return key
}

// PutBlock persists block, keyed by its block hash.
func (s *Store) PutBlock(block *wire.MsgBlock) error {
	data, err := block.Bytes()
	if err != nil {
		return err
	}
	return s.db.Put(blockKey(block.BlockHash()), data, nil)
}

// GetBlock retrieves the block with the given hash.
func (s *Store) GetBlock(hash chainhash.Hash) (*wire.MsgBlock, error) {
	data, err := s.db.Get(blockKey(hash), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	block := new(wire.MsgBlock)
	if err := block.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return block, nil
}

// PutHeightIndex records that height maps to hash.
func (s *Store) PutHeightIndex(height uint32, hash chainhash.Hash) error {
	batch := new(leveldb.Batch)
	batch.Put(heightKey(height), hash[:])

	maxHeight, ok, err := s.getMaxHeightLocked()
	if err != nil {
		return err
	}
	if !ok || height > maxHeight {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, height)
		batch.Put(metaMaxHeightKey, buf)
	}
	return s.db.Write(batch, nil)
}

// GetHeight returns the block hash recorded at height.
func (s *Store) GetHeight(height uint32) (chainhash.Hash, error) {
	data, err := s.db.Get(heightKey(height), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return chainhash.Hash{}, ErrNotFound
		}
		return chainhash.Hash{}, err
	}
	var hash chainhash.Hash
	if err := hash.SetBytes(data); err != nil {
		return chainhash.Hash{}, err
	}
	return hash, nil
}

func (s *Store) getMaxHeightLocked() (uint32, bool, error) {
	data, err := s.db.Get(metaMaxHeightKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return binary.BigEndian.Uint32(data), true, nil
}

// GetMaxHeight returns the greatest height PutHeightIndex has recorded.
func (s *Store) GetMaxHeight() (uint32, bool, error) {
	return s.getMaxHeightLocked()
}

// PutUTXO persists the raw encoding of one unspent output.
func (s *Store) PutUTXO(op wire.OutPoint, encoded []byte) error {
	return s.db.Put(utxoKey(op), encoded, nil)
}

// DeleteUTXO removes the record for outpoint op.
func (s *Store) DeleteUTXO(op wire.OutPoint) error {
	return s.db.Delete(utxoKey(op), nil)
}

// GetUTXO retrieves the raw encoding stored for outpoint op.
func (s *Store) GetUTXO(op wire.OutPoint) ([]byte, error) {
	data, err := s.db.Get(utxoKey(op), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// PutTransaction indexes tx by its txid, for §6.3's getrawtransaction.
func (s *Store) PutTransaction(tx *wire.MsgTx) error {
	txid, err := tx.TxHash()
	if err != nil {
		return err
	}
	data, err := tx.Bytes()
	if err != nil {
		return err
	}
	return s.db.Put(txKey(txid), data, nil)
}

// GetTransaction retrieves the transaction with the given txid.
func (s *Store) GetTransaction(txid chainhash.Hash) (*wire.MsgTx, error) {
	data, err := s.db.Get(txKey(txid), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	tx := wire.NewMsgTx(1)
	if err := tx.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return tx, nil
}

// FlushWAL forces LevelDB to flush its write-ahead log and memtable to
// disk, the durability point the storage contract's flush_wal names.
func (s *Store) FlushWAL() error {
	// goleveldb has no explicit WAL-flush call; CompactRange over the
	// full key space forces a flush of any pending memtable content to
	// an SST, which is the closest equivalent durability guarantee this
	// driver exposes.
	return s.db.CompactRange(util.Range{})
}
