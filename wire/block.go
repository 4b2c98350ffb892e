// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// BlockHeaderLen is the fixed encoded length of a BlockHeader:
// version(4) + prev_hash(64) + merkle_root(64) + timestamp(4) + bits(4)
// + nonce(4).
const BlockHeaderLen = 4 + chainhash.HashSize + chainhash.HashSize + 4 + 4 + 4

// EpochFloor is the earliest timestamp any BTPC header may carry.
const EpochFloor = 1735344000

// MaxTimestampDriftSeconds is how far into the future of the wall clock
// a header's timestamp may sit before it's rejected.
const MaxTimestampDriftSeconds = 7200

var (
	ErrInvalidVersion    = errors.New("wire: block version must be greater than zero")
	ErrTimestampTooFuture = errors.New("wire: block timestamp too far in the future")
	ErrTimestampTooOld    = errors.New("wire: block timestamp before epoch floor")
	ErrBlockTooLarge      = errors.New("wire: block exceeds maximum size")
	ErrNoTransactions     = errors.New("wire: block has no transactions")
	ErrNoCoinbase         = errors.New("wire: block's first transaction is not coinbase")
	ErrMultipleCoinbase   = errors.New("wire: block has more than one coinbase transaction")
	ErrInvalidMerkleRoot  = errors.New("wire: computed merkle root does not match header")
)

// BlockHeader is BTPC's 144-byte block header. Timestamp is kept as a
// full Unix-seconds value in memory, but only its low 32 bits are
// carried on the wire: the encoding truncates to uint32 and expands
// back on decode, matching the reference implementation's wire format
// exactly (a deliberate, if unusual, choice this codec preserves rather
// than "fixes").
type BlockHeader struct {
	Version    uint32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint64
	Bits       uint32
	Nonce      uint32
}

// Serialize writes the header's 144-byte canonical encoding to w.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, h.Version); err != nil {
		return err
	}
	if _, err := w.Write(h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := w.Write(h.MerkleRoot[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(h.Timestamp)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, h.Bits); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, h.Nonce)
}

// Deserialize reads a 144-byte canonical encoding from r into h.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &h.Version); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.PrevBlock[:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(r, h.MerkleRoot[:]); err != nil {
		return err
	}
	var ts uint32
	if err := binary.Read(r, binary.LittleEndian, &ts); err != nil {
		return err
	}
	h.Timestamp = uint64(ts)
	if err := binary.Read(r, binary.LittleEndian, &h.Bits); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &h.Nonce)
}

// Bytes returns the header's 144-byte canonical encoding.
func (h *BlockHeader) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(BlockHeaderLen)
	// Serialize over a bytes.Buffer never fails.
	_ = h.Serialize(&buf)
	return buf.Bytes()
}

// BlockHash computes the header's double-SHA-512 hash.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Bytes())
}

// CheckHeaderSanity validates the header fields that don't require
// chain context: version positivity and the timestamp bounds of §4.6.
func (h *BlockHeader) CheckHeaderSanity(now uint64) error {
	if h.Version == 0 {
		return ErrInvalidVersion
	}
	if h.Timestamp > now+MaxTimestampDriftSeconds {
		return ErrTimestampTooFuture
	}
	if h.Timestamp < EpochFloor {
		return ErrTimestampTooOld
	}
	return nil
}

// MsgBlock is a BTPC block: a header plus its ordered transactions.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// Serialize writes the block's canonical encoding: header, then varint
// transaction count, then the transactions themselves.
func (b *MsgBlock) Serialize(w io.Writer) error {
	if err := b.Header.Serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(b.Transactions))); err != nil {
		return err
	}
	for _, tx := range b.Transactions {
		if err := tx.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a block's canonical encoding from r into b.
func (b *MsgBlock) Deserialize(r io.Reader) error {
	if err := b.Header.Deserialize(r); err != nil {
		return err
	}
	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	b.Transactions = make([]*MsgTx, count)
	for i := range b.Transactions {
		tx := new(MsgTx)
		if err := tx.Deserialize(r); err != nil {
			return err
		}
		b.Transactions[i] = tx
	}
	return nil
}

// Bytes returns the block's canonical serialization.
func (b *MsgBlock) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BlockHash returns the hash of the block's header.
func (b *MsgBlock) BlockHash() chainhash.Hash {
	return b.Header.BlockHash()
}

// CheckBlockSanity performs the structural validation of §4.6 that
// requires no chain context: size limit, non-empty transaction list,
// exactly one coinbase in the first slot, per-transaction sanity, the
// merkle root matching the header, and header sanity itself. merkleRoot
// is supplied by the caller (the blockchain package owns merkle
// construction) to keep this package free of a dependency on it.
func (b *MsgBlock) CheckBlockSanity(now uint64, merkleRoot chainhash.Hash) error {
	if err := b.Header.CheckHeaderSanity(now); err != nil {
		return err
	}

	raw, err := b.Bytes()
	if err != nil {
		return err
	}
	if len(raw) > MaxBlockSize {
		return ErrBlockTooLarge
	}

	if len(b.Transactions) == 0 {
		return ErrNoTransactions
	}
	if !b.Transactions[0].IsCoinBase() {
		return ErrNoCoinbase
	}
	for _, tx := range b.Transactions[1:] {
		if tx.IsCoinBase() {
			return ErrMultipleCoinbase
		}
	}
	for _, tx := range b.Transactions {
		if err := tx.CheckSanity(); err != nil {
			return err
		}
	}

	if merkleRoot != b.Header.MerkleRoot {
		return ErrInvalidMerkleRoot
	}

	return nil
}
