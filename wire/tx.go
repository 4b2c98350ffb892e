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
	"math"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// MaxMoney bounds an individual output's value and the sum of a
// transaction's outputs. Because tail emission continues forever, BTPC's
// total supply has no finite ceiling the way Bitcoin's 21M cap does;
// this is a generous sanity bound well above any plausible circulating
// supply for centuries, chosen so per-transaction arithmetic stays
// comfortably clear of uint64 overflow.
const MaxMoney = 10_000_000_000 * 1e8

// CoinbaseOutpointIndex is the previous-output index a coinbase input
// carries; its hash half is always the zero hash.
const CoinbaseOutpointIndex = 0xffffffff

// Sequence values.
const MaxTxInSequenceNum uint32 = 0xffffffff

// LockTimeThreshold is the boundary between lock_time being interpreted
// as a block height (values below it) or a Unix timestamp (values at or
// above it).
const LockTimeThreshold = 500_000_000

var (
	ErrNoTxInputs           = errors.New("wire: transaction has no inputs")
	ErrNoTxOutputs          = errors.New("wire: transaction has no outputs")
	ErrValueOverflow        = errors.New("wire: transaction output value overflow")
	ErrDuplicateInput       = errors.New("wire: duplicate transaction input")
	ErrInvalidSerialization = errors.New("wire: invalid serialization")
)

// OutPoint identifies a specific output of a specific transaction.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// CoinbaseOutPoint is the sentinel outpoint every coinbase input must
// reference: the zero hash paired with the maximum index.
func CoinbaseOutPoint() OutPoint {
	return OutPoint{Hash: chainhash.Hash{}, Index: CoinbaseOutpointIndex}
}

// IsCoinbaseOutPoint reports whether op is the coinbase sentinel.
func (op OutPoint) IsCoinbaseOutPoint() bool {
	return op.Hash.IsZero() && op.Index == CoinbaseOutpointIndex
}

func (op OutPoint) serialize(w io.Writer) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, op.Index)
}

func (op *OutPoint) deserialize(r io.Reader) error {
	if _, err := io.ReadFull(r, op.Hash[:]); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &op.Index)
}

// TxIn is a transaction input: a reference to a prior output plus the
// unlocking script and a sequence number.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// SerializeSize returns the encoded length of ti in bytes.
func (ti *TxIn) SerializeSize() int {
	return 36 + VarIntSerializeSize(uint64(len(ti.SignatureScript))) + len(ti.SignatureScript) + 4
}

func (ti *TxIn) serialize(w io.Writer) error {
	if err := ti.PreviousOutPoint.serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(ti.SignatureScript))); err != nil {
		return err
	}
	if _, err := w.Write(ti.SignatureScript); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, ti.Sequence)
}

func (ti *TxIn) deserialize(r io.Reader) error {
	if err := ti.PreviousOutPoint.deserialize(r); err != nil {
		return err
	}
	scriptLen, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if scriptLen > MaxScriptSize {
		return ErrInvalidSerialization
	}
	ti.SignatureScript = make([]byte, scriptLen)
	if _, err := io.ReadFull(r, ti.SignatureScript); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &ti.Sequence)
}

// TxOut is a transaction output: a value and the script that locks it.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// SerializeSize returns the encoded length of to in bytes.
func (to *TxOut) SerializeSize() int {
	return 8 + VarIntSerializeSize(uint64(len(to.PkScript))) + len(to.PkScript)
}

func (to *TxOut) serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, to.Value); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(to.PkScript))); err != nil {
		return err
	}
	_, err := w.Write(to.PkScript)
	return err
}

func (to *TxOut) deserialize(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &to.Value); err != nil {
		return err
	}
	scriptLen, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if scriptLen > MaxScriptSize {
		return ErrInvalidSerialization
	}
	to.PkScript = make([]byte, scriptLen)
	_, err = io.ReadFull(r, to.PkScript)
	return err
}

// MsgTx is a BTPC transaction.
type MsgTx struct {
	Version  uint32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
	ForkID   uint32
}

// NewMsgTx returns an empty transaction with the given version.
func NewMsgTx(version uint32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn appends ti to tx's input list.
func (tx *MsgTx) AddTxIn(ti *TxIn) {
	tx.TxIn = append(tx.TxIn, ti)
}

// AddTxOut appends to to tx's output list.
func (tx *MsgTx) AddTxOut(to *TxOut) {
	tx.TxOut = append(tx.TxOut, to)
}

// IsCoinBase reports whether tx is a coinbase transaction: exactly one
// input, referencing the coinbase sentinel outpoint.
func (tx *MsgTx) IsCoinBase() bool {
	return len(tx.TxIn) == 1 && tx.TxIn[0].PreviousOutPoint.IsCoinbaseOutPoint()
}

// Serialize writes tx's canonical encoding to w: version, varint input
// count, inputs, varint output count, outputs, lock_time, fork_id.
func (tx *MsgTx) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, tx.Version); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, ti := range tx.TxIn {
		if err := ti.serialize(w); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, to := range tx.TxOut {
		if err := to.serialize(w); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, tx.LockTime); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, tx.ForkID)
}

// Deserialize populates tx from r's canonical encoding.
func (tx *MsgTx) Deserialize(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &tx.Version); err != nil {
		return err
	}

	inCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	tx.TxIn = make([]*TxIn, inCount)
	for i := range tx.TxIn {
		ti := new(TxIn)
		if err := ti.deserialize(r); err != nil {
			return err
		}
		tx.TxIn[i] = ti
	}

	outCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	tx.TxOut = make([]*TxOut, outCount)
	for i := range tx.TxOut {
		to := new(TxOut)
		if err := to.deserialize(r); err != nil {
			return err
		}
		tx.TxOut[i] = to
	}

	if err := binary.Read(r, binary.LittleEndian, &tx.LockTime); err != nil {
		return err
	}
	return binary.Read(r, binary.LittleEndian, &tx.ForkID)
}

// SerializeSize returns the number of bytes tx.Serialize would write.
func (tx *MsgTx) SerializeSize() int {
	n := 4 + VarIntSerializeSize(uint64(len(tx.TxIn)))
	for _, ti := range tx.TxIn {
		n += ti.SerializeSize()
	}
	n += VarIntSerializeSize(uint64(len(tx.TxOut)))
	for _, to := range tx.TxOut {
		n += to.SerializeSize()
	}
	return n + 4 + 4
}

// Bytes returns tx's canonical serialization.
func (tx *MsgTx) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TxHash computes tx's txid: the double-SHA-512 of its canonical
// serialization.
func (tx *MsgTx) TxHash() (chainhash.Hash, error) {
	b, err := tx.Bytes()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.DoubleHashH(b), nil
}

// SigningPreimage returns the bytes ML-DSA signing and verification
// operate over for input index inputIdx: the whole transaction
// serialized canonically with every input's SignatureScript replaced by
// an empty script. Since all inputs are blanked, the result is the same
// for every inputIdx; inputIdx is only checked to be in range.
func (tx *MsgTx) SigningPreimage(inputIdx int) ([]byte, error) {
	if inputIdx < 0 || inputIdx >= len(tx.TxIn) {
		return nil, ErrInvalidSerialization
	}

	blanked := &MsgTx{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		ForkID:   tx.ForkID,
		TxOut:    tx.TxOut,
	}
	blanked.TxIn = make([]*TxIn, len(tx.TxIn))
	for i, ti := range tx.TxIn {
		blanked.TxIn[i] = &TxIn{
			PreviousOutPoint: ti.PreviousOutPoint,
			Sequence:         ti.Sequence,
			SignatureScript:  nil,
		}
	}
	return blanked.Bytes()
}

// CheckSanity performs the structural validation rules of §4.4: at
// least one input and one output, output values individually and
// summed within MaxMoney without overflow, and (for non-coinbase
// transactions) no duplicate referenced outpoint.
func (tx *MsgTx) CheckSanity() error {
	if len(tx.TxIn) == 0 {
		return ErrNoTxInputs
	}
	if len(tx.TxOut) == 0 {
		return ErrNoTxOutputs
	}

	var total uint64
	for _, to := range tx.TxOut {
		if to.Value > MaxMoney {
			return ErrValueOverflow
		}
		if total > math.MaxUint64-to.Value {
			return ErrValueOverflow
		}
		total += to.Value
		if total > MaxMoney {
			return ErrValueOverflow
		}
	}

	if !tx.IsCoinBase() {
		seen := make(map[OutPoint]struct{}, len(tx.TxIn))
		for _, ti := range tx.TxIn {
			if ti.PreviousOutPoint.IsCoinbaseOutPoint() {
				return ErrInvalidSerialization
			}
			if _, dup := seen[ti.PreviousOutPoint]; dup {
				return ErrDuplicateInput
			}
			seen[ti.PreviousOutPoint] = struct{}{}
		}
	}

	return nil
}
