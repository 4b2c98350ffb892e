// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the canonical on-wire and on-disk byte layouts
// for BTPC transactions and blocks: variable-length integers, the
// transaction model (C4), and the block model (C6).
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// Discriminator bytes for the Bitcoin-style variable-length integer
// encoding: values below 0xfd encode as a single byte; 0xfd/0xfe/0xff
// introduce a 2/4/8-byte little-endian payload.
const (
	varIntDiscriminator16 = 0xfd
	varIntDiscriminator32 = 0xfe
	varIntDiscriminator64 = 0xff
)

// ErrVarIntNonCanonical is returned when a varint was encoded with more
// bytes than necessary for its value, which this codec always rejects.
var ErrVarIntNonCanonical = errors.New("wire: non-canonical varint encoding")

// VarIntSerializeSize returns the number of bytes required to encode x
// as a variable-length integer.
func VarIntSerializeSize(x uint64) int {
	switch {
	case x < varIntDiscriminator16:
		return 1
	case x <= 0xffff:
		return 3
	case x <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteVarInt writes x to w using the canonical minimal-length encoding.
func WriteVarInt(w io.Writer, x uint64) error {
	var buf [9]byte
	switch {
	case x < varIntDiscriminator16:
		buf[0] = byte(x)
		_, err := w.Write(buf[:1])
		return err
	case x <= 0xffff:
		buf[0] = varIntDiscriminator16
		binary.LittleEndian.PutUint16(buf[1:3], uint16(x))
		_, err := w.Write(buf[:3])
		return err
	case x <= 0xffffffff:
		buf[0] = varIntDiscriminator32
		binary.LittleEndian.PutUint32(buf[1:5], uint32(x))
		_, err := w.Write(buf[:5])
		return err
	default:
		buf[0] = varIntDiscriminator64
		binary.LittleEndian.PutUint64(buf[1:9], x)
		_, err := w.Write(buf[:9])
		return err
	}
}

// ReadVarInt reads a canonically-encoded variable-length integer from r.
// A value encoded with more bytes than its magnitude required is
// rejected with ErrVarIntNonCanonical, matching the consensus rule that
// serialization round-trips must be unambiguous.
func ReadVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, err
	}

	switch prefix[0] {
	case varIntDiscriminator16:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint16(b[:]))
		if v < varIntDiscriminator16 {
			return 0, ErrVarIntNonCanonical
		}
		return v, nil
	case varIntDiscriminator32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		v := uint64(binary.LittleEndian.Uint32(b[:]))
		if v <= 0xffff {
			return 0, ErrVarIntNonCanonical
		}
		return v, nil
	case varIntDiscriminator64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		v := binary.LittleEndian.Uint64(b[:])
		if v <= 0xffffffff {
			return 0, ErrVarIntNonCanonical
		}
		return v, nil
	default:
		return uint64(prefix[0]), nil
	}
}
