// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txscript implements BTPC's script virtual machine: a tiny
// stack machine evaluating a closed opcode set against a signing
// context, used to authorize spends of transaction outputs.
package txscript

// Opcode byte values. Direct data pushes of 1-75 bytes are encoded as a
// single length byte followed by that many bytes of data, exactly as in
// Bitcoin script; OP_PUSHDATA1/2/4 extend this to the much larger
// payloads ML-DSA public keys and signatures require.
const (
	OP_FALSE     = 0x00
	OP_PUSHDATA1 = 0x4c
	OP_PUSHDATA2 = 0x4d
	OP_PUSHDATA4 = 0x4e
	OP_1         = 0x51 // OP_TRUE
	OP_VERIFY    = 0x69
	OP_DUP       = 0x76
	OP_EQUAL     = 0x87
	OP_EQUALVERIFY = 0x88
	OP_HASH160             = 0xa9
	OP_CHECKMLDSASIG       = 0xb1
	OP_CHECKMLDSASIGVERIFY = 0xb2

	// maxDirectPush is the largest length a single-byte push opcode can
	// encode directly.
	maxDirectPush = 0x4b
)

// opcodeName maps the bare (non-push) opcodes to a human-readable name;
// Parse uses it to decide which non-push opcode bytes are known.
var opcodeName = map[byte]string{
	OP_FALSE:               "OP_FALSE",
	OP_1:                   "OP_TRUE",
	OP_VERIFY:              "OP_VERIFY",
	OP_DUP:                 "OP_DUP",
	OP_EQUAL:               "OP_EQUAL",
	OP_EQUALVERIFY:         "OP_EQUALVERIFY",
	OP_HASH160:             "OP_HASH160",
	OP_CHECKMLDSASIG:       "OP_CHECKMLDSASIG",
	OP_CHECKMLDSASIGVERIFY: "OP_CHECKMLDSASIGVERIFY",
}
