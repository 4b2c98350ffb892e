// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "encoding/binary"

// MaxScriptSize and MaxScriptOps are the hard limits of §4.3, enforced
// both when a script is parsed and as it executes.
const (
	MaxScriptSize = 10_000
	MaxScriptOps  = 201
)

// ScriptBuilder assembles a script byte string op by op.
type ScriptBuilder struct {
	script []byte
	err    error
}

// NewScriptBuilder returns an empty builder.
func NewScriptBuilder() *ScriptBuilder {
	return &ScriptBuilder{}
}

// AddOp appends a single bare opcode byte.
func (b *ScriptBuilder) AddOp(op byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}
	b.script = append(b.script, op)
	return b
}

// AddData appends a data push, choosing the shortest encoding that fits
// data's length.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	if b.err != nil {
		return b
	}

	n := len(data)
	switch {
	case n <= maxDirectPush:
		b.script = append(b.script, byte(n))
	case n <= 0xff:
		b.script = append(b.script, OP_PUSHDATA1, byte(n))
	case n <= 0xffff:
		var lenBuf [2]byte
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(n))
		b.script = append(b.script, OP_PUSHDATA2)
		b.script = append(b.script, lenBuf[:]...)
	default:
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(n))
		b.script = append(b.script, OP_PUSHDATA4)
		b.script = append(b.script, lenBuf[:]...)
	}
	b.script = append(b.script, data...)

	if len(b.script) > MaxScriptSize {
		b.err = ErrScriptTooLarge
	}
	return b
}

// Script returns the assembled script, or any error encountered while
// building it.
func (b *ScriptBuilder) Script() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.script, nil
}

// ParsedOp is one decoded instruction: a data push (Data non-nil) or a
// bare opcode (Opcode set, Data nil).
type ParsedOp struct {
	Opcode byte
	Data   []byte
}

// IsPush reports whether this instruction pushes data.
func (p ParsedOp) IsPush() bool {
	return p.Data != nil
}

// Parse decodes script into its instruction sequence, enforcing the
// size and op-count limits of §4.3 as it goes.
func Parse(script []byte) ([]ParsedOp, error) {
	if len(script) > MaxScriptSize {
		return nil, ErrScriptTooLarge
	}

	var ops []ParsedOp
	i := 0
	opCount := 0
	for i < len(script) {
		opCount++
		if opCount > MaxScriptOps {
			return nil, ErrTooManyOperations
		}

		b := script[i]
		switch {
		case b >= 1 && b <= maxDirectPush:
			if i+1+int(b) > len(script) {
				return nil, ErrInvalidScript
			}
			ops = append(ops, ParsedOp{Data: append([]byte{}, script[i+1:i+1+int(b)]...)})
			i += 1 + int(b)

		case b == OP_PUSHDATA1:
			if i+2 > len(script) {
				return nil, ErrInvalidScript
			}
			n := int(script[i+1])
			if i+2+n > len(script) {
				return nil, ErrInvalidScript
			}
			ops = append(ops, ParsedOp{Data: append([]byte{}, script[i+2:i+2+n]...)})
			i += 2 + n

		case b == OP_PUSHDATA2:
			if i+3 > len(script) {
				return nil, ErrInvalidScript
			}
			n := int(binary.LittleEndian.Uint16(script[i+1 : i+3]))
			if i+3+n > len(script) {
				return nil, ErrInvalidScript
			}
			ops = append(ops, ParsedOp{Data: append([]byte{}, script[i+3:i+3+n]...)})
			i += 3 + n

		case b == OP_PUSHDATA4:
			if i+5 > len(script) {
				return nil, ErrInvalidScript
			}
			n := int(binary.LittleEndian.Uint32(script[i+1 : i+5]))
			if i+5+n > len(script) {
				return nil, ErrInvalidScript
			}
			ops = append(ops, ParsedOp{Data: append([]byte{}, script[i+5:i+5+n]...)})
			i += 5 + n

		default:
			if _, ok := opcodeName[b]; !ok {
				return nil, ErrUnsupportedOpcode
			}
			ops = append(ops, ParsedOp{Opcode: b})
			i++
		}
	}

	return ops, nil
}
