// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/crypto/mldsa"
)

// Context supplies the data a running script needs but cannot itself
// contain: the bytes being signed over (the transaction's signing
// preimage for the input under evaluation).
type Context struct {
	Message []byte
}

// stack is a last-in-first-out sequence of byte strings.
type stack [][]byte

func (s *stack) push(v []byte) {
	*s = append(*s, v)
}

func (s *stack) pop() ([]byte, error) {
	n := len(*s)
	if n == 0 {
		return nil, ErrStackUnderflow
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, nil
}

func (s *stack) peek() ([]byte, error) {
	n := len(*s)
	if n == 0 {
		return nil, ErrStackUnderflow
	}
	return (*s)[n-1], nil
}

// isTrue implements the truth rule of §4.3: a byte string is true iff
// it contains any non-zero byte.
func isTrue(v []byte) bool {
	for _, b := range v {
		if b != 0 {
			return true
		}
	}
	return false
}

var (
	trueValue  = []byte{0x01}
	falseValue = []byte{0x00}
)

func boolBytes(v bool) []byte {
	if v {
		return trueValue
	}
	return falseValue
}

// Execute runs sigScript concatenated with pkScript against ctx and
// reports whether the combined script succeeds: after execution exactly
// one item remains on the stack and it is true.
func Execute(sigScript, pkScript []byte, ctx *Context) (bool, error) {
	combined := make([]byte, 0, len(sigScript)+len(pkScript))
	combined = append(combined, sigScript...)
	combined = append(combined, pkScript...)

	if len(combined) > MaxScriptSize {
		return false, ErrScriptTooLarge
	}

	ops, err := Parse(combined)
	if err != nil {
		return false, err
	}
	if len(ops) > MaxScriptOps {
		return false, ErrTooManyOperations
	}

	var st stack
	for _, instr := range ops {
		if instr.IsPush() {
			st.push(instr.Data)
			continue
		}

		if err := execOp(&st, instr.Opcode, ctx); err != nil {
			return false, err
		}
	}

	if len(st) != 1 {
		return false, nil
	}
	return isTrue(st[0]), nil
}

func execOp(st *stack, opcode byte, ctx *Context) error {
	switch opcode {
	case OP_FALSE:
		st.push(falseValue)

	case OP_1:
		st.push(trueValue)

	case OP_DUP:
		top, err := st.peek()
		if err != nil {
			return err
		}
		st.push(append([]byte{}, top...))

	case OP_HASH160:
		x, err := st.pop()
		if err != nil {
			return err
		}
		full := chainhash.HashB(x)
		st.push(full[:20])

	case OP_EQUAL, OP_EQUALVERIFY:
		b, err := st.pop()
		if err != nil {
			return err
		}
		a, err := st.pop()
		if err != nil {
			return err
		}
		eq := bytesEqual(a, b)
		if opcode == OP_EQUALVERIFY {
			if !eq {
				return ErrVerificationFailed
			}
			return nil
		}
		st.push(boolBytes(eq))

	case OP_CHECKMLDSASIG, OP_CHECKMLDSASIGVERIFY:
		// Pop order matches §4.3: the public key is popped first
		// (it was pushed last, on top), the signature second.
		pubBytes, err := st.pop()
		if err != nil {
			return err
		}
		sigBytes, err := st.pop()
		if err != nil {
			return err
		}

		ok := verifyMLDSA(pubBytes, sigBytes, ctx.Message)
		if opcode == OP_CHECKMLDSASIGVERIFY {
			if !ok {
				return ErrSignatureVerificationFailed
			}
			return nil
		}
		st.push(boolBytes(ok))

	case OP_VERIFY:
		v, err := st.pop()
		if err != nil {
			return err
		}
		if !isTrue(v) {
			return ErrVerificationFailed
		}

	default:
		return ErrUnsupportedOpcode
	}

	return nil
}

func verifyMLDSA(pubBytes, sigBytes, message []byte) bool {
	pub, err := mldsa.PublicKeyFromBytes(pubBytes)
	if err != nil {
		return false
	}
	sig, err := mldsa.SignatureFromBytes(sigBytes)
	if err != nil {
		return false
	}
	return mldsa.Verify(pub, message, sig)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
