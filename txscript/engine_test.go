// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha512"
	"testing"

	"github.com/btpc-network/btpc/crypto/mldsa"
	"github.com/stretchr/testify/require"
)

func TestPayToPubKeyHashRoundTrip(t *testing.T) {
	pub, priv, err := mldsa.GenerateKey()
	require.NoError(t, err)

	pubKeyHash := Hash160(pub.Bytes())
	pkScript, err := PayToPubKeyHashScript(pubKeyHash)
	require.NoError(t, err)

	message := []byte("signing preimage for input 0")
	sig, err := mldsa.Sign(priv, message)
	require.NoError(t, err)

	sigScript, err := SignatureScript(sig.Bytes(), pub.Bytes())
	require.NoError(t, err)

	ok, err := Execute(sigScript, pkScript, &Context{Message: message})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestPayToPubKeyHashFailsOnWrongMessage(t *testing.T) {
	pub, priv, err := mldsa.GenerateKey()
	require.NoError(t, err)

	pubKeyHash := Hash160(pub.Bytes())
	pkScript, err := PayToPubKeyHashScript(pubKeyHash)
	require.NoError(t, err)

	sig, err := mldsa.Sign(priv, []byte("real message"))
	require.NoError(t, err)
	sigScript, err := SignatureScript(sig.Bytes(), pub.Bytes())
	require.NoError(t, err)

	ok, err := Execute(sigScript, pkScript, &Context{Message: []byte("different message")})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPayToPubKeyHashFailsOnWrongKey(t *testing.T) {
	pub, _, err := mldsa.GenerateKey()
	require.NoError(t, err)
	_, otherPriv, err := mldsa.GenerateKey()
	require.NoError(t, err)

	pubKeyHash := Hash160(pub.Bytes())
	pkScript, err := PayToPubKeyHashScript(pubKeyHash)
	require.NoError(t, err)

	message := []byte("msg")
	sig, err := mldsa.Sign(otherPriv, message)
	require.NoError(t, err)
	sigScript, err := SignatureScript(sig.Bytes(), pub.Bytes())
	require.NoError(t, err)

	// The key hash matches, so OP_EQUALVERIFY passes; the signature does
	// not verify under pub, so OP_CHECKMLDSASIG leaves false on the stack.
	ok, err := Execute(sigScript, pkScript, &Context{Message: message})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDupOnEmptyStackUnderflows(t *testing.T) {
	script := []byte{OP_DUP}
	_, err := Execute(nil, script, &Context{})
	require.ErrorIs(t, err, ErrStackUnderflow)
}

func TestEqualVerify(t *testing.T) {
	b := NewScriptBuilder().AddData([]byte("a")).AddData([]byte("a")).AddOp(OP_EQUALVERIFY).AddOp(OP_1)
	script, err := b.Script()
	require.NoError(t, err)

	ok, err := Execute(nil, script, &Context{})
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEqualVerifyFailsOnMismatch(t *testing.T) {
	b := NewScriptBuilder().AddData([]byte("a")).AddData([]byte("b")).AddOp(OP_EQUALVERIFY)
	script, err := b.Script()
	require.NoError(t, err)

	_, err = Execute(nil, script, &Context{})
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestScriptTooLargeRejected(t *testing.T) {
	big := make([]byte, MaxScriptSize+1)
	_, err := Parse(big)
	require.ErrorIs(t, err, ErrScriptTooLarge)
}

func TestTooManyOpsRejected(t *testing.T) {
	script := make([]byte, MaxScriptOps+1)
	for i := range script {
		script[i] = OP_1
	}
	_, err := Parse(script)
	require.ErrorIs(t, err, ErrTooManyOperations)
}

func TestFalseIsFalsy(t *testing.T) {
	require.False(t, isTrue(falseValue))
	require.True(t, isTrue(trueValue))
	require.False(t, isTrue(nil))
}

func TestHash160IsFirst20BytesOfSingleSHA512(t *testing.T) {
	x := []byte("hash160 input")
	got := Hash160(x)
	require.Len(t, got, 20)
	full := sha512.Sum512(x)
	require.Equal(t, full[:20], got)
}

func TestPushDataLargeSignaturePayload(t *testing.T) {
	sig := make([]byte, mldsa.SignatureSize)
	for i := range sig {
		sig[i] = byte(i)
	}
	b := NewScriptBuilder().AddData(sig)
	script, err := b.Script()
	require.NoError(t, err)

	ops, err := Parse(script)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	require.Equal(t, sig, ops[0].Data)
}
