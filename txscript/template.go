// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "github.com/btpc-network/btpc/chaincfg/chainhash"

// PayToPubKeyHashScript builds the standard locking script for the
// P2PKH-ML-DSA template: OP_DUP OP_HASH160 <pubKeyHash> OP_EQUALVERIFY
// OP_CHECKMLDSASIG. pubKeyHash must be the 20-byte Hash160 of the
// spending public key.
func PayToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	return NewScriptBuilder().
		AddOp(OP_DUP).
		AddOp(OP_HASH160).
		AddData(pubKeyHash).
		AddOp(OP_EQUALVERIFY).
		AddOp(OP_CHECKMLDSASIG).
		Script()
}

// SignatureScript builds the standard unlocking script for a P2PKH-ML-DSA
// output: <signature> <publicKey>, pushed in that order so the verifying
// script pops the public key first and the signature second.
func SignatureScript(signature, publicKey []byte) ([]byte, error) {
	return NewScriptBuilder().
		AddData(signature).
		AddData(publicKey).
		Script()
}

// Hash160 returns the first 20 bytes of a single SHA-512 of x, the
// address-derivation hash this template's OP_HASH160 computes.
func Hash160(x []byte) []byte {
	full := chainhash.HashB(x)
	return full[:20]
}
