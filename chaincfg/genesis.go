// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/txscript"
	"github.com/btpc-network/btpc/wire"
)

// zeroPubKeyHash is the unspendable 20-byte destination genesis
// coinbase outputs pay to: no key exists whose Hash160 is all zero.
var zeroPubKeyHash = make([]byte, 20)

// GenesisCoinbase builds the single coinbase transaction a network's
// genesis block contains. Its signature script carries the network's
// genesis message as a fixed commitment, in the spirit of embedding an
// unforgeable timestamp proof in the earliest block; its output is
// unspendable, since genesis pays no one.
func GenesisCoinbase(params *Params, reward uint64) (*wire.MsgTx, error) {
	pkScript, err := txscript.PayToPubKeyHashScript(zeroPubKeyHash)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.CoinbaseOutPoint(),
		SignatureScript:  []byte(params.GenesisBlockMessage),
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(&wire.TxOut{
		Value:    reward,
		PkScript: pkScript,
	})
	return tx, nil
}

// GenesisBlock builds params' genesis block: a coinbase-only block whose
// header's prev_hash is the zero hash. timestamp, reward, and nonce are
// supplied by the caller since they vary per network (regtest uses the
// concrete values spec.md's test scenario specifies; mainnet/testnet
// genesis blocks are mined separately and their nonce recorded here once
// known).
func GenesisBlock(params *Params, timestamp uint64, nonce uint32) (*wire.MsgBlock, error) {
	coinbase, err := GenesisCoinbase(params, params.Emission.InitialReward)
	if err != nil {
		return nil, err
	}

	txHash, err := coinbase.TxHash()
	if err != nil {
		return nil, err
	}

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: chainhash.DoubleHashH(txHash[:]),
			Timestamp:  timestamp,
			Bits:       params.PowLimitBits,
			Nonce:      nonce,
		},
		Transactions: []*wire.MsgTx{coinbase},
	}
	return block, nil
}
