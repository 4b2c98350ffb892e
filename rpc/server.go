// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/btpc-network/btpc/blockchain"
	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/mempool"
	"github.com/btpc-network/btpc/storage/leveldb"
)

// commandHandler is the shape every registered RPC method satisfies,
// the same signature the teacher's mobile-mining handlers use.
type commandHandler func(s *Server, params []interface{}) (interface{}, error)

// Server holds the collaborators RPC handlers read and write through:
// the chain, its mempool, and the block/transaction store.
type Server struct {
	Chain    *blockchain.Chain
	Pool     *mempool.Mempool
	Store    *leveldb.Store
	Params   *chaincfg.Params
	Notifier *Notifier

	handlers map[string]commandHandler
}

// NewServer wires a Server and registers its full command set.
func NewServer(chain *blockchain.Chain, pool *mempool.Mempool, store *leveldb.Store, params *chaincfg.Params) *Server {
	s := &Server{
		Chain:    chain,
		Pool:     pool,
		Store:    store,
		Params:   params,
		Notifier: NewNotifier(),
	}
	s.handlers = map[string]commandHandler{
		"getblocktemplate":   handleGetBlockTemplate,
		"submitblock":        handleSubmitBlock,
		"getblock":           handleGetBlock,
		"getblockheader":     handleGetBlockHeader,
		"getblockchaininfo":  handleGetBlockChainInfo,
		"gettxout":           handleGetTxOut,
		"getrawtransaction":  handleGetRawTransaction,
		"sendrawtransaction": handleSendRawTransaction,
		"estimatesmartfee":   handleEstimateSmartFee,
	}
	return s
}

// Dispatch runs the named method against params, the single entry
// point an HTTP or websocket transport calls into.
func (s *Server) Dispatch(method string, params []interface{}) (interface{}, error) {
	handler, ok := s.handlers[method]
	if !ok {
		return nil, newRPCError(ErrRPCInvalidParameter, "unknown method %q", method)
	}
	return handler(s, params)
}
