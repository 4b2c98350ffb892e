// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command btpcd runs a BTPC full node: it opens the block/UTXO store,
// replays it into an in-memory Chain, serves the JSON-RPC surface of
// §6.3 over HTTP, and accepts submitted blocks and transactions from
// whatever mining and wallet collaborators call in.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/btpc-network/btpc/blockchain"
	"github.com/btpc-network/btpc/chaincfg"
	"github.com/btpc-network/btpc/mempool"
	"github.com/btpc-network/btpc/rpc"
	"github.com/btpc-network/btpc/storage/leveldb"
	"github.com/btpc-network/btpc/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "btpcd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := initLogRotator(cfg.logFile()); err != nil {
		return fmt.Errorf("init log rotator: %w", err)
	}
	setLogLevels(cfg.DebugLevel)
	btpcdLog.Infof("btpcd starting, network %s, datadir %s", cfg.params.Name, cfg.dataDir())

	store, err := leveldb.Open(cfg.dataDir())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	chain := blockchain.NewChain(cfg.params)
	if err := loadOrInitChain(chain, store, cfg.params); err != nil {
		return fmt.Errorf("load chain: %w", err)
	}
	btpcdLog.Infof("chain ready at height %d, tip %s", chain.Height(), chain.BestHash())

	pool := mempool.New(mempool.Config{
		MaxSizeBytes: cfg.MaxMempool * 1024 * 1024,
		MinFeeRate:   cfg.MinRelayFee,
	})

	server := rpc.NewServer(chain, pool, store, cfg.params)

	mux := http.NewServeMux()
	mux.HandleFunc("/", rpcHTTPHandler(server))
	mux.HandleFunc("/ws", server.Notifier.HandleWebSocket)

	httpServer := &http.Server{Addr: cfg.RPCListen, Handler: mux}
	go func() {
		btpcdLog.Infof("RPC listening on %s", cfg.RPCListen)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			btpcdLog.Errorf("RPC server stopped: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	btpcdLog.Infof("shutting down")
	_ = httpServer.Close()
	return store.FlushWAL()
}

// loadOrInitChain replays every block the store already holds into
// chain, height 0 upward; if the store is empty, it mints and persists
// the network's genesis block first. This is the daemon's own
// bootstrap step, layered on top of the consensus core's
// InitializeWithGenesis/AddBlock operations rather than inside them,
// since the core itself performs no I/O (§5).
func loadOrInitChain(chain *blockchain.Chain, store *leveldb.Store, params *chaincfg.Params) error {
	maxHeight, hasBlocks, err := store.GetMaxHeight()
	if err != nil {
		return err
	}

	if !hasBlocks {
		genesis, err := mineGenesis(params)
		if err != nil {
			return err
		}
		if err := chain.InitializeWithGenesis(genesis); err != nil {
			return err
		}
		if err := persistBlock(store, genesis, 0); err != nil {
			return err
		}
		return nil
	}

	for height := uint32(0); height <= maxHeight; height++ {
		hash, err := store.GetHeight(height)
		if err != nil {
			return fmt.Errorf("height index missing at %d: %w", height, err)
		}
		block, err := store.GetBlock(hash)
		if err != nil {
			return fmt.Errorf("block missing for height %d: %w", height, err)
		}
		if height == 0 {
			if err := chain.InitializeWithGenesis(block); err != nil {
				return fmt.Errorf("replay genesis: %w", err)
			}
			continue
		}
		if err := chain.AddBlock(block); err != nil {
			return fmt.Errorf("replay block at height %d: %w", height, err)
		}
	}
	return nil
}

// mineGenesis builds and mines params' genesis block under its own
// maximum target, the same bootstrap step genesis_tool performs
// offline for mainnet/testnet; for regtest this runs quickly enough to
// do inline at daemon startup.
func mineGenesis(params *chaincfg.Params) (*wire.MsgBlock, error) {
	const genesisTimestamp = 1735344000
	block, err := chaincfg.GenesisBlock(params, genesisTimestamp, 0)
	if err != nil {
		return nil, err
	}
	for nonce := uint32(0); ; nonce++ {
		block.Header.Nonce = nonce
		if block.BlockHash().MeetsTarget(params.PowLimit) {
			return block, nil
		}
		if nonce == ^uint32(0) {
			return nil, fmt.Errorf("exhausted nonce space mining genesis under %s difficulty", params.Name)
		}
	}
}

func persistBlock(store *leveldb.Store, block *wire.MsgBlock, height uint32) error {
	if err := store.PutBlock(block); err != nil {
		return err
	}
	hash := block.BlockHash()
	if err := store.PutHeightIndex(height, hash); err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		if err := store.PutTransaction(tx); err != nil {
			return err
		}
	}
	return store.FlushWAL()
}

// rpcHTTPHandler adapts the JSON-RPC 2.0 request/response shape of
// rpc.Request/rpc.Response onto a single HTTP handler, decoding one
// request body and dispatching it through Server.Dispatch.
func rpcHTTPHandler(s *rpc.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}

		var req rpc.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, &rpc.Response{Error: &rpc.RPCError{Code: -32700, Message: "parse error"}})
			return
		}

		params := make([]interface{}, len(req.Params))
		for i, raw := range req.Params {
			_ = json.Unmarshal(raw, &params[i])
		}

		result, err := s.Dispatch(req.Method, params)
		resp := &rpc.Response{ID: req.ID}
		if err != nil {
			if rpcErr, ok := err.(*rpc.RPCError); ok {
				resp.Error = rpcErr
			} else {
				resp.Error = &rpc.RPCError{Code: -32603, Message: err.Error()}
			}
		} else {
			resp.Result = result
		}
		writeJSON(w, resp)
	}
}

func writeJSON(w http.ResponseWriter, resp *rpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
