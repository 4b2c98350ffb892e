// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/btcsuite/websocket"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// blockNotification is broadcast to every subscribed websocket client
// whenever a new block extends the chain.
type blockNotification struct {
	Type   string `json:"type"`
	Hash   string `json:"hash"`
	Height uint32 `json:"height"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Notifier fans out chain-tip notifications to subscribed websocket
// clients, in the register/broadcast/unregister shape the teacher's
// notification manager uses for NotifyBlockConnected.
type Notifier struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewNotifier returns an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{clients: make(map[*websocket.Conn]struct{})}
}

// HandleWebSocket upgrades an HTTP request to a websocket connection
// and registers it to receive block notifications until it disconnects.
func (n *Notifier) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	n.mu.Lock()
	n.clients[conn] = struct{}{}
	n.mu.Unlock()

	go func() {
		defer func() {
			n.mu.Lock()
			delete(n.clients, conn)
			n.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// NotifyBlockConnected broadcasts hash/height to every subscribed
// client. A client that fails to receive a write is dropped.
func (n *Notifier) NotifyBlockConnected(hash chainhash.Hash, height uint32) {
	data, err := json.Marshal(&blockNotification{
		Type:   "block_connected",
		Hash:   hash.String(),
		Height: height,
	})
	if err != nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for conn := range n.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(n.clients, conn)
		}
	}
}
