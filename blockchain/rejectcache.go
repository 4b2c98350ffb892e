// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/decred/dcrd/lru"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

// defaultRejectCacheLimit bounds how many recently-rejected block
// hashes a RejectCache remembers, the same purpose btcd's mempool
// recentRejects set serves for transactions.
const defaultRejectCacheLimit = 500

// RejectCache remembers block hashes ValidateBlock has already failed,
// so a peer re-announcing the same invalid block doesn't pay full
// validation cost twice.
type RejectCache struct {
	cache *lru.Cache
}

// NewRejectCache returns a cache bounded at defaultRejectCacheLimit
// entries.
func NewRejectCache() *RejectCache {
	return &RejectCache{cache: lru.NewCache(defaultRejectCacheLimit)}
}

// Add records hash as rejected.
func (r *RejectCache) Add(hash chainhash.Hash) {
	r.cache.Add(hash)
}

// Contains reports whether hash was recently rejected.
func (r *RejectCache) Contains(hash chainhash.Hash) bool {
	return r.cache.Contains(hash)
}
