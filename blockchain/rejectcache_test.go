// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btpc-network/btpc/chaincfg/chainhash"
)

func TestRejectCacheAddAndContains(t *testing.T) {
	cache := NewRejectCache()

	var hash chainhash.Hash
	hash[0] = 0xaa

	require.False(t, cache.Contains(hash))
	cache.Add(hash)
	require.True(t, cache.Contains(hash))
}
