// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMeetsTargetEqual(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}
	require.True(t, h.MeetsTarget(h))
}

func TestMeetsTargetFirstByteDiffers(t *testing.T) {
	var hash, target Hash
	hash[0] = 0x01
	target[0] = 0x02
	require.True(t, hash.MeetsTarget(target))
	require.False(t, target.MeetsTarget(hash))
}

func TestMeetsTargetMiddleByteDiffers(t *testing.T) {
	var hash, target Hash
	for i := range hash {
		hash[i] = 0x10
		target[i] = 0x10
	}
	hash[32] = 0x05
	target[32] = 0x06
	require.True(t, hash.MeetsTarget(target))
	require.False(t, target.MeetsTarget(hash))
}

func TestMeetsTargetLastByteDiffers(t *testing.T) {
	var hash, target Hash
	for i := range hash {
		hash[i] = 0xAA
		target[i] = 0xAA
	}
	hash[63] = 0x00
	target[63] = 0x01
	require.True(t, hash.MeetsTarget(target))
	require.False(t, target.MeetsTarget(hash))
}

func TestMeetsTargetZeroHashMeetsAnyTarget(t *testing.T) {
	var zero Hash
	var target Hash
	for i := range target {
		target[i] = 0x01
	}
	require.True(t, zero.MeetsTarget(target))
}

func TestMeetsTargetMaxHashOnlyMeetsMaxTarget(t *testing.T) {
	var max, target Hash
	for i := range max {
		max[i] = 0xFF
	}
	require.False(t, max.MeetsTarget(target))
	require.True(t, max.MeetsTarget(max))
}

// TestMeetsTargetAgreesWithBigEndianOrdering cross-checks MeetsTarget
// against a direct big-endian byte comparison for random hash pairs.
func TestMeetsTargetAgreesWithBigEndianOrdering(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var hash, target Hash
		hbytes := rapid.SliceOfN(rapid.Byte(), HashSize, HashSize).Draw(rt, "hash")
		tbytes := rapid.SliceOfN(rapid.Byte(), HashSize, HashSize).Draw(rt, "target")
		copy(hash[:], hbytes)
		copy(target[:], tbytes)

		want := lexicographicLessOrEqual(hash, target)
		got := hash.MeetsTarget(target)
		require.Equal(rt, want, got)
	})
}

func lexicographicLessOrEqual(a, b Hash) bool {
	for i := 0; i < HashSize; i++ {
		if a[i] < b[i] {
			return true
		}
		if a[i] > b[i] {
			return false
		}
	}
	return true
}
