// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSize(t *testing.T) {
	require.Equal(t, 64, HashSize)
}

func TestNewHashFromStrRoundTrip(t *testing.T) {
	var raw Hash
	for i := range raw {
		raw[i] = byte(i)
	}

	h, err := NewHashFromStr(raw.String())
	require.NoError(t, err)
	require.Equal(t, raw, *h)
}

func TestNewHashFromStrAccepts0xPrefix(t *testing.T) {
	var raw Hash
	raw[0] = 0xAB

	h, err := NewHashFromStr("0x" + raw.String())
	require.NoError(t, err)
	require.Equal(t, raw, *h)
}

func TestNewHashFromStrRejectsBadLength(t *testing.T) {
	_, err := NewHashFromStr("abcd")
	require.ErrorIs(t, err, ErrHashStrSize)
}

func TestNewHashFromStrRejectsBadHex(t *testing.T) {
	bad := strings.Repeat("zz", HashSize)
	_, err := NewHashFromStr(bad)
	require.Error(t, err)
}

func TestIsZero(t *testing.T) {
	var z Hash
	require.True(t, z.IsZero())

	z[63] = 1
	require.False(t, z.IsZero())
}

func TestIsEqual(t *testing.T) {
	a := HashH([]byte("a"))
	b := HashH([]byte("a"))
	c := HashH([]byte("b"))

	require.True(t, a.IsEqual(&b))
	require.False(t, a.IsEqual(&c))

	var nilHash *Hash
	require.True(t, nilHash.IsEqual(nil))
	require.False(t, a.IsEqual(nil))
}

func TestDoubleHashMatchesTwoSingleHashes(t *testing.T) {
	data := []byte("btpc genesis")
	want := HashH(HashB(data))
	got := DoubleHashH(data)
	require.Equal(t, want, got)
}

func TestDoubleHashRawMatchesDoubleHashH(t *testing.T) {
	left := HashH([]byte("left"))
	right := HashH([]byte("right"))

	want := DoubleHashH(append(append([]byte{}, left[:]...), right[:]...))
	got := DoubleHashRaw(func(w *HashWriter) {
		w.Write(left[:])
		w.Write(right[:])
	})
	require.Equal(t, want, got)
}

func TestSetBytesRejectsWrongLength(t *testing.T) {
	var h Hash
	require.Error(t, h.SetBytes([]byte{1, 2, 3}))
}
