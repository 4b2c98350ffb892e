// Copyright (c) 2013-2024 The btcsuite developers
// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash provides the 64-byte SHA-512 hash type used
// throughout BTPC: block hashes, transaction ids, and merkle nodes are
// all values of this type.
package chainhash

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// HashSize is the size, in bytes, of a hash in BTPC: a full SHA-512
// digest, not the truncated 32-byte hash Bitcoin-lineage chains use.
const HashSize = 64

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified
// a hash string whose length is not exactly MaxHashStringSize characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is a 64-byte SHA-512 hash used for block identification and
// transaction identification.
type Hash [HashSize]byte

// String returns the Hash as the lowercase hexadecimal string, as produced
// by hex.EncodeToString, consistent with the big-endian display convention
// used by other chainhash-style libraries.
func (hash Hash) String() string {
	return hex.EncodeToString(hash[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (hash *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, hash[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (hash *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(newHash), HashSize)
	}
	copy(hash[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as the hash.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// IsZero reports whether the hash is the all-zero hash.
func (hash *Hash) IsZero() bool {
	return *hash == Hash{}
}

// NewHash returns a new Hash from a byte slice. An error is returned if
// the number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a hash string. The string should be
// the hexadecimal string of a hash, trimming an optional leading "0x".
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the passed hexadecimal string into dst.
func Decode(dst *Hash, src string) error {
	if len(src) > 1 && src[0] == '0' && (src[1] == 'x' || src[1] == 'X') {
		src = src[2:]
	}

	if len(src) != MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes [HashSize]byte
	_, err := hex.Decode(srcBytes[:], []byte(src))
	if err != nil {
		return err
	}
	copy(dst[:], srcBytes[:])
	return nil
}

// HashB calculates SHA-512(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	sum := sha512.Sum512(b)
	return sum[:]
}

// HashH calculates SHA-512(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha512.Sum512(b))
}

// DoubleHashB calculates SHA-512(SHA-512(b)) and returns the resulting
// bytes. This is the digest used for transaction ids and block hashes.
func DoubleHashB(b []byte) []byte {
	first := sha512.Sum512(b)
	second := sha512.Sum512(first[:])
	return second[:]
}

// DoubleHashH calculates SHA-512(SHA-512(b)) and returns the resulting
// bytes as a Hash.
func DoubleHashH(b []byte) Hash {
	first := sha512.Sum512(b)
	return Hash(sha512.Sum512(first[:]))
}

// DoubleHashRaw calculates SHA-512(SHA-512(f())) where f is a function
// that writes the data to hash into the provided writer, mirroring the
// streaming variant used for merkle branch hashing.
func DoubleHashRaw(f func(w *HashWriter)) Hash {
	w := new(HashWriter)
	f(w)
	first := sha512.Sum512(w.buf)
	return Hash(sha512.Sum512(first[:]))
}

// HashWriter is a minimal io.Writer-compatible accumulator used by
// DoubleHashRaw to avoid requiring callers to build an intermediate byte
// slice themselves.
type HashWriter struct {
	buf []byte
}

// Write appends p to the writer's internal buffer, always returning
// len(p), nil.
func (w *HashWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}
