// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// Consensus-critical size limits shared by the transaction and block
// codecs. MaxScriptSize and MaxScriptOps are mirrored in txscript's
// execution engine; they're declared here too since wire must reject
// oversized scripts purely at deserialization time, before any script
// ever runs.
const (
	MaxScriptSize = 10_000
	MaxScriptOps  = 201

	// MaxBlockSize bounds a block's total canonical serialized size.
	// ML-DSA-65 signatures are large (~3,309 bytes), so this limit sits
	// well above Bitcoin's historical 1 MiB/4 MiB figures to admit a
	// reasonable number of transactions per block.
	MaxBlockSize = 8 * 1024 * 1024
)
