// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"bytes"
	"time"

	"github.com/btpc-network/btpc/wire"
)

func singleStringParam(params []interface{}) (string, bool) {
	if len(params) != 1 {
		return "", false
	}
	s, ok := params[0].(string)
	return s, ok
}

func toUint32(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case float64:
		return uint32(n), true
	case int:
		return uint32(n), true
	case uint32:
		return n, true
	default:
		return 0, false
	}
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func decodeBlock(raw []byte) (*wire.MsgBlock, error) {
	block := new(wire.MsgBlock)
	if err := block.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return block, nil
}

func decodeTx(raw []byte) (*wire.MsgTx, error) {
	tx := wire.NewMsgTx(1)
	if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return tx, nil
}

// wallClock returns the current Unix time, used to stamp RPC-side
// events (block templates, mempool arrival). The consensus core itself
// never calls this; see blockchain.wallClockNow for that boundary.
func wallClock() uint64 {
	return uint64(time.Now().Unix())
}
