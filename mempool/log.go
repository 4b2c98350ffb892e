// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import "github.com/btcsuite/btclog"

// log is the package-level logger used by this package; it defaults to
// the disabled backend until UseLogger supplies a real one.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used for mempool activity.
// This should be called before the package is used.
func UseLogger(logger btclog.Logger) {
	log = logger
}
