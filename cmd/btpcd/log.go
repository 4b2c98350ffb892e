// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/btpc-network/btpc/blockchain"
	"github.com/btpc-network/btpc/chaincfg/chainhash"
	"github.com/btpc-network/btpc/mempool"
	"github.com/btpc-network/btpc/rpc"
)

// logRotator writes logging output to files that are automatically
// rotated as they reach a max size. A nil value means the log file has
// not yet been set up.
var logRotator *rotator.Rotator

const defaultMaxLogRolls = 8

// logWriter implements io.Writer and writes to both standard output
// and the log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

var backendLog = btclog.NewBackend(logWriter{})

var (
	chainLog   = backendLog.Logger("CHAIN")
	mempoolLog = backendLog.Logger("MMPL")
	rpcLog     = backendLog.Logger("RPCS")
	btpcdLog   = backendLog.Logger("BTPD")
)

// subsystemLoggers maps each subsystem identifier to its logger, for
// commands (e.g. --debuglevel) that adjust verbosity by name.
var subsystemLoggers = map[string]btclog.Logger{
	"CHAIN": chainLog,
	"MMPL":  mempoolLog,
	"RPCS":  rpcLog,
	"BTPD":  btpcdLog,
}

func init() {
	blockchain.UseLogger(chainLog)
	mempool.UseLogger(mempoolLog)
	rpc.UseLogger(rpcLog)
	_ = chainhash.HashSize
}

// initLogRotator initializes the logging rotator to write logs to
// logFile and create roll files in the same directory. It must be
// called before the package-level log rotator variable is used.
func initLogRotator(logFile string) error {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	r, err := rotator.New(logFile, 10*1024, false, defaultMaxLogRolls)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevel sets the logging level for the given subsystem. Invalid
// subsystems are silently ignored.
func setLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// setLogLevels sets the log level for every registered subsystem.
func setLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
