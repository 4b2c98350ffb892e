// Copyright (c) 2025 The btpc developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/btpc-network/btpc/chaincfg"
)

const (
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "btpcd.log"
	defaultRPCListen      = "127.0.0.1:8734"
	defaultMinRelayFeeSat = 1.0
	defaultMaxMempoolMB   = 300
)

var (
	defaultHomeDir = filepath.Join(appDataDir(), "btpcd")
	defaultDataDir = filepath.Join(defaultHomeDir, defaultDataDirname)
	defaultLogDir  = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// config defines the command-line options btpcd accepts, in the
// long/short-flag struct-tag shape go-flags parses directly, the same
// convention btcd's own config.go uses. No config file is read.
type config struct {
	HomeDir     string  `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir      string  `long:"logdir" description:"Directory to log output"`
	TestNet     bool    `long:"testnet" description:"Use the test network"`
	RegTest     bool    `long:"regtest" description:"Use the regression test network"`
	RPCListen   string  `long:"rpclisten" description:"Add an interface/port to listen for RPC connections"`
	DebugLevel  string  `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical}"`
	MinRelayFee float64 `long:"minrelaytxfee" description:"Minimum fee rate (satoshis/byte) a transaction must carry to be relayed"`
	MaxMempool  uint64  `long:"maxmempool" description:"Maximum mempool size in megabytes"`

	params *chaincfg.Params
}

// defaultConfig returns a config populated with the daemon's defaults,
// prior to applying command-line overrides.
func defaultConfig() *config {
	return &config{
		HomeDir:     defaultHomeDir,
		LogDir:      defaultLogDir,
		RPCListen:   defaultRPCListen,
		DebugLevel:  "info",
		MinRelayFee: defaultMinRelayFeeSat,
		MaxMempool:  defaultMaxMempoolMB,
	}
}

// loadConfig parses command-line arguments into a config, resolves the
// selected network's parameters, and creates the data/log directories
// if they do not already exist.
func loadConfig() (*config, error) {
	cfg := defaultConfig()

	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.TestNet && cfg.RegTest {
		return nil, fmt.Errorf("--testnet and --regtest cannot both be specified")
	}
	switch {
	case cfg.RegTest:
		cfg.params = &chaincfg.RegressionNetParams
	case cfg.TestNet:
		cfg.params = &chaincfg.TestNetParams
	default:
		cfg.params = &chaincfg.MainNetParams
	}

	if err := os.MkdirAll(cfg.HomeDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create home directory: %w", err)
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// dataDir returns the directory this config's selected network stores
// its block database under, namespaced per network so mainnet,
// testnet, and regtest data never collide in the same home directory.
func (c *config) dataDir() string {
	return filepath.Join(c.HomeDir, defaultDataDirname, c.params.Name.String())
}

// logFile returns the path the log rotator writes to.
func (c *config) logFile() string {
	return filepath.Join(c.LogDir, defaultLogFilename)
}

// appDataDir returns an operating-system-appropriate default application
// data directory, the same fallback btcsuite's btcutil.AppDataDir
// provides when no XDG/APPDATA override is set.
func appDataDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".btpcd")
	}
	return "."
}
