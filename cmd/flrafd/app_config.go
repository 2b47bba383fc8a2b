package main

import (
	"flag"

	"github.com/gophertree/flrafbtree/pkg/config"
)

// LoadEffectiveConfig defines CLI flags, parses the optional YAML config,
// applies CLI overrides, and returns the effective configuration.
func LoadEffectiveConfig() (config.Config, error) {
	var (
		configPath string
		dataDir    string
		storeName  string
		listenAddr string
		logLevel   string
		order      settableInt
		nodeSize   settableInt
		cacheSize  settableInt
	)

	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.StringVar(&dataDir, "data-dir", "", "data directory for the block file and header")
	flag.StringVar(&storeName, "store-name", "", "block file stem (yields <stem>.flraf and <stem>.hdr)")
	flag.StringVar(&listenAddr, "listen-addr", "", "tcp bind address")
	flag.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flag.Var(&order, "order", "tree order m (max children per node); fresh stores only")
	flag.Var(&nodeSize, "node-size", "node block size in bytes; fresh stores only")
	flag.Var(&cacheSize, "cache-size", "block cache capacity in entries")
	flag.Parse()

	cfgFile, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	cli := CLIOverrides{
		DataDir:    dataDir,
		StoreName:  storeName,
		ListenAddr: listenAddr,
		LogLevel:   logLevel,
	}
	if order.set {
		cli.Order = &order.val
	}
	if nodeSize.set {
		cli.NodeSize = &nodeSize.val
	}
	if cacheSize.set {
		cli.CacheSize = &cacheSize.val
	}

	cfg := mergeConfig(cfgFile, cli)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
