package main

import "github.com/gophertree/flrafbtree/pkg/config"

// CLIOverrides carries CLI-provided values. Empty strings mean "not set".
// For integers, a pointer is used to detect if the flag was explicitly set.
type CLIOverrides struct {
	DataDir    string
	StoreName  string
	ListenAddr string
	LogLevel   string
	Order      *int
	NodeSize   *int
	CacheSize  *int
}

func mergeConfig(fileCfg config.Config, cli CLIOverrides) config.Config {
	cfg := fileCfg

	// Apply CLI overrides when provided
	if cli.DataDir != "" {
		cfg.DataDir = cli.DataDir
	}
	if cli.StoreName != "" {
		cfg.StoreName = cli.StoreName
	}
	if cli.ListenAddr != "" {
		cfg.ListenAddr = cli.ListenAddr
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	if cli.Order != nil {
		cfg.Order = *cli.Order
	}
	if cli.NodeSize != nil {
		cfg.NodeSize = *cli.NodeSize
	}
	if cli.CacheSize != nil {
		cfg.CacheSize = *cli.CacheSize
	}

	// Defaults for any still-empty values
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.StoreName == "" {
		cfg.StoreName = "store"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8081"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Order == 0 {
		cfg.Order = 8
	}
	if cfg.NodeSize == 0 {
		cfg.NodeSize = 256
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 4
	}

	return cfg
}
