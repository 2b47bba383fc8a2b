package main

import (
	"net"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/gophertree/flrafbtree/db"
	"github.com/gophertree/flrafbtree/pkg/api"
)

func main() {
	cfg, err := LoadEffectiveConfig()
	if err != nil {
		hclog.Default().Error("load config", "error", err)
		os.Exit(1)
	}

	appLog := hclog.New(&hclog.LoggerOptions{
		Name:  "flrafd",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		appLog.Error("mkdir", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	store, err := db.Open(db.Options{
		DataDir:   cfg.DataDir,
		Name:      cfg.StoreName,
		Order:     cfg.Order,
		NodeSize:  cfg.NodeSize,
		CacheSize: cfg.CacheSize,
	})
	if err != nil {
		appLog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	l, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		appLog.Error("listen", "addr", cfg.ListenAddr, "error", err)
		os.Exit(1)
	}

	appLog.Info("flrafd running",
		"addr", cfg.ListenAddr,
		"store", filepath.Join(cfg.DataDir, cfg.StoreName+".flraf"),
		"order", cfg.Order,
		"node_size", cfg.NodeSize,
		"cache_size", cfg.CacheSize)

	if err := api.New(store, appLog.Named("api")).Serve(l); err != nil {
		appLog.Error("serve", "error", err)
		os.Exit(1)
	}
}
