// Command flrafload bulk-loads a newline-delimited text file of keys
// into a store, creating it fresh if no header sidecar exists yet.
package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/gophertree/flrafbtree/db"
)

func main() {
	var (
		input     = flag.String("input", "", "newline-delimited key file to load")
		dataDir   = flag.String("data-dir", "./data", "data directory for the block file and header")
		storeName = flag.String("store-name", "store", "block file stem (yields <stem>.flraf and <stem>.hdr)")
		order     = flag.Int("order", 8, "tree order m; fresh stores only")
		nodeSize  = flag.Int("node-size", 256, "node block size in bytes; fresh stores only")
		cacheSize = flag.Int("cache-size", 4, "block cache capacity in entries")
		logLevel  = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	)
	flag.Parse()

	appLog := hclog.New(&hclog.LoggerOptions{
		Name:  "flrafload",
		Level: hclog.LevelFromString(*logLevel),
	})

	if *input == "" {
		appLog.Error("missing required -input flag")
		os.Exit(1)
	}

	f, err := os.Open(*input)
	if err != nil {
		appLog.Error("open input", "path", *input, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		appLog.Error("mkdir", "dir", *dataDir, "error", err)
		os.Exit(1)
	}

	store, err := db.Open(db.Options{
		DataDir:   *dataDir,
		Name:      *storeName,
		Order:     *order,
		NodeSize:  *nodeSize,
		CacheSize: *cacheSize,
	})
	if err != nil {
		appLog.Error("open store", "error", err)
		os.Exit(1)
	}

	var added, skipped, lines int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key := strings.TrimSpace(scanner.Text())
		if key == "" {
			continue
		}
		lines++
		ok, err := store.Add(key)
		if err != nil {
			appLog.Error("add", "key", key, "line", lines, "error", err)
			os.Exit(1)
		}
		if ok {
			added++
		} else {
			skipped++
		}
		if lines%10000 == 0 {
			appLog.Info("progress", "keys", lines, "added", added, "duplicates", skipped)
		}
	}
	if err := scanner.Err(); err != nil {
		appLog.Error("scan input", "error", err)
		os.Exit(1)
	}

	if err := store.Close(); err != nil {
		appLog.Error("close store", "error", err)
		os.Exit(1)
	}

	appLog.Info("load complete", "keys", lines, "added", added, "duplicates", skipped)
}
