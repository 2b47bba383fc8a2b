package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gophertree/flrafbtree/codec"
)

// Config defines runtime configuration loaded from YAML and/or flags.
// Zero values mean "unset"; the daemon's merge pass fills in defaults.
type Config struct {
	DataDir    string `yaml:"data_dir"`
	StoreName  string `yaml:"store_name"`
	ListenAddr string `yaml:"listen_addr"`
	Order      int    `yaml:"order"`
	NodeSize   int    `yaml:"node_size"`
	CacheSize  int    `yaml:"cache_size"`
	LogLevel   string `yaml:"log_level"`
}

// Load reads a YAML config file from path. If path is empty or the file
// does not exist, returns an empty Config and nil error. Tree parameters
// the file does set are validated immediately, so a bad order/node-size
// pairing fails at startup instead of at first open.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks whichever tree parameters are set. Order and node size
// are only meaningful as a pair: together they must yield a whole key
// slot, the same derivation the node codec performs at construction.
func (c Config) Validate() error {
	if c.Order != 0 && c.Order < 2 {
		return fmt.Errorf("order must be >= 2, got %d", c.Order)
	}
	if c.NodeSize < 0 {
		return fmt.Errorf("node_size must be positive, got %d", c.NodeSize)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	if c.Order != 0 && c.NodeSize != 0 {
		if _, err := codec.New(codec.Config{Order: c.Order, NodeSize: c.NodeSize, BytesPerChar: 1}); err != nil {
			return err
		}
	}
	return nil
}
