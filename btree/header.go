package btree

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// header is the persisted sidecar record: everything needed to reopen a
// tree without re-deriving configuration from the block file itself.
type header struct {
	FileName          string  `yaml:"fileName"`
	Order             int     `yaml:"order"`
	NodeSize          int     `yaml:"nodeSize"`
	NodeCount         int64   `yaml:"nodeCount"`
	TreeSize          int64   `yaml:"treeSize"`
	RootBlockNumber   int64   `yaml:"rootBlockNumber"`
	UnallocatedBlocks []int64 `yaml:"unallocatedBlocks"`
}

// headerPath derives the sidecar path for a block file path by stripping
// the expected "flraf" suffix and appending "hdr".
func headerPath(blockFilePath string) string {
	if len(blockFilePath) >= 5 && blockFilePath[len(blockFilePath)-5:] == "flraf" {
		return blockFilePath[:len(blockFilePath)-5] + "hdr"
	}
	// Fall back to a plain extension swap for paths that don't carry the
	// conventional suffix.
	ext := filepath.Ext(blockFilePath)
	return blockFilePath[:len(blockFilePath)-len(ext)] + ".hdr"
}

// writeHeader serializes h to its sidecar path, writing to a temporary
// sibling file and renaming over the destination so a crash mid-write
// cannot leave a half-written header behind.
func writeHeader(h header) error {
	path := headerPath(h.FileName)

	data, err := yaml.Marshal(h)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0666); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("btree: rename header into place: %w", err)
	}
	return nil
}

// readHeader loads and parses the header sidecar at headerFilePath.
func readHeader(headerFilePath string) (header, error) {
	data, err := os.ReadFile(headerFilePath)
	if err != nil {
		return header{}, err
	}
	var h header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return header{}, err
	}
	return h, nil
}
