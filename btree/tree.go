package btree

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gophertree/flrafbtree/blockfile"
	"github.com/gophertree/flrafbtree/cache"
	"github.com/gophertree/flrafbtree/codec"
)

// Tree is a persistent, disk-backed B-tree membership set: it stores
// keys only, no associated values. One Tree owns one block file, one
// cache over that file, and the node codec derived from its order and
// node size. A Tree is not safe for concurrent use by multiple callers;
// the mutex here only guards against accidental concurrent goroutine
// misuse, not to provide real parallelism.
type Tree struct {
	mu sync.Mutex

	order    int
	nodeSize int
	cmp      Comparator

	codec *codec.Codec
	cache *cache.Cache

	filePath  string
	rootBlock int64
	nodeCount int64

	closed bool
}

// OpenFresh creates a brand-new, empty tree backed by a new block file
// at filePath.
func OpenFresh(order, nodeSize int, filePath string, cacheCapacity int, cmp Comparator) (*Tree, error) {
	if cmp == nil {
		cmp = DefaultComparator
	}

	cd, err := codec.New(codec.Config{Order: order, NodeSize: nodeSize, BytesPerChar: 1})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	bf, err := blockfile.Open(filePath, nodeSize)
	if err != nil {
		return nil, err
	}

	c, err := cache.Open(cacheCapacity, bf, nil)
	if err != nil {
		bf.Close()
		return nil, err
	}

	t := &Tree{
		order:     order,
		nodeSize:  nodeSize,
		cmp:       cmp,
		codec:     cd,
		cache:     c,
		filePath:  filePath,
		rootBlock: NullLink,
		nodeCount: 0,
	}
	if err := t.persistHeader(); err != nil {
		c.Close()
		return nil, err
	}
	return t, nil
}

// OpenHeader reopens a tree from its header sidecar; the sidecar carries
// the block-file path, order, node size, root, and free-list.
func OpenHeader(headerFilePath string, cacheCapacity int, cmp Comparator) (*Tree, error) {
	if cmp == nil {
		cmp = DefaultComparator
	}

	h, err := readHeader(headerFilePath)
	if err != nil {
		return nil, err
	}

	cd, err := codec.New(codec.Config{Order: h.Order, NodeSize: h.NodeSize, BytesPerChar: 1})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	bf, err := blockfile.Open(h.FileName, h.NodeSize)
	if err != nil {
		return nil, err
	}

	c, err := cache.Open(cacheCapacity, bf, h.UnallocatedBlocks)
	if err != nil {
		bf.Close()
		return nil, err
	}

	return &Tree{
		order:     h.Order,
		nodeSize:  h.NodeSize,
		cmp:       cmp,
		codec:     cd,
		cache:     c,
		filePath:  h.FileName,
		rootBlock: h.RootBlockNumber,
		nodeCount: h.NodeCount,
	}, nil
}

// IsEmpty reports whether the tree currently holds no keys.
func (t *Tree) IsEmpty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rootBlock == NullLink
}

// SizeInBytes returns nodeCount × nodeSize, the tree's on-disk footprint.
func (t *Tree) SizeInBytes() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nodeCount * int64(t.nodeSize)
}

// Close flushes the cache, closes the underlying block file, and
// rewrites the header a final time, in that order.
func (t *Tree) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if err := t.cache.Close(); err != nil {
		return err
	}
	if err := t.persistHeader(); err != nil {
		return err
	}
	t.closed = true
	return nil
}

func (t *Tree) readNode(block int64) (*Node, error) {
	buf, err := t.cache.Read(block)
	if err != nil {
		return nil, err
	}
	cn, err := t.codec.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if len(cn.Links) == 0 {
		return NewLeaf(block, cn.Keys), nil
	}
	return NewInternal(block, cn.Keys, cn.Links)
}

func (t *Tree) writeNode(n *Node) error {
	buf, err := t.codec.Encode(codec.Node{Keys: n.Keys, Links: n.Children})
	if errors.Is(err, codec.ErrKeyTooLong) {
		return fmt.Errorf("%w: %v", ErrKeyTooLong, err)
	}
	if err != nil {
		return err
	}
	return t.cache.Write(n.Block, buf)
}

func (t *Tree) allocate() int64 {
	return t.cache.Allocate()
}

func (t *Tree) deallocate(block int64) {
	t.cache.Deallocate(block)
}

func (t *Tree) persistHeader() error {
	return writeHeader(header{
		FileName:          t.filePath,
		Order:             t.order,
		NodeSize:          t.nodeSize,
		NodeCount:         t.nodeCount,
		TreeSize:          t.nodeCount * int64(t.nodeSize),
		RootBlockNumber:   t.rootBlock,
		UnallocatedBlocks: t.cache.FreeList(),
	})
}
