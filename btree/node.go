package btree

import "fmt"

// NullLink is the sentinel identifying an absent child or an empty tree's
// root.
const NullLink int64 = -1

// Node is one B-tree node: either a leaf (Children empty) or internal
// (len(Children) == len(Keys)+1). NewInternal checks the shape when it
// builds a node; code that builds a Node literal or edits Keys/Children
// directly (the split and rebalance paths) keeps the shape itself.
type Node struct {
	Block    int64
	Keys     []string
	Children []int64
}

// NewLeaf constructs a leaf node holding keys, in order.
func NewLeaf(block int64, keys []string) *Node {
	return &Node{Block: block, Keys: append([]string(nil), keys...)}
}

// NewInternal constructs an internal node, validating that it has exactly
// one more child than it has keys.
func NewInternal(block int64, keys []string, children []int64) (*Node, error) {
	if len(children) != len(keys)+1 {
		return nil, fmt.Errorf("btree: internal node needs %d children for %d keys, got %d", len(keys)+1, len(keys), len(children))
	}
	return &Node{
		Block:    block,
		Keys:     append([]string(nil), keys...),
		Children: append([]int64(nil), children...),
	}, nil
}

// IsLeaf reports whether n has no child links.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// KeyCount returns the number of keys held in n.
func (n *Node) KeyCount() int {
	return len(n.Keys)
}
