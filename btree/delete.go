package btree

// Remove deletes value from the tree, returning true iff it was present.
// Recursive descent with in-order predecessor substitution for internal
// keys, and steal/merge rebalancing of any node that underflows below
// minKeyCount as the recursion unwinds back up.
func (t *Tree) Remove(value string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false, ErrClosed
	}
	if t.rootBlock == NullLink {
		return false, nil
	}

	removed, err := t.delete(t.rootBlock, nil, -1, value)
	if err != nil {
		return false, err
	}
	if err := t.persistHeader(); err != nil {
		return false, err
	}
	return removed, nil
}

// delete removes value from the subtree rooted at block. parent is the
// in-memory parent node (nil at the root) and childIdx is this node's
// position among parent.Children — carried explicitly rather than
// re-derived by searching parent for value, since the searched-for key
// may no longer be present in the parent once a predecessor substitution
// has overwritten it.
func (t *Tree) delete(block int64, parent *Node, childIdx int, value string) (bool, error) {
	x, err := t.readNode(block)
	if err != nil {
		return false, err
	}

	i := findKeyIndex(x.Keys, value, t.cmp)
	found := i < len(x.Keys) && t.cmp(x.Keys[i], value) == 0

	switch {
	case !found:
		if x.IsLeaf() {
			return false, nil
		}
		ok, err := t.delete(x.Children[i], x, i, value)
		if err != nil || !ok {
			return ok, err
		}

	case !x.IsLeaf():
		pred, err := t.predecessorOf(x.Children[i])
		if err != nil {
			return false, err
		}
		x.Keys[i] = pred
		if _, err := t.delete(x.Children[i], x, i, pred); err != nil {
			return false, err
		}

	default:
		x.Keys = removeStringAt(x.Keys, i)
	}

	if parent != nil && len(x.Keys) < minKeyCount(t.order) {
		if err := t.rebalance(x, parent, childIdx); err != nil {
			return false, err
		}
	}

	if parent == nil {
		if len(x.Keys) == 0 {
			if x.IsLeaf() {
				t.rootBlock = NullLink
			} else {
				t.rootBlock = x.Children[0]
			}
			t.deallocate(x.Block)
			t.nodeCount--
			return true, nil
		}
	}

	if err := t.writeNode(x); err != nil {
		return false, err
	}
	return true, nil
}

// predecessorOf returns the last key of the rightmost leaf reachable from
// block.
func (t *Tree) predecessorOf(block int64) (string, error) {
	n, err := t.readNode(block)
	if err != nil {
		return "", err
	}
	if n.IsLeaf() {
		return n.Keys[len(n.Keys)-1], nil
	}
	return t.predecessorOf(n.Children[len(n.Children)-1])
}

// rebalance fixes underfull node x (at childIdx within parent) by
// stealing a key from a sibling with keys to spare, or merging with one
// otherwise.
func (t *Tree) rebalance(x, parent *Node, childIdx int) error {
	var left, right *Node

	if childIdx > 0 {
		n, err := t.readNode(parent.Children[childIdx-1])
		if err != nil {
			return err
		}
		left = n
	}
	if childIdx < len(parent.Children)-1 {
		n, err := t.readNode(parent.Children[childIdx+1])
		if err != nil {
			return err
		}
		right = n
	}

	minKC := minKeyCount(t.order)

	switch {
	case left != nil && len(left.Keys) > minKC:
		x.Keys = insertStringAt(x.Keys, 0, parent.Keys[childIdx-1])
		parent.Keys[childIdx-1] = left.Keys[len(left.Keys)-1]
		left.Keys = removeStringAt(left.Keys, len(left.Keys)-1)
		if !x.IsLeaf() {
			moved := left.Children[len(left.Children)-1]
			left.Children = left.Children[:len(left.Children)-1]
			x.Children = insertInt64At(x.Children, 0, moved)
		}
		return t.writeNode(left)

	case right != nil && len(right.Keys) > minKC:
		x.Keys = append(x.Keys, parent.Keys[childIdx])
		parent.Keys[childIdx] = right.Keys[0]
		right.Keys = removeStringAt(right.Keys, 0)
		if !x.IsLeaf() {
			moved := right.Children[0]
			right.Children = removeInt64At(right.Children, 0)
			x.Children = append(x.Children, moved)
		}
		return t.writeNode(right)

	case left != nil:
		merged := make([]string, 0, len(left.Keys)+1+len(x.Keys))
		merged = append(merged, left.Keys...)
		merged = append(merged, parent.Keys[childIdx-1])
		merged = append(merged, x.Keys...)
		x.Keys = merged
		if !x.IsLeaf() {
			children := make([]int64, 0, len(left.Children)+len(x.Children))
			children = append(children, left.Children...)
			children = append(children, x.Children...)
			x.Children = children
		}
		parent.Keys = removeStringAt(parent.Keys, childIdx-1)
		parent.Children = removeInt64At(parent.Children, childIdx-1)
		t.deallocate(left.Block)
		t.nodeCount--
		return nil

	default:
		merged := make([]string, 0, len(x.Keys)+1+len(right.Keys))
		merged = append(merged, x.Keys...)
		merged = append(merged, parent.Keys[childIdx])
		merged = append(merged, right.Keys...)
		x.Keys = merged
		if !x.IsLeaf() {
			children := make([]int64, 0, len(x.Children)+len(right.Children))
			children = append(children, x.Children...)
			children = append(children, right.Children...)
			x.Children = children
		}
		parent.Keys = removeStringAt(parent.Keys, childIdx)
		parent.Children = removeInt64At(parent.Children, childIdx+1)
		t.deallocate(right.Block)
		t.nodeCount--
		return nil
	}
}
