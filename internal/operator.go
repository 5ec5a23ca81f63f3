package internal

import (
	"fmt"
	"unsafe"
)

// InsertNode walks the tree rooted at node looking for where key belongs,
// splitting leaves and inner-node prefixes as needed. It returns the node
// that should replace node in its parent's slot (itself, unless a split or
// growth occurred), the value previously stored at key if any, and whether
// a previous value was replaced.
func InsertNode[V any](node INode[V], key []byte, value V, depth int) (INode[V], V, bool, error) {
	if node == nil {
		return newLeaf[V](key, value), *new(V), false, nil
	}

	if node.GetKind() == KindLeaf {
		leaf := node.(*Leaf[V])
		if leaf.isExactMatch(key) {
			old := leaf.getValue()
			leaf.setValue(value)
			return leaf, old, true, nil
		}

		lcp := longestCommonPrefix(key, leaf.key(), depth)
		splitAt := depth + lcp

		nn := NewNode[V](KindNode4)
		nn.setPrefix(key[depth:splitAt])

		switch {
		case splitAt == len(leaf.key()):
			// leaf's key ends exactly where the split happens: it has no
			// further byte to be keyed by, so it becomes nn's terminal
			// rather than a byte-indexed child.
			nn.setTerminal(leaf)
			newL := newLeaf[V](key, value)
			if err := nn.addChild(key[splitAt], newL); err != nil {
				return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
			}
		case splitAt == len(key):
			// the inserted key ends exactly where the split happens: it
			// becomes nn's terminal, and the existing leaf keeps its edge.
			newL := newLeaf[V](key, value)
			nn.setTerminal(newL)
			if err := nn.addChild(leaf.key()[splitAt], leaf); err != nil {
				return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
			}
		default:
			if err := nn.addChild(leaf.key()[splitAt], leaf); err != nil {
				return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
			}
			newL := newLeaf[V](key, value)
			if err := nn.addChild(key[splitAt], newL); err != nil {
				return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
			}
		}
		return nn, *new(V), false, nil
	}

	if node.getPrefixLen() > 0 {
		mismatch := prefixMismatch(node, key, depth)
		if mismatch != int(node.getPrefixLen()) {
			full := fullPrefix(node, depth)

			nn := NewNode[V](KindNode4)
			nn.setPrefix(full[:mismatch])

			edge := full[mismatch]
			node.setPrefix(full[mismatch+1:])
			if err := nn.addChild(edge, node); err != nil {
				return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
			}

			newL := newLeaf[V](key, value)
			if depth+mismatch >= len(key) {
				// key ends exactly at the split point: it has no further
				// byte to be keyed by under nn, so it becomes nn's terminal.
				nn.setTerminal(newL)
			} else if err := nn.addChild(key[depth+mismatch], newL); err != nil {
				return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
			}
			return nn, *new(V), false, nil
		}
		depth += int(node.getPrefixLen())
	}

	if depth >= len(key) {
		// key ends exactly at node's accumulated prefix: store it as node's
		// terminal rather than indexing a nonexistent next byte.
		if term := node.getTerminal(); term != nil {
			old := term.getValue()
			term.setValue(value)
			return node, old, true, nil
		}
		node.setTerminal(newLeaf[V](key, value))
		return node, *new(V), false, nil
	}

	edge := key[depth]
	child := node.getChild(edge)
	if child == nil {
		newL := newLeaf[V](key, value)
		if !node.hasEnoughSpace() {
			node = node.grow()
		}
		if err := node.addChild(edge, newL); err != nil {
			return nil, *new(V), false, fmt.Errorf("%w: %v", failedToAddChild, err)
		}
		return node, *new(V), false, nil
	}

	newChild, old, replaced, err := InsertNode[V](child, key, value, depth+1)
	if err != nil {
		return nil, *new(V), false, err
	}
	if newChild != child {
		if err := node.replaceChild(edge, newChild); err != nil {
			return nil, *new(V), false, err
		}
	}
	return node, old, replaced, nil
}

// RemoveNode walks the tree rooted at node looking for key, collapsing and
// shrinking nodes on the way back up. It returns the node that should
// replace node in its parent's slot (nil if the subtree is now empty), the
// removed value, and whether key was actually present.
func RemoveNode[V any](node INode[V], key []byte, depth int) (INode[V], V, bool, error) {
	if node == nil {
		return nil, *new(V), false, NoSuchKey
	}

	if node.GetKind() == KindLeaf {
		leaf := node.(*Leaf[V])
		if !leaf.isExactMatch(key) {
			return node, *new(V), false, NoSuchKey
		}
		return nil, leaf.getValue(), true, nil
	}

	if node.getPrefixLen() > 0 {
		if prefixMismatch(node, key, depth) != int(node.getPrefixLen()) {
			return node, *new(V), false, NoSuchKey
		}
		depth += int(node.getPrefixLen())
	}
	if depth >= len(key) {
		term := node.getTerminal()
		if term == nil {
			return node, *new(V), false, NoSuchKey
		}
		node.setTerminal(nil)
		return finalizeAfterRemoval(node, depth), term.getValue(), true, nil
	}

	edge := key[depth]
	child := node.getChild(edge)
	if child == nil {
		return node, *new(V), false, NoSuchKey
	}

	newChild, removedValue, found, err := RemoveNode[V](child, key, depth+1)
	if !found {
		return node, *new(V), false, err
	}

	if newChild == nil {
		if err := node.removeChild(edge); err != nil {
			return node, *new(V), false, fmt.Errorf("%w: %v", failedToRemoveChild, err)
		}
	} else if newChild != child {
		if err := node.replaceChild(edge, newChild); err != nil {
			return node, *new(V), false, err
		}
	}

	return finalizeAfterRemoval(node, depth), removedValue, true, nil
}

// finalizeAfterRemoval re-evaluates node's shape once a child or terminal
// has just been removed from it: an empty node collapses to nil or to its
// surviving terminal, a Node4 left with exactly one byte child and no
// terminal collapses into that child, and anything else shrinks if it has
// dropped below its variant's threshold.
func finalizeAfterRemoval[V any](node INode[V], depth int) INode[V] {
	count := node.getChildrenLen()
	term := node.getTerminal()

	if count == 0 {
		if term == nil {
			return nil
		}
		return term
	}
	if count == 1 && term == nil && node.GetKind() == KindNode4 {
		onlyEdge, onlyChild, err := node.getChildByIndex(0)
		if err == nil {
			// depth here is post-advance (RemoveNode already added
			// node.getPrefixLen() before calling in), but fullPrefix
			// wants the depth at which node's own prefix begins.
			return collapse(node, onlyEdge, onlyChild, depth-int(node.getPrefixLen()))
		}
	}

	if node.isShrinkable() {
		node = node.shrink()
	}
	return node
}

// collapse folds a Node4's last remaining edge into the node itself: a
// leaf child replaces the node outright, otherwise the edge byte and the
// child's own prefix are concatenated onto the node's prefix and the child
// takes the node's place.
func collapse[V any](node INode[V], edge byte, child INode[V], depth int) INode[V] {
	if child.GetKind() == KindLeaf {
		return child
	}

	parentPrefix := fullPrefix(node, depth)
	childPrefix := fullPrefix(child, depth+len(parentPrefix)+1)

	merged := make([]byte, 0, len(parentPrefix)+1+len(childPrefix))
	merged = append(merged, parentPrefix...)
	merged = append(merged, edge)
	merged = append(merged, childPrefix...)
	child.setPrefix(merged)
	return child
}

// Get looks up key starting at depth, returning the stored value and
// whether it was found. Path compression is checked only against the
// inline prefix cache on the way down - correctness doesn't require more,
// since the final comparison against the leaf's full key is authoritative.
func Get[V any](node INode[V], key []byte, depth int) (V, bool) {
	for node != nil {
		if node.GetKind() == KindLeaf {
			leaf := node.(*Leaf[V])
			if leaf.isExactMatch(key) {
				return leaf.getValue(), true
			}
			return *new(V), false
		}

		if node.getPrefixLen() > 0 {
			matched := node.checkPrefix(key, depth)
			if matched != minInt(int(node.getPrefixLen()), MaxPrefixLen) {
				return *new(V), false
			}
			depth += int(node.getPrefixLen())
		}
		if depth >= len(key) {
			if term := node.getTerminal(); term != nil && term.isExactMatch(key) {
				return term.getValue(), true
			}
			return *new(V), false
		}
		node = node.getChild(key[depth])
		depth++
	}
	return *new(V), false
}

// LongestPrefixMatch descends the tree the same way Get does, tracking the
// deepest terminal or leaf seen along the way whose stored key is itself a
// byte-prefix of key. Several such candidates can exist on one descent
// path - one per ancestor node whose accumulated prefix ended a previously
// inserted key - so the best one seen so far is kept until a longer match
// is found or the descent runs out of tree.
func LongestPrefixMatch[V any](node INode[V], key []byte, depth int) ([]byte, V, bool) {
	var bestKey []byte
	var bestVal V
	found := false

	for node != nil {
		if node.GetKind() == KindLeaf {
			leaf := node.(*Leaf[V])
			if len(leaf.k) <= len(key) && string(leaf.k) == string(key[:len(leaf.k)]) {
				return leaf.k, leaf.getValue(), true
			}
			break
		}

		if term := node.getTerminal(); term != nil && len(term.k) <= len(key) && string(term.k) == string(key[:len(term.k)]) {
			bestKey, bestVal, found = term.key(), term.getValue(), true
		}

		if node.getPrefixLen() > 0 {
			matched := node.checkPrefix(key, depth)
			if matched != minInt(int(node.getPrefixLen()), MaxPrefixLen) {
				break
			}
			depth += int(node.getPrefixLen())
		}
		if depth >= len(key) {
			break
		}
		node = node.getChild(key[depth])
		depth++
	}
	return bestKey, bestVal, found
}

// Minimum returns the leaf with the lexicographically smallest key under
// node. A node's terminal - the value for a key ending exactly at that
// node's prefix - always sorts before any key reaching further down, so it
// is checked before descending into byte children.
func Minimum[V any](node INode[V]) (*Leaf[V], bool) {
	if node == nil {
		return nil, false
	}
	for node.GetKind() != KindLeaf {
		if term := node.getTerminal(); term != nil {
			return term, true
		}
		_, child, err := node.getChildByIndex(0)
		if err != nil || child == nil {
			return nil, false
		}
		node = child
	}
	return node.(*Leaf[V]), true
}

// Maximum returns the leaf with the lexicographically largest key under
// node. A terminal only wins when node has no byte children at all, since
// any byte child sorts after it.
func Maximum[V any](node INode[V]) (*Leaf[V], bool) {
	if node == nil {
		return nil, false
	}
	for node.GetKind() != KindLeaf {
		count := node.getChildrenLen()
		if count == 0 {
			if term := node.getTerminal(); term != nil {
				return term, true
			}
			return nil, false
		}
		_, child, err := node.getChildByIndex(count - 1)
		if err != nil || child == nil {
			return nil, false
		}
		node = child
	}
	return node.(*Leaf[V]), true
}

// MinimumKV is Minimum, exposing the leaf's key and value directly so
// callers outside this package never need to reference *Leaf.
func MinimumKV[V any](node INode[V]) ([]byte, V, bool) {
	leaf, ok := Minimum[V](node)
	if !ok {
		return nil, *new(V), false
	}
	return leaf.key(), leaf.getValue(), true
}

// MaximumKV is Maximum, exposing the leaf's key and value directly so
// callers outside this package never need to reference *Leaf.
func MaximumKV[V any](node INode[V]) ([]byte, V, bool) {
	leaf, ok := Maximum[V](node)
	if !ok {
		return nil, *new(V), false
	}
	return leaf.key(), leaf.getValue(), true
}

// Walk visits every leaf under node in the given order, invoking cb. A
// nonzero callback return short-circuits the walk and is propagated up as
// Walk's own result.
func Walk[V any](node INode[V], cb Callback[V], order Order) int {
	if node == nil {
		return 0
	}
	if node.GetKind() == KindLeaf {
		leaf := node.(*Leaf[V])
		return cb(leaf.key(), leaf.getValue())
	}

	term := node.getTerminal()
	if term != nil && order == AscOrder {
		if r := cb(term.key(), term.getValue()); r != 0 {
			return r
		}
	}
	for _, child := range node.getAllChildren(order) {
		if r := Walk[V](child, cb, order); r != 0 {
			return r
		}
	}
	if term != nil && order == DescOrder {
		if r := cb(term.key(), term.getValue()); r != 0 {
			return r
		}
	}
	return 0
}

// WalkPrefix visits every leaf whose key starts with prefix, in the given
// order.
func WalkPrefix[V any](node INode[V], prefix []byte, cb Callback[V], order Order) int {
	depth := 0
	for node != nil {
		if node.GetKind() == KindLeaf {
			leaf := node.(*Leaf[V])
			if leaf.matchesPrefix(prefix) {
				return cb(leaf.key(), leaf.getValue())
			}
			return 0
		}

		if depth >= len(prefix) {
			return Walk[V](node, cb, order)
		}

		if node.getPrefixLen() > 0 {
			full := fullPrefix(node, depth)
			remaining := len(prefix) - depth
			cmpLen := minInt(len(full), remaining)

			matched := 0
			for matched < cmpLen && full[matched] == prefix[depth+matched] {
				matched++
			}
			if matched < cmpLen {
				return 0
			}
			if len(full) >= remaining {
				// node's own prefix reaches past the search prefix: every
				// leaf beneath it necessarily matches.
				return Walk[V](node, cb, order)
			}
			depth += len(full)
			if depth >= len(prefix) {
				return Walk[V](node, cb, order)
			}
		}

		node = node.getChild(prefix[depth])
		depth++
	}
	return 0
}

// SizeInBytes computes the structural footprint of the subtree rooted at
// node: the in-memory size of each reachable node struct, recursively
// summed. A leaf contributes only sizeof(Leaf[V]), deliberately excluding
// its stored key bytes and value payload, matching the shipped semantics of
// the measurement this mirrors rather than a true memory accounting.
func SizeInBytes[V any](node INode[V]) int64 {
	if node == nil {
		return 0
	}
	if node.GetKind() == KindLeaf {
		leaf := node.(*Leaf[V])
		return int64(unsafe.Sizeof(*leaf))
	}
	size := nodeStructSize(node)
	if term := node.getTerminal(); term != nil {
		size += int64(unsafe.Sizeof(*term))
	}
	for _, child := range node.getAllChildren(AscOrder) {
		size += SizeInBytes[V](child)
	}
	return size
}

func nodeStructSize[V any](node INode[V]) int64 {
	switch n := node.(type) {
	case *Node4[V]:
		return int64(unsafe.Sizeof(*n))
	case *Node16[V]:
		return int64(unsafe.Sizeof(*n))
	case *Node48[V]:
		return int64(unsafe.Sizeof(*n))
	case *Node256[V]:
		return int64(unsafe.Sizeof(*n))
	default:
		return 0
	}
}

// prefixMismatch returns the number of bytes of node's compressed prefix
// that match key starting at depth. When the prefix is longer than the
// inline cache and the cache matched in full, the comparison continues
// against the minimum leaf beneath node, which necessarily shares the same
// prefix bytes.
func prefixMismatch[V any](node INode[V], key []byte, depth int) int {
	idx := node.checkPrefix(key, depth)
	prefixLen := int(node.getPrefixLen())
	if prefixLen > MaxPrefixLen && idx == MaxPrefixLen {
		leaf, ok := Minimum[V](node)
		if ok {
			lk := leaf.key()
			for ; idx < prefixLen && depth+idx < len(key) && depth+idx < len(lk); idx++ {
				if lk[depth+idx] != key[depth+idx] {
					break
				}
			}
		}
	}
	return idx
}

// fullPrefix reconstructs all prefixLen bytes of node's compressed prefix,
// beyond the MaxPrefixLen inline cache if necessary, by borrowing the tail
// from the minimum leaf beneath node (every leaf under node shares node's
// prefix by construction).
func fullPrefix[V any](node INode[V], depth int) []byte {
	prefixLen := int(node.getPrefixLen())
	cached := node.cachedPrefix()
	out := make([]byte, prefixLen)
	n := copy(out, cached)
	if n < prefixLen {
		if leaf, ok := Minimum[V](node); ok {
			lk := leaf.key()
			copy(out[n:], lk[depth+n:depth+prefixLen])
		}
	}
	return out
}
