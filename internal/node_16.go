package internal

import "fmt"

// Node16CapacityMax is the largest number of children a Node16 can hold
// before it must grow into a Node48.
const Node16CapacityMax = 16

// node16ShrinkThreshold is the child count at or below which a Node16
// demotes back down to a Node4.
const node16ShrinkThreshold = 3

// Node16 holds between 4 and 16 children, stored as two parallel arrays
// sorted ascending by key byte, same layout as Node4 but wide enough that
// lookups use a lane-scan helper (findKeyIndex16) instead of a plain loop.
type Node16[V any] struct {
	nodeHeader
	keys     [Node16CapacityMax]byte
	children [Node16CapacityMax]INode[V]
	terminal *Leaf[V]
}

func newNode16[V any]() *Node16[V] {
	return &Node16[V]{nodeHeader: nodeHeader{kind: KindNode16}}
}

func (n *Node16[V]) getValue() V  { panic("node16 doesn't hold a value") }
func (n *Node16[V]) setValue(_ V) { panic("node16 doesn't hold a value") }
func (n *Node16[V]) key() []byte  { panic("node16 doesn't hold a key") }

func (n *Node16[V]) getTerminal() *Leaf[V]  { return n.terminal }
func (n *Node16[V]) setTerminal(l *Leaf[V]) { n.terminal = l }

func (n *Node16[V]) addChild(key byte, child INode[V]) error {
	count := n.getChildrenLen()
	if count >= Node16CapacityMax {
		return fmt.Errorf("node16 is maxed out and has no room for a new key")
	}

	pos := int(count)
	for i := 0; i < int(count); i++ {
		if n.keys[i] > key {
			pos = i
			break
		}
	}
	copy(n.keys[pos+1:count+1], n.keys[pos:count])
	copy(n.children[pos+1:count+1], n.children[pos:count])
	n.keys[pos] = key
	n.children[pos] = child
	n.setChildrenLen(count + 1)
	return nil
}

func (n *Node16[V]) removeChild(key byte) error {
	count := n.getChildrenLen()
	idx, found := findKeyIndex16(&n.keys, count, key)
	if !found {
		return childNodeNotFound
	}

	for i := idx; i+1 < int(count); i++ {
		n.keys[i] = n.keys[i+1]
		n.children[i] = n.children[i+1]
	}
	n.keys[count-1] = 0
	n.children[count-1] = nil
	n.setChildrenLen(count - 1)
	return nil
}

func (n *Node16[V]) replaceChild(key byte, child INode[V]) error {
	idx, found := findKeyIndex16(&n.keys, n.getChildrenLen(), key)
	if !found {
		return childNodeNotFound
	}
	n.children[idx] = child
	return nil
}

func (n *Node16[V]) getChild(key byte) INode[V] {
	idx, found := findKeyIndex16(&n.keys, n.getChildrenLen(), key)
	if !found {
		return nil
	}
	return n.children[idx]
}

func (n *Node16[V]) getAllChildren(order Order) []INode[V] {
	count := int(n.getChildrenLen())
	res := make([]INode[V], count)
	switch order {
	case AscOrder:
		copy(res, n.children[:count])
	case DescOrder:
		for i := 0; i < count; i++ {
			res[count-1-i] = n.children[i]
		}
	}
	return res
}

func (n *Node16[V]) getChildByIndex(idx uint16) (byte, INode[V], error) {
	if idx >= uint16(n.getChildrenLen()) {
		return 0, nil, childNodeNotFound
	}
	return n.keys[idx], n.children[idx], nil
}

// grow produces the Node48 this Node16 is promoted to once a 17th child
// needs to be added.
func (n *Node16[V]) grow() INode[V] {
	n48 := newNode48[V]()
	n48.copyHeaderFrom(&n.nodeHeader)
	count := int(n.getChildrenLen())
	for i := 0; i < count; i++ {
		n48.keys[n.keys[i]] = uint8(i) + 1
		n48.children[i] = n.children[i]
	}
	n48.setChildrenLen(uint16(count))
	n48.terminal = n.terminal
	return n48
}

func (n *Node16[V]) hasEnoughSpace() bool { return n.getChildrenLen() < Node16CapacityMax }

// shrink produces the Node4 this Node16 is demoted to once its child count
// drops to node16ShrinkThreshold.
func (n *Node16[V]) shrink() INode[V] {
	n4 := newNode4[V]()
	n4.copyHeaderFrom(&n.nodeHeader)
	count := int(n.getChildrenLen())
	copy(n4.keys[:count], n.keys[:count])
	copy(n4.children[:count], n.children[:count])
	n4.setChildrenLen(uint16(count))
	n4.terminal = n.terminal
	return n4
}

func (n *Node16[V]) isShrinkable() bool { return n.getChildrenLen() <= node16ShrinkThreshold }

var _ INode[any] = (*Node16[any])(nil)
