package internal

import "fmt"

// Node4CapacityMax is the largest number of children a Node4 can hold
// before it must grow into a Node16.
const Node4CapacityMax = 4

// Node4 is the smallest inner-node variant: up to 4 children, stored as
// two parallel arrays sorted ascending by key byte.
type Node4[V any] struct {
	nodeHeader
	keys     [Node4CapacityMax]byte
	children [Node4CapacityMax]INode[V]
	terminal *Leaf[V]
}

func newNode4[V any]() *Node4[V] {
	return &Node4[V]{nodeHeader: nodeHeader{kind: KindNode4}}
}

func (n *Node4[V]) getValue() V  { panic("node4 doesn't hold a value") }
func (n *Node4[V]) setValue(_ V) { panic("node4 doesn't hold a value") }
func (n *Node4[V]) key() []byte  { panic("node4 doesn't hold a key") }

func (n *Node4[V]) getTerminal() *Leaf[V]  { return n.terminal }
func (n *Node4[V]) setTerminal(l *Leaf[V]) { n.terminal = l }

func (n *Node4[V]) addChild(key byte, child INode[V]) error {
	count := n.getChildrenLen()
	if count >= Node4CapacityMax {
		return fmt.Errorf("node4 is maxed out and has no room for a new key")
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

func (n *Node4[V]) removeChild(key byte) error {
	count := n.getChildrenLen()
	pos := -1
	for i := 0; i < int(count); i++ {
		if n.keys[i] == key {
			pos = i
			break
		}
	}
	if pos == -1 {
		return childNodeNotFound
	}

	for i := pos; i+1 < int(count); i++ {
		n.keys[i] = n.keys[i+1]
		n.children[i] = n.children[i+1]
	}
	n.keys[count-1] = 0
	n.children[count-1] = nil
	n.setChildrenLen(count - 1)
	return nil
}

func (n *Node4[V]) replaceChild(key byte, child INode[V]) error {
	count := n.getChildrenLen()
	for i := 0; i < int(count); i++ {
		if n.keys[i] == key {
			n.children[i] = child
			return nil
		}
	}
	return childNodeNotFound
}

func (n *Node4[V]) getChild(key byte) INode[V] {
	count := n.getChildrenLen()
	for i := 0; i < int(count); i++ {
		if n.keys[i] == key {
			return n.children[i]
		}
	}
	return nil
}

func (n *Node4[V]) getAllChildren(order Order) []INode[V] {
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

func (n *Node4[V]) getChildByIndex(idx uint16) (byte, INode[V], error) {
	if idx >= uint16(n.getChildrenLen()) {
		return 0, nil, childNodeNotFound
	}
	return n.keys[idx], n.children[idx], nil
}

// grow produces the Node16 this Node4 is promoted to once a 5th child
// needs to be added.
func (n *Node4[V]) grow() INode[V] {
	n16 := newNode16[V]()
	n16.copyHeaderFrom(&n.nodeHeader)
	count := n.getChildrenLen()
	copy(n16.keys[:count], n.keys[:count])
	copy(n16.children[:count], n.children[:count])
	n16.setChildrenLen(count)
	n16.terminal = n.terminal
	return n16
}

func (n *Node4[V]) hasEnoughSpace() bool { return n.getChildrenLen() < Node4CapacityMax }

// Node4 never shrinks through the generic shrink path: its 1-remaining-
// child case is a collapse, not a demotion to a smaller variant, and is
// handled directly by the delete operator (which needs the edge byte and
// the surviving child to fold prefixes - see RemoveNode).
func (n *Node4[V]) shrink() INode[V]   { panic("node4 collapses, it does not shrink") }
func (n *Node4[V]) isShrinkable() bool { return false }

var _ INode[any] = (*Node4[any])(nil)
