package internal

import "fmt"

// errors
var (
	failedToAddChild   error = fmt.Errorf("failed to add child")
	failedToGrowNode   error = fmt.Errorf("failed to grow node")
	failedToShrinkNode error = fmt.Errorf("failed to shrink node")
	failedToRemoveChild error = fmt.Errorf("failed to remove child")
	childNodeNotFound  error = fmt.Errorf("child node not found")
	NoSuchKey          error = fmt.Errorf("no such key")
)

// Callback is invoked once per leaf during a walk. A nonzero return value
// short-circuits the traversal and becomes its result.
type Callback[V any] func(key []byte, value V) int

type Kind int8

const (
	KindNoop Kind = iota
	KindLeaf
	KindNode4
	KindNode16
	KindNode48
	KindNode256
)

type Order int8

const (
	AscOrder Order = iota
	DescOrder
)

// sizeManager controls growth and shrinkage of an inner node's representation.
type sizeManager[V any] interface {
	grow() INode[V]
	hasEnoughSpace() bool
	shrink() INode[V]
	isShrinkable() bool
}

// childrenManager controls a node's children.
type childrenManager[V any] interface {
	addChild(key byte, child INode[V]) error
	removeChild(key byte) error
	// replaceChild overwrites the child at key in place, used when a
	// recursive insert or delete returns a different node (grown, shrunk,
	// or freshly split) for an edge that already exists.
	replaceChild(key byte, child INode[V]) error
	getChild(key byte) INode[V]
	getAllChildren(order Order) []INode[V]
	// getChildByIndex returns the edge byte and child at position idx when
	// children are enumerated in ascending order.
	getChildByIndex(idx uint16) (byte, INode[V], error)
	// getTerminal returns the value stored for a key that ends exactly at
	// this node's accumulated prefix, or nil if no such key was inserted.
	// This is what lets one inserted key be a strict byte-prefix of
	// another without relying on a null-termination convention: the
	// shorter key's value lives here instead of needing a byte-indexed
	// child slot, since there is no further key byte to index by.
	getTerminal() *Leaf[V]
	setTerminal(leaf *Leaf[V])
}

// INode is satisfied by every node variant: the four inner-node kinds and
// the leaf. A nil INode means "no child" - the sum-type alternative spec.md
// sanctions in place of pointer tagging.
type INode[V any] interface {
	sizeManager[V]
	childrenManager[V]

	GetKind() Kind
	getPrefixLen() uint32
	cachedPrefix() []byte
	setPrefix(prefix []byte)
	checkPrefix(key []byte, depth int) int
	getChildrenLen() uint16
	setChildrenLen(n uint16)

	getValue() V
	setValue(v V)
	// key returns the leaf's full stored key. Panics on non-leaf nodes.
	key() []byte
}
