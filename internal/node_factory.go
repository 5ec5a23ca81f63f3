package internal

import "fmt"

// NewNode constructs a freshly zeroed inner-node variant of the given kind.
// Leaves are constructed separately via newLeaf, since they carry a key and
// value rather than a header.
func NewNode[V any](k Kind) INode[V] {
	switch k {
	case KindNode4:
		return newNode4[V]()
	case KindNode16:
		return newNode16[V]()
	case KindNode48:
		return newNode48[V]()
	case KindNode256:
		return newNode256[V]()
	default:
		panic(fmt.Sprintf("%v node is unsupported", k))
	}
}
