package art

import (
	"errors"
	"fmt"

	"github.com/siara-cc/libart/internal"
)

// Tree is an adaptive radix tree mapping byte-slice keys to values of type
// V. It is single-owner: concurrent mutation from multiple goroutines is
// not supported, the same way a plain Go map is not. It is compatible in
// spirit with the interface of the popular
// https://github.com/hashicorp/go-immutable-radix.
type Tree[V any] struct {
	root internal.INode[V]
	size int
}

// NewTree returns an empty tree.
func NewTree[V any]() *Tree[V] {
	return &Tree[V]{}
}

// Insert adds or updates key with value, replacing any existing value. It
// returns the previous value, or ErrNotFound if key was not already
// present.
func (t *Tree[V]) Insert(key Key, value V) (V, error) {
	newRoot, old, existed, err := internal.InsertNode[V](t.root, key, value, 0)
	if err != nil {
		return *new(V), errorCategorisation(err)
	}
	t.root = newRoot
	if !existed {
		t.size++
		return *new(V), ErrNotFound
	}
	return old, nil
}

// InsertNoReplace adds key with value only if key is not already present,
// leaving any existing value untouched. It returns the existing value, or
// ErrNotFound if key was not already present.
func (t *Tree[V]) InsertNoReplace(key Key, value V) (V, error) {
	if old, err := t.Get(key); err == nil {
		return old, nil
	}
	_, _ = t.Insert(key, value)
	return *new(V), ErrNotFound
}

// Delete removes key from the tree. It returns the removed value, or
// ErrNotFound if key was not present.
func (t *Tree[V]) Delete(key Key) (V, error) {
	if t.root == nil {
		return *new(V), ErrNotFound
	}
	newRoot, old, found, err := internal.RemoveNode[V](t.root, key, 0)
	if !found {
		if err != nil && !errors.Is(err, internal.NoSuchKey) {
			return *new(V), errorCategorisation(err)
		}
		return *new(V), ErrNotFound
	}
	t.root = newRoot
	t.size--
	return old, nil
}

// Get looks up key. It returns the stored value, or ErrNotFound if key is
// absent.
func (t *Tree[V]) Get(key Key) (V, error) {
	v, ok := internal.Get[V](t.root, key, 0)
	if !ok {
		return *new(V), ErrNotFound
	}
	return v, nil
}

// LongestPrefixMatch returns the stored entry whose key is the longest
// prefix of the given key. It returns ErrNotFound if no stored key is a
// prefix of key.
func (t *Tree[V]) LongestPrefixMatch(key Key) (Key, V, error) {
	k, v, ok := internal.LongestPrefixMatch[V](t.root, key, 0)
	if !ok {
		return nil, *new(V), ErrNotFound
	}
	return Key(k), v, nil
}

// Minimum returns the lexicographically smallest key in the tree.
func (t *Tree[V]) Minimum() (Key, V, bool) {
	k, v, ok := internal.MinimumKV[V](t.root)
	return Key(k), v, ok
}

// Maximum returns the lexicographically largest key in the tree.
func (t *Tree[V]) Maximum() (Key, V, bool) {
	k, v, ok := internal.MaximumKV[V](t.root)
	return Key(k), v, ok
}

// Walk visits every key in ascending order, stopping early if fn returns
// true.
func (t *Tree[V]) Walk(fn WalkFn[V]) {
	internal.Walk[V](t.root, adaptWalkFn(fn), internal.AscOrder)
}

// WalkBackwards visits every key in descending order, stopping early if fn
// returns true.
func (t *Tree[V]) WalkBackwards(fn WalkFn[V]) {
	internal.Walk[V](t.root, adaptWalkFn(fn), internal.DescOrder)
}

// WalkPrefix visits every key that starts with prefix, in ascending order,
// stopping early if fn returns true.
func (t *Tree[V]) WalkPrefix(prefix Key, fn WalkFn[V]) {
	internal.WalkPrefix[V](t.root, prefix, adaptWalkFn(fn), internal.AscOrder)
}

// Size returns the number of keys stored in the tree.
func (t *Tree[V]) Size() int { return t.size }

// SizeInBytes returns the structural footprint of the tree: the struct
// size of every reachable node, including leaves. It excludes key bytes
// and value payloads, matching the convention of the tree this API
// mirrors rather than a true memory accounting.
func (t *Tree[V]) SizeInBytes() int64 {
	return internal.SizeInBytes[V](t.root)
}

// Clear empties the tree. The nodes become unreachable and are reclaimed
// by the garbage collector; there is no explicit teardown to run.
func (t *Tree[V]) Clear() {
	t.root = nil
	t.size = 0
}

func adaptWalkFn[V any](fn WalkFn[V]) internal.Callback[V] {
	return func(k []byte, v V) int {
		if fn(Key(k), v) {
			return 1
		}
		return 0
	}
}

func errorCategorisation(err error) error {
	if errors.Is(err, internal.NoSuchKey) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", errUnrecognised, err)
}
