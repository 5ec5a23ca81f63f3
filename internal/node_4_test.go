package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode4_InsertAndRemoveChildren(t *testing.T) {
	type param struct {
		desc             string
		actions          []nodeAction[string]
		expectedAsc      []INode[string]
		expectedChildLen uint16
		expectedGetChild map[byte]INode[string]
	}

	leaves := generateStringLeaves(4)

	testList := []param{
		{
			desc: "inserted in ascending order already",
			actions: []nodeAction[string]{
				{kind: insertAction, key: 1, child: leaves[0]},
				{kind: insertAction, key: 2, child: leaves[1]},
				{kind: insertAction, key: 3, child: leaves[2]},
			},
			expectedAsc:      []INode[string]{leaves[0], leaves[1], leaves[2]},
			expectedChildLen: 3,
			expectedGetChild: map[byte]INode[string]{1: leaves[0], 2: leaves[1], 3: leaves[2]},
		},
		{
			desc: "inserted out of order, kept sorted",
			actions: []nodeAction[string]{
				{kind: insertAction, key: 3, child: leaves[0]},
				{kind: insertAction, key: 1, child: leaves[1]},
				{kind: insertAction, key: 2, child: leaves[2]},
			},
			expectedAsc:      []INode[string]{leaves[1], leaves[2], leaves[0]},
			expectedChildLen: 3,
			expectedGetChild: map[byte]INode[string]{1: leaves[1], 2: leaves[2], 3: leaves[0]},
		},
		{
			desc: "insert, remove, reinsert",
			actions: []nodeAction[string]{
				{kind: insertAction, key: 1, child: leaves[0]},
				{kind: removeAction, key: 1},
				{kind: insertAction, key: 1, child: leaves[3]},
			},
			expectedAsc:      []INode[string]{leaves[3]},
			expectedChildLen: 1,
			expectedGetChild: map[byte]INode[string]{1: leaves[3]},
		},
		{
			desc: "remove everything",
			actions: []nodeAction[string]{
				{kind: insertAction, key: 1, child: leaves[0]},
				{kind: insertAction, key: 2, child: leaves[1]},
				{kind: removeAction, key: 1},
				{kind: removeAction, key: 2},
			},
			expectedAsc:      []INode[string]{},
			expectedChildLen: 0,
			expectedGetChild: map[byte]INode[string]{},
		},
	}

	for _, tc := range testList {
		t.Run(tc.desc, func(t *testing.T) {
			n4 := newNode4[string]()
			for _, action := range tc.actions {
				if action.kind == insertAction {
					require.NoError(t, n4.addChild(action.key, action.child))
				} else {
					require.NoError(t, n4.removeChild(action.key))
				}
			}

			assert.Equal(t, tc.expectedChildLen, n4.getChildrenLen())
			assert.Equal(t, tc.expectedAsc, n4.getAllChildren(AscOrder))
			for k, expected := range tc.expectedGetChild {
				assert.Equal(t, expected, n4.getChild(k))
			}
		})
	}
}

func TestNode4_AddChildBeyondCapacityFails(t *testing.T) {
	n4 := newNode4[string]()
	for i := byte(0); i < Node4CapacityMax; i++ {
		require.NoError(t, n4.addChild(i, newLeaf[string]([]byte{i}, "v")))
	}
	assert.False(t, n4.hasEnoughSpace())
	assert.Error(t, n4.addChild(Node4CapacityMax, newLeaf[string]([]byte{Node4CapacityMax}, "v")))
}

func TestNode4_RemoveMissingKeyFails(t *testing.T) {
	n4 := newNode4[string]()
	require.NoError(t, n4.addChild(1, newLeaf[string]([]byte{1}, "v")))
	assert.ErrorIs(t, n4.removeChild(2), childNodeNotFound)
}

func TestNode4_GrowProducesNode16WithSameChildren(t *testing.T) {
	n4 := newNode4[string]()
	n4.setPrefix([]byte("ab"))
	for i := byte(0); i < Node4CapacityMax; i++ {
		require.NoError(t, n4.addChild(i, newLeaf[string]([]byte{i}, "v")))
	}

	grown := n4.grow()
	n16, ok := grown.(*Node16[string])
	require.True(t, ok)
	assert.Equal(t, uint16(Node4CapacityMax), n16.getChildrenLen())
	assert.Equal(t, []byte("ab"), n16.cachedPrefix())
	for i := byte(0); i < Node4CapacityMax; i++ {
		assert.Equal(t, n4.getChild(i), n16.getChild(i))
	}
}

func TestNode4_NeverShrinks(t *testing.T) {
	n4 := newNode4[string]()
	assert.False(t, n4.isShrinkable())
	assert.Panics(t, func() { n4.shrink() })
}
