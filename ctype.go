// Compatible with the style of the popular radix tree library -
// https://github.com/hashicorp/go-immutable-radix

package art

import "fmt"

// Key is a byte-slice key. The tree makes no assumptions about its
// encoding; ordering is always unsigned byte-lexicographic.
type Key []byte

// WalkFn is invoked once per key during a walk. Returning true stops the
// walk early.
type WalkFn[T any] func(k Key, v T) bool

// ErrNotFound is returned by Get and Delete when the key is absent.
var ErrNotFound = fmt.Errorf("art: key not found")

// errUnrecognised wraps an unexpected internal error so callers never see
// the internal package's own sentinels directly.
var errUnrecognised = fmt.Errorf("art: unrecognised internal error")
