// Package scope implements the branching, reference-counted lexical scope
// arena that backs variable lookup, assignment, and closure capture.
//
// The algorithm is a direct port of the reference implementation's
// BranchingScope (see original_source/src/interpret/branching_scope.rs):
// scopes live in a flat table keyed by integer id, each non-root scope
// holds a single parent edge, and a scope is only ever destroyed once its
// reference count (live children plus live closure captures) drops to
// zero. This sidesteps the cyclic-ownership problem closures usually cause
// without needing a tracing collector or weak references.
package scope

import (
	"fmt"

	"github.com/dolthub/swiss"
	"github.com/mna/loxtree/lang/value"
)

// ID identifies a scope node in an Arena. ID 0 is always Root.
type ID uint64

// Root is the id of the distinguished root scope, created once per Arena
// and never destroyed.
const Root ID = 0

// node is either the root marker or a child scope with its own binding
// table, parent edge, and reference count.
type node struct {
	data     *swiss.Map[string, value.Value]
	parent   ID
	refCount int
	isRoot   bool
}

// Arena owns every live scope in a program.
type Arena struct {
	nodes  map[ID]*node
	nextID ID
}

// New creates an arena containing only the Root scope.
func New() *Arena {
	a := &Arena{nodes: make(map[ID]*node)}
	a.nodes[Root] = &node{isRoot: true}
	return a
}

func (a *Arena) mustGet(id ID) *node {
	n, ok := a.nodes[id]
	if !ok {
		panic(fmt.Sprintf("scope: unknown scope id %d", id))
	}
	return n
}

// Branch allocates a fresh child scope of src and returns its id. If src is
// not Root, its reference count is incremented: the new child now holds a
// reference to its parent chain.
func (a *Arena) Branch(src ID) ID {
	a.mustGet(src) // panics on unknown source, matching Release/Branch contract

	a.nextID++
	id := a.nextID
	a.nodes[id] = &node{
		data:   swiss.NewMap[string, value.Value](0),
		parent: src,
	}
	if src != Root {
		a.mustGet(src).refCount++
	}
	return id
}

// Release decrements occupancy of id: if its reference count is zero, the
// node is removed from the arena and its parent's reference count is
// decremented in turn. If the reference count is non-zero, the node is left
// in place, retained by whatever closure or descendant still refers to it.
// Release always returns id's parent, whether or not the node was removed.
// Calling Release on Root is a programming error.
func (a *Arena) Release(id ID) ID {
	n := a.mustGet(id)
	if n.isRoot {
		panic("scope: cannot release Root")
	}

	parent := n.parent
	if n.refCount == 0 {
		delete(a.nodes, id)
		if parent != Root {
			a.mustGet(parent).refCount--
		}
	}
	return parent
}

// Retain increments id's reference count, pinning it against reclamation.
// It is used when constructing a closure: the function value retains its
// capture anchor. No method decrements a retained count (Release only
// decrements a parent's count when it removes a child), so a retained node,
// and with it its ancestor chain, stays in the arena for the arena's
// lifetime, whether or not the function value is still reachable.
func (a *Arena) Retain(id ID) {
	if id == Root {
		return
	}
	a.mustGet(id).refCount++
}

// RefCount returns the current reference count of id, or 0 for Root (whose
// count is not tracked; Root is never reclaimed).
func (a *Arena) RefCount(id ID) int {
	n := a.mustGet(id)
	if n.isRoot {
		return 0
	}
	return n.refCount
}

// Live reports whether id still resolves to a node in the arena.
func (a *Arena) Live(id ID) bool {
	_, ok := a.nodes[id]
	return ok
}

// Define inserts or overwrites key in the scope at id with value. It is a
// no-op if id is Root: the root scope never holds user bindings, only the
// globals scope branched from it does.
func (a *Arena) Define(id ID, key string, v value.Value) {
	n := a.mustGet(id)
	if n.isRoot {
		return
	}
	n.data.Put(key, v)
}

// Get walks the ancestor chain from id toward Root and returns the first
// binding of key, or (nil, false) if no ancestor binds it.
func (a *Arena) Get(id ID, key string) (value.Value, bool) {
	for cur := id; ; {
		n := a.mustGet(cur)
		if n.isRoot {
			return nil, false
		}
		if v, ok := n.data.Get(key); ok {
			return v, true
		}
		cur = n.parent
	}
}

// Assign walks the ancestor chain from id toward Root and overwrites key in
// the first scope that already binds it. It returns false, without writing
// anything, if no ancestor binds key.
func (a *Arena) Assign(id ID, key string, v value.Value) bool {
	for cur := id; ; {
		n := a.mustGet(cur)
		if n.isRoot {
			return false
		}
		if _, ok := n.data.Get(key); ok {
			n.data.Put(key, v)
			return true
		}
		cur = n.parent
	}
}
