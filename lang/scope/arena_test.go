package scope_test

import (
	"testing"

	"github.com/mna/loxtree/lang/scope"
	"github.com/mna/loxtree/lang/value"
	"github.com/stretchr/testify/require"
)

func branchWith(a *scope.Arena, base scope.ID, key string, v float64) scope.ID {
	id := a.Branch(base)
	a.Define(id, key, value.Number(v))
	return id
}

func TestGetWhenValueDefinedAtTopItFindsIt(t *testing.T) {
	a := scope.New()
	b1 := branchWith(a, scope.Root, "key", 10)
	b2 := branchWith(a, b1, "key", 20)
	b3 := branchWith(a, b2, "key", 30)

	v, ok := a.Get(b3, "key")
	require.True(t, ok)
	require.Equal(t, value.Number(30), v)
}

func TestGetWhenValueDefinedAtParentItFindsIt(t *testing.T) {
	a := scope.New()
	b1 := branchWith(a, scope.Root, "key", 10)
	b2 := branchWith(a, b1, "key2", 20)
	b3 := branchWith(a, b2, "key3", 20)

	v, ok := a.Get(b3, "key")
	require.True(t, ok)
	require.Equal(t, value.Number(10), v)
}

func TestGetWhenKeyNotDefinedItDoesNotFindIt(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	b2 := a.Branch(b1)
	b3 := a.Branch(b2)

	_, ok := a.Get(b3, "bar")
	require.False(t, ok)
}

func TestGetDoesNotSeeKeysInSiblingNode(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	a.Branch(b1)
	b3 := a.Branch(b1)

	_, ok := a.Get(b3, "bar")
	require.False(t, ok)
}

func TestDefineCreatesValueAtCurrentLevel(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	b2 := a.Branch(b1)

	a.Define(b2, "foo", value.Number(3))
	v, ok := a.Get(b2, "foo")
	require.True(t, ok)
	require.Equal(t, value.Number(3), v)
}

func TestDefineDoesNotCreateValuesAtParentLevels(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	b2 := a.Branch(b1)

	a.Define(b2, "foo", value.Number(3))
	_, ok := a.Get(b1, "foo")
	require.False(t, ok)
}

func TestDefineCanShadowAParentLevelValue(t *testing.T) {
	a := scope.New()
	b1 := branchWith(a, scope.Root, "foo", 5)
	b2 := a.Branch(b1)

	a.Define(b2, "foo", value.Number(3.1))
	v1, _ := a.Get(b1, "foo")
	v2, _ := a.Get(b2, "foo")
	require.Equal(t, value.Number(5), v1)
	require.Equal(t, value.Number(3.1), v2)
}

func TestDefineCanReuseTheSameKeyTwiceWithDifferentTypes(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	b2 := a.Branch(b1)

	a.Define(b2, "foo", value.Number(3.1))
	v, _ := a.Get(b2, "foo")
	require.Equal(t, value.Number(3.1), v)

	a.Define(b2, "foo", value.String("another"))
	v, _ = a.Get(b2, "foo")
	require.Equal(t, value.String("another"), v)
}

func TestAssignWhenVariableDefinedAtSameLevelUpdatesTheValue(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	b2 := branchWith(a, b1, "foo", 2)

	require.True(t, a.Assign(b2, "foo", value.Number(3.1)))
	v, _ := a.Get(b2, "foo")
	require.Equal(t, value.Number(3.1), v)
}

func TestAssignWhenVariableDefinedAtParentLevelUpdatesTheValue(t *testing.T) {
	a := scope.New()
	b1 := branchWith(a, scope.Root, "foo", 2)
	b2 := a.Branch(b1)

	require.True(t, a.Assign(b2, "foo", value.Number(3.1)))
	v, _ := a.Get(b2, "foo")
	require.Equal(t, value.Number(3.1), v)
}

func TestAssignWhenVariableIsNotDefinedFails(t *testing.T) {
	a := scope.New()
	b1 := a.Branch(scope.Root)
	b2 := a.Branch(b1)

	require.False(t, a.Assign(b2, "foo", value.Number(3.1)))
}

func TestReleaseDestroysOnlyWhenRefCountIsZero(t *testing.T) {
	a := scope.New()
	parent := a.Branch(scope.Root)
	child := a.Branch(parent)

	require.Equal(t, 1, a.RefCount(parent))

	got := a.Release(child)
	require.Equal(t, parent, got)
	require.False(t, a.Live(child))
	require.Equal(t, 0, a.RefCount(parent))
}

func TestReleaseRetainsNodeWithLiveReferences(t *testing.T) {
	a := scope.New()
	parent := a.Branch(scope.Root)
	anchor := a.Branch(parent)
	a.Retain(anchor) // simulates a closure capturing anchor
	require.Equal(t, 1, a.RefCount(anchor))

	got := a.Release(parent)
	require.Equal(t, scope.Root, got)
	// parent survives release because anchor (its child) is still alive.
	require.True(t, a.Live(parent))

	// anchor itself is pinned by the retain (the closure) and is not removed
	// by a release targeting its own id either, since its ref count is still
	// non-zero.
	require.Equal(t, parent, a.Release(anchor))
	require.True(t, a.Live(anchor))
}

func TestBranchFromUnknownScopePanics(t *testing.T) {
	a := scope.New()
	require.Panics(t, func() { a.Branch(scope.ID(999)) })
}

func TestReleaseOfRootPanics(t *testing.T) {
	a := scope.New()
	require.Panics(t, func() { a.Release(scope.Root) })
}
