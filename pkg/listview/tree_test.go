package listview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree_ShoesSneakers(t *testing.T) {
	cats := []testEntity{
		{ID: "1", Name: "Shoes"},
		{ID: "2", Name: "Sneakers", ParentID: "1"},
	}
	rows, err := BuildTree(cats, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].Item.ID)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, "2", rows[1].Item.ID)
	assert.Equal(t, 1, rows[1].Depth)

	// 每层缩进是 4 个不换行空格（U+00A0），不是普通空格
	assert.Equal(t, "Shoes", rows[0].Label(rows[0].Item.Name))
	assert.Equal(t, "\u00a0\u00a0\u00a0\u00a0└ Sneakers", rows[1].Label(rows[1].Item.Name))
}

func TestBuildTree_PreOrderAndDepth(t *testing.T) {
	// 子节点先于父节点出现在输入中
	cats := []testEntity{
		{ID: "c", ParentID: "a"},
		{ID: "d", ParentID: "c"},
		{ID: "a"},
		{ID: "b"},
		{ID: "e", ParentID: "b"},
		{ID: "f", ParentID: "a"},
	}
	rows, err := BuildTree(cats, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "f", "b", "e"}, rowIDs(rows))

	parent := map[string]string{}
	for _, c := range cats {
		parent[c.ID] = c.ParentID
	}
	for _, r := range rows {
		hops := 0
		for p := r.Item.ParentID; p != ""; p = parent[p] {
			hops++
		}
		assert.Equal(t, hops, r.Depth, "depth of %s", r.Item.ID)
	}
	assert.Len(t, rows, len(cats))
}

func TestBuildTree_SortKey(t *testing.T) {
	cats := []testEntity{
		{ID: "a", Sort: 2},
		{ID: "b", Sort: 1},
		{ID: "a2", ParentID: "a", Sort: 9},
		{ID: "a1", ParentID: "a", Sort: 3},
	}
	rows, err := BuildTree(cats, func(x, y testEntity) bool { return x.Sort < y.Sort })
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "a1", "a2"}, rowIDs(rows))
}

func TestBuildTree_Cycle(t *testing.T) {
	cats := []testEntity{
		{ID: "root"},
		{ID: "x", ParentID: "y"},
		{ID: "y", ParentID: "x"},
		{ID: "z", ParentID: "x"},
	}
	rows, err := BuildTree(cats, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycleDetected))

	var ce *CycleError
	require.True(t, errors.As(err, &ce))
	assert.ElementsMatch(t, []string{"x", "y", "z"}, ce.IDs)
	assert.Equal(t, []string{"root"}, rowIDs(rows))
}

func TestBuildTree_SelfParent(t *testing.T) {
	_, err := BuildTree([]testEntity{{ID: "s", ParentID: "s"}}, nil)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestBuildTree_DanglingParentBecomesRoot(t *testing.T) {
	cats := []testEntity{
		{ID: "orphan", ParentID: "deleted"},
		{ID: "kid", ParentID: "orphan"},
	}
	rows, err := BuildTree(cats, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan", "kid"}, rowIDs(rows))
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, 1, rows[1].Depth)
}

func TestBuildTree_Empty(t *testing.T) {
	rows, err := BuildTree([]testEntity{}, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDescendantsAndWouldCycle(t *testing.T) {
	cats := []testEntity{
		{ID: "a"},
		{ID: "b", ParentID: "a"},
		{ID: "c", ParentID: "b"},
		{ID: "d"},
	}
	got := Descendants(cats, "a")
	assert.Len(t, got, 2)
	assert.Contains(t, got, "b")
	assert.Contains(t, got, "c")

	assert.True(t, WouldCycle(cats, "a", "c"))
	assert.True(t, WouldCycle(cats, "a", "a"))
	assert.False(t, WouldCycle(cats, "c", "d"))
	assert.False(t, WouldCycle(cats, "b", ""))
}
