package listview

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Indent 每一层缩进：4 个不换行空格
const Indent = "\u00a0\u00a0\u00a0\u00a0"

// ChildMarker 非根节点的前缀
const ChildMarker = "└ "

var ErrCycleDetected = errors.New("listview: cycle detected in parent references")

// CycleError 列出构成环（或挂在环上）的实体 id
type CycleError struct{ IDs []string }

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycleDetected.Error(), strings.Join(e.IDs, ","))
}

func (e *CycleError) Is(target error) bool { return target == ErrCycleDetected }

// Row 先序展开后的一行
type Row[T any] struct {
	Item  T
	Depth int
}

// Label 表格 / 下拉框显示文本
func (r Row[T]) Label(name string) string {
	if r.Depth <= 0 {
		return name
	}
	return strings.Repeat(Indent, r.Depth) + ChildMarker + name
}

// arena 平铺存储，父子关系用下标表示
type arena[T Node] struct {
	items    []T
	roots    []int
	children [][]int
}

func newArena[T Node](items []T, less func(a, b T) bool) *arena[T] {
	a := &arena[T]{items: items, children: make([][]int, len(items))}
	index := make(map[string]int, len(items))
	for i, it := range items {
		if _, dup := index[it.GetID()]; !dup {
			index[it.GetID()] = i
		}
	}
	for i, it := range items {
		pid := it.GetParentID()
		p, ok := index[pid]
		// 父节点不在列表中（例如已进回收站）时提升为根
		if pid == "" || !ok {
			a.roots = append(a.roots, i)
			continue
		}
		a.children[p] = append(a.children[p], i)
	}
	if less != nil {
		byKey := func(idx []int) {
			sort.SliceStable(idx, func(x, y int) bool { return less(items[idx[x]], items[idx[y]]) })
		}
		byKey(a.roots)
		for i := range a.children {
			byKey(a.children[i])
		}
	}
	return a
}

// BuildTree 把带 parent 引用的平铺列表还原为树，并按先序（父节点紧跟其全部后代）展开。
// less 为兄弟节点排序键，nil 时保持输入顺序。
// 父引用成环时返回 *CycleError；父节点不存在时该节点作为根。
func BuildTree[T Node](items []T, less func(a, b T) bool) ([]Row[T], error) {
	a := newArena(items, less)
	out := make([]Row[T], 0, len(items))
	visited := make([]bool, len(items))

	type frame struct{ idx, depth int }
	stack := make([]frame, 0, len(a.roots))
	for i := len(a.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{a.roots[i], 0})
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.idx] {
			continue
		}
		visited[f.idx] = true
		out = append(out, Row[T]{Item: a.items[f.idx], Depth: f.depth})
		kids := a.children[f.idx]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.depth + 1})
		}
	}

	// 从根不可达的节点只可能位于环上或环的子树中
	if len(out) < len(items) {
		var ids []string
		for i, ok := range visited {
			if !ok {
				ids = append(ids, items[i].GetID())
			}
		}
		return out, &CycleError{IDs: ids}
	}
	return out, nil
}

// Descendants 返回 id 的全部后代 id（不含自身），用于父级下拉框排除与防环校验
func Descendants[T Node](items []T, id string) map[string]struct{} {
	a := newArena(items, nil)
	out := make(map[string]struct{})
	var queue []int
	for i, it := range items {
		if it.GetID() == id {
			queue = append(queue, a.children[i]...)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		cid := items[i].GetID()
		if _, seen := out[cid]; seen || cid == id {
			continue
		}
		out[cid] = struct{}{}
		queue = append(queue, a.children[i]...)
	}
	return out
}

// WouldCycle 判断把 id 的父节点改为 parentID 是否会成环
func WouldCycle[T Node](items []T, id, parentID string) bool {
	if parentID == "" {
		return false
	}
	if parentID == id {
		return true
	}
	_, ok := Descendants(items, id)[parentID]
	return ok
}
