package listview

import (
	"strconv"
	"strings"

	"go-shop-admin/pkg/utils"
)

// StatusFilter 状态筛选：StatusAll 表示不过滤
type StatusFilter string

const (
	StatusAll        StatusFilter = "all"
	StatusOnlyActive StatusFilter = "1"
	StatusOnlyHidden StatusFilter = "0"
)

// ParseStatusFilter 兼容 "", "all", "0", "1", "true", "false"
func ParseStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "published", "active":
		return StatusOnlyActive
	case "0", "false", "unpublished", "inactive":
		return StatusOnlyHidden
	default:
		return StatusAll
	}
}

// Status 返回具体状态；ok=false 表示 all
func (f StatusFilter) Status() (Status, bool) {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0, false
	}
	return Status(n), Status(n).Valid()
}

// Criteria 列表筛选条件，零值匹配全部
type Criteria struct {
	Name   string
	Status StatusFilter
}

// Predicate 单个筛选条件
type Predicate[T any] func(T) bool

// Compose 逻辑与；nil 条件忽略
func Compose[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(v T) bool {
		for _, p := range active {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// NameContains 去首尾空白、忽略大小写与变音的子串匹配；空关键字返回 nil（匹配全部）
func NameContains[T Item](q string) Predicate[T] {
	needle := utils.Fold(q)
	if needle == "" {
		return nil
	}
	return func(v T) bool { return strings.Contains(utils.Fold(v.GetName()), needle) }
}

// StatusIs 精确匹配；StatusAll 返回 nil
func StatusIs[T Item](f StatusFilter) Predicate[T] {
	st, ok := f.Status()
	if !ok {
		return nil
	}
	return func(v T) bool { return v.GetStatus() == st }
}

// Filter 按 Criteria 过滤，extra 为附加条件（分类、品牌等），返回新切片
func Filter[T Item](items []T, c Criteria, extra ...Predicate[T]) []T {
	preds := append([]Predicate[T]{NameContains[T](c.Name), StatusIs[T](c.Status)}, extra...)
	match := Compose(preds...)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterRows 对树展开结果过滤，保留行的深度
func FilterRows[T Node](rows []Row[T], c Criteria, extra ...Predicate[T]) []Row[T] {
	preds := append([]Predicate[T]{NameContains[T](c.Name), StatusIs[T](c.Status)}, extra...)
	match := Compose(preds...)
	out := make([]Row[T], 0, len(rows))
	for _, r := range rows {
		if match(r.Item) {
			out = append(out, r)
		}
	}
	return out
}
