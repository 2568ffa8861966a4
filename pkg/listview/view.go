package listview

import "sync"

// View 列表页状态：数据源、筛选条件、当前页。
// 数据源、筛选条件或回收站开关一旦变化，页码回到 1，避免筛选收窄后停在空页。
type View[T Item] struct {
	mu       sync.Mutex
	source   []T
	criteria Criteria
	extra    []Predicate[T]
	trash    bool
	page     int
	size     int
}

func NewView[T Item](size int) *View[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &View[T]{page: 1, size: size}
}

// SetSource 重新拉取数据后调用
func (v *View[T]) SetSource(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.source = items
	v.page = 1
}

// SetCriteria 搜索词 / 状态变化
func (v *View[T]) SetCriteria(c Criteria, extra ...Predicate[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.criteria = c
	v.extra = extra
	v.page = 1
}

// SetTrash 切换回收站视图，同时换上对应的数据源（回收站列表或正常列表）
func (v *View[T]) SetTrash(on bool, items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.trash = on
	v.source = items
	v.page = 1
}

func (v *View[T]) Trash() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.trash
}

// SetPage 翻页，钳制到 [1, totalPages]
func (v *View[T]) SetPage(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	pages := TotalPages(len(v.filteredLocked()), v.size)
	if n > pages {
		n = pages
	}
	if n < 1 {
		n = 1
	}
	v.page = n
}

func (v *View[T]) PageNumber() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Current 当前页数据
func (v *View[T]) Current() Page[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Paginate(v.filteredLocked(), v.size, v.page)
}

func (v *View[T]) filteredLocked() []T {
	return Filter(v.source, v.criteria, v.extra...)
}
