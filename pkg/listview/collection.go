package listview

import "sync"

// Collection 客户端列表缓存。
// 每次变更都以服务端返回的实体为准：Upsert 按 id 替换或追加，Remove 删除，Replace 全量覆盖。
type Collection[T Item] struct {
	mu    sync.RWMutex
	items []T
}

func NewCollection[T Item](items ...T) *Collection[T] {
	c := &Collection[T]{}
	c.Replace(items)
	return c
}

func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T(nil), items...)
}

func (c *Collection[T]) Upsert(items ...T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range items {
		replaced := false
		for i := range c.items {
			if c.items[i].GetID() == it.GetID() {
				c.items[i] = it
				replaced = true
				break
			}
		}
		if !replaced {
			c.items = append(c.items, it)
		}
	}
}

func (c *Collection[T]) Remove(ids ...string) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if _, ok := drop[it.GetID()]; !ok {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items 返回副本
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
