package listview

// Kind 实体类型标签
type Kind string

const (
	KindCategory Kind = "category"
	KindProduct  Kind = "product"
	KindBanner   Kind = "banner"
	KindPost     Kind = "post"
)

// Stats 看板统计
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Featured int `json:"featured"`
}

// Profile 按实体类型配置“精选”判定规则
type Profile[T Item] struct {
	Kind     Kind
	Featured func(T) bool
}

// Aggregate 单次遍历统计；featured 为 nil 时 Featured 恒为 0
func Aggregate[T Item](items []T, featured func(T) bool) Stats {
	var s Stats
	for _, it := range items {
		s.Total++
		if it.GetStatus() == StatusPublished {
			s.Active++
		} else {
			s.Inactive++
		}
		if featured != nil && featured(it) {
			s.Featured++
		}
	}
	return s
}

// Aggregate 使用 profile 的精选规则
func (p Profile[T]) Aggregate(items []T) Stats { return Aggregate(items, p.Featured) }
