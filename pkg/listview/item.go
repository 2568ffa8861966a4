// Package listview 实现管理端列表页的数据管线：
// 层级构建 -> 条件过滤 -> 分页，统计独立于过滤运行。
package listview

// Status 两值发布状态
type Status int

const (
	StatusUnpublished Status = 0
	StatusPublished   Status = 1
)

func (s Status) Valid() bool { return s == StatusUnpublished || s == StatusPublished }

// Item 列表管线可处理的实体
type Item interface {
	GetID() string
	GetName() string
	GetStatus() Status
}

// Node 带父引用的实体；空串表示根
type Node interface {
	Item
	GetParentID() string
}
