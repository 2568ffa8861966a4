package listview

// DefaultPageSize 管理端列表默认每页条数
const DefaultPageSize = 10

// MaxPageSize 单页上限
const MaxPageSize = 100

// MaxPage 页码上限，保证 (page-1)*size 不溢出
const MaxPage = 1 << 20

// Pagination 列表接口返回的分页元信息
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Page 一页数据
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func (p Page[T]) Meta() Pagination {
	return Pagination{Total: p.Total, Page: p.Page, Limit: p.Limit, Pages: p.TotalPages}
}

// TotalPages ceil(total/size)；空列表为 0 页
func TotalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return (total + size - 1) / size
}

// NewPagination 用于数据库侧分页（总数来自 COUNT）
func NewPagination(total int64, page, size int) Pagination {
	return Pagination{Total: int(total), Page: page, Limit: size, Pages: TotalPages(int(total), size)}
}

// NormalizePaging 把 query 里的 page/limit 收敛到合法范围
func NormalizePaging(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Offset 数据库 OFFSET
func Offset(page, size int) int {
	page, size = NormalizePaging(page, size)
	return (page - 1) * size
}

// Paginate 按固定页长切片。页码不做钳制：越界页返回空切片，由调用方（View）维护页码范围。
func Paginate[T any](items []T, size, page int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page[T]{Total: len(items), Page: page, Limit: size, TotalPages: TotalPages(len(items), size)}
	// 先用除法判断越界，超大页码相乘会溢出
	if page < 1 || len(items) == 0 || page-1 > (len(items)-1)/size {
		p.Items = []T{}
		return p
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end]
	return p
}
