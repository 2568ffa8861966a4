package ez

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	resp "go-shop-admin/internal/transport/http/response"
	"go-shop-admin/pkg/listview"
	"go-shop-admin/pkg/utils"
)

// Hook
type CrudHooks[T any] struct {
	BeforeCreate func(c *gin.Context, m *T) error
	BeforeUpdate func(c *gin.Context, m *T) error
	ScopeList    func(c *gin.Context, q *gorm.DB) *gorm.DB // 自定义筛选/排序
	AfterGet     func(c *gin.Context, m *T)
	AfterWrite   func(c *gin.Context) // 增删改成功后（清缓存等）
}

type CrudConfig[T any] struct {
	DB    *gorm.DB
	Group *gin.RouterGroup // 已鉴权分组
	Path  string
	New   func() *T

	Hooks CrudHooks[T]

	AllowCreate bool
	AllowList   bool
	AllowGet    bool
	AllowUpdate bool
	AllowDelete bool
	AllowStatus bool // PATCH /:id/status {status}

	IDField     string // 默认 "ID"
	StatusField string // 默认 "Status"

	IDGen func() string // 默认 utils.NewID

	// 列表排序，为空则按 id DESC
	OrderBy string // 例如 "created_at DESC"

	// UpdateAll PUT 整体覆盖（含零值，如 bool=false）；Omit 中的列不会被覆盖
	UpdateAll bool
	Omit      []string
}

// 反射 & 工具
func (c *CrudConfig[T]) idFieldCandidates() []string {
	if c.IDField != "" {
		return []string{c.IDField, "ID", "Id"}
	}
	return []string{"ID", "Id"}
}

func getStringFieldPtr(obj any, candidates []string) (*string, bool) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Ptr {
		return nil, false
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		// 未导出字段跳过
		if f.PkgPath != "" {
			continue
		}
		for _, cand := range candidates {
			if f.Name == cand {
				fv := v.Field(i)
				if fv.Kind() == reflect.String && fv.CanSet() {
					return fv.Addr().Interface().(*string), true
				}
			}
		}
	}
	return nil, false
}

func readStringField(obj any, candidates []string) (string, bool) {
	p, ok := getStringFieldPtr(obj, candidates)
	if !ok {
		return "", false
	}
	return *p, true
}

func writeStringField(obj any, candidates []string, val string) bool {
	p, ok := getStringFieldPtr(obj, candidates)
	if !ok {
		return false
	}
	*p = val
	return true
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func toSnake(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	prevUpper := false
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 && !prevUpper {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			prevUpper = true
		} else {
			b.WriteRune(r)
			prevUpper = false
		}
	}
	return b.String()
}

type statusIn struct {
	Status *int `json:"status" binding:"required"`
}

// Crud 注册（无需模型实现任何接口）
func Crud[T any](cfg CrudConfig[T]) {
	// 默认放开所有操作
	if !cfg.AllowCreate && !cfg.AllowGet && !cfg.AllowList && !cfg.AllowUpdate && !cfg.AllowDelete && !cfg.AllowStatus {
		cfg.AllowCreate, cfg.AllowList, cfg.AllowGet, cfg.AllowUpdate, cfg.AllowDelete = true, true, true, true, true
	}
	if cfg.IDGen == nil {
		cfg.IDGen = utils.NewID
	}
	if cfg.StatusField == "" {
		cfg.StatusField = "Status"
	}
	idFieldNames := cfg.idFieldCandidates()
	idCol := toSnake(idFieldNames[0])
	afterWrite := func(c *gin.Context) {
		if cfg.Hooks.AfterWrite != nil {
			cfg.Hooks.AfterWrite(c)
		}
	}
	byID := func(id string) clause.Eq {
		return clause.Eq{Column: clause.Column{Name: idCol}, Value: id}
	}
	find := func(c *gin.Context, id string) (*T, error) {
		m := cfg.New()
		if err := cfg.DB.WithContext(c).Where(byID(id)).First(m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NotFound("not found")
			}
			return nil, Internal("db error", err)
		}
		return m, nil
	}

	// Create
	if cfg.AllowCreate {
		cfg.Group.POST(cfg.Path, func(c *gin.Context) {
			m := cfg.New()
			if err := c.ShouldBindJSON(m); err != nil {
				resp.JSON(c, resp.Error(resp.CodeBadRequest, BindMessage(err)))
				return
			}
			// 服务端分配 ID
			if !writeStringField(m, idFieldNames, cfg.IDGen()) {
				resp.JSON(c, resp.Error(resp.CodeServerError, "id field not found"))
				return
			}
			if cfg.Hooks.BeforeCreate != nil {
				if err := cfg.Hooks.BeforeCreate(c, m); err != nil {
					Reply(c, nil, err)
					return
				}
			}
			if err := cfg.DB.WithContext(c).Create(m).Error; err != nil {
				Reply(c, nil, dbWriteErr(err))
				return
			}
			afterWrite(c)
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			resp.JSON(c, resp.OK(m))
		})
	}

	// List
	if cfg.AllowList {
		cfg.Group.GET(cfg.Path, func(c *gin.Context) {
			page := atoiDefault(c.Query("page"), 1)
			size := atoiDefault(c.Query("limit"), listview.DefaultPageSize)
			page, size = listview.NormalizePaging(page, size)

			q := cfg.DB.WithContext(c).Model(cfg.New())
			if cfg.Hooks.ScopeList != nil {
				q = cfg.Hooks.ScopeList(c, q)
			}

			var total int64
			if err := q.Count(&total).Error; err != nil {
				Reply(c, nil, Internal("count failed", err))
				return
			}

			items := make([]T, 0, size)
			if cfg.OrderBy != "" {
				q = q.Order(cfg.OrderBy)
			} else {
				q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: idCol}, Desc: true})
			}
			if err := q.Limit(size).Offset(listview.Offset(page, size)).Find(&items).Error; err != nil {
				Reply(c, nil, Internal("list failed", err))
				return
			}
			if cfg.Hooks.AfterGet != nil {
				for i := range items {
					cfg.Hooks.AfterGet(c, &items[i])
				}
			}
			resp.JSON(c, resp.OK(gin.H{
				"items":      items,
				"pagination": listview.NewPagination(total, page, size),
			}))
		})
	}

	// Get
	if cfg.AllowGet {
		cfg.Group.GET(cfg.Path+"/:id", func(c *gin.Context) {
			m, err := find(c, c.Param("id"))
			if err != nil {
				Reply(c, nil, err)
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			resp.JSON(c, resp.OK(m))
		})
	}

	// Update（PUT 与 PATCH 等价，零值字段不覆盖）
	if cfg.AllowUpdate {
		update := func(c *gin.Context) {
			id := c.Param("id")
			if _, err := find(c, id); err != nil {
				Reply(c, nil, err)
				return
			}
			in := cfg.New()
			if err := c.ShouldBindJSON(in); err != nil {
				resp.JSON(c, resp.Error(resp.CodeBadRequest, BindMessage(err)))
				return
			}
			// 强制保持 ID
			_ = writeStringField(in, idFieldNames, id)

			if cfg.Hooks.BeforeUpdate != nil {
				if err := cfg.Hooks.BeforeUpdate(c, in); err != nil {
					Reply(c, nil, err)
					return
				}
			}
			q := cfg.DB.WithContext(c).Model(cfg.New()).Where(byID(id))
			if cfg.UpdateAll {
				q = q.Select("*").Omit(append([]string{idCol, "created_at"}, cfg.Omit...)...)
			}
			if err := q.Updates(in).Error; err != nil {
				Reply(c, nil, dbWriteErr(err))
				return
			}
			afterWrite(c)
			m, err := find(c, id)
			if err != nil {
				Reply(c, nil, err)
				return
			}
			if cfg.Hooks.AfterGet != nil {
				cfg.Hooks.AfterGet(c, m)
			}
			resp.JSON(c, resp.OK(m))
		}
		cfg.Group.PUT(cfg.Path+"/:id", update)
		cfg.Group.PATCH(cfg.Path+"/:id", update)
	}

	// Status
	if cfg.AllowStatus {
		col := toSnake(cfg.StatusField)
		cfg.Group.PATCH(cfg.Path+"/:id/status", func(c *gin.Context) {
			var in statusIn
			if err := c.ShouldBindJSON(&in); err != nil {
				resp.JSON(c, resp.Error(resp.CodeBadRequest, BindMessage(err)))
				return
			}
			if !listview.Status(*in.Status).Valid() {
				resp.JSON(c, resp.Error(resp.CodeBadRequest, "status must be 0 or 1"))
				return
			}
			id := c.Param("id")
			res := cfg.DB.WithContext(c).Model(cfg.New()).Where(byID(id)).Update(col, *in.Status)
			if res.Error != nil {
				Reply(c, nil, Internal("update status failed", res.Error))
				return
			}
			if res.RowsAffected == 0 {
				Reply(c, nil, NotFound("not found"))
				return
			}
			afterWrite(c)
			m, err := find(c, id)
			Reply(c, m, err)
		})
	}

	// Delete
	if cfg.AllowDelete {
		cfg.Group.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
			id := c.Param("id")
			res := cfg.DB.WithContext(c).Where(byID(id)).Delete(cfg.New())
			if res.Error != nil {
				Reply(c, nil, Internal("delete failed", res.Error))
				return
			}
			if res.RowsAffected == 0 {
				Reply(c, nil, NotFound("not found"))
				return
			}
			afterWrite(c)
			resp.JSON(c, resp.OK(gin.H{"id": id}))
		})
	}
}

// dbWriteErr 唯一键冲突 -> 409
func dbWriteErr(err error) error {
	if IsDupKey(err) {
		return Conflict("duplicate value")
	}
	return Internal("db write failed", err)
}

func IsDupKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
