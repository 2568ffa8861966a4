package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	resp "go-shop-admin/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindForm  Binder = "form"  // multipart / x-www-form-urlencoded
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// 统一错误对象（配合 resp.Error(int, msg)）
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error    { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error  { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error     { return &AErr{Code: resp.CodeForbidden, Msg: msg} }
func NotFound(msg string) error      { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error      { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Unprocessable(msg string) error { return &AErr{Code: resp.CodeUnprocessable, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// AsAErr 非 AErr 的错误一律按 500 处理
func AsAErr(err error) *AErr {
	var ae *AErr
	if errors.As(err, &ae) {
		return ae
	}
	return &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string   // "GET" | "POST" | "PUT" | "PATCH" | "DELETE"
	Path    string   // 例："/auth/login"、"/payments/:id/refund"
	Binder  Binder   // 绑定方式
	Auth    bool     // 是否要求登录（检查 userId）
	Roles   []string // 限定角色（可选）
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 鉴权/角色
		if a.Auth {
			if c.GetString("userId") == "" {
				resp.JSON(c, resp.Error(resp.CodeUnauthorized, "unauthorized"))
				return
			}
			if len(a.Roles) > 0 && !contains(a.Roles, c.GetString("role")) {
				resp.JSON(c, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		case BindForm:
			bindErr = c.ShouldBind(&in)
		default: // BindNone
		}
		if bindErr != nil {
			resp.JSON(c, resp.Error(resp.CodeBadRequest, BindMessage(bindErr)))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, &in)
		Reply(c, out, err)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
