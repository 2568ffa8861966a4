package ez

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-shop-admin/internal/transport/http/response"
)

// EZ 路由组轻封装：handler 只管返回 (data, error)
type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ {
	useJSONNames()
	return EZ{g: g}
}

func (e EZ) Group() *gin.RouterGroup { return e.g }

func (e EZ) GET(path string, h func(c *gin.Context) (any, error)) {
	e.g.GET(path, func(c *gin.Context) {
		data, err := h(c)
		Reply(c, data, err)
	})
}

// FILE 处理 multipart 单文件上传（fieldName 对应表单字段）
func FILE(e EZ, path, fieldName string, h func(c *gin.Context, file *multipart.FileHeader) (any, error)) {
	e.g.POST(path, func(c *gin.Context) {
		fh, err := c.FormFile(fieldName)
		if err != nil {
			resp.JSON(c, resp.Error(resp.CodeBadRequest, "missing file field: "+fieldName))
			return
		}
		data, err := h(c, fh)
		Reply(c, data, err)
	})
}

// Download 直接输出二进制（xlsx 导出等），出错时仍走统一 JSON 信封
func Download(e EZ, path, contentType string, h func(c *gin.Context) (filename string, body []byte, err error)) {
	e.g.GET(path, func(c *gin.Context) {
		name, body, err := h(c)
		if err != nil {
			Reply(c, nil, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, contentType, body)
	})
}

// Reply 统一输出：AErr -> 对应 code；其它错误 -> 500
func Reply(c *gin.Context, data any, err error) {
	if err != nil {
		ae := AsAErr(err)
		if ae.Code >= 500 && ae.Err != nil {
			_ = c.Error(ae.Err)
		}
		resp.JSON(c, resp.Error(ae.Code, ae.Error()))
		return
	}
	resp.JSON(c, resp.OK(data))
}
