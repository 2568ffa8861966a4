package ez

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNameOnce sync.Once

// useJSONNames 校验错误里用 json / form 字段名而不是 Go 字段名
func useJSONNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// BindMessage 绑定失败时给前端看的提示：逐个字段列出未通过的规则
func BindMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "email":
		return f + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("%s must be %s %s", f, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", f, fe.Tag())
}
