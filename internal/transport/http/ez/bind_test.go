package ez

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindProbe struct {
	Email  string  `json:"email" binding:"required,email"`
	Status *int    `json:"status" binding:"required,oneof=0 1"`
	Amount float64 `json:"refund_amount" binding:"gt=0"`
}

func TestBindMessageUsesJSONNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAction(New(&r.RouterGroup), Action[bindProbe, string]{
		Method: http.MethodPost, Path: "/probe", Binder: BindJSON,
		Handler: func(*gin.Context, *bindProbe) (string, error) { return "ok", nil },
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/probe", strings.NewReader(`{"email":"nope","status":3}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, env.Msg, "email must be a valid email")
	assert.Contains(t, env.Msg, "status must be one of [0 1]")
	assert.Contains(t, env.Msg, "refund_amount must be gt 0")
}

func TestBindMessagePassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "unexpected EOF", BindMessage(errors.New("unexpected EOF")))
}
