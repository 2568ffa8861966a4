package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-shop-admin/internal/core/auth"
	"go-shop-admin/internal/storage"
	"go-shop-admin/internal/testutil"
)

func newTestServices(t *testing.T, opt Options) (*Services, storage.Storage) {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return New(db, nil, store, jwter, nil, opt), store
}

func ctx() context.Context { return context.Background() }

func intp(v int) *int { return &v }

// fileHeader 构造 multipart 上传文件
func fileHeader(t *testing.T, field, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File[field][0]
}
