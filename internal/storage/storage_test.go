package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-admin/internal/core/config"
)

func TestObjectKey(t *testing.T) {
	k := ObjectKey("banners", "Khuyến Mãi Hè.PNG")
	assert.True(t, strings.HasPrefix(k, "banners/"))
	assert.True(t, strings.HasSuffix(k, ".png"))
	assert.Contains(t, k, "khuyen-mai-he-")

	k = ObjectKey("banners", "???.jpg")
	assert.Contains(t, k, "/file-")
}

func TestLocal_PutReadDelete(t *testing.T) {
	s, err := NewLocal(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "banners/a.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/banners/a.png", url)
	assert.True(t, s.Owns(url))
	assert.False(t, s.Owns("https://cdn.example.com/a.png"))

	b, err := s.Read(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, s.Delete(ctx, url))
	_, err = s.Read(ctx, url)
	assert.Error(t, err)
	// 重复删除不报错
	assert.NoError(t, s.Delete(ctx, url))
}

func TestLocal_RejectsTraversal(t *testing.T) {
	s, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	_, err = s.Read(context.Background(), "/uploads/../../etc/passwd")
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestSupabase_ObjectPath(t *testing.T) {
	s := NewSupabase("https://proj.supabase.co/", "key", "")
	u := "https://proj.supabase.co/storage/v1/object/public/uploads/banners/a%20b.png?t=1"
	assert.True(t, s.Owns(u))
	p, err := s.objectPath(u)
	require.NoError(t, err)
	assert.Equal(t, "banners/a b.png", p)

	_, err = s.objectPath("https://other.example.com/x.png")
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestNew_Drivers(t *testing.T) {
	s, err := New(config.Storage{Driver: "local", LocalDir: t.TempDir(), PublicURL: "/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(config.Storage{Driver: "supabase"})
	assert.Error(t, err)

	_, err = New(config.Storage{Driver: "s3"})
	assert.Error(t, err)
}
