package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func manyEntities(n int) []testEntity {
	out := make([]testEntity, n)
	for i := range out {
		out[i] = testEntity{ID: fmt.Sprint(i), Name: fmt.Sprintf("item %d", i), Status: StatusPublished}
	}
	out[0].Name = "x marks"
	return out
}

func TestView_FilterChangeResetsPage(t *testing.T) {
	v := NewView[testEntity](10)
	v.SetSource(manyEntities(35))
	v.SetPage(4)
	assert.Equal(t, 4, v.PageNumber())
	assert.Len(t, v.Current().Items, 5)

	v.SetCriteria(Criteria{Name: "x"})
	assert.Equal(t, 1, v.PageNumber())
	cur := v.Current()
	assert.Equal(t, 1, cur.Total)
	assert.Len(t, cur.Items, 1)
}

func TestView_SourceAndTrashResetPage(t *testing.T) {
	v := NewView[testEntity](5)
	v.SetSource(manyEntities(20))
	v.SetPage(3)
	v.SetSource(manyEntities(20))
	assert.Equal(t, 1, v.PageNumber())

	v.SetPage(2)
	v.SetTrash(true, manyEntities(3))
	assert.True(t, v.Trash())
	assert.Equal(t, 1, v.PageNumber())
	assert.Equal(t, 3, v.Current().Total)

	v.SetTrash(false, manyEntities(20))
	assert.False(t, v.Trash())
	assert.Equal(t, 20, v.Current().Total)
}

func TestView_SetPageClamps(t *testing.T) {
	v := NewView[testEntity](10)
	v.SetSource(manyEntities(25))
	v.SetPage(99)
	assert.Equal(t, 3, v.PageNumber())
	v.SetPage(-1)
	assert.Equal(t, 1, v.PageNumber())

	v.SetSource(nil)
	v.SetPage(5)
	assert.Equal(t, 1, v.PageNumber())
	assert.Equal(t, 0, v.Current().TotalPages)
}
