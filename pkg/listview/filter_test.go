package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleProducts() []testEntity {
	return []testEntity{
		{ID: "1", Name: "Áo thun", Status: StatusPublished},
		{ID: "2", Name: "Quần jean", Status: StatusUnpublished},
		{ID: "3", Name: "Áo khoác", Status: StatusUnpublished},
		{ID: "4", Name: "Giày", Status: StatusPublished},
	}
}

func TestFilter_NoOpPassesEverything(t *testing.T) {
	items := sampleProducts()
	assert.Equal(t, items, Filter(items, Criteria{Name: "", Status: StatusAll}))
	assert.Equal(t, items, Filter(items, Criteria{}))
}

func TestFilter_AccentInsensitiveName(t *testing.T) {
	got := Filter(sampleProducts(), Criteria{Name: "áo"})
	assert.Equal(t, []string{"1", "3"}, ids(got))

	got = Filter(sampleProducts(), Criteria{Name: "  AO THUN "})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_StatusAndConjunction(t *testing.T) {
	got := Filter(sampleProducts(), Criteria{Status: StatusOnlyHidden})
	assert.Equal(t, []string{"2", "3"}, ids(got))

	got = Filter(sampleProducts(), Criteria{Name: "ao", Status: StatusOnlyActive})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_ExtraPredicates(t *testing.T) {
	notFour := Predicate[testEntity](func(e testEntity) bool { return e.ID != "4" })
	got := Filter(sampleProducts(), Criteria{Status: StatusOnlyActive}, notFour)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestParseStatusFilter(t *testing.T) {
	assert.Equal(t, StatusAll, ParseStatusFilter(""))
	assert.Equal(t, StatusAll, ParseStatusFilter("all"))
	assert.Equal(t, StatusOnlyActive, ParseStatusFilter("1"))
	assert.Equal(t, StatusOnlyActive, ParseStatusFilter("true"))
	assert.Equal(t, StatusOnlyHidden, ParseStatusFilter("0"))

	_, ok := StatusAll.Status()
	assert.False(t, ok)
	st, ok := StatusOnlyHidden.Status()
	assert.True(t, ok)
	assert.Equal(t, StatusUnpublished, st)
}

func TestFilterRows_KeepsDepth(t *testing.T) {
	rows, _ := BuildTree([]testEntity{
		{ID: "1", Name: "Thời trang"},
		{ID: "2", Name: "Áo", ParentID: "1"},
	}, nil)
	got := FilterRows(rows, Criteria{Name: "ao"})
	if assert.Len(t, got, 1) {
		assert.Equal(t, 1, got[0].Depth)
	}
}
