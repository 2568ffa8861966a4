package listview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate_Exactness(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 100} {
		for _, size := range []int{1, 3, 10} {
			items := seq(n)
			pages := TotalPages(n, size)
			assert.Equal(t, (n+size-1)/size, pages)

			sum := 0
			for p := 1; p <= pages; p++ {
				got := Paginate(items, size, p)
				if p < pages {
					assert.Len(t, got.Items, size)
				}
				sum += len(got.Items)
			}
			assert.Equal(t, n, sum, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_EmptyAndOutOfRange(t *testing.T) {
	p := Paginate([]int{}, 10, 1)
	assert.Equal(t, 0, p.TotalPages)
	assert.Empty(t, p.Items)

	p = Paginate(seq(5), 2, 9)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.TotalPages)

	p = Paginate(seq(5), 2, 0)
	assert.Empty(t, p.Items)

	p = Paginate(seq(15), 0, 2)
	assert.Equal(t, DefaultPageSize, p.Limit)
	assert.Len(t, p.Items, 5)

	// ?page=9223372036854775807
	assert.NotPanics(t, func() { p = Paginate(seq(3), 10, math.MaxInt) })
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)
	pg, sz := NormalizePaging(math.MaxInt, 10)
	assert.NotPanics(t, func() { p = Paginate(seq(3), sz, pg) })
	assert.Empty(t, p.Items)
}

func TestPaginate_Meta(t *testing.T) {
	m := Paginate(seq(21), 10, 3).Meta()
	assert.Equal(t, Pagination{Total: 21, Page: 3, Limit: 10, Pages: 3}, m)
	assert.Equal(t, Pagination{Total: 0, Page: 1, Limit: 20, Pages: 0}, NewPagination(0, 1, 20))
}

func TestNormalizePaging(t *testing.T) {
	p, s := NormalizePaging(0, 0)
	assert.Equal(t, 1, p)
	assert.Equal(t, DefaultPageSize, s)
	_, s = NormalizePaging(2, 1000)
	assert.Equal(t, MaxPageSize, s)
	assert.Equal(t, 20, Offset(3, 10))

	p, _ = NormalizePaging(math.MaxInt, 10)
	assert.Equal(t, MaxPage, p)
	assert.Positive(t, Offset(math.MaxInt, MaxPageSize))
}
