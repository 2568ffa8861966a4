package excel

import (
	"io"
	"strings"
)

const categorySheet = "Categories"

var categoryHeader = []string{"Name", "Slug", "Parent Slug", "Description", "Status", "Sort Order", "Level"}

// CategoryRecord 一行分类；Level 仅导出时填写，导入忽略
type CategoryRecord struct {
	Name        string
	Slug        string
	ParentSlug  string
	Description string
	Status      int
	SortOrder   int
	Level       int
}

// WriteCategories 按传入顺序（树的先序）写出
func WriteCategories(recs []CategoryRecord) ([]byte, error) {
	f, err := newBook(categorySheet, categoryHeader)
	if err != nil {
		return nil, err
	}
	for i, r := range recs {
		cell := "A" + itoa(i+2)
		row := []any{
			strings.Repeat("    ", r.Level) + r.Name,
			r.Slug, r.ParentSlug, r.Description, r.Status, r.SortOrder, r.Level,
		}
		if err := f.SetSheetRow(categorySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(categorySheet, "A", "A", 36)
	_ = f.SetColWidth(categorySheet, "B", "C", 24)
	_ = f.SetColWidth(categorySheet, "D", "D", 48)
	return finish(f)
}

// ReadCategories 缺省状态为 1（上架）
func ReadCategories(r io.Reader) ([]CategoryRecord, error) {
	rows, err := readSheet(r)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, CategoryRecord{
			Name:        m["name"],
			Slug:        m["slug"],
			ParentSlug:  m["parent slug"],
			Description: m["description"],
			Status:      atoi(m["status"], 1),
			SortOrder:   atoi(m["sort order"], 0),
		})
	}
	return out, nil
}
