package excel

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const productSheet = "Products"

var productHeader = []string{"Image", "SKU", "Name", "Category", "Brand", "Price", "Sale Price", "Stock", "Status"}

type ProductRecord struct {
	Thumbnail string
	SKU       string
	Name      string
	Category  string
	Brand     string
	Price     float64
	SalePrice float64
	Stock     int
	Status    int
}

// ExportReport 嵌图失败的行不重试，只计数
type ExportReport struct {
	Rows          int
	Images        int
	ImageFailures int
}

type ExportOptions struct {
	Fetcher      ImageFetcher
	ImageTimeout time.Duration
	OnImageError func(url string, err error)
}

// WriteProducts 逐行写入并顺序抓取缩略图嵌入 A 列；单张失败留空，不影响整体导出
func WriteProducts(ctx context.Context, recs []ProductRecord, opt ExportOptions) ([]byte, ExportReport, error) {
	rep := ExportReport{Rows: len(recs)}
	f, err := newBook(productSheet, productHeader)
	if err != nil {
		return nil, rep, err
	}
	_ = f.SetColWidth(productSheet, "A", "A", 14)
	_ = f.SetColWidth(productSheet, "C", "C", 40)
	for i, r := range recs {
		if err := ctx.Err(); err != nil {
			return nil, rep, err
		}
		rowNum := i + 2
		vals := []any{"", r.SKU, r.Name, r.Category, r.Brand, r.Price, r.SalePrice, r.Stock, r.Status}
		if err := f.SetSheetRow(productSheet, "A"+itoa(rowNum), &vals); err != nil {
			return nil, rep, err
		}
		if r.Thumbnail == "" || opt.Fetcher == nil {
			continue
		}
		_ = f.SetRowHeight(productSheet, rowNum, 60)
		if err := embed(ctx, f, "A"+itoa(rowNum), r.Thumbnail, opt); err != nil {
			rep.ImageFailures++
			exportImageFailures.Inc()
			if opt.OnImageError != nil {
				opt.OnImageError(r.Thumbnail, err)
			}
			continue
		}
		rep.Images++
	}
	b, err := finish(f)
	return b, rep, err
}

func embed(ctx context.Context, f *excelize.File, cell, url string, opt ExportOptions) error {
	fctx := ctx
	if opt.ImageTimeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(ctx, opt.ImageTimeout)
		defer cancel()
	}
	img, err := opt.Fetcher.Fetch(fctx, url)
	if err != nil {
		return err
	}
	ext := img.Ext
	if ext == "" {
		ext = strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))
	}
	return f.AddPictureFromBytes(productSheet, cell, &excelize.Picture{
		Extension: ext,
		File:      img.Data,
		Format: &excelize.GraphicOptions{
			AutoFit:         true,
			LockAspectRatio: true,
			OffsetX:         2,
			OffsetY:         2,
		},
	})
}

func itoa(n int) string { return strconv.Itoa(n) }
