package excel

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var exportImageFailures = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "excel_export_image_failures_total",
	Help: "Thumbnails that could not be fetched during product export",
})

func init() { prometheus.MustRegister(exportImageFailures) }

var ErrImageTooLarge = errors.New("excel: image too large")

type Image struct {
	Data []byte
	Ext  string // ".png"；空表示按 URL 推断
}

type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (Image, error)
}

// Source 自有存储（本地目录 / Supabase），storage.Storage 满足该接口
type Source interface {
	Owns(url string) bool
	Read(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher 自有存储的图直接读，其余走 HTTP GET
type HTTPFetcher struct {
	Client   *http.Client
	Source   Source
	MaxBytes int64
}

func (h *HTTPFetcher) Fetch(ctx context.Context, url string) (Image, error) {
	if h.Source != nil && h.Source.Owns(url) {
		b, err := h.Source.Read(ctx, url)
		if err != nil {
			return Image{}, err
		}
		if h.MaxBytes > 0 && int64(len(b)) > h.MaxBytes {
			return Image{}, ErrImageTooLarge
		}
		return Image{Data: b}, nil
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return Image{}, fmt.Errorf("excel: unsupported image url %q", url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, err
	}
	c := h.Client
	if c == nil {
		c = http.DefaultClient
	}
	res, err := c.Do(req)
	if err != nil {
		return Image{}, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("excel: fetch image: status %d", res.StatusCode)
	}
	var body io.Reader = res.Body
	if h.MaxBytes > 0 {
		body = io.LimitReader(res.Body, h.MaxBytes+1)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return Image{}, err
	}
	if h.MaxBytes > 0 && int64(len(b)) > h.MaxBytes {
		return Image{}, ErrImageTooLarge
	}
	return Image{Data: b, Ext: extFromContentType(res.Header.Get("Content-Type"))}, nil
}

func extFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	}
	return ""
}
