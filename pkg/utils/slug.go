package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ/Đ 不能被 NFD 分解，需要单独映射
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func stripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}

// Normalize 把显示名转换成 URL 安全的 slug。
// 小写、去掉变音符号、空白/下划线/连字符连续段压成一个 "-"、其它符号丢弃、首尾 "-" 去掉。
// 结果可能为空串，需要 slug 的调用方自行判空。
func Normalize(name string) string {
	s := strings.ToLower(stripDiacritics(name))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_' || r == '-':
			pendingSep = true
		}
	}
	return b.String()
}

// Fold 用于搜索比较：小写 + 去变音 + 压缩空白，不做连字符化
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(stripDiacritics(s))), " ")
}

// DeriveSlug 显式 slug 优先，否则由名称生成
func DeriveSlug(explicit, name string) string {
	if s := Normalize(explicit); s != "" {
		return s
	}
	return Normalize(name)
}

// IsValidSlug 只允许 [a-z0-9] 段 + 单个 "-" 分隔
func IsValidSlug(s string) bool {
	if s == "" || s[0] == '-' || s[len(s)-1] == '-' || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return true
}
