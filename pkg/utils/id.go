package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID 生成实体主键（32 位无连字符 uuid）
func NewID() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }

// NewCode 生成带前缀的人类可读编号，如订单号 ORD-1A2B3C4D
func NewCode(prefix string) string {
	id := strings.ToUpper(NewID()[:8])
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
