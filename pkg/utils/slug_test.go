package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"vietnamese", "Áo thun Nam", "ao-thun-nam"},
		{"d with stroke", "Đồng hồ đeo tay", "dong-ho-deo-tay"},
		{"underscore and hyphen runs", "giay__the -- thao", "giay-the-thao"},
		{"leading and trailing separators", "  -Sneakers_ ", "sneakers"},
		{"symbols dropped", "Rock & Roll!", "rock-roll"},
		{"digits kept", "iPhone 15 Pro", "iphone-15-pro"},
		{"tabs and newlines", "a\tb\nc", "a-b-c"},
		{"empty", "", ""},
		{"symbols only", "!!! @@ ##", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Hello World", "Áo thun", "--a--b--", "Đèn LED 12V", "x_y z", "!!", "ÀÁÂÃÈÉÊÌÍÒÓÔÕÙÚĂĐĨŨƠàáâãèéêìíòóôõùúăđĩũơƯĂẠẢẤẦẨẪẬẮẰẲẴẶẸẺẼỀỀỂưăạảấầẩẫậắằẳẵặẹẻẽềềểỄỆỈỊỌỎỐỒỔỖỘỚỜỞỠỢỤỦỨỪễệỉịọỏốồổỗộớờởỡợụủứừỬỮỰỲỴÝỶỸửữựỳỵỷỹ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
		if once != "" {
			assert.True(t, IsValidSlug(once), "slug %q", once)
		}
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "ao thun", Fold("  Áo   THUN "))
	assert.Equal(t, "dong ho", Fold("Đồng hồ"))
	assert.Equal(t, "", Fold("   "))
}

func TestDeriveSlug(t *testing.T) {
	assert.Equal(t, "custom-slug", DeriveSlug("Custom Slug", "Ignored Name"))
	assert.Equal(t, "giay-the-thao", DeriveSlug("", "Giày thể thao"))
	assert.Equal(t, "giay", DeriveSlug("!!!", "Giày"))
}

func TestIsValidSlug(t *testing.T) {
	assert.True(t, IsValidSlug("ao-thun"))
	assert.True(t, IsValidSlug("a1"))
	assert.False(t, IsValidSlug(""))
	assert.False(t, IsValidSlug("-a"))
	assert.False(t, IsValidSlug("a-"))
	assert.False(t, IsValidSlug("a--b"))
	assert.False(t, IsValidSlug("Ao"))
	assert.False(t, IsValidSlug("a b"))
}
