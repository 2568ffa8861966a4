package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPassword("s3cret", h))
	assert.False(t, CheckPassword("wrong", h))
	assert.False(t, CheckPassword("s3cret", ""))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, NewCode("ORD"))
}
