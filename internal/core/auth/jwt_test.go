package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_IssueParse(t *testing.T) {
	j := &JWTer{Secret: []byte("k"), Issuer: "shop", TTL: time.Hour}
	tok, exp, err := j.Issue("u1", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "admin", c.Role)
}

func TestJWT_Rejects(t *testing.T) {
	j := &JWTer{Secret: []byte("k"), Issuer: "shop", TTL: time.Hour}
	tok, _, err := j.Issue("u1", "admin")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: "shop", TTL: time.Hour}
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIss := &JWTer{Secret: []byte("k"), Issuer: "else", TTL: time.Hour}
	_, err = wrongIss.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_Expired(t *testing.T) {
	j := &JWTer{Secret: []byte("k"), Issuer: "shop", TTL: -2 * time.Minute}
	tok, _, err := j.Issue("u1", "admin")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
