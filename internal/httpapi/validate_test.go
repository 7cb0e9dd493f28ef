package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLocalID(t *testing.T) {
	for id, want := range map[string]bool{
		"abcde":                 true,
		"user1234":              true,
		"a1b2c3d4e5f6g7h8i9j0":  true,
		"abcd":                  false, // too short
		"a1b2c3d4e5f6g7h8i9j0x": false, // too long
		"User1":                 false, // uppercase
		"user name":             false,
		"":                      false,
	} {
		assert.Equal(t, want, validLocalID(id), "id %q", id)
	}
}

func TestValidPassword(t *testing.T) {
	for pw, want := range map[string]bool{
		"abcd1234":              true,
		"A1b2C3d4":              true,
		"short1":                false, // < 8
		"abcdefgh":              false, // no digit
		"12345678":              false, // no letter
		"abcd 1234":             false, // non-alphanumeric
		"abcd1234abcd1234abcd1": false, // > 20
	} {
		assert.Equal(t, want, validPassword(pw), "password %q", pw)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("john@example.com"))
	assert.False(t, validEmail("not-an-email"))
	assert.False(t, validEmail(""))
}

func TestValidNickName(t *testing.T) {
	assert.True(t, validNickName("zoe"))
	assert.True(t, validNickName("바오밥나무"))
	assert.False(t, validNickName("x"))
	assert.False(t, validNickName("has space"))
}
