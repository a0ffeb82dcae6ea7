package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashService(t *testing.T) {
	service := &HashService{}

	hash, err := service.HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, service.ComparePassword(hash, "password123"))
	assert.False(t, service.ComparePassword(hash, "wrong-password"))

	_, err = service.HashPassword("")
	assert.Error(t, err)
}
