package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	assert.True(t, IsCardNumber("4561261212345467"))
	assert.False(t, IsCardNumber("1234567890123456"))
	assert.False(t, IsCardNumber("not-a-number"))
	assert.False(t, IsCardNumber(""))
}
