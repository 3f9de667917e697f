package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidNGOStrength(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"small", true},
		{"medium", true},
		{"large", true},
		{"very_large", true},
		{"", false},
		{"huge", false},
		{"very large", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidNGOStrength(tt.value))
		})
	}
}

func TestNGOPasswordHashing(t *testing.T) {
	ngo := NGO{Password: "helping-hands"}

	err := ngo.HashPassword()
	assert.NoError(t, err)
	assert.NotEqual(t, "helping-hands", ngo.Password)

	assert.True(t, ngo.ComparePassword("helping-hands"))
	assert.False(t, ngo.ComparePassword("wrong-password"))
}

func TestUserPasswordHashing(t *testing.T) {
	user := User{Password: "secret123"}

	err := user.HashPassword()
	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password)

	assert.True(t, user.ComparePassword("secret123"))
	assert.False(t, user.ComparePassword("secret124"))
}
