package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordService(t *testing.T) {
	service := NewPasswordService()
	assert.NotNil(t, service)
	assert.IsType(t, &passwordService{}, service)
}

func TestPasswordService_HashAndCompare(t *testing.T) {
	service := NewPasswordService()

	hashedPassword, err := service.Hash("123456")
	require.NoError(t, err)

	assert.Contains(t, hashedPassword, "$argon2id$")
	assert.True(t, service.Compare("123456", hashedPassword))
	assert.False(t, service.Compare("654321", hashedPassword))
}

func TestPasswordService_Hash_UniqueSalt(t *testing.T) {
	service := NewPasswordService()

	hash1, err := service.Hash("same-password")
	require.NoError(t, err)
	hash2, err := service.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
}

func TestPasswordService_CompareBcrypt(t *testing.T) {
	service := NewPasswordService()

	hashed, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, service.Compare("123456", string(hashed)))
	assert.False(t, service.Compare("1234567", string(hashed)))
}

func TestPasswordService_CompareMalformedHash(t *testing.T) {
	service := NewPasswordService()

	assert.False(t, service.Compare("123456", "not-a-hash"))
	assert.False(t, service.Compare("123456", ""))
	assert.False(t, service.Compare("123456", "$2b$broken"))
}
