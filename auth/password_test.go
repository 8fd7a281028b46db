package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_Round_Trip(t *testing.T) {
	req := require.New(t)

	hash, err := HashPassword("password123")
	req.NoError(err)
	req.NotEqual("password123", hash)

	req.True(ComparePassword("password123", hash))
	req.False(ComparePassword("wrong", hash))
	req.False(ComparePassword("password123", "not-a-bcrypt-hash"))
}
