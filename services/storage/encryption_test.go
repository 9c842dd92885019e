package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	secret := "certificate-key"
	plaintext := []byte("licensed electrician #4411")

	sealed, err := Encrypt(plaintext, secret)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "electrician")

	opened, err := Decrypt(sealed, secret)
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestDecrypt_WrongKeyFails(t *testing.T) {
	sealed, err := Encrypt([]byte("secret"), "a")
	require.NoError(t, err)

	_, err = Decrypt(sealed, "b")
	assert.Error(t, err)
}

func TestDecrypt_ShortPayload(t *testing.T) {
	_, err := Decrypt([]byte{1, 2}, "a")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}
