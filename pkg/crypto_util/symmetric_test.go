package crypto_util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESGCMRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	plaintext := []byte(`{"is_frozen":false,"daily_spent":"1.5"}`)

	blob, err := EncryptAESGCM(key, plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, blob)

	got, err := DecryptAESGCM(key, blob)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestAESGCMWrongKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 16)
	blob, err := EncryptAESGCM(key, []byte("secret"))
	require.NoError(t, err)

	other := bytes.Repeat([]byte{0x02}, 16)
	_, err = DecryptAESGCM(other, blob)
	assert.Error(t, err)
}

func TestAESGCMTamperedCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x07}, 24)
	blob, err := EncryptAESGCM(key, []byte("secret"))
	require.NoError(t, err)

	blob[len(blob)-1] ^= 0xff
	_, err = DecryptAESGCM(key, blob)
	assert.Error(t, err)
}

func TestAESGCMInvalidKeySize(t *testing.T) {
	_, err := EncryptAESGCM([]byte("short"), []byte("secret"))
	assert.Error(t, err)
}

func TestAESGCMShortCiphertext(t *testing.T) {
	key := bytes.Repeat([]byte{0x03}, 16)
	_, err := DecryptAESGCM(key, []byte{0x01, 0x02})
	assert.Error(t, err)
}
