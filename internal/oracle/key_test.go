package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGlobalGenericKey(t *testing.T) {
	preimage := []byte("hello celestia")
	key := NewGlobalGenericKey(preimage)
	require.Equal(t, byte(KeyTypeGlobalGeneric), key[0])

	// deterministic
	require.Equal(t, key, NewGlobalGenericKey(preimage))

	// a different preimage gives a different key
	require.NotEqual(t, key, NewGlobalGenericKey([]byte("different")))
}

func TestCelestiaPreimageRoundTrip(t *testing.T) {
	var commitment [32]byte
	copy(commitment[:], bytesOf(0x42, 32))

	body := CelestiaPreimage(123456, commitment)
	require.Len(t, body, 40)

	height, gotCommitment, err := DecodeCelestiaPreimage(body)
	require.NoError(t, err)
	require.Equal(t, uint64(123456), height)
	require.Equal(t, commitment, gotCommitment)
}

func TestDecodeCelestiaPreimage_WrongLength(t *testing.T) {
	_, _, err := DecodeCelestiaPreimage([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCelestiaKey(t *testing.T) {
	var commitment [32]byte
	copy(commitment[:], bytesOf(0x01, 32))
	k1 := CelestiaKey(1, commitment)
	k2 := CelestiaKey(2, commitment)
	require.NotEqual(t, k1, k2)
	require.Equal(t, byte(KeyTypeGlobalGeneric), k1[0])
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
