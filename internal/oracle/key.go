package oracle

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyType is the discriminator byte of a PreimageKey, matching the op-stack
// preimage key-type enumeration this system piggybacks on.
type KeyType byte

// KeyTypeGlobalGeneric is the "no structural meaning, just a keccak256
// digest" key type used for content-addressed blobs that do not belong to
// any of the other kinds the surrounding framework defines.
const KeyTypeGlobalGeneric KeyType = 2

// PreimageKey is the 32-byte content-addressed key under which a preimage is
// requested from and served by the oracle.
type PreimageKey [32]byte

// Hash views the key as a common.Hash, the shape the oracle client and
// key/value store pass around.
func (k PreimageKey) Hash() common.Hash {
	return common.Hash(k)
}

// NewGlobalGenericKey builds a type-tagged digest key per spec.md §3: the
// keccak256 of the preimage, with its first byte replaced by the key-type
// discriminator.
func NewGlobalGenericKey(preimage []byte) PreimageKey {
	digest := crypto.Keccak256(preimage)
	var key PreimageKey
	key[0] = byte(KeyTypeGlobalGeneric)
	copy(key[1:], digest[1:])
	return key
}

// CelestiaPreimage builds the 40-byte key/hint body for a Celestia fetch:
// LE64(height) || commitment[32], per spec.md §3.
func CelestiaPreimage(height uint64, commitment [32]byte) []byte {
	buf := make([]byte, 40)
	binary.LittleEndian.PutUint64(buf[0:8], height)
	copy(buf[8:40], commitment[:])
	return buf
}

// CelestiaKey builds the oracle key for a Celestia fetch.
func CelestiaKey(height uint64, commitment [32]byte) PreimageKey {
	return NewGlobalGenericKey(CelestiaPreimage(height, commitment))
}

// DecodeCelestiaPreimage reverses CelestiaPreimage, used by the host side to
// recover (height, commitment) from a received hint body.
func DecodeCelestiaPreimage(body []byte) (height uint64, commitment [32]byte, err error) {
	if len(body) != 40 {
		return 0, commitment, fmt.Errorf("celestia hint body is %d bytes, want 40", len(body))
	}
	height = binary.LittleEndian.Uint64(body[0:8])
	copy(commitment[:], body[8:40])
	return height, commitment, nil
}

// PreimageOracle is the verifier-side read capability onto the oracle's
// preimage channel.
type PreimageOracle interface {
	Get(key PreimageKey) ([]byte, error)
}

// HintWriter is the verifier-side write capability onto the oracle's hint
// channel.
type HintWriter interface {
	Hint(hint Hint) error
}
