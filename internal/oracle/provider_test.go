package oracle

import (
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/tendermint/tendermint/crypto/merkle"

	"github.com/stretchr/testify/require"

	"github.com/calindra/op-celestia-da/internal/blobstream"
	"github.com/calindra/op-celestia-da/internal/celestiaproof"
	"github.com/calindra/op-celestia-da/internal/daerrors"
)

type recordingHints struct {
	sent []Hint
}

func (h *recordingHints) Hint(hint Hint) error {
	h.sent = append(h.sent, hint)
	return nil
}

type singleKeyOracle struct {
	key   PreimageKey
	value []byte
}

func (o singleKeyOracle) Get(key PreimageKey) ([]byte, error) {
	if key != o.key {
		return nil, errNotFound
	}
	return o.value, nil
}

func leafNode(t *testing.T, key, value []byte) (root common.Hash, node []byte) {
	t.Helper()
	require.Len(t, key, 32)
	path := append([]byte{0x20}, key...)
	node, err := rlp.EncodeToBytes([][]byte{path, value})
	require.NoError(t, err)
	return crypto.Keccak256Hash(node), node
}

func singleLeafTupleProof(tuple [64]byte) (commitment [32]byte, proof merkle.Proof) {
	h := sha256.Sum256(append([]byte{0}, tuple[:]...))
	copy(commitment[:], h[:])
	return commitment, merkle.Proof{Total: 1, Index: 0, LeafHash: h[:]}
}

// buildPayload assembles a fully self-consistent oracle payload: a single
// Blobstream account/storage leaf, a one-leaf binary Merkle tuple proof, and
// an empty (trivially valid) share proof.
func buildPayload(t *testing.T, height uint64, l1ChainID uint64) (*Payload, common.Hash) {
	t.Helper()

	blobstreamAddr, ok := blobstream.CanonicalBlobstreamAddress(l1ChainID)
	require.True(t, ok)

	var dataRoot common.Hash
	copy(dataRoot[:], bytesOf(0x11, 32))

	commitment, tupleProof := singleLeafTupleProof(blobstream.EncodeDataRootTuple(height, dataRoot))

	nonce := uint256.NewInt(3)
	slot := blobstream.CalculateMappingSlot(blobstream.DataCommitmentsSlot, nonce)
	storageKey := crypto.Keccak256(slot.Bytes())
	storageValue, err := rlp.EncodeToBytes(new(big.Int).SetBytes(commitment[:]))
	require.NoError(t, err)
	storageRoot, storageLeaf := leafNode(t, storageKey, storageValue)

	account := types.StateAccount{
		Nonce:    1,
		Balance:  big.NewInt(0),
		Root:     storageRoot,
		CodeHash: crypto.Keccak256(nil),
	}
	accountValue, err := rlp.EncodeToBytes(&account)
	require.NoError(t, err)
	accountKey := crypto.Keccak256(blobstreamAddr.Bytes())
	stateRoot, accountLeaf := leafNode(t, accountKey, accountValue)

	header := &types.Header{
		Root:       stateRoot,
		Number:     big.NewInt(int64(height)),
		Difficulty: big.NewInt(0),
	}

	payload := NewPayload(NewPayloadInput{
		Blob:               []byte("the blob"),
		DataRoot:           dataRoot,
		DataCommitment:     commitment,
		DataRootTupleProof: tupleProof,
		ShareProof:         celestiaproof.ShareProof{},
		ProofNonce:         nonce.ToBig(),
		StorageRoot:        storageRoot,
		StorageProof:       [][]byte{storageLeaf},
		AccountProof:       [][]byte{accountLeaf},
		BlobstreamBalance:  big.NewInt(0),
		BlobstreamNonce:    1,
		BlobstreamCodeHash: common.BytesToHash(crypto.Keccak256(nil)),
		BlockHeader:        header,
	})
	return payload, header.Hash()
}

func TestProvider_BlobGet_HappyPath(t *testing.T) {
	const l1ChainID = 1
	height := uint64(50)
	payload, l1Head := buildPayload(t, height, l1ChainID)
	encoded, err := Encode(payload)
	require.NoError(t, err)

	var commitment [32]byte
	copy(commitment[:], bytesOf(0x09, 32))
	key := CelestiaKey(height, commitment)

	hints := &recordingHints{}
	p := &Provider{
		Oracle: singleKeyOracle{key: key, value: encoded},
		Hints:  hints,
		BootInfo: &BootInfo{
			RollupConfig: RollupConfig{L1ChainID: l1ChainID},
			L1Head:       l1Head,
		},
	}

	blob, err := p.BlobGet(height, commitment)
	require.NoError(t, err)
	require.Equal(t, []byte("the blob"), blob)
	require.Len(t, hints.sent, 1)
	require.Equal(t, HintCelestiaDA, hints.sent[0].Kind)
}

func TestProvider_BlobGet_UnknownChain(t *testing.T) {
	height := uint64(50)
	payload, l1Head := buildPayload(t, height, 1)
	encoded, err := Encode(payload)
	require.NoError(t, err)

	var commitment [32]byte
	copy(commitment[:], bytesOf(0x09, 32))
	key := CelestiaKey(height, commitment)

	p := &Provider{
		Oracle: singleKeyOracle{key: key, value: encoded},
		Hints:  &recordingHints{},
		BootInfo: &BootInfo{
			RollupConfig: RollupConfig{L1ChainID: 999999},
			L1Head:       l1Head,
		},
	}

	_, err = p.BlobGet(height, commitment)
	var derr *daerrors.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, daerrors.UnknownChain, derr.Kind)
}

func TestProvider_BlobGet_HeaderMismatch(t *testing.T) {
	const l1ChainID = 1
	height := uint64(50)
	payload, _ := buildPayload(t, height, l1ChainID)
	encoded, err := Encode(payload)
	require.NoError(t, err)

	var commitment [32]byte
	copy(commitment[:], bytesOf(0x09, 32))
	key := CelestiaKey(height, commitment)

	p := &Provider{
		Oracle: singleKeyOracle{key: key, value: encoded},
		Hints:  &recordingHints{},
		BootInfo: &BootInfo{
			RollupConfig: RollupConfig{L1ChainID: l1ChainID},
			L1Head:       common.HexToHash("0xdeadbeef"),
		},
	}

	_, err = p.BlobGet(height, commitment)
	var derr *daerrors.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, daerrors.HeaderMismatch, derr.Kind)
}
