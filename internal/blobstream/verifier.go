// Package blobstream implements the pure, oracle-free verification logic
// for the SP1 Blobstream bridge contract: encoding the leaf committed into
// its Merkle tree, deriving its mapping storage slot, and checking the
// Merkle-Patricia account/storage proof chain that ties a data commitment
// back to a trusted L1 state root.
package blobstream

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// DataCommitmentsSlot is the storage slot number of the state_dataCommitments
// mapping in the SP1 Blobstream contract.
const DataCommitmentsSlot = 254

// EncodeDataRootTuple encodes (height, dataRoot) exactly as Blobstream's
// Solidity `DataRootTuple` struct is ABI-encoded for Merkle-tree leaves: 24
// zero bytes, the big-endian 8-byte height, then the 32-byte data root.
func EncodeDataRootTuple(height uint64, dataRoot [32]byte) [64]byte {
	var out [64]byte
	binary.BigEndian.PutUint64(out[24:32], height)
	copy(out[32:], dataRoot[:])
	return out
}

// CalculateMappingSlot computes the storage slot for `mapping[key]` declared
// at the given Solidity storage slot number: keccak256(be32(key) || be32(slot)).
func CalculateMappingSlot(slot uint32, key *uint256.Int) common.Hash {
	var buf [64]byte
	keyBytes := key.Bytes32()
	copy(buf[0:32], keyBytes[:])
	slotBytes := uint256.NewInt(uint64(slot)).Bytes32()
	copy(buf[32:64], slotBytes[:])
	return crypto.Keccak256Hash(buf[:])
}

// VerifyDataCommitmentInput bundles everything VerifyDataCommitment needs to
// check that a Blobstream data commitment is anchored in a trusted L1 state
// root, per spec.md §4.1.
type VerifyDataCommitmentInput struct {
	StorageRoot              common.Hash
	StorageProof             [][]byte
	AccountProof             [][]byte
	CommitmentNonce          *uint256.Int
	ExpectedCommitment       common.Hash
	ExpectedBlobstreamAddr   common.Address
	BlobstreamBalance        *big.Int
	BlobstreamNonce          uint64
	BlobstreamCodeHash       common.Hash
	BlockHeader              *types.Header
	TrustedL1BlockHash       common.Hash
}

// VerifyDataCommitment runs the full three-step chain described in spec.md
// §4.1: recompute and check the header hash, verify the Blobstream account
// against the header's state root, then verify the stored data commitment
// against the account's storage root.
func VerifyDataCommitment(in VerifyDataCommitmentInput) error {
	if in.BlockHeader.Hash() != in.TrustedL1BlockHash {
		return daerrors.New(daerrors.HeaderMismatch,
			"l1 header hash %s does not match trusted l1 head %s",
			in.BlockHeader.Hash(), in.TrustedL1BlockHash)
	}

	account := types.StateAccount{
		Nonce:    in.BlobstreamNonce,
		Balance:  in.BlobstreamBalance,
		Root:     in.StorageRoot,
		CodeHash: in.BlobstreamCodeHash.Bytes(),
	}
	accountLeaf, err := rlp.EncodeToBytes(&account)
	if err != nil {
		return daerrors.Wrap(daerrors.ProofVerificationFailed, err, "encoding blobstream account leaf")
	}

	accountKey := crypto.Keccak256(in.ExpectedBlobstreamAddr.Bytes())
	got, err := verifyMerklePatriciaProof(in.BlockHeader.Root, accountKey, in.AccountProof)
	if err != nil {
		return daerrors.Wrap(daerrors.ProofVerificationFailed, err, "account proof for %s", in.ExpectedBlobstreamAddr)
	}
	if !bytes.Equal(got, accountLeaf) {
		return daerrors.New(daerrors.ProofVerificationFailed,
			"account proof for %s resolved to an unexpected leaf", in.ExpectedBlobstreamAddr)
	}

	slot := CalculateMappingSlot(DataCommitmentsSlot, in.CommitmentNonce)
	storageKey := crypto.Keccak256(slot.Bytes())
	storageLeaf := canonicalStorageLeaf(in.ExpectedCommitment)
	got, err = verifyMerklePatriciaProof(in.StorageRoot, storageKey, in.StorageProof)
	if err != nil {
		return daerrors.Wrap(daerrors.ProofVerificationFailed, err, "storage proof for nonce %s", in.CommitmentNonce)
	}
	if !bytes.Equal(got, storageLeaf) {
		return daerrors.New(daerrors.ProofVerificationFailed,
			"storage proof for nonce %s resolved to an unexpected leaf", in.CommitmentNonce)
	}

	return nil
}

// canonicalStorageLeaf encodes a 32-byte storage value the way Ethereum's
// state trie canonically does: as an RLP big integer, which trims leading
// zero bytes and collapses an all-zero value to the empty string (0x80).
// This is the open question flagged in spec.md §9, resolved in favor of the
// canonical encoding rather than a fixed 0xa0-prefixed 32-byte string.
func canonicalStorageLeaf(value common.Hash) []byte {
	leaf, err := rlp.EncodeToBytes(new(big.Int).SetBytes(value.Bytes()))
	if err != nil {
		// rlp encoding of a *big.Int cannot fail.
		panic(err)
	}
	return leaf
}

func verifyMerklePatriciaProof(root common.Hash, key []byte, proof [][]byte) ([]byte, error) {
	proofDB := memorydb.New()
	defer proofDB.Close()
	for _, node := range proof {
		nodeKey := crypto.Keccak256(node)
		if err := proofDB.Put(nodeKey, node); err != nil {
			return nil, err
		}
	}
	return trie.VerifyProof(root, key, proofDB)
}
