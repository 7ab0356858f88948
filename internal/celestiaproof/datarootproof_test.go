package celestiaproof

import (
	"crypto/sha256"
	"testing"

	"github.com/tendermint/tendermint/crypto/merkle"

	"github.com/stretchr/testify/require"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// singleLeafProof builds the binary Merkle proof Tendermint produces for a
// one-leaf tree: the root is just the leaf hash itself, so no aunts are
// needed to climb back up.
func singleLeafProof(leaf []byte) (commitment [32]byte, proof merkle.Proof) {
	h := sha256.Sum256(append([]byte{0}, leaf...))
	copy(commitment[:], h[:])
	return commitment, merkle.Proof{Total: 1, Index: 0, LeafHash: h[:]}
}

func TestDataRootTupleProof_Verify(t *testing.T) {
	var tuple [64]byte
	copy(tuple[:], bytesOf(0xaa, 64))
	commitment, proof := singleLeafProof(tuple[:])

	p := DataRootTupleProof{Proof: proof}
	require.NoError(t, p.Verify(tuple, commitment))
}

func TestDataRootTupleProof_Verify_WrongCommitment(t *testing.T) {
	var tuple [64]byte
	copy(tuple[:], bytesOf(0xaa, 64))
	_, proof := singleLeafProof(tuple[:])

	var wrong [32]byte
	copy(wrong[:], bytesOf(0xff, 32))

	p := DataRootTupleProof{Proof: proof}
	err := p.Verify(tuple, wrong)
	require.Error(t, err)
	var derr *daerrors.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, daerrors.ProofVerificationFailed, derr.Kind)
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
