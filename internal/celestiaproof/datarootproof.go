package celestiaproof

import (
	"github.com/tendermint/tendermint/crypto/merkle"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// DataRootTupleProof proves that encode_data_root_tuple(height, data_root)
// is a leaf of the binary Merkle tree Blobstream commits to as
// data_commitment. It reuses Tendermint's own binary Merkle proof rather
// than reimplementing the tree, since a Blobstream commitment is built over
// the same data-root-tuple leaves Tendermint's light client already proves.
type DataRootTupleProof struct {
	Proof merkle.Proof
}

// Verify checks data_root_tuple_proof.verify(tuple, data_commitment) from
// spec.md §3.
func (p DataRootTupleProof) Verify(tuple [64]byte, commitment [32]byte) error {
	if err := p.Proof.Verify(commitment[:], tuple[:]); err != nil {
		return daerrors.Wrap(daerrors.ProofVerificationFailed, err, "data root tuple not included in commitment")
	}
	return nil
}
