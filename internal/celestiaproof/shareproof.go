// Package celestiaproof verifies the Celestia-side half of the proof chain:
// that a run of shares reconstructs a blob under a namespaced Merkle row
// root, and that the row roots are included in the block's data root.
package celestiaproof

import (
	"crypto/sha256"

	"github.com/celestiaorg/nmt"
	"github.com/celestiaorg/nmt/namespace"
	"github.com/tendermint/tendermint/crypto/merkle"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// RowProof ties a contiguous run of NMT row roots to a Celestia data root,
// mirroring celestia-node's ShareProof.RowProof shape.
type RowProof struct {
	RowRoots [][]byte
	Proofs   []*merkle.Proof
	StartRow uint32
	EndRow   uint32
}

// ShareProof proves that a run of shares reconstructing a blob is included
// in a Celestia block's data root: one NMT inclusion proof per row the blob
// spans, plus the RowProof tying those row roots into the data root.
type ShareProof struct {
	Shares      [][]byte
	NamespaceID namespace.ID
	ShareProofs []*nmt.Proof
	Rows        RowProof
}

// Verify checks share_proof.verify(data_root) from spec.md §3: per-row NMT
// inclusion of the shares, then row-root inclusion in dataRoot.
func (p ShareProof) Verify(dataRoot []byte) error {
	if len(p.ShareProofs) != len(p.Rows.RowRoots) || len(p.Rows.RowRoots) != len(p.Rows.Proofs) {
		return daerrors.New(daerrors.ProofVerificationFailed, "share proof row counts do not agree")
	}

	remaining := p.Shares
	for i, rowProof := range p.ShareProofs {
		rowRoot := p.Rows.RowRoots[i]

		n := rowProof.End() - rowProof.Start()
		if n < 0 || n > len(remaining) {
			return daerrors.New(daerrors.ProofVerificationFailed, "share proof row %d overruns available shares", i)
		}
		rowShares, rest := remaining[:n], remaining[n:]
		remaining = rest

		hasher := nmt.NewNmtHasher(sha256.New, namespace.IDSize(len(p.NamespaceID)), true)
		if !rowProof.VerifyInclusion(hasher, p.NamespaceID, rowShares, rowRoot) {
			return daerrors.New(daerrors.ProofVerificationFailed, "nmt inclusion failed for row %d", i)
		}

		if err := p.Rows.Proofs[i].Verify(dataRoot, rowRoot); err != nil {
			return daerrors.Wrap(daerrors.ProofVerificationFailed, err, "row root %d not included in data root", i)
		}
	}

	if len(remaining) != 0 {
		return daerrors.New(daerrors.ProofVerificationFailed, "share proof left %d shares unaccounted for", len(remaining))
	}
	return nil
}
