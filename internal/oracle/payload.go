package oracle

import (
	"fmt"
	"math/big"

	"github.com/celestiaorg/nmt"
	nmtnamespace "github.com/celestiaorg/nmt/namespace"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/tendermint/tendermint/crypto/merkle"

	"github.com/calindra/op-celestia-da/internal/celestiaproof"
)

// payloadVersion is bumped whenever the wire layout changes. Forward
// compatibility is not required: host and verifier are built together.
const payloadVersion = 1

// wireNMTProof is the RLP-safe projection of an nmt.Proof. nmt.Proof itself
// carries unexported state, so the wire format stores only its constructor
// inputs and rebuilds the proof on decode.
type wireNMTProof struct {
	Start              uint64
	End                uint64
	Nodes              [][]byte
	IgnoreMaxNamespace bool
}

func toWireNMTProof(p *nmt.Proof) wireNMTProof {
	return wireNMTProof{
		Start:              uint64(p.Start()),
		End:                uint64(p.End()),
		Nodes:              p.Nodes(),
		IgnoreMaxNamespace: p.IsMaxNamespaceIDIgnored(),
	}
}

func (w wireNMTProof) toProof() *nmt.Proof {
	p := nmt.NewInclusionProof(int(w.Start), int(w.End), w.Nodes, w.IgnoreMaxNamespace)
	return &p
}

// wireMerkleProof is the RLP-safe projection of a tendermint
// crypto/merkle.Proof. merkle.Proof's Total and Index fields are signed
// int64, and go-ethereum's rlp package cannot encode signed integers, so
// the wire format carries them as uint64 and converts on either side.
type wireMerkleProof struct {
	Total    uint64
	Index    uint64
	LeafHash []byte
	Aunts    [][]byte
}

func toWireMerkleProof(p merkle.Proof) wireMerkleProof {
	return wireMerkleProof{
		Total:    uint64(p.Total),
		Index:    uint64(p.Index),
		LeafHash: p.LeafHash,
		Aunts:    p.Aunts,
	}
}

func (w wireMerkleProof) toProof() merkle.Proof {
	return merkle.Proof{
		Total:    int64(w.Total),
		Index:    int64(w.Index),
		LeafHash: w.LeafHash,
		Aunts:    w.Aunts,
	}
}

type wireRowProof struct {
	RowRoots [][]byte
	Proofs   []wireMerkleProof
	StartRow uint64
	EndRow   uint64
}

type wireShareProof struct {
	Shares      [][]byte
	NamespaceID []byte
	ShareProofs []wireNMTProof
	Rows        wireRowProof
}

func (w wireShareProof) toProof() celestiaproof.ShareProof {
	proofs := make([]*nmt.Proof, len(w.ShareProofs))
	for i, wp := range w.ShareProofs {
		proofs[i] = wp.toProof()
	}
	rowProofs := make([]*merkle.Proof, len(w.Rows.Proofs))
	for i, wp := range w.Rows.Proofs {
		proof := wp.toProof()
		rowProofs[i] = &proof
	}
	return celestiaproof.ShareProof{
		Shares:      w.Shares,
		NamespaceID: nmtnamespace.ID(w.NamespaceID),
		ShareProofs: proofs,
		Rows: celestiaproof.RowProof{
			RowRoots: w.Rows.RowRoots,
			Proofs:   rowProofs,
			StartRow: uint32(w.Rows.StartRow),
			EndRow:   uint32(w.Rows.EndRow),
		},
	}
}

func fromShareProof(p celestiaproof.ShareProof) wireShareProof {
	proofs := make([]wireNMTProof, len(p.ShareProofs))
	for i, sp := range p.ShareProofs {
		proofs[i] = toWireNMTProof(sp)
	}
	rowProofs := make([]wireMerkleProof, len(p.Rows.Proofs))
	for i, rp := range p.Rows.Proofs {
		rowProofs[i] = toWireMerkleProof(*rp)
	}
	return wireShareProof{
		Shares:      p.Shares,
		NamespaceID: []byte(p.NamespaceID),
		ShareProofs: proofs,
		Rows: wireRowProof{
			RowRoots: p.Rows.RowRoots,
			Proofs:   rowProofs,
			StartRow: uint64(p.Rows.StartRow),
			EndRow:   uint64(p.Rows.EndRow),
		},
	}
}

// Payload is the versioned oracle record served for a Celestia fetch. It
// carries every field C5 needs to run the three-step verification chain of
// spec.md §3 without a further oracle round-trip.
type Payload struct {
	Version uint64

	Blob               []byte
	DataRoot           common.Hash
	DataCommitment     common.Hash
	DataRootTupleProof wireMerkleProof
	ShareProof         wireShareProof

	ProofNonce   *big.Int
	StorageRoot  common.Hash
	StorageProof [][]byte
	AccountProof [][]byte

	BlobstreamBalance  *big.Int
	BlobstreamNonce    uint64
	BlobstreamCodeHash common.Hash

	BlockHeader *types.Header
}

// NewPayloadInput is the domain-shaped constructor input for Payload; C6
// builds one of these from freshly fetched and locally verified proofs.
type NewPayloadInput struct {
	Blob               []byte
	DataRoot           common.Hash
	DataCommitment     common.Hash
	DataRootTupleProof merkle.Proof
	ShareProof         celestiaproof.ShareProof
	ProofNonce         *big.Int
	StorageRoot        common.Hash
	StorageProof       [][]byte
	AccountProof       [][]byte
	BlobstreamBalance  *big.Int
	BlobstreamNonce    uint64
	BlobstreamCodeHash common.Hash
	BlockHeader        *types.Header
}

// NewPayload builds a wire Payload out of domain proof types.
func NewPayload(in NewPayloadInput) *Payload {
	return &Payload{
		Version:            payloadVersion,
		Blob:               in.Blob,
		DataRoot:           in.DataRoot,
		DataCommitment:     in.DataCommitment,
		DataRootTupleProof: toWireMerkleProof(in.DataRootTupleProof),
		ShareProof:         fromShareProof(in.ShareProof),
		ProofNonce:         in.ProofNonce,
		StorageRoot:        in.StorageRoot,
		StorageProof:       in.StorageProof,
		AccountProof:       in.AccountProof,
		BlobstreamBalance:  in.BlobstreamBalance,
		BlobstreamNonce:    in.BlobstreamNonce,
		BlobstreamCodeHash: in.BlobstreamCodeHash,
		BlockHeader:        in.BlockHeader,
	}
}

// ShareProofValue rebuilds the domain ShareProof for local verification.
func (p *Payload) ShareProofValue() celestiaproof.ShareProof {
	return p.ShareProof.toProof()
}

// DataRootTupleProofValue rebuilds the domain DataRootTupleProof.
func (p *Payload) DataRootTupleProofValue() celestiaproof.DataRootTupleProof {
	return celestiaproof.DataRootTupleProof{Proof: p.DataRootTupleProof.toProof()}
}

// Encode serializes a payload deterministically. RLP is reused here rather
// than introducing a second serialization library: it is already a direct
// dependency for BlockHeader, is self-describing in length, and handles the
// record's mix of byte slices, nested slices, and big integers directly.
func Encode(p *Payload) ([]byte, error) {
	return rlp.EncodeToBytes(p)
}

// Decode parses a payload previously produced by Encode, rejecting any
// version this build does not understand.
func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := rlp.DecodeBytes(data, &p); err != nil {
		return nil, err
	}
	if p.Version != payloadVersion {
		return nil, fmt.Errorf("oracle payload version %d is not supported by this build", p.Version)
	}
	return &p, nil
}
