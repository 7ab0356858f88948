package oracle

import (
	"github.com/holiman/uint256"

	"github.com/calindra/op-celestia-da/internal/blobstream"
	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// Provider implements the fetcher contract C3 expects, running entirely
// inside the proving VM: it hints, fetches, decodes, and verifies before
// handing a blob back to the derivation pipeline.
type Provider struct {
	Oracle   PreimageOracle
	Hints    HintWriter
	BootInfo *BootInfo
}

// BlobGet hints, fetches and decodes the payload, resolves the canonical
// Blobstream address from the BootInfo field (boot info is not read from the
// oracle here), then runs the three proof checks. The ordering between
// the three proof checks is fixed, not because correctness depends on it,
// but so that a given bad payload always fails at the same step.
func (p *Provider) BlobGet(height uint64, commitment [32]byte) ([]byte, error) {
	key := CelestiaKey(height, commitment)

	if err := p.Hints.Hint(NewCelestiaHint(height, commitment)); err != nil {
		return nil, daerrors.Wrap(daerrors.OracleTransport, err, "sending celestia hint")
	}

	raw, err := p.Oracle.Get(key)
	if err != nil {
		return nil, daerrors.Wrap(daerrors.OracleTransport, err, "fetching celestia preimage")
	}

	payload, err := Decode(raw)
	if err != nil {
		return nil, daerrors.Wrap(daerrors.OracleDecode, err, "decoding celestia oracle payload")
	}

	expectedAddr, ok := blobstream.CanonicalBlobstreamAddress(p.BootInfo.RollupConfig.L1ChainID)
	if !ok {
		return nil, daerrors.New(daerrors.UnknownChain,
			"no canonical blobstream address for l1 chain id %d", p.BootInfo.RollupConfig.L1ChainID)
	}

	nonce, overflow := uint256.FromBig(payload.ProofNonce)
	if overflow {
		return nil, daerrors.New(daerrors.OracleDecode, "proof nonce overflows u256")
	}

	if err := blobstream.VerifyDataCommitment(blobstream.VerifyDataCommitmentInput{
		StorageRoot:            payload.StorageRoot,
		StorageProof:           payload.StorageProof,
		AccountProof:           payload.AccountProof,
		CommitmentNonce:        nonce,
		ExpectedCommitment:     payload.DataCommitment,
		ExpectedBlobstreamAddr: expectedAddr,
		BlobstreamBalance:      payload.BlobstreamBalance,
		BlobstreamNonce:        payload.BlobstreamNonce,
		BlobstreamCodeHash:     payload.BlobstreamCodeHash,
		BlockHeader:            payload.BlockHeader,
		TrustedL1BlockHash:     p.BootInfo.L1Head,
	}); err != nil {
		return nil, err
	}

	if err := payload.ShareProofValue().Verify(payload.DataRoot[:]); err != nil {
		return nil, err
	}

	tuple := blobstream.EncodeDataRootTuple(height, payload.DataRoot)
	if err := payload.DataRootTupleProofValue().Verify(tuple, payload.DataCommitment); err != nil {
		return nil, err
	}

	return payload.Blob, nil
}
