package hostbackend

import (
	"context"

	nmtnamespace "github.com/celestiaorg/nmt/namespace"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient/gethclient"

	"github.com/holiman/uint256"

	"github.com/calindra/op-celestia-da/internal/blobstream"
	"github.com/calindra/op-celestia-da/internal/celestiaproof"
	"github.com/calindra/op-celestia-da/internal/daerrors"
	"github.com/calindra/op-celestia-da/internal/oracle"
)

// handleCelestiaHint implements spec.md §4.6 steps 2-9: gather the Celestia
// share proof and the Blobstream Merkle-Patricia proof chain, verify them
// locally, then store the resulting payload.
func (b *Backend) handleCelestiaHint(ctx context.Context, height uint64, commitment [32]byte) error {
	header, err := b.Celestia.Header.GetByHeight(ctx, height)
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching celestia header at height %d", height)
	}
	var dataRoot common.Hash
	copy(dataRoot[:], header.DataHash)
	rowRoots := header.DAH.RowRoots

	inclusion, err := b.Celestia.Blob.GetProof(ctx, height, b.Namespace, commitment[:])
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching blob inclusion proof")
	}
	if len(*inclusion) == 0 {
		return daerrors.New(daerrors.NoDataCommitment, "celestia returned no inclusion proof for commitment %x", commitment)
	}
	blobIndex := (*inclusion)[0].Start()
	sharesLen := (*inclusion)[0].End() - blobIndex

	retrieved, err := b.Celestia.Blob.Get(ctx, height, b.Namespace, commitment[:])
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching blob data")
	}

	start, end := calculateShareRange(len(rowRoots), blobIndex, sharesLen)
	rangeProof, err := b.Tendermint.ProveShares(ctx, height, uint64(start), uint64(end))
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching share range proof")
	}
	shareProof := celestiaproof.ShareProof{
		Shares:      rangeProof.Data,
		NamespaceID: nmtnamespace.ID(b.Namespace),
		ShareProofs: rangeProof.ShareProofs,
		Rows: celestiaproof.RowProof{
			RowRoots: rangeProof.RowProof.RowRoots,
			Proofs:   rangeProof.RowProof.Proofs,
			StartRow: rangeProof.RowProof.StartRow,
			EndRow:   rangeProof.RowProof.EndRow,
		},
	}
	if err := shareProof.Verify(dataRoot[:]); err != nil {
		return err
	}

	l1Header, err := b.Eth.HeaderByHash(ctx, b.L1Head)
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching trusted l1 header")
	}

	dc, err := b.findDataCommitment(ctx, height, l1Header.Number.Uint64())
	if err != nil {
		return err
	}

	dcProof, err := b.Tendermint.DataRootInclusionProof(ctx, height, dc.StartBlock, dc.EndBlock)
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching data root tuple inclusion proof")
	}
	tupleProof := dcProof.Proof
	tuple := blobstream.EncodeDataRootTuple(height, dataRoot)
	if err := (celestiaproof.DataRootTupleProof{Proof: tupleProof}).Verify(tuple, dc.DataCommitment); err != nil {
		return err
	}

	commitmentNonce, overflow := uint256.FromBig(dc.ProofNonce)
	if overflow {
		return daerrors.New(daerrors.OracleDecode, "blobstream proof nonce overflows u256")
	}
	slot := blobstream.CalculateMappingSlot(blobstream.DataCommitmentsSlot, commitmentNonce)

	gc := gethclient.New(b.Eth.Client())
	accountProof, err := gc.GetProof(ctx, b.BlobstreamAddr, []string{slot.Hex()}, l1Header.Number)
	if err != nil {
		return daerrors.Wrap(daerrors.OracleTransport, err, "fetching eth_getProof for blobstream account")
	}
	if accountProof.Address != b.BlobstreamAddr {
		return daerrors.New(daerrors.OracleDecode, "eth_getProof returned account %s, want %s", accountProof.Address, b.BlobstreamAddr)
	}
	if len(accountProof.StorageProof) != 1 {
		return daerrors.New(daerrors.OracleDecode, "eth_getProof returned %d storage proofs, want 1", len(accountProof.StorageProof))
	}

	accountProofNodes := decodeHexProof(accountProof.AccountProof)
	storageProofNodes := decodeHexProof(accountProof.StorageProof[0].Proof)

	if err := blobstream.VerifyDataCommitment(blobstream.VerifyDataCommitmentInput{
		StorageRoot:            accountProof.StorageHash,
		StorageProof:           storageProofNodes,
		AccountProof:           accountProofNodes,
		CommitmentNonce:        commitmentNonce,
		ExpectedCommitment:     dc.DataCommitment,
		ExpectedBlobstreamAddr: b.BlobstreamAddr,
		BlobstreamBalance:      accountProof.Balance,
		BlobstreamNonce:        accountProof.Nonce,
		BlobstreamCodeHash:     accountProof.CodeHash,
		BlockHeader:            l1Header,
		TrustedL1BlockHash:     b.L1Head,
	}); err != nil {
		return daerrors.Wrap(daerrors.ProofVerificationFailed, err, "pre-flight verification of freshly fetched proof failed")
	}

	payload := oracle.NewPayload(oracle.NewPayloadInput{
		Blob:               retrieved.Data,
		DataRoot:           dataRoot,
		DataCommitment:     dc.DataCommitment,
		DataRootTupleProof: tupleProof,
		ShareProof:         shareProof,
		ProofNonce:         dc.ProofNonce,
		StorageRoot:        accountProof.StorageHash,
		StorageProof:       storageProofNodes,
		AccountProof:       accountProofNodes,
		BlobstreamBalance:  accountProof.Balance,
		BlobstreamNonce:    accountProof.Nonce,
		BlobstreamCodeHash: accountProof.CodeHash,
		BlockHeader:        l1Header,
	})

	encoded, err := oracle.Encode(payload)
	if err != nil {
		return daerrors.Wrap(daerrors.OracleDecode, err, "encoding celestia oracle payload")
	}

	return b.Store.Put(oracle.CelestiaKey(height, commitment), encoded)
}

func decodeHexProof(hexNodes []string) [][]byte {
	nodes := make([][]byte, len(hexNodes))
	for i, h := range hexNodes {
		nodes[i] = common.FromHex(h)
	}
	return nodes
}
