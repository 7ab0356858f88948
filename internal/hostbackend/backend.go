// Package hostbackend is the host-side dual of internal/oracle: for each
// hint it receives it walks the same three proofs forward against live
// Celestia and Ethereum RPCs, verifies them locally, and stores the
// resulting payload under the content-addressed key the verifier will ask
// for (C6).
package hostbackend

import (
	"context"
	"strings"

	celestia "github.com/celestiaorg/celestia-openrpc"
	"github.com/celestiaorg/celestia-openrpc/types/share"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	trpchttp "github.com/tendermint/tendermint/rpc/client/http"

	"github.com/calindra/op-celestia-da/internal/kv"
	"github.com/calindra/op-celestia-da/internal/oracle"
)

// dataCommitmentStoredABI describes the one Blobstream event this backend
// decodes, built by hand the way the teacher's CelestiaRequest ABI was.
const dataCommitmentStoredABI = `[{
	"anonymous": false,
	"inputs": [
		{"indexed": false, "name": "proofNonce",      "type": "uint256"},
		{"indexed": true,  "name": "startBlock",       "type": "uint64"},
		{"indexed": true,  "name": "endBlock",         "type": "uint64"},
		{"indexed": true,  "name": "dataCommitment",   "type": "bytes32"}
	],
	"name": "DataCommitmentStored",
	"type": "event"
}]`

// logScanWindow is the block span of a single eth_getLogs call, per
// spec.md §4.6 and the teacher ecosystem's usual RPC provider limits.
const logScanWindow = uint64(5000)

// Backend wires the RPC clients and backing store C6 needs.
type Backend struct {
	Eth            *ethclient.Client
	Tendermint     *trpchttp.HTTP
	Celestia       *celestia.Client
	Namespace      share.Namespace
	BlobstreamAddr common.Address
	L1Head         common.Hash
	Store          kv.KV

	eventABI abi.ABI
}

// NewBackend builds a Backend, parsing its event ABI once up front.
// l1Head is the trusted L1 block hash from boot info; every payload this
// backend assembles is anchored to it.
func NewBackend(eth *ethclient.Client, tm *trpchttp.HTTP, cel *celestia.Client, namespace share.Namespace, blobstreamAddr common.Address, l1Head common.Hash, store kv.KV) (*Backend, error) {
	parsed, err := abi.JSON(strings.NewReader(dataCommitmentStoredABI))
	if err != nil {
		return nil, err
	}
	return &Backend{
		Eth:            eth,
		Tendermint:     tm,
		Celestia:       cel,
		Namespace:      namespace,
		BlobstreamAddr: blobstreamAddr,
		L1Head:         l1Head,
		Store:          store,
		eventABI:       parsed,
	}, nil
}

// HandleHint dispatches a single hint. Every kind other than CelestiaDA is
// the underlying single-chain framework's own concern and is out of scope
// here; a real host wires this Backend alongside that framework's handler.
func (b *Backend) HandleHint(ctx context.Context, hint oracle.Hint) error {
	if hint.Kind != oracle.HintCelestiaDA {
		return nil
	}

	height, commitment, err := oracle.DecodeCelestiaPreimage(hint.Body)
	if err != nil {
		return err
	}
	return b.handleCelestiaHint(ctx, height, commitment)
}
