package bootstrap

import (
	"context"
	"encoding/json"
	"os"

	celestia "github.com/celestiaorg/celestia-openrpc"
	"github.com/celestiaorg/celestia-openrpc/types/share"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	trpchttp "github.com/tendermint/tendermint/rpc/client/http"
	"golang.org/x/sync/errgroup"

	"github.com/calindra/op-celestia-da/internal/blobstream"
	"github.com/calindra/op-celestia-da/internal/daerrors"
	"github.com/calindra/op-celestia-da/internal/fpclient"
	"github.com/calindra/op-celestia-da/internal/hostbackend"
	"github.com/calindra/op-celestia-da/internal/kv"
	"github.com/calindra/op-celestia-da/internal/oracle"
)

// NewDriver builds the client-side derivation driver out of the oracle
// capabilities this package wires up. The derivation pipeline itself
// belongs to the surrounding single-chain framework, so Start takes a
// factory instead of constructing a driver directly.
type NewDriver func(oracle.PreimageOracle, oracle.HintWriter) fpclient.Driver

// Start wires every provider, the key/value store, and the preimage-server
// and client tasks together, then runs both to completion, mirroring the
// teacher's NewSupervisorHLGraphQL wiring for this system's two tasks.
func Start(ctx context.Context, opts Options, newDriver NewDriver) error {
	if err := opts.Validate(); err != nil {
		return daerrors.Wrap(daerrors.Config, err, "validating host options")
	}
	if opts.Server {
		return daerrors.New(daerrors.Config,
			"server mode delegates to the surrounding single-chain host's own preimage-oracle wire protocol; only native (in-process) mode is implemented here")
	}

	rawCfg, err := os.ReadFile(opts.RollupConfigPath)
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "reading rollup config")
	}
	var rollupCfg oracle.RollupConfig
	if err := json.Unmarshal(rawCfg, &rollupCfg); err != nil {
		return daerrors.Wrap(daerrors.Config, err, "decoding rollup config")
	}

	blobstreamAddr, ok := blobstream.CanonicalBlobstreamAddress(rollupCfg.L1ChainID)
	if !ok {
		return daerrors.New(daerrors.UnknownChain, "no canonical blobstream address for l1 chain id %d", rollupCfg.L1ChainID)
	}

	eth, err := ethclient.DialContext(ctx, opts.L1NodeAddr)
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "dialing l1 node")
	}
	defer eth.Close()

	trpc, err := trpchttp.New(opts.CelestiaConnection, "/websocket")
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "dialing celestia tendermint rpc")
	}

	celestiaClient, err := celestia.NewClient(ctx, opts.CelestiaConnection, opts.CelestiaAuthToken)
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "dialing celestia openrpc")
	}

	namespace, err := share.NewBlobNamespaceV0(common.FromHex(opts.CelestiaNamespace))
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "decoding celestia namespace")
	}

	backing, err := newBackingStore(opts)
	if err != nil {
		return err
	}
	local, err := newLocalInputs(opts, rollupCfg.L2ChainID, rollupCfg)
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "building local boot info inputs")
	}
	store := &kv.SplitStore{Local: local, Backing: backing}

	backend, err := hostbackend.NewBackend(eth, trpc, celestiaClient, namespace, blobstreamAddr, opts.L1Head, store)
	if err != nil {
		return daerrors.Wrap(daerrors.Config, err, "building host backend")
	}

	hints := make(chan hintRequest)
	gets := make(chan getRequest)
	hintWriter := &channelHintWriter{reqs: hints}
	preimageOracle := &channelPreimageOracle{reqs: gets}
	driver := newDriver(preimageOracle, hintWriter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(gctx, backend, store, hints, gets)
	})
	g.Go(func() error {
		return fpclient.Run(gctx, preimageOracle, driver)
	})

	return g.Wait()
}

func newBackingStore(opts Options) (kv.KV, error) {
	if opts.DataDir == "" {
		return kv.NewMemoryStore(), nil
	}
	disk, err := kv.NewDiskStore(opts.DataDir)
	if err != nil {
		return nil, daerrors.Wrap(daerrors.Config, err, "opening disk kv store at %s", opts.DataDir)
	}
	return disk, nil
}
