// This package contains the main function that executes the celestia
// fault-proof data-availability host.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/calindra/op-celestia-da/internal/bootstrap"
	"github.com/calindra/op-celestia-da/internal/daerrors"
	"github.com/calindra/op-celestia-da/internal/fpclient"
	"github.com/calindra/op-celestia-da/internal/oracle"
	"github.com/carlmjohnson/versioninfo"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	debug bool
	color bool
	opts  = bootstrap.Options{}

	l1Head               string
	agreedL2OutputRoot   string
	claimedL2OutputRoot  string
	claimedL2BlockNumber uint64
)

var cmd = &cobra.Command{
	Use:     "op-celestia-da [flags]",
	Short:   "op-celestia-da verifies and serves Celestia-backed preimages for an optimistic-rollup fault-proof program",
	RunE:    run,
	Version: versioninfo.Short(),
}

func init() {
	cmd.Flags().BoolVar(&debug, "debug", lookupBool("DEBUG", false), "enable debug logging")
	cmd.Flags().BoolVar(&color, "color", lookupBool("LOG_COLOR", true), "colorize log output")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "increase log verbosity; any count enables debug logging")
	cmd.Flags().BoolVar(&opts.Server, "server", lookupBool("SERVER_MODE", false),
		"select out-of-process preimage oracle server mode; only native in-process mode is implemented, so setting this exits with a config error")

	cmd.Flags().StringVar(&opts.L1NodeAddr, "l1-node-address", os.Getenv("L1_NODE_ADDRESS"),
		"address of the L1 execution RPC endpoint")
	cmd.Flags().StringVar(&opts.L1BeaconAddr, "l1-beacon-address", os.Getenv("L1_BEACON_ADDRESS"),
		"address of the L1 beacon-chain RPC endpoint")
	cmd.Flags().StringVar(&opts.L2NodeAddr, "l2-node-address", os.Getenv("L2_NODE_ADDRESS"),
		"address of the L2 execution RPC endpoint")
	cmd.Flags().StringVar(&opts.RollupConfigPath, "rollup-config", os.Getenv("ROLLUP_CONFIG_PATH"),
		"path to the rollup config json file")
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", os.Getenv("DATA_DIR"),
		"directory used for the on-disk preimage store; empty keeps everything in memory")

	cmd.Flags().StringVar(&opts.CelestiaConnection, "celestia-connection", os.Getenv("CELESTIA_CONNECTION"),
		"celestia node rpc address")
	cmd.Flags().StringVar(&opts.CelestiaAuthToken, "auth-token", os.Getenv("CELESTIA_AUTH_TOKEN"),
		"celestia node auth token")
	cmd.Flags().StringVar(&opts.CelestiaNamespace, "namespace", os.Getenv("CELESTIA_NAMESPACE"),
		"hex-encoded celestia namespace")

	cmd.Flags().StringVar(&l1Head, "l1-head", os.Getenv("L1_HEAD"), "trusted L1 block hash")
	cmd.Flags().StringVar(&agreedL2OutputRoot, "agreed-l2-output-root", os.Getenv("AGREED_L2_OUTPUT_ROOT"),
		"agreed L2 output root")
	cmd.Flags().StringVar(&claimedL2OutputRoot, "claimed-l2-output-root", os.Getenv("CLAIMED_L2_OUTPUT_ROOT"),
		"disputed L2 output root claim")
	cmd.Flags().Uint64Var(&claimedL2BlockNumber, "claimed-l2-block-number", 0,
		"L2 block number the claim is made at")
}

func lookupBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v == "1" || v == "true"
}

func run(cmd *cobra.Command, args []string) error {
	logOpts := new(tint.Options)
	if debug || opts.Verbosity > 0 {
		logOpts.Level = slog.LevelDebug
	}
	logOpts.AddSource = debug
	logOpts.NoColor = !color || !isatty.IsTerminal(os.Stdout.Fd())
	logOpts.TimeFormat = "[15:04:05.000]"
	logger := slog.New(tint.NewHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	opts.L1Head = common.HexToHash(l1Head)
	opts.AgreedL2OutputRoot = common.HexToHash(agreedL2OutputRoot)
	opts.ClaimedL2OutputRoot = common.HexToHash(claimedL2OutputRoot)
	opts.ClaimedL2BlockNumber = claimedL2BlockNumber

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := bootstrap.Start(ctx, opts, newDriver)
	if err != nil {
		var derr *daerrors.Error
		if errors.As(err, &derr) {
			slog.Error("host exited", "kind", derr.Kind, "class", derr.Kind.Classify(), "error", derr)
		} else {
			slog.Error("host exited", "error", err)
		}
		return err
	}
	return nil
}

// newDriver wires up the client-side L2 derivation driver. The derivation
// pipeline belongs to the surrounding single-chain fault-proof program and
// is supplied by it at integration time; this host only ships the Celestia
// data-availability leg, so there is no real driver to hand over here.
func newDriver(o oracle.PreimageOracle, hints oracle.HintWriter) fpclient.Driver {
	return unimplementedDriver{}
}

type unimplementedDriver struct{}

func (unimplementedDriver) SafeHeadNumber(ctx context.Context) (uint64, error) {
	return 0, fmt.Errorf("no L2 derivation driver is wired into this build")
}

func (unimplementedDriver) AdvanceToTarget(ctx context.Context, boot *oracle.BootInfo) (common.Hash, error) {
	return common.Hash{}, fmt.Errorf("no L2 derivation driver is wired into this build")
}

func main() {
	_ = godotenv.Load()
	cobra.CheckErr(cmd.Execute())
}
