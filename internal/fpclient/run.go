// Package fpclient implements the fault-proof program's top-level run loop:
// load boot info, short-circuit trace extensions, otherwise delegate to a
// derivation Driver and check its output against the claim.
package fpclient

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/calindra/op-celestia-da/internal/daerrors"
	"github.com/calindra/op-celestia-da/internal/oracle"
)

// Driver runs derivation up to the claimed L2 block and reports the
// resulting output root. It is the single-chain framework's own derivation
// pipeline, parameterized here only by the boot info it needs.
type Driver interface {
	SafeHeadNumber(ctx context.Context) (uint64, error)
	AdvanceToTarget(ctx context.Context, boot *oracle.BootInfo) (common.Hash, error)
}

// Run implements the client entrypoint of spec.md's overview: it is the
// Go counterpart of `single.rs`'s `run`.
func Run(ctx context.Context, o oracle.PreimageOracle, driver Driver) error {
	boot, err := oracle.LoadBootInfo(o)
	if err != nil {
		return err
	}

	safeHeadNumber, err := driver.SafeHeadNumber(ctx)
	if err != nil {
		return err
	}

	if boot.ClaimedL2BlockNumber < safeHeadNumber {
		return daerrors.New(daerrors.InvalidClaim,
			"claimed l2 block number %d precedes safe head %d", boot.ClaimedL2BlockNumber, safeHeadNumber)
	}

	if boot.AgreedL2OutputRoot == boot.ClaimedL2OutputRoot {
		slog.Info("trace extension: agreed and claimed output roots already match", "output_root", boot.ClaimedL2OutputRoot)
		return nil
	}

	outputRoot, err := driver.AdvanceToTarget(ctx, boot)
	if err != nil {
		return err
	}

	if outputRoot != boot.ClaimedL2OutputRoot {
		return daerrors.New(daerrors.InvalidClaim,
			"derived output root %s does not match claimed %s", outputRoot, boot.ClaimedL2OutputRoot)
	}

	slog.Info("claim verified", "output_root", outputRoot, "l2_block_number", boot.ClaimedL2BlockNumber)
	return nil
}
