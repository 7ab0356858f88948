// Package bootstrap wires the host's providers, key/value store, and the
// two cooperating tasks (preimage server, client) together, the way the
// teacher's pkg/bootstrap does for its own supervisor.
package bootstrap

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Options holds every CLI/env-configurable value the host needs, per
// spec.md §6's CLI surface.
type Options struct {
	Verbosity int
	Server    bool

	L1NodeAddr       string
	L1BeaconAddr     string
	L2NodeAddr       string
	RollupConfigPath string
	DataDir          string

	CelestiaConnection string
	CelestiaAuthToken  string
	CelestiaNamespace  string

	L1Head               common.Hash
	AgreedL2OutputRoot   common.Hash
	ClaimedL2OutputRoot  common.Hash
	ClaimedL2BlockNumber uint64
}

// Validate checks the options this package's wiring actually depends on,
// per spec.md §7's Config error kind.
func (o Options) Validate() error {
	if o.L1NodeAddr == "" {
		return fmt.Errorf("l1-node-address is required")
	}
	if o.L2NodeAddr == "" {
		return fmt.Errorf("l2-node-address is required")
	}
	if o.RollupConfigPath == "" {
		return fmt.Errorf("rollup-config-path is required")
	}
	if o.CelestiaConnection == "" {
		return fmt.Errorf("celestia-connection is required")
	}
	if o.CelestiaNamespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if o.L1Head == (common.Hash{}) {
		return fmt.Errorf("l1-head is required")
	}
	return nil
}
