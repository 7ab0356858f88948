package bootstrap

import (
	"encoding/binary"
	"encoding/json"

	"github.com/calindra/op-celestia-da/internal/oracle"
)

// localInputs synthesizes boot-info preimages straight from the host's own
// configuration, so the client's first oracle `get` calls never touch the
// backing key/value store. It fronts every SplitStore in this host.
type localInputs struct {
	opts      Options
	l2ChainID uint64
	rollupCfg []byte
}

func newLocalInputs(opts Options, l2ChainID uint64, rollupCfg oracle.RollupConfig) (*localInputs, error) {
	rollupCfg.L2ChainID = l2ChainID
	encoded, err := json.Marshal(rollupCfg)
	if err != nil {
		return nil, err
	}
	return &localInputs{opts: opts, l2ChainID: l2ChainID, rollupCfg: encoded}, nil
}

func (l *localInputs) Get(key [32]byte) ([]byte, bool) {
	if key[0] != byte(oracle.KeyTypeLocal) {
		return nil, false
	}
	idx := binary.BigEndian.Uint64(key[24:32])
	switch idx {
	case oracle.LocalIndexL1Head:
		return l.opts.L1Head.Bytes(), true
	case oracle.LocalIndexL2OutputRoot:
		return l.opts.AgreedL2OutputRoot.Bytes(), true
	case oracle.LocalIndexL2Claim:
		return l.opts.ClaimedL2OutputRoot.Bytes(), true
	case oracle.LocalIndexL2ClaimBlockNumber:
		return uint64To32Bytes(l.opts.ClaimedL2BlockNumber), true
	case oracle.LocalIndexL2ChainID:
		return uint64To32Bytes(l.l2ChainID), true
	case oracle.LocalIndexRollupConfig:
		return l.rollupCfg, true
	default:
		return nil, false
	}
}

func uint64To32Bytes(v uint64) []byte {
	buf := make([]byte, 32)
	binary.BigEndian.PutUint64(buf[24:32], v)
	return buf
}
