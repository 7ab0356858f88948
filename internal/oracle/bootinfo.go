package oracle

import (
	"encoding/binary"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// KeyTypeLocal is the discriminator for boot-info keys: small, well-known
// indices local to a single proving run, inherited unchanged from the
// surrounding single-chain framework.
const KeyTypeLocal KeyType = 1

// Local boot-info indices, exported so hosts can synthesize these same
// preimages locally instead of fetching them from a backing store.
const (
	LocalIndexL1Head = iota + 1
	LocalIndexL2OutputRoot
	LocalIndexL2Claim
	LocalIndexL2ClaimBlockNumber
	LocalIndexL2ChainID
	LocalIndexRollupConfig
)

// NewLocalIndexKey builds the preimage key for a well-known local boot-info
// index: type byte 1, index packed into the low 8 bytes.
func NewLocalIndexKey(idx uint64) PreimageKey {
	var key PreimageKey
	key[0] = byte(KeyTypeLocal)
	binary.BigEndian.PutUint64(key[24:32], idx)
	return key
}

// RollupConfig carries the subset of the rollup configuration this system
// needs: the L1 chain id selects the canonical Blobstream address. The rest
// of the real rollup config passes through the surrounding framework
// opaquely and is not modeled here.
type RollupConfig struct {
	L1ChainID uint64 `json:"l1_chain_id"`
	L2ChainID uint64 `json:"l2_chain_id"`
}

// BootInfo is the trusted, oracle-delivered context a fault-proof run
// starts from: which L1 head to trust, what the agreed and claimed L2
// outputs are, and the rollup configuration governing both chains.
type BootInfo struct {
	RollupConfig         RollupConfig
	L1Head               common.Hash
	AgreedL2OutputRoot   common.Hash
	ClaimedL2OutputRoot  common.Hash
	ClaimedL2BlockNumber uint64
}

// LoadBootInfo reads the well-known local boot-info preimages, the same
// sequence `single.rs`'s `run` implicitly relies on via its BootInfo loader.
func LoadBootInfo(o PreimageOracle) (*BootInfo, error) {
	l1Head, err := getHash(o, LocalIndexL1Head)
	if err != nil {
		return nil, err
	}
	agreed, err := getHash(o, LocalIndexL2OutputRoot)
	if err != nil {
		return nil, err
	}
	claimed, err := getHash(o, LocalIndexL2Claim)
	if err != nil {
		return nil, err
	}
	blockNumber, err := getUint64(o, LocalIndexL2ClaimBlockNumber)
	if err != nil {
		return nil, err
	}
	l2ChainID, err := getUint64(o, LocalIndexL2ChainID)
	if err != nil {
		return nil, err
	}

	rawCfg, err := o.Get(NewLocalIndexKey(LocalIndexRollupConfig))
	if err != nil {
		return nil, daerrors.Wrap(daerrors.OracleTransport, err, "fetching rollup config preimage")
	}
	var cfg RollupConfig
	if err := json.Unmarshal(rawCfg, &cfg); err != nil {
		return nil, daerrors.Wrap(daerrors.OracleDecode, err, "decoding rollup config")
	}
	cfg.L2ChainID = l2ChainID

	return &BootInfo{
		RollupConfig:         cfg,
		L1Head:               l1Head,
		AgreedL2OutputRoot:   agreed,
		ClaimedL2OutputRoot:  claimed,
		ClaimedL2BlockNumber: blockNumber,
	}, nil
}

func getHash(o PreimageOracle, idx uint64) (common.Hash, error) {
	raw, err := o.Get(NewLocalIndexKey(idx))
	if err != nil {
		return common.Hash{}, daerrors.Wrap(daerrors.OracleTransport, err, "fetching boot info local key %d", idx)
	}
	if len(raw) != 32 {
		return common.Hash{}, daerrors.New(daerrors.OracleDecode, "boot info local key %d is not 32 bytes", idx)
	}
	return common.BytesToHash(raw), nil
}

func getUint64(o PreimageOracle, idx uint64) (uint64, error) {
	raw, err := o.Get(NewLocalIndexKey(idx))
	if err != nil {
		return 0, daerrors.Wrap(daerrors.OracleTransport, err, "fetching boot info local key %d", idx)
	}
	if len(raw) != 32 {
		return 0, daerrors.New(daerrors.OracleDecode, "boot info local key %d is not 32 bytes", idx)
	}
	return binary.BigEndian.Uint64(raw[24:32]), nil
}
