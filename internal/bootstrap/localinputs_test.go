package bootstrap

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/calindra/op-celestia-da/internal/oracle"
)

func TestLocalInputs_AnswersBootInfoKeys(t *testing.T) {
	opts := Options{
		L1Head:               common.HexToHash("0x01"),
		AgreedL2OutputRoot:   common.HexToHash("0x02"),
		ClaimedL2OutputRoot:  common.HexToHash("0x03"),
		ClaimedL2BlockNumber: 77,
	}
	local, err := newLocalInputs(opts, 10, oracle.RollupConfig{L1ChainID: 1})
	require.NoError(t, err)

	v, ok := local.Get(oracle.NewLocalIndexKey(oracle.LocalIndexL1Head))
	require.True(t, ok)
	require.Equal(t, opts.L1Head.Bytes(), v)

	v, ok = local.Get(oracle.NewLocalIndexKey(oracle.LocalIndexL2OutputRoot))
	require.True(t, ok)
	require.Equal(t, opts.AgreedL2OutputRoot.Bytes(), v)

	v, ok = local.Get(oracle.NewLocalIndexKey(oracle.LocalIndexL2Claim))
	require.True(t, ok)
	require.Equal(t, opts.ClaimedL2OutputRoot.Bytes(), v)

	v, ok = local.Get(oracle.NewLocalIndexKey(oracle.LocalIndexL2ClaimBlockNumber))
	require.True(t, ok)
	require.Equal(t, uint64To32Bytes(77), v)

	v, ok = local.Get(oracle.NewLocalIndexKey(oracle.LocalIndexL2ChainID))
	require.True(t, ok)
	require.Equal(t, uint64To32Bytes(10), v)

	v, ok = local.Get(oracle.NewLocalIndexKey(oracle.LocalIndexRollupConfig))
	require.True(t, ok)
	var cfg oracle.RollupConfig
	require.NoError(t, json.Unmarshal(v, &cfg))
	require.Equal(t, uint64(1), cfg.L1ChainID)
	require.Equal(t, uint64(10), cfg.L2ChainID)
}

func TestLocalInputs_UnknownKeyFallsThrough(t *testing.T) {
	local, err := newLocalInputs(Options{}, 10, oracle.RollupConfig{})
	require.NoError(t, err)

	_, ok := local.Get(oracle.NewGlobalGenericKey([]byte("anything")))
	require.False(t, ok)
}
