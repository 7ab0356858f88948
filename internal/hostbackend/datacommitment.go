package hostbackend

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// dataCommitment is the decoded body of a DataCommitmentStored event.
type dataCommitment struct {
	ProofNonce     *big.Int
	StartBlock     uint64
	EndBlock       uint64
	DataCommitment common.Hash
}

// findDataCommitment scans Ethereum logs backward from l1HeadNumber in
// logScanWindow-sized chunks for the DataCommitmentStored event covering
// celestiaHeight, per spec.md §4.6 step 6. It gives up at genesis.
func (b *Backend) findDataCommitment(ctx context.Context, celestiaHeight, l1HeadNumber uint64) (*dataCommitment, error) {
	topic := b.eventABI.Events["DataCommitmentStored"].ID

	to := l1HeadNumber
	for {
		var from uint64
		if to > logScanWindow {
			from = to - logScanWindow
		}

		logs, err := b.Eth.FilterLogs(ctx, ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(from),
			ToBlock:   new(big.Int).SetUint64(to),
			Addresses: []common.Address{b.BlobstreamAddr},
			Topics:    [][]common.Hash{{topic}},
		})
		if err != nil {
			return nil, daerrors.Wrap(daerrors.OracleTransport, err, "scanning blobstream logs [%d,%d]", from, to)
		}

		for i := len(logs) - 1; i >= 0; i-- {
			log := logs[i]
			if len(log.Topics) != 4 {
				return nil, daerrors.New(daerrors.OracleDecode, "DataCommitmentStored log has %d topics, want 4", len(log.Topics))
			}

			values, err := b.eventABI.Events["DataCommitmentStored"].Inputs.Unpack(log.Data)
			if err != nil {
				return nil, daerrors.Wrap(daerrors.OracleDecode, err, "decoding DataCommitmentStored log")
			}
			dc := dataCommitment{
				ProofNonce:     values[0].(*big.Int),
				StartBlock:     new(big.Int).SetBytes(log.Topics[1].Bytes()).Uint64(),
				EndBlock:       new(big.Int).SetBytes(log.Topics[2].Bytes()).Uint64(),
				DataCommitment: log.Topics[3],
			}

			if dc.StartBlock <= celestiaHeight && celestiaHeight < dc.EndBlock {
				return &dc, nil
			}
		}

		if from == 0 {
			return nil, daerrors.New(daerrors.NoDataCommitment,
				"no blobstream data commitment covers celestia height %d at or before l1 block %d", celestiaHeight, l1HeadNumber)
		}
		to = from
	}
}
