package bootstrap

import (
	"context"

	"github.com/calindra/op-celestia-da/internal/daerrors"
	"github.com/calindra/op-celestia-da/internal/kv"
	"github.com/calindra/op-celestia-da/internal/oracle"
)

// hintHandler is the capability serve needs out of a hostbackend.Backend,
// narrowed to ease testing without a live Celestia/Ethereum connection.
type hintHandler interface {
	HandleHint(ctx context.Context, hint oracle.Hint) error
}

// serve is the preimage-server task of spec.md §5: it owns the backend and
// the backing store, consuming hint and get requests from the client task
// running in the other errgroup goroutine.
func serve(ctx context.Context, backend hintHandler, store kv.KV, hints <-chan hintRequest, gets <-chan getRequest) error {
	for hints != nil || gets != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case req, ok := <-hints:
			if !ok {
				hints = nil
				continue
			}
			req.done <- backend.HandleHint(ctx, req.hint)

		case req, ok := <-gets:
			if !ok {
				gets = nil
				continue
			}
			data, err := store.Get(req.key.Hash())
			if err != nil {
				err = daerrors.Wrap(daerrors.OracleTransport, err, "fetching preimage from backing store")
			}
			req.resp <- getResponse{data: data, err: err}
		}
	}
	return nil
}
