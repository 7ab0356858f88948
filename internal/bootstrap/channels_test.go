package bootstrap

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calindra/op-celestia-da/internal/oracle"
)

// TestChannelHintWriter_BlocksUntilAcked verifies the ordering guarantee a
// client relies on: Hint must not return before whatever processed it
// signals completion on the request's done channel.
func TestChannelHintWriter_BlocksUntilAcked(t *testing.T) {
	reqs := make(chan hintRequest)
	writer := &channelHintWriter{reqs: reqs}

	var processed atomic.Bool
	done := make(chan struct{})
	go func() {
		req := <-reqs
		time.Sleep(20 * time.Millisecond)
		processed.Store(true)
		req.done <- nil
		close(done)
	}()

	require.NoError(t, writer.Hint(oracle.NewCelestiaHint(1, [32]byte{})))
	require.True(t, processed.Load())
	<-done
}

func TestChannelHintWriter_PropagatesError(t *testing.T) {
	reqs := make(chan hintRequest)
	writer := &channelHintWriter{reqs: reqs}

	go func() {
		req := <-reqs
		req.done <- errBoom
	}()

	err := writer.Hint(oracle.NewCelestiaHint(1, [32]byte{}))
	require.ErrorIs(t, err, errBoom)
}

func TestChannelPreimageOracle_RoundTrips(t *testing.T) {
	reqs := make(chan getRequest)
	o := &channelPreimageOracle{reqs: reqs}

	go func() {
		req := <-reqs
		req.resp <- getResponse{data: []byte("preimage")}
	}()

	v, err := o.Get(oracle.PreimageKey{})
	require.NoError(t, err)
	require.Equal(t, []byte("preimage"), v)
}

type boomError struct{}

func (boomError) Error() string { return "boom" }

var errBoom = boomError{}
