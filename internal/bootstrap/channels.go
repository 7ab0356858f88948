package bootstrap

import "github.com/calindra/op-celestia-da/internal/oracle"

// hintRequest carries a hint plus a completion channel. The server only
// acks once HandleHint (including any KV Put) has finished, so the client's
// Hint call cannot return before the matching preimage is ready, per
// spec.md §5's ordering guarantee.
type hintRequest struct {
	hint oracle.Hint
	done chan error
}

// channelHintWriter is the client-side half of the in-process hint channel.
type channelHintWriter struct {
	reqs chan<- hintRequest
}

func (w *channelHintWriter) Hint(h oracle.Hint) error {
	req := hintRequest{hint: h, done: make(chan error, 1)}
	w.reqs <- req
	return <-req.done
}

// getRequest carries a preimage key plus a response channel.
type getRequest struct {
	key  oracle.PreimageKey
	resp chan getResponse
}

type getResponse struct {
	data []byte
	err  error
}

// channelPreimageOracle is the client-side half of the in-process preimage
// channel.
type channelPreimageOracle struct {
	reqs chan<- getRequest
}

func (o *channelPreimageOracle) Get(key oracle.PreimageKey) ([]byte, error) {
	req := getRequest{key: key, resp: make(chan getResponse, 1)}
	o.reqs <- req
	resp := <-req.resp
	return resp.data, resp.err
}
