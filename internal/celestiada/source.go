// Package celestiada implements the Celestia DA source (C3) and the pointer
// multiplexer (C4) that routes between it and the underlying Ethereum DA
// source.
package celestiada

import (
	"errors"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// Fetcher is the capability C3 calls to resolve a (height, commitment) pair
// into blob bytes. In the verifier this is backed by oracle.Provider.BlobGet;
// in tests it is a fake.
type Fetcher interface {
	BlobGet(height uint64, commitment [32]byte) ([]byte, error)
}

// Source holds a fetcher capability and a single-element pending-blob
// queue, per spec.md §4.3's state machine (Empty / Buffered(bytes)).
type Source struct {
	fetcher Fetcher
	pending []byte
	buffered bool
}

// NewSource constructs an empty Source over the given fetcher.
func NewSource(fetcher Fetcher) *Source {
	return &Source{fetcher: fetcher}
}

// Next returns the next blob for (height, commitment), fetching it first if
// the queue is empty.
func (s *Source) Next(height uint64, commitment [32]byte) ([]byte, error) {
	if !s.buffered {
		blob, err := s.fetcher.BlobGet(height, commitment)
		if err != nil {
			return nil, classifyFetchError(err)
		}
		s.pending = blob
		s.buffered = true
	}

	if !s.buffered || len(s.pending) == 0 {
		return nil, daerrors.New(daerrors.OracleTransport, "celestia source is empty after a successful fetch")
	}

	blob := s.pending
	s.pending = nil
	s.buffered = false
	return blob, nil
}

// Clear drops any pending blob, per spec.md §4.3.
func (s *Source) Clear() {
	s.pending = nil
	s.buffered = false
}

// classifyFetchError re-raises a fetcher error with the retry classification
// the driver needs (Temporary, Reset, or Critical/Fatal), per spec.md §4.3.
// daerrors.Kind already carries this classification via Kind.Classify, so a
// fetcher error that is already a *daerrors.Error is passed through
// unchanged; anything else is wrapped as a fatal oracle decode failure,
// since an un-typed error from the fetcher means a bug, not a transient
// condition.
func classifyFetchError(err error) error {
	var daErr *daerrors.Error
	if errors.As(err, &daErr) {
		return daErr
	}
	return daerrors.Wrap(daerrors.OracleDecode, err, "unclassified celestia fetch error")
}
