package oracle

import "encoding/hex"

// HintKind identifies the kind of a Hint. The set is inherited from the
// surrounding single-chain framework plus the one kind this system adds.
type HintKind string

// HintCelestiaDA is the hint kind added by this system: its body is the
// same 40-byte (height, commitment) pair as the oracle key preimage.
const HintCelestiaDA HintKind = "celestia-da"

// Hint is a (kind, body) pair sent to the host before requesting the
// matching preimage, agreed verbatim between verifier and host.
type Hint struct {
	Kind HintKind
	Body []byte
}

// String renders the hint in the wire format both sides agree on: the kind
// identifier followed by the hex-encoded body.
func (h Hint) String() string {
	return string(h.Kind) + " " + hex.EncodeToString(h.Body)
}

// NewCelestiaHint builds the hint for a Celestia fetch.
func NewCelestiaHint(height uint64, commitment [32]byte) Hint {
	return Hint{Kind: HintCelestiaDA, Body: CelestiaPreimage(height, commitment)}
}
