package celestiada

import (
	"encoding/binary"

	"github.com/calindra/op-celestia-da/internal/daerrors"
)

// pointerSentinel is the byte at frame offset 2 that marks a frame as a
// Celestia pointer rather than an inline Ethereum DA frame.
const pointerSentinel = 0x0c

// minPointerFrameLen is the shortest a pointer frame can be: 3 header bytes
// plus the 8-byte height and 32-byte commitment that follow the sentinel.
const minPointerFrameLen = 43

// EthereumSource is the underlying frame source C4 wraps; typically the
// single-chain framework's own Ethereum DA provider, opaque here.
type EthereumSource interface {
	Next() ([]byte, error)
	Clear()
}

// Mux is the stateless pointer multiplexer (C4): it asks the Ethereum
// source for each frame, and forwards Celestia pointer frames on to the
// Celestia Source.
type Mux struct {
	Ethereum EthereumSource
	Celestia *Source
}

// Next implements spec.md §4.4: fetch a frame from the Ethereum source;
// if it encodes a Celestia pointer, resolve it through the Celestia source.
func (m *Mux) Next() ([]byte, error) {
	frame, err := m.Ethereum.Next()
	if err != nil {
		return nil, err
	}

	if len(frame) < 3 || frame[2] != pointerSentinel {
		return frame, nil
	}
	if len(frame) < minPointerFrameLen {
		return nil, daerrors.New(daerrors.OracleDecode, "celestia pointer frame is %d bytes, want at least %d", len(frame), minPointerFrameLen)
	}

	height := binary.LittleEndian.Uint64(frame[3:11])
	var commitment [32]byte
	copy(commitment[:], frame[11:43])

	return m.Celestia.Next(height, commitment)
}

// Clear forwards to both underlying sources.
func (m *Mux) Clear() {
	m.Ethereum.Clear()
	m.Celestia.Clear()
}
