package celestiada

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeEthereumSource struct {
	frames  [][]byte
	idx     int
	cleared bool
}

func (f *fakeEthereumSource) Next() ([]byte, error) {
	frame := f.frames[f.idx]
	f.idx++
	return frame, nil
}

func (f *fakeEthereumSource) Clear() { f.cleared = true }

type fakeFetcherForMux struct {
	blob []byte
}

func (f *fakeFetcherForMux) BlobGet(height uint64, commitment [32]byte) ([]byte, error) {
	return f.blob, nil
}

func pointerFrame(height uint64, commitment [32]byte) []byte {
	frame := make([]byte, minPointerFrameLen)
	frame[2] = pointerSentinel
	binary.LittleEndian.PutUint64(frame[3:11], height)
	copy(frame[11:43], commitment[:])
	return frame
}

func TestMux_Next_PassesThroughPlainFrame(t *testing.T) {
	eth := &fakeEthereumSource{frames: [][]byte{{0x01, 0x02, 0x03}}}
	mux := &Mux{Ethereum: eth, Celestia: NewSource(&fakeFetcherForMux{})}

	frame, err := mux.Next()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, frame)
}

func TestMux_Next_ResolvesPointerFrame(t *testing.T) {
	var commitment [32]byte
	copy(commitment[:], bytesOf(0x07, 32))
	eth := &fakeEthereumSource{frames: [][]byte{pointerFrame(42, commitment)}}
	mux := &Mux{Ethereum: eth, Celestia: NewSource(&fakeFetcherForMux{blob: []byte("resolved")})}

	frame, err := mux.Next()
	require.NoError(t, err)
	require.Equal(t, []byte("resolved"), frame)
}

func TestMux_Next_RejectsShortPointerFrame(t *testing.T) {
	short := make([]byte, 10)
	short[2] = pointerSentinel
	eth := &fakeEthereumSource{frames: [][]byte{short}}
	mux := &Mux{Ethereum: eth, Celestia: NewSource(&fakeFetcherForMux{})}

	_, err := mux.Next()
	require.Error(t, err)
}

func TestMux_Clear_ForwardsToBoth(t *testing.T) {
	eth := &fakeEthereumSource{}
	celestiaSource := NewSource(&fakeFetcherForMux{})
	celestiaSource.pending = []byte("stale")
	celestiaSource.buffered = true

	mux := &Mux{Ethereum: eth, Celestia: celestiaSource}
	mux.Clear()

	require.True(t, eth.cleared)
	require.False(t, celestiaSource.buffered)
}

func bytesOf(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
