package hostbackend

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculateShareRange(t *testing.T) {
	cases := []struct {
		name      string
		edsSize   int
		blobIndex int
		sharesLen int
		start     int
		end       int
	}{
		{"first row of a 4x4 square", 4, 1, 2, 1, 3},
		{"second row of a 4x4 square", 4, 5, 2, 3, 5},
		{"blob spanning the whole first row", 8, 0, 4, 0, 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start, end := calculateShareRange(c.edsSize, c.blobIndex, c.sharesLen)
			require.Equal(t, c.start, start)
			require.Equal(t, c.end, end)
		})
	}
}
