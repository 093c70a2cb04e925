package objval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSegmentOptions() SegmentOptions {
	return SegmentOptions{
		SegmentSize:    8,
		MinSegmentSize: 4,
		MaxSegmentSize: 64,
		MaxParts:       16,
	}
}

func TestSegmentBufferEmpty(t *testing.T) {
	parts, err := SegmentBuffer(42, nil, testSegmentOptions())
	require.NoError(t, err)
	require.Empty(t, parts)
}

func TestSegmentBufferExactMultiple(t *testing.T) {
	buf := make([]byte, 24)

	parts, err := SegmentBuffer(0, buf, testSegmentOptions())
	require.NoError(t, err)
	require.Len(t, parts, 3)

	for i, part := range parts {
		require.Equal(t, uint64(i*8), part.Start)
		require.Equal(t, uint64(i*8+8), part.End)
		require.Equal(t, uint64(8), part.Size())
	}
}

func TestSegmentBufferShortFinalPart(t *testing.T) {
	buf := make([]byte, 21)

	parts, err := SegmentBuffer(0, buf, testSegmentOptions())
	require.NoError(t, err)
	require.Len(t, parts, 3)
	require.Equal(t, uint64(5), parts[2].Size())
	require.Equal(t, uint64(21), parts[2].End)
}

func TestSegmentBufferOffsetAndCoverage(t *testing.T) {
	buf := make([]byte, 30)
	for i := range buf {
		buf[i] = byte(i)
	}

	parts, err := SegmentBuffer(100, buf, testSegmentOptions())
	require.NoError(t, err)

	// Parts must be contiguous, non-overlapping and cover the buffer exactly once
	var offset = uint64(100)

	for _, part := range parts {
		require.Equal(t, offset, part.Start)
		require.Equal(t, part.End-part.Start, uint64(len(part.Data)))
		require.Equal(t, buf[part.Start-100:part.End-100], part.Data)

		offset = part.End
	}

	require.Equal(t, uint64(130), offset)
}

func TestSegmentBufferDeterministic(t *testing.T) {
	buf := make([]byte, 30)

	first, err := SegmentBuffer(100, buf, testSegmentOptions())
	require.NoError(t, err)

	second, err := SegmentBuffer(100, buf, testSegmentOptions())
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestSegmentBufferEnlargement(t *testing.T) {
	opts := testSegmentOptions()
	opts.SegmentSize = 4
	opts.MaxParts = 8

	// 64/4 = 16 parts exceeds the limit, so the segment size is enlarged to 64/(8+1) = 7
	parts, err := SegmentBuffer(0, make([]byte, 64), opts)
	require.NoError(t, err)
	require.Len(t, parts, 10)

	for _, part := range parts[:9] {
		require.Equal(t, uint64(7), part.Size())
	}

	require.Equal(t, uint64(1), parts[9].Size())
}

func TestSegmentBufferEnlargementOutOfBounds(t *testing.T) {
	opts := testSegmentOptions()
	opts.SegmentSize = 4
	opts.MaxParts = 2

	// The enlarged segment size 300/(2+1) = 100 exceeds the maximum
	opts.MaxSegmentSize = 64

	_, err := SegmentBuffer(0, make([]byte, 300), opts)

	var invalidSegmentSize *InvalidSegmentSizeError

	require.ErrorAs(t, err, &invalidSegmentSize)
	require.Equal(t, uint64(100), invalidSegmentSize.Size)
}

func TestSegmentBufferInvalidSegmentSize(t *testing.T) {
	opts := testSegmentOptions()
	opts.SegmentSize = 2

	_, err := SegmentBuffer(0, make([]byte, 8), opts)

	var invalidSegmentSize *InvalidSegmentSizeError

	require.ErrorAs(t, err, &invalidSegmentSize)
}

func TestBufferPartRange(t *testing.T) {
	part := BufferPart{Start: 64, End: 128}

	require.Equal(t, &ByteRange{Start: 64, End: 127}, part.Range())
	require.Equal(t, "bytes=64-127", part.Range().ToRangeHeader())
}