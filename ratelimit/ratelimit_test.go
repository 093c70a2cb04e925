package ratelimit

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	bufSize = 32
	// We want 32 tokens every 50ms
	bufInterval = 50 * time.Millisecond
	leeway      = bufInterval / 5
)

func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(bufInterval/bufSize), bufSize)
}

func TestRateLimitedReader(t *testing.T) {
	var (
		data   = bytes.Repeat([]byte{0x42}, 4*bufSize)
		reader = NewRateLimitedReader(context.Background(), bytes.NewReader(data), newLimiter())
		buf    = make([]byte, bufSize)
	)

	start := time.Now()

	n, err := reader.Read(buf)
	require.NoError(t, err)
	require.Equal(t, bufSize, n)
	require.WithinDuration(t, start, time.Now(), leeway)

	start = time.Now()

	n, err = reader.ReadAt(buf, bufSize)
	require.NoError(t, err)
	require.Equal(t, bufSize, n)
	require.WithinDuration(t, start.Add(bufInterval), time.Now(), leeway)
}

func TestRateLimitedReaderCanDoMoreThanBurst(t *testing.T) {
	var (
		count  = 3
		data   = bytes.Repeat([]byte{0x42}, count*bufSize)
		reader = NewRateLimitedReader(context.Background(), bytes.NewReader(data), newLimiter())
		buf    = make([]byte, count*bufSize)
	)

	start := time.Now()

	n, err := io.ReadFull(reader, buf)
	require.NoError(t, err)
	require.Equal(t, count*bufSize, n)
	require.WithinDuration(t, start.Add(time.Duration(count-1)*bufInterval), time.Now(), 2*leeway)
}

func TestRateLimitedReadCloser(t *testing.T) {
	var (
		reader = io.NopCloser(strings.NewReader(strings.Repeat("a", bufSize)))
		rlr    = NewRateLimitedReadCloser(context.Background(), reader, newLimiter())
	)

	data, err := io.ReadAll(rlr)
	require.NoError(t, err)
	require.Len(t, data, bufSize)
	require.NoError(t, rlr.Close())
}

func TestRateLimitedReadSeeker(t *testing.T) {
	var (
		reader = strings.NewReader(strings.Repeat("a", 2*bufSize))
		rlr    = NewRateLimitedReadSeeker(context.Background(), reader, newLimiter())
		buf    = make([]byte, bufSize)
	)

	n, err := rlr.Read(buf)
	require.NoError(t, err)
	require.Equal(t, bufSize, n)

	offset, err := rlr.Seek(0, io.SeekStart)
	require.NoError(t, err)
	require.Zero(t, offset)
}

type writerAt struct {
	data []byte
}

func (w *writerAt) WriteAt(p []byte, off int64) (int, error) {
	copy(w.data[off:], p)
	return len(p), nil
}

func TestRateLimitedWriter(t *testing.T) {
	var (
		writer = &writerAt{data: make([]byte, 2*bufSize)}
		rlw    = NewRateLimitedWriter(context.Background(), writer, newLimiter())
	)

	n, err := rlw.WriteAt(bytes.Repeat([]byte{0x42}, bufSize), 0)
	require.NoError(t, err)
	require.Equal(t, bufSize, n)
	require.Equal(t, bytes.Repeat([]byte{0x42}, bufSize), writer.data[:bufSize])
}

func TestRateLimitedWriterContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var (
		writer = &writerAt{data: make([]byte, 2*bufSize)}
		rlw    = NewRateLimitedWriter(ctx, writer, newLimiter())
	)

	_, err := rlw.WriteAt(bytes.Repeat([]byte{0x42}, 2*bufSize), 0)
	require.Error(t, err)
}
