// Package ratelimit exposes reader/writer wrappers which limit the rate at which bytes flow through the underlying
// reader/writer; used to throttle transfers without the engine itself implementing admission control.
package ratelimit

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"

	"github.com/stratastore/transfer-common/ioiface"
	"github.com/stratastore/transfer-common/maths"
)

// RateLimitedReader uses its limiter as a rate limit on the number of bytes read.
type RateLimitedReader struct {
	ctx     context.Context
	r       ioiface.ReadAtSeeker
	limiter *rate.Limiter
}

// RateLimitedReadCloser uses its limiter as a rate limit on the number of bytes read, closing the underlying reader
// when done.
type RateLimitedReadCloser struct {
	ctx     context.Context
	r       io.ReadCloser
	limiter *rate.Limiter
}

// RateLimitedReadSeeker uses its limiter as a rate limit on the number of bytes read.
type RateLimitedReadSeeker struct {
	ctx     context.Context
	r       io.ReadSeeker
	limiter *rate.Limiter
}

// RateLimitedWriter uses its limiter as a rate limit on the number of bytes written.
type RateLimitedWriter struct {
	ctx     context.Context
	w       io.WriterAt
	limiter *rate.Limiter
}

var (
	_ ioiface.ReadAtSeeker = (*RateLimitedReader)(nil)
	_ io.ReadCloser        = (*RateLimitedReadCloser)(nil)
	_ io.ReadSeeker        = (*RateLimitedReadSeeker)(nil)
	_ io.WriterAt          = (*RateLimitedWriter)(nil)
)

// NewRateLimitedReader creates a new reader which respects 'limiter' in terms of the number of bytes read.
func NewRateLimitedReader(ctx context.Context, r ioiface.ReadAtSeeker, limiter *rate.Limiter) *RateLimitedReader {
	return &RateLimitedReader{ctx: ctx, r: r, limiter: limiter}
}

// Read reads into p whilst respecting the rate limit.
func (r *RateLimitedReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n <= 0 {
		return n, err
	}

	return n, waitChunked(r.ctx, r.limiter, n)
}

// ReadAt reads into p from off whilst respecting the rate limit.
func (r *RateLimitedReader) ReadAt(p []byte, off int64) (int, error) {
	n, err := r.r.ReadAt(p, off)
	if n <= 0 {
		return n, err
	}

	return n, waitChunked(r.ctx, r.limiter, n)
}

// Seek sets the offset for the next read.
func (r *RateLimitedReader) Seek(offset int64, whence int) (int64, error) {
	return r.r.Seek(offset, whence)
}

// NewRateLimitedReadCloser creates a new read closer which respects 'limiter' in terms of the number of bytes read.
func NewRateLimitedReadCloser(ctx context.Context, r io.ReadCloser, limiter *rate.Limiter) *RateLimitedReadCloser {
	return &RateLimitedReadCloser{ctx: ctx, r: r, limiter: limiter}
}

// Read reads into p whilst respecting the rate limit.
func (r *RateLimitedReadCloser) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n <= 0 {
		return n, err
	}

	return n, waitChunked(r.ctx, r.limiter, n)
}

// Close closes the underlying reader.
func (r *RateLimitedReadCloser) Close() error {
	return r.r.Close()
}

// NewRateLimitedReadSeeker creates a new read seeker which respects 'limiter' in terms of the number of bytes read.
func NewRateLimitedReadSeeker(ctx context.Context, r io.ReadSeeker, limiter *rate.Limiter) *RateLimitedReadSeeker {
	return &RateLimitedReadSeeker{ctx: ctx, r: r, limiter: limiter}
}

// Read reads into p whilst respecting the rate limit.
func (r *RateLimitedReadSeeker) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n <= 0 {
		return n, err
	}

	return n, waitChunked(r.ctx, r.limiter, n)
}

// Seek sets the offset for the next read.
func (r *RateLimitedReadSeeker) Seek(offset int64, whence int) (int64, error) {
	return r.r.Seek(offset, whence)
}

// NewRateLimitedWriter creates a new writer which respects 'limiter' in terms of the number of bytes written.
func NewRateLimitedWriter(ctx context.Context, w io.WriterAt, limiter *rate.Limiter) *RateLimitedWriter {
	return &RateLimitedWriter{ctx: ctx, w: w, limiter: limiter}
}

// WriteAt writes from p at off whilst respecting the rate limit.
func (w *RateLimitedWriter) WriteAt(p []byte, off int64) (int, error) {
	n, err := w.w.WriteAt(p, off)
	if n <= 0 {
		return n, err
	}

	return n, waitChunked(w.ctx, w.limiter, n)
}

// waitChunked waits for n tokens in chunks of the limiter's burst size. The rate limiter will only allow at most its
// burst number of tokens to be drained at once, so waiting for more requires several calls.
func waitChunked(ctx context.Context, limiter *rate.Limiter, n int) error {
	maxChunkSize := limiter.Burst()

	for n > 0 {
		waitFor := maths.Min(n, maxChunkSize)
		if lErr := limiter.WaitN(ctx, waitFor); lErr != nil {
			return fmt.Errorf("could not wait for limiter: %w", lErr)
		}

		n -= waitFor
	}

	return nil
}
