package objcli

import (
	"context"
	"io"

	"golang.org/x/time/rate"

	"github.com/stratastore/transfer-common/objstore/objval"
	"github.com/stratastore/transfer-common/ratelimit"
)

// RateLimitedClient implements the 'Client' interface mostly by deferring to the underlying client, but where the
// methods which involve uploading/downloading objects, the rate limiter is used to control the rate of data transfer.
//
// The rate-limited methods are:
//
// - GetObject
// - PutObject
// - UploadPart
type RateLimitedClient struct {
	c  Client
	rl *rate.Limiter
}

var _ Client = (*RateLimitedClient)(nil)

// NewRateLimitedClient returns a RateLimitedClient.
func NewRateLimitedClient(c Client, rl *rate.Limiter) *RateLimitedClient {
	return &RateLimitedClient{c: c, rl: rl}
}

func (r *RateLimitedClient) Provider() objval.Provider {
	return r.c.Provider()
}

func (r *RateLimitedClient) GetObject(ctx context.Context, bucket, key string,
	br *objval.ByteRange,
) (*objval.Object, error) {
	object, err := r.c.GetObject(ctx, bucket, key, br)
	if err != nil {
		return nil, err
	}

	object.Body = ratelimit.NewRateLimitedReadCloser(ctx, object.Body, r.rl)

	return object, nil
}

func (r *RateLimitedClient) GetObjectAttrs(ctx context.Context, bucket, key string) (*objval.ObjectAttrs, error) {
	return r.c.GetObjectAttrs(ctx, bucket, key)
}

func (r *RateLimitedClient) PutObject(ctx context.Context, bucket, key string, body io.ReadSeeker) error {
	return r.c.PutObject(ctx, bucket, key, ratelimit.NewRateLimitedReadSeeker(ctx, body, r.rl))
}

func (r *RateLimitedClient) DeleteObjects(ctx context.Context, bucket string, keys ...string) error {
	return r.c.DeleteObjects(ctx, bucket, keys...)
}

func (r *RateLimitedClient) IterateObjects(ctx context.Context, bucket, prefix string, fn IterateFunc) error {
	return r.c.IterateObjects(ctx, bucket, prefix, fn)
}

func (r *RateLimitedClient) CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	return r.c.CreateMultipartUpload(ctx, bucket, key)
}

func (r *RateLimitedClient) UploadPart(ctx context.Context, bucket, id, key string, number int,
	body io.ReadSeeker,
) (objval.Part, error) {
	return r.c.UploadPart(ctx, bucket, id, key, number, ratelimit.NewRateLimitedReadSeeker(ctx, body, r.rl))
}

func (r *RateLimitedClient) CompleteMultipartUpload(ctx context.Context, bucket, id, key string,
	parts ...objval.Part,
) error {
	return r.c.CompleteMultipartUpload(ctx, bucket, id, key, parts...)
}

func (r *RateLimitedClient) AbortMultipartUpload(ctx context.Context, bucket, id, key string) error {
	return r.c.AbortMultipartUpload(ctx, bucket, id, key)
}
