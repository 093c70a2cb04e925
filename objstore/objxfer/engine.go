package objxfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/stratastore/transfer-common/fault"
	"github.com/stratastore/transfer-common/hofp"
	"github.com/stratastore/transfer-common/maths"
	"github.com/stratastore/transfer-common/objstore/objcli"
	"github.com/stratastore/transfer-common/objstore/objcli/objaws"
	"github.com/stratastore/transfer-common/objstore/objerr"
	"github.com/stratastore/transfer-common/objstore/objval"
	"github.com/stratastore/transfer-common/syncutil"
)

// Fault points crossed by the engine, one per remote call site.
const (
	PointPutSingle      = "put.single"
	PointCreateUpload   = "mpu.create"
	PointUploadPart     = "mpu.part"
	PointCompleteUpload = "mpu.complete"
	PointGetPart        = "get.part"
	PointDeleteBatch    = "delete.batch"
	PointListPage       = "list.page"
)

// Engine is the transfer engine façade; it moves large byte ranges to and from the remote store in parallel over a
// fixed-size worker pool, exposing synchronous and future-returning variants of each operation.
//
// The number of in-flight requests per logical operation is bounded by that operation's part count, the engine does
// not apply global admission control; wrap the provider client in an 'objcli.RateLimitedClient' when throttling is
// required.
type Engine struct {
	client   objcli.Client
	pool     *hofp.Pool
	config   Config
	failFast bool
	injector fault.Injector
}

// NewEngine returns a new transfer engine, creating an AWS provider client from the configuration when one isn't
// supplied.
func NewEngine(options Options) (*Engine, error) {
	options.Config.defaults()

	client := options.Client

	if client == nil {
		var err error

		client, err = objaws.NewClient(objaws.ClientOptions{
			Region:   options.Config.Region,
			Endpoint: options.Config.Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create provider client: %w", err)
		}
	}

	engine := &Engine{
		client:   client,
		config:   options.Config,
		failFast: options.FailFast,
		injector: options.Fault,
		pool: hofp.NewPool(hofp.Options{
			Size:      options.Config.Threads,
			LogPrefix: "(objxfer)",
		}),
	}

	return engine, nil
}

// Close tears down the worker pool; in-flight work is drained first. The engine must not be used after closing.
func (e *Engine) Close() error {
	return e.pool.Stop()
}

// HeadSize returns the size of the object with the given key; an absent object is reported as an
// 'objerr.NotFoundError' which callers performing existence checks must not treat as fatal.
func (e *Engine) HeadSize(ctx context.Context, bucket, key string) (uint64, error) {
	attrs, err := e.client.GetObjectAttrs(ctx, bucket, key)
	if err != nil {
		return 0, err // Purposefully not wrapped, callers match on the not found error
	}

	return uint64(attrs.Size), nil
}

// Exists reports whether the object with the given key exists.
func (e *Engine) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := e.HeadSize(ctx, bucket, key)
	if err == nil {
		return true, nil
	}

	if objerr.IsNotFoundError(err) {
		return false, nil
	}

	return false, err
}

// Put uploads the given buffer, routing to a single request below the segment size threshold and a multipart session
// above it.
func (e *Engine) Put(ctx context.Context, bucket, key string, data []byte) error {
	if uint64(len(data)) <= e.config.SegmentSize {
		return e.putSingle(ctx, bucket, key, data)
	}

	return e.putMultipart(ctx, bucket, key, data)
}

// PutAsync is the future-returning variant of 'Put', generally registered with a 'WriteGroup'.
func (e *Engine) PutAsync(ctx context.Context, bucket, key string, data []byte) *Op {
	op := NewOp()

	go func() { op.Complete(e.Put(ctx, bucket, key, data)) }()

	return op
}

func (e *Engine) putSingle(ctx context.Context, bucket, key string, data []byte) error {
	if err := fault.Cross(e.injector, PointPutSingle, fault.SensitivityHigh); err != nil {
		return err
	}

	return e.client.PutObject(ctx, bucket, key, bytes.NewReader(data))
}

func (e *Engine) putMultipart(ctx context.Context, bucket, key string, data []byte) error {
	parts, err := objval.SegmentBuffer(0, data, e.segmentOptions())
	if err != nil {
		return fmt.Errorf("failed to segment buffer: %w", err)
	}

	session := NewUploadSession(UploadSessionOptions{
		Client:   e.client,
		Pool:     e.pool,
		Bucket:   bucket,
		Key:      key,
		Parts:    parts,
		FailFast: e.failFast,
		Fault:    e.injector,
	})

	session.Start(ctx)
	session.Dispatch(ctx)
	session.Complete(ctx)

	return session.Finish(ctx)
}

// Get downloads the byte range beginning at 'start' into the given buffer, issuing one ranged request per segment;
// each request writes only to its own disjoint sub-range so the buffer needs no locking. A zero-length buffer is a
// no-op.
func (e *Engine) Get(ctx context.Context, bucket, key string, start uint64, buf []byte) error {
	parts, err := objval.SegmentBuffer(start, buf, e.segmentOptions())
	if err != nil {
		return fmt.Errorf("failed to segment buffer: %w", err)
	}

	if len(parts) == 0 {
		return nil
	}

	var (
		sema     = syncutil.NewCountingSemaphore()
		lock     sync.Mutex
		firstErr error
	)

	recordErr := func(err error) {
		lock.Lock()
		defer lock.Unlock()

		if firstErr == nil {
			firstErr = err
		}
	}

	if err := sema.SetGoal(uint64(len(parts))); err != nil {
		return err
	}

	for _, part := range parts {
		part := part

		queued := e.pool.Queue(func(_ context.Context) error {
			defer sema.Done()

			if err := e.getPart(ctx, bucket, key, part); err != nil {
				recordErr(err)
			}

			return nil
		})
		if queued != nil {
			recordErr(queued)
			sema.Done()
		}
	}

	sema.Wait()

	return firstErr
}

// GetAsync is the future-returning variant of 'Get', generally registered with a 'ReadGroup'.
func (e *Engine) GetAsync(ctx context.Context, bucket, key string, start uint64, buf []byte) *Op {
	op := NewOp()

	go func() { op.Complete(e.Get(ctx, bucket, key, start, buf)) }()

	return op
}

// getPart downloads a single segment into its disjoint sub-slice of the callers buffer.
func (e *Engine) getPart(ctx context.Context, bucket, key string, part objval.BufferPart) error {
	if err := fault.Cross(e.injector, PointGetPart, fault.SensitivityNormal); err != nil {
		return err
	}

	object, err := e.client.GetObject(ctx, bucket, key, part.Range())
	if err != nil {
		return fmt.Errorf("failed to get range %s: %w", part.Range(), err)
	}
	defer object.Body.Close()

	if _, err := io.ReadFull(object.Body, part.Data); err != nil {
		return fmt.Errorf("failed to read range %s: %w", part.Range(), err)
	}

	return nil
}

// Delete removes the objects with the given keys, batching them up to the configured batch size. Remaining batches
// are still issued after a failure, the first error encountered is returned; deletion is at-least-effort and never
// stops early on a recoverable batch failure.
func (e *Engine) Delete(ctx context.Context, bucket string, keys ...string) error {
	var firstErr error

	for start := 0; start < len(keys); start += e.config.DeleteBatchSize {
		batch := keys[start:maths.Min(start+e.config.DeleteBatchSize, len(keys))]

		err := e.deleteBatch(ctx, bucket, batch)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// DeleteSet removes the objects in the given set, the keys are materialized in sorted order so batch composition is
// deterministic.
func (e *Engine) DeleteSet(ctx context.Context, bucket string, keys map[string]struct{}) error {
	materialized := maps.Keys(keys)
	slices.Sort(materialized)

	return e.Delete(ctx, bucket, materialized...)
}

// DeleteAsync is the future-returning variant of 'Delete'.
func (e *Engine) DeleteAsync(ctx context.Context, bucket string, keys ...string) *Op {
	op := NewOp()

	go func() { op.Complete(e.Delete(ctx, bucket, keys...)) }()

	return op
}

func (e *Engine) deleteBatch(ctx context.Context, bucket string, keys []string) error {
	if err := fault.Cross(e.injector, PointDeleteBatch, fault.SensitivityNormal); err != nil {
		return err
	}

	return e.client.DeleteObjects(ctx, bucket, keys...)
}

// List returns the sorted names of the objects under the given prefix, with the prefix itself stripped.
func (e *Engine) List(ctx context.Context, bucket, prefix string) ([]string, error) {
	into := make(map[string]struct{})

	if err := e.list(ctx, bucket, prefix, into); err != nil {
		return nil, err
	}

	names := maps.Keys(into)
	slices.Sort(names)

	return names, nil
}

// ListAsync pages through the objects under the given prefix accumulating prefix-stripped names into the caller
// provided set; the set must not be read until the returned operation has completed.
func (e *Engine) ListAsync(ctx context.Context, bucket, prefix string, into map[string]struct{}) *Op {
	op := NewOp()

	go func() { op.Complete(e.list(ctx, bucket, prefix, into)) }()

	return op
}

func (e *Engine) list(ctx context.Context, bucket, prefix string, into map[string]struct{}) error {
	if err := fault.Cross(e.injector, PointListPage, fault.SensitivityNormal); err != nil {
		return err
	}

	return e.client.IterateObjects(ctx, bucket, prefix, func(attrs *objval.ObjectAttrs) error {
		name := strings.TrimPrefix(attrs.Key, prefix)
		name = strings.TrimPrefix(name, "/")

		if name == "" {
			return nil
		}

		into[name] = struct{}{}

		return nil
	})
}

func (e *Engine) segmentOptions() objval.SegmentOptions {
	return objval.SegmentOptions{
		SegmentSize:    e.config.SegmentSize,
		MinSegmentSize: e.config.MinSegmentSize,
		MaxSegmentSize: e.config.MaxSegmentSize,
		MaxParts:       e.config.MaxParts,
	}
}
