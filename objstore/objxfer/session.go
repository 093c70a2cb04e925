package objxfer

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/stratastore/transfer-common/fault"
	"github.com/stratastore/transfer-common/hofp"
	"github.com/stratastore/transfer-common/log"
	"github.com/stratastore/transfer-common/objstore/objcli"
	"github.com/stratastore/transfer-common/objstore/objval"
	"github.com/stratastore/transfer-common/syncutil"
)

// SessionState is the lifecycle state of an upload session.
type SessionState int

const (
	// SessionCreated is the initial state, no remote calls have been issued yet.
	SessionCreated SessionState = iota

	// SessionInitiating means the remote create call has been dispatched.
	SessionInitiating

	// SessionUploading means the upload id has been received and per-part uploads are in flight.
	SessionUploading

	// SessionCompleting means all parts have completed and the completion call has been dispatched.
	SessionCompleting

	// SessionDone is the terminal success state, the remote store has acknowledged the assembled object.
	SessionDone

	// SessionFailed is the terminal failure state, reachable from any non-terminal state.
	SessionFailed
)

// UploadSessionOptions encapsulates the options for creating a new upload session.
type UploadSessionOptions struct {
	// Client is the provider client remote requests are dispatched through.
	//
	// NOTE: Required
	Client objcli.Client

	// Pool is the worker pool executing the remote I/O for this session.
	//
	// NOTE: Required
	Pool *hofp.Pool

	// Bucket/Key locate the object being assembled.
	Bucket string
	Key    string

	// Parts is the ordered partition of the callers buffer being uploaded, 1-based part numbers follow the slice
	// index.
	Parts []objval.BufferPart

	// FailFast panics via the logging facade on a part failure instead of failing the session.
	FailFast bool

	// Fault is an optional fault injector crossed at every remote call site.
	Fault fault.Injector
}

// UploadSession drives the four-phase multipart protocol for a single object: initiate, parallel part upload,
// complete. It owns the part list, the per-part completion tags and the semaphore gating phase transitions.
//
// A session is single-owner; the phases 'Start', 'Dispatch', 'Complete' and 'Finish' must be called in order by one
// Goroutine, part completions arrive concurrently from the worker pool. A single lost part fails the object, no
// partial-success object is ever finalized.
type UploadSession struct {
	client   objcli.Client
	pool     *hofp.Pool
	injector fault.Injector
	failFast bool

	bucket string
	key    string
	parts  []objval.BufferPart

	createFut  *Future[string]
	completeOp *Op
	sema       *syncutil.CountingSemaphore

	lock     sync.Mutex
	state    SessionState
	uploadID string
	tags     []string
	err      error
}

// NewUploadSession returns a new session in the 'SessionCreated' state, no remote calls are issued.
func NewUploadSession(options UploadSessionOptions) *UploadSession {
	return &UploadSession{
		client:   options.Client,
		pool:     options.Pool,
		injector: options.Fault,
		failFast: options.FailFast,
		bucket:   options.Bucket,
		key:      options.Key,
		parts:    options.Parts,
		tags:     make([]string, len(options.Parts)),
		sema:     syncutil.NewCountingSemaphore(),
	}
}

// State returns the current lifecycle state of the session.
func (s *UploadSession) State() SessionState {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.state
}

// Start dispatches the remote create call asynchronously; it does not block.
func (s *UploadSession) Start(ctx context.Context) {
	s.setState(SessionInitiating)

	s.createFut = NewFuture[string]()

	queued := s.pool.Queue(func(_ context.Context) error {
		s.createFut.Complete(s.createUpload(ctx))

		// Remote failures are owned by the session, the shared pool must not be torn down
		return nil
	})
	if queued != nil {
		s.createFut.Complete("", queued)
	}
}

func (s *UploadSession) createUpload(ctx context.Context) (string, error) {
	if err := fault.Cross(s.injector, PointCreateUpload, fault.SensitivityHigh); err != nil {
		return "", err
	}

	return s.client.CreateMultipartUpload(ctx, s.bucket, s.key)
}

// Dispatch waits for the upload id then dispatches one asynchronous upload request per part, each carrying its
// 1-based part number and byte sub-range.
func (s *UploadSession) Dispatch(ctx context.Context) {
	id, err := s.createFut.Wait()
	if err != nil {
		s.fail(fmt.Errorf("failed to create multipart upload: %w", err))
		return
	}

	s.lock.Lock()
	s.uploadID = id
	s.lock.Unlock()

	s.setState(SessionUploading)

	if err := s.sema.SetGoal(uint64(len(s.parts))); err != nil {
		s.fail(err)
		return
	}

	for index, part := range s.parts {
		index, part := index, part

		queued := s.pool.Queue(func(_ context.Context) error {
			s.uploadPart(ctx, index, part)

			return nil
		})
		if queued != nil {
			s.fail(fmt.Errorf("failed to dispatch part %d: %w", index+1, queued))
			s.sema.Done()
		}
	}
}

// uploadPart uploads a single part recording its completion tag, a failed part fails the whole session.
func (s *UploadSession) uploadPart(ctx context.Context, index int, part objval.BufferPart) {
	defer s.sema.Done()

	err := fault.Cross(s.injector, PointUploadPart, fault.SensitivityNormal)

	var uploaded objval.Part

	if err == nil {
		uploaded, err = s.client.UploadPart(ctx, s.bucket, s.uploadID, s.key, index+1, bytes.NewReader(part.Data))
	}

	if err != nil {
		if s.failFast {
			log.Panicf(`(objxfer) Failed to upload part | {"key":"%s","number":%d,"error":"%v"}`,
				s.key, index+1, err)
		}

		s.fail(fmt.Errorf("failed to upload part %d: %w", index+1, err))

		return
	}

	s.lock.Lock()
	s.tags[index] = uploaded.ID
	s.lock.Unlock()
}

// Complete blocks until every part has completed then dispatches the completion call asynchronously; the manifest is
// ordered by part number, not completion order.
func (s *UploadSession) Complete(ctx context.Context) {
	s.sema.Wait()

	s.completeOp = NewOp()

	if err := s.Err(); err != nil {
		s.completeOp.Complete(err)
		return
	}

	s.setState(SessionCompleting)

	manifest := s.manifest()

	queued := s.pool.Queue(func(_ context.Context) error {
		s.completeOp.Complete(s.completeUpload(ctx, manifest))

		return nil
	})
	if queued != nil {
		s.completeOp.Complete(queued)
	}
}

func (s *UploadSession) completeUpload(ctx context.Context, manifest []objval.Part) error {
	if err := fault.Cross(s.injector, PointCompleteUpload, fault.SensitivityHigh); err != nil {
		return err
	}

	return s.client.CompleteMultipartUpload(ctx, s.bucket, s.uploadID, s.key, manifest...)
}

// manifest builds the ordered completion manifest from the recorded per-part tags.
func (s *UploadSession) manifest() []objval.Part {
	s.lock.Lock()
	defer s.lock.Unlock()

	manifest := make([]objval.Part, 0, len(s.parts))

	for index, part := range s.parts {
		manifest = append(manifest, objval.Part{
			ID:     s.tags[index],
			Number: index + 1,
			Size:   int64(part.Size()),
		})
	}

	return manifest
}

// Finish waits for the completion call, aborting the remote upload when the session has failed; the first error
// encountered by any phase is returned.
func (s *UploadSession) Finish(ctx context.Context) error {
	err := s.completeOp.Wait()
	if err == nil {
		s.setState(SessionDone)
		return nil
	}

	s.fail(err)
	s.abort(ctx)

	return s.Err()
}

// abort attempts to clean up the abandoned remote upload, an upload which was never created needs no cleanup.
func (s *UploadSession) abort(ctx context.Context) {
	s.lock.Lock()
	id := s.uploadID
	s.lock.Unlock()

	if id == "" {
		return
	}

	if err := s.client.AbortMultipartUpload(ctx, s.bucket, id, s.key); err != nil {
		log.Errorf(`(objxfer) Failed to abort multipart upload, it should be aborted manually | `+
			`{"id":"%s","key":"%s","error":"%v"}`, id, s.key, err)
	}
}

// Err returns the first error recorded by any phase or part completion.
func (s *UploadSession) Err() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.err
}

// fail records the first error and transitions the session to the terminal failure state.
func (s *UploadSession) fail(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.err == nil {
		s.err = err
	}

	s.state = SessionFailed
}

// setState advances the lifecycle state, a failed session never leaves the failure state.
func (s *UploadSession) setState(state SessionState) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state == SessionFailed {
		return
	}

	s.state = state
}
