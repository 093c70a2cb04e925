// Package objcli exposes a unified 'Client' interface for accessing/managing objects stored in the cloud.
package objcli

import (
	"context"
	"io"

	"github.com/stratastore/transfer-common/objstore/objval"
)

// IterateFunc is the function used when iterating over objects, this function will be called once for each object
// whose key matches the provided prefix.
type IterateFunc func(attrs *objval.ObjectAttrs) error

// Client is a unified interface for accessing/managing objects stored in the cloud.
type Client interface {
	// Provider returns the cloud provider this client is interfacing with.
	//
	// NOTE: This may be used to change high level behavior which may be cloud provider specific.
	Provider() objval.Provider

	// GetObject retrieves an object from the cloud, an optional byte range argument may be supplied which causes
	// only the requested byte range to be returned.
	//
	// NOTE: The returned objects body must be closed to avoid resource leaks.
	GetObject(ctx context.Context, bucket, key string, br *objval.ByteRange) (*objval.Object, error)

	// GetObjectAttrs returns general metadata about the object with the given key.
	GetObjectAttrs(ctx context.Context, bucket, key string) (*objval.ObjectAttrs, error)

	// PutObject creates an object in the cloud with the given key/options.
	//
	// NOTE: The body is required to be a 'ReadSeeker' to support checksum calculation/validation.
	PutObject(ctx context.Context, bucket, key string, body io.ReadSeeker) error

	// DeleteObjects deletes all the objects with the given keys ignoring any errors for keys which are not found.
	//
	// NOTE: Depending on the underlying client and support from its SDK, this function may batch operations into
	// pages.
	DeleteObjects(ctx context.Context, bucket string, keys ...string) error

	// IterateObjects iterates through the objects in a bucket running the provided iteration function for each
	// object whose key matches the given prefix.
	IterateObjects(ctx context.Context, bucket, prefix string, fn IterateFunc) error

	// CreateMultipartUpload creates a new multipart upload for the given key.
	CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error)

	// UploadPart creates/uploads a new part for the multipart upload with the given id.
	//
	// NOTE: The part 'number' should be between 1-10,000 and is used for the ordering of parts upon completion.
	UploadPart(ctx context.Context, bucket, id, key string, number int, body io.ReadSeeker) (objval.Part, error)

	// CompleteMultipartUpload completes the multipart upload with the given id, the given parts should be provided
	// in the order that they should be constructed.
	CompleteMultipartUpload(ctx context.Context, bucket, id, key string, parts ...objval.Part) error

	// AbortMultipartUpload aborts the multipart upload with the given id whilst cleaning up any abandoned parts.
	AbortMultipartUpload(ctx context.Context, bucket, id, key string) error
}
