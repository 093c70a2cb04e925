package objaws

import (
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratastore/transfer-common/objstore/objerr"
)

func TestHandleError(t *testing.T) {
	err := handleError(nil, nil, nil)
	require.NoError(t, err)

	err = handleError(nil, nil, assert.AnError)
	require.ErrorIs(t, err, assert.AnError)

	err = handleError(nil, nil, &mockError{inner: "InvalidAccessKeyId"})
	require.ErrorIs(t, err, objerr.ErrUnauthenticated)

	err = handleError(nil, nil, &mockError{inner: "SignatureDoesNotMatch"})
	require.ErrorIs(t, err, objerr.ErrUnauthenticated)

	err = handleError(nil, nil, &mockError{inner: "AccessDenied"})
	require.ErrorIs(t, err, objerr.ErrUnauthorized)

	err = handleError(nil, nil, &mockError{inner: "PermanentRedirect"})
	require.ErrorIs(t, err, objerr.ErrWrongRegion)

	var notFoundError *objerr.NotFoundError

	err = handleError(nil, aws.String("key1"), &mockError{inner: s3.ErrCodeNoSuchKey})
	require.ErrorAs(t, err, &notFoundError)
	require.Equal(t, "key", notFoundError.Type)
	require.Equal(t, "key1", notFoundError.Name)

	err = handleError(nil, nil, &mockError{inner: s3.ErrCodeNoSuchKey})
	require.ErrorAs(t, err, &notFoundError)
	require.Equal(t, "key", notFoundError.Type)
	require.Equal(t, "<empty key name>", notFoundError.Name)

	err = handleError(aws.String("bucket1"), nil, &mockError{inner: s3.ErrCodeNoSuchBucket})
	require.ErrorAs(t, err, &notFoundError)
	require.Equal(t, "bucket", notFoundError.Type)
	require.Equal(t, "bucket1", notFoundError.Name)

	err = handleError(nil, nil, &mockError{inner: s3.ErrCodeNoSuchBucket})
	require.ErrorAs(t, err, &notFoundError)
	require.Equal(t, "bucket", notFoundError.Type)
	require.Equal(t, "<empty bucket name>", notFoundError.Name)
}

func TestHandleErrorServiceError(t *testing.T) {
	var serviceError *objerr.ServiceError

	err := handleError(aws.String("bucket"), aws.String("key"), &mockError{inner: "SlowDown"})
	require.ErrorAs(t, err, &serviceError)
	require.Equal(t, "bucket", serviceError.Bucket)
	require.Equal(t, "key", serviceError.Key)
}

func TestIsKeyNotFound(t *testing.T) {
	require.True(t, isKeyNotFound(&mockError{inner: "NotFound"}))
	require.True(t, isKeyNotFound(&mockError{inner: s3.ErrCodeNoSuchKey}))
	require.False(t, isKeyNotFound(assert.AnError))
}

func TestIsNoSuchUpload(t *testing.T) {
	require.True(t, isNoSuchUpload(&mockError{inner: "NotFound"}))
	require.True(t, isNoSuchUpload(&mockError{inner: s3.ErrCodeNoSuchUpload}))
	require.False(t, isNoSuchUpload(assert.AnError))
}
