package objaws

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/stratastore/transfer-common/objstore/objerr"
)

// handleError converts an error relating accessing an object via its key into a user friendly error where possible.
func handleError(bucket, key *string, err error) error {
	var awsErr awserr.Error
	if err == nil || !errors.As(err, &awsErr) {
		return objerr.HandleError(err)
	}

	switch awsErr.Code() {
	case "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return objerr.ErrUnauthenticated
	case "AccessDenied":
		return objerr.ErrUnauthorized
	case s3.ErrCodeNoSuchKey, "NotFound":
		if key == nil {
			key = aws.String("<empty key name>")
		}

		return &objerr.NotFoundError{Type: "key", Name: *key}
	case s3.ErrCodeNoSuchBucket:
		if bucket == nil {
			bucket = aws.String("<empty bucket name>")
		}

		return &objerr.NotFoundError{Type: "bucket", Name: *bucket}
	case "PermanentRedirect", "MovedPermanently":
		// Redirects are purposefully not followed, callers must reconfigure the client with the correct region
		return objerr.ErrWrongRegion
	case aws.ErrMissingEndpoint.Code():
		return objerr.ErrEndpointResolutionFailed
	}

	// The AWS error type doesn't implement Unwrap, so we must manually unwrap and check it here
	if err := objerr.TryHandleError(awsErr.OrigErr()); err != nil {
		return err
	}

	// This isn't a status code we plan to handle manually, attribute it to the object being accessed
	return objerr.NewServiceError(aws.StringValue(bucket), aws.StringValue(key), err)
}

// isKeyNotFound returns a boolean indicating whether the given error is a 'KeyNotFound' error. We also accept the
// generic 'NotFound' code because some S3 compatible stores return the wrong error string.
func isKeyNotFound(err error) bool {
	var awsErr awserr.Error
	return errors.As(err, &awsErr) && (awsErr.Code() == "NotFound" || awsErr.Code() == s3.ErrCodeNoSuchKey)
}

// isNoSuchUpload returns a boolean indicating whether the given error is an 'NoSuchUpload' error. We also accept the
// generic 'NotFound' code because some S3 compatible stores return the wrong error string.
func isNoSuchUpload(err error) bool {
	var awsErr awserr.Error
	return errors.As(err, &awsErr) && (awsErr.Code() == "NotFound" || awsErr.Code() == s3.ErrCodeNoSuchUpload)
}
