// Package objerr contains the error taxonomy of the transfer engine; provider specific status/response codes are
// normalized into these errors at the client boundary so that the rest of the engine never inspects raw SDK errors.
package objerr

import "errors"

var (
	// ErrUnauthenticated is returned if we've sent a request to the remote store and received a response indicating
	// that the supplied credentials are invalid.
	ErrUnauthenticated = errors.New("failed to authenticate, please check that valid credentials have been provided")

	// ErrUnauthorized is returned if we've successfully authenticated against the remote store, however, we've
	// attempted an operation where we don't have the required permissions.
	ErrUnauthorized = errors.New("authenticated user does not have the permission to access this resource")

	// ErrWrongRegion is returned if the remote store redirected us to another region; the caller must reconfigure the
	// client with the correct region and retry, redirects are purposefully not followed automatically.
	ErrWrongRegion = errors.New("bucket is located in another region, reconfigure the client region and retry")

	// ErrEndpointResolutionFailed is returned if we've failed to resolve the remote endpoint for some reason.
	ErrEndpointResolutionFailed = errors.New("endpoint domain name resolution failed, " +
		"check region/endpoint are valid")
)
