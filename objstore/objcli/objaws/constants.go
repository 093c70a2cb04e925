package objaws

const (
	// PageSize is the default page size used by AWS, and the maximum number of keys accepted by a batched delete.
	PageSize = 1000

	// MinPartSize is the minimum size accepted for a part of a multipart upload.
	MinPartSize = 5 * 1024 * 1024

	// MaxPartSize is the maximum size accepted for a part of a multipart upload.
	MaxPartSize = 5 * 1024 * 1024 * 1024

	// MaxPartCount is the maximum number of parts accepted for a single multipart upload.
	MaxPartCount = 10_000

	// DefaultRegion is the region used when none is supplied via config or the environment.
	DefaultRegion = "us-east-1"
)
