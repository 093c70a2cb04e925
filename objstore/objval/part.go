package objval

// Part represents the metadata from a single completed part of a multipart upload.
type Part struct {
	// ID is the opaque completion tag returned by the remote service, an entity tag for most providers; it must be
	// supplied verbatim in the completion manifest.
	ID string

	// Number is a number between 1-10,000 used for ordering parts when a multipart upload is completed.
	Number int

	// Size is the size of the part in bytes.
	Size int64
}
