package objval

import "fmt"

// InvalidSegmentSizeError is returned if a buffer can't be partitioned without either exceeding the remote part count
// limit or violating the remote part size limits.
type InvalidSegmentSizeError struct {
	Size uint64
	Min  uint64
	Max  uint64
}

// Error implements the 'error' interface.
func (e *InvalidSegmentSizeError) Error() string {
	return fmt.Sprintf("segment size %d outside the allowed bounds %d-%d", e.Size, e.Min, e.Max)
}

// BufferPart is one bounded-size contiguous slice of a larger buffer, transferred independently. Parts are produced
// only by 'SegmentBuffer' and are contiguous, non-overlapping and cover the buffer exactly once.
type BufferPart struct {
	// Start is the absolute offset of the first byte of the part.
	Start uint64

	// End is the absolute offset one past the last byte of the part.
	End uint64

	// Data aliases the sub-range of the caller owned buffer backing this part; disjointness between parts is what
	// allows concurrent per-part callbacks to touch the buffer without locking.
	Data []byte
}

// Size returns the number of bytes covered by the part.
func (p BufferPart) Size() uint64 {
	return p.End - p.Start
}

// Range returns the byte range covered by the part in the inclusive-end convention used by HTTP range requests; this
// is the single place where the exclusive end offset is converted.
func (p BufferPart) Range() *ByteRange {
	return &ByteRange{Start: int64(p.Start), End: int64(p.End) - 1}
}

// SegmentOptions bound the partitioning performed by 'SegmentBuffer'; the limits mirror those documented by the
// remote service.
type SegmentOptions struct {
	// SegmentSize is the target size for each part.
	SegmentSize uint64

	// MinSegmentSize/MaxSegmentSize are the remote service's documented part size limits.
	MinSegmentSize uint64
	MaxSegmentSize uint64

	// MaxParts is the remote service's maximum multipart count.
	MaxParts uint64
}

// SegmentBuffer partitions the given buffer into an ordered sequence of bounded-size parts, where 'start' is the
// absolute offset of the first byte of the buffer within the object.
//
// The returned parts are pure data; the same inputs always produce an identical sequence, so a part list may be
// reused when retrying a transfer. A zero-length buffer yields an empty sequence.
func SegmentBuffer(start uint64, buf []byte, opts SegmentOptions) ([]BufferPart, error) {
	size := uint64(len(buf))
	if size == 0 {
		return nil, nil
	}

	segmentSize := opts.SegmentSize
	if segmentSize == 0 || segmentSize < opts.MinSegmentSize || segmentSize > opts.MaxSegmentSize {
		return nil, &InvalidSegmentSizeError{Size: segmentSize, Min: opts.MinSegmentSize, Max: opts.MaxSegmentSize}
	}

	if opts.MaxParts != 0 && size/segmentSize > opts.MaxParts {
		// Add one because integer arithmetic is floor
		segmentSize = size / (opts.MaxParts + 1)

		// The enlarged segment size must still fall strictly within the remote limits
		if segmentSize <= opts.MinSegmentSize || segmentSize >= opts.MaxSegmentSize {
			return nil, &InvalidSegmentSizeError{Size: segmentSize, Min: opts.MinSegmentSize, Max: opts.MaxSegmentSize}
		}
	}

	parts := make([]BufferPart, 0, (size+segmentSize-1)/segmentSize)

	for offset := uint64(0); offset < size; offset += segmentSize {
		length := segmentSize
		if offset+length > size {
			length = size - offset
		}

		parts = append(parts, BufferPart{
			Start: start + offset,
			End:   start + offset + length,
			Data:  buf[offset : offset+length],
		})
	}

	return parts, nil
}
