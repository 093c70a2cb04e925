// Package objval contains the value types shared between the transfer engine and the provider clients.
package objval

import (
	"bytes"
	"fmt"
	"strconv"
)

// InvalidByteRangeError is returned if a byte range is invalid for some reason.
type InvalidByteRangeError struct {
	ByteRange *ByteRange
}

// Error implements the 'error' interface.
func (e *InvalidByteRangeError) Error() string {
	if e.ByteRange == nil {
		return "byte range is required but was not provided"
	}

	return fmt.Sprintf("invalid byte range %d-%d", e.ByteRange.Start, e.ByteRange.End)
}

// ByteRange represents a byte range of an object in the HTTP range header format, the end offset is inclusive. For
// more information on the format see 'https://www.w3.org/Protocols/rfc2616/rfc2616-sec14.html#sec14.35'.
type ByteRange struct {
	Start int64
	End   int64
}

// Valid returns an 'InvalidByteRangeError' if the byte range is invalid, <nil> otherwise.
func (b *ByteRange) Valid(required bool) error {
	if b == nil {
		if required {
			return &InvalidByteRangeError{}
		}

		return nil
	}

	if b.Start < 0 || b.End < 0 || (b.End != 0 && b.End < b.Start) {
		return &InvalidByteRangeError{ByteRange: b}
	}

	return nil
}

// ToOffsetLength returns the offset/length representation of this byte range, the given length is returned unmodified
// for ranges without an end offset.
func (b *ByteRange) ToOffsetLength(length int64) (int64, int64) {
	offset := b.Start

	if b.End != 0 {
		length = b.End - offset + 1
	}

	return offset, length
}

// ToRangeHeader returns the HTTP range header representation of this byte range.
func (b *ByteRange) ToRangeHeader() string {
	buffer := &bytes.Buffer{}

	buffer.WriteString("bytes=")
	buffer.WriteString(strconv.FormatInt(b.Start, 10) + "-")

	if b.End != 0 {
		buffer.WriteString(strconv.FormatInt(b.End, 10))
	}

	return buffer.String()
}

// String implements the 'Stringer' interface, the format will be the HTTP range header format without the unit prefix.
func (b *ByteRange) String() string {
	buffer := bytes.NewBufferString(strconv.FormatInt(b.Start, 10) + "-")

	if b.End != 0 {
		buffer.WriteString(strconv.FormatInt(b.End, 10))
	}

	return buffer.String()
}
