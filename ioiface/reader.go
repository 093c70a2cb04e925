// Package ioiface contains compositions of the standard library io interfaces which are accepted/returned by the
// transfer engine.
package ioiface

import "io"

// ReadAtSeeker is a composition of the reader/seeker/reader at interfaces.
type ReadAtSeeker interface {
	io.Reader
	io.Seeker
	io.ReaderAt
}
