package ioiface

import "io"

// WriteAtSeeker is a composition of the writer/seeker/writer at interfaces.
type WriteAtSeeker interface {
	io.Writer
	io.Seeker
	io.WriterAt
}
