// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package textio provides line-oriented wrappers around byte streams.
// A LineReader splits its input into physical lines regardless of the
// line terminator convention used (LF, CRLF, or bare CR), and a LineWriter
// buffers small string writes. Both own their underlying stream by default,
// closing it when they are closed, but can be configured to leave it open.
package textio

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrClosed is returned by operations on a LineReader or LineWriter after
// it has been closed.
var ErrClosed = errors.New("textio: stream is closed")

// Options holds optional parameters shared by NewLineReader and
// NewLineWriter.
type Options struct {
	// KeepOpen prevents Close from closing the underlying stream.
	KeepOpen bool
}

// A LineReader reads a byte stream one line at a time.
type LineReader struct {
	r        io.Reader
	br       *bufio.Reader
	keepOpen bool
	closed   bool
}

// NewLineReader returns a new LineReader that reads lines from r. Nil
// options are treated identically as passing the zero value.
func NewLineReader(r io.Reader, opts *Options) *LineReader {
	if r == nil {
		panic("textio.NewLineReader(nil, ...)")
	}
	lr := &LineReader{
		r:  r,
		br: bufio.NewReader(r),
	}
	if opts != nil {
		lr.keepOpen = opts.KeepOpen
	}
	return lr
}

// ReadLine reads the next line from the underlying stream and returns it
// without its terminator. A final line that ends at EOF without a
// terminator is returned like any other; once the stream is exhausted,
// ReadLine returns io.EOF. After Close, ReadLine returns ErrClosed.
func (lr *LineReader) ReadLine() (string, error) {
	if lr.closed {
		return "", ErrClosed
	}
	sb := new(strings.Builder)
	read := false
	for {
		b, err := lr.br.ReadByte()
		if err != nil {
			if err == io.EOF && read {
				return sb.String(), nil
			}
			return "", err
		}
		read = true
		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			// Consume the LF of a CRLF pair.
			if next, err := lr.br.Peek(1); err == nil && next[0] == '\n' {
				lr.br.ReadByte()
			}
			return sb.String(), nil
		default:
			sb.WriteByte(b)
		}
	}
}

// Close releases the reader. Unless the reader was created with KeepOpen,
// the underlying stream is closed as well if it implements io.Closer.
// Close is idempotent: calls after the first return nil.
func (lr *LineReader) Close() error {
	if lr.closed {
		return nil
	}
	lr.closed = true
	if lr.keepOpen {
		return nil
	}
	if c, ok := lr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// A LineWriter writes strings to a byte stream through a buffer.
type LineWriter struct {
	w        io.Writer
	bw       *bufio.Writer
	keepOpen bool
	closed   bool
}

// NewLineWriter returns a new LineWriter that writes to w. Nil options are
// treated identically as passing the zero value.
func NewLineWriter(w io.Writer, opts *Options) *LineWriter {
	if w == nil {
		panic("textio.NewLineWriter(nil, ...)")
	}
	lw := &LineWriter{
		w:  w,
		bw: bufio.NewWriter(w),
	}
	if opts != nil {
		lw.keepOpen = opts.KeepOpen
	}
	return lw
}

// WriteString writes s verbatim.
func (lw *LineWriter) WriteString(s string) error {
	if lw.closed {
		return ErrClosed
	}
	_, err := lw.bw.WriteString(s)
	return err
}

// WriteLine writes s followed by a line terminator.
func (lw *LineWriter) WriteLine(s string) error {
	if err := lw.WriteString(s); err != nil {
		return err
	}
	return lw.bw.WriteByte('\n')
}

// Flush writes any buffered data to the underlying stream.
func (lw *LineWriter) Flush() error {
	if lw.closed {
		return ErrClosed
	}
	return lw.bw.Flush()
}

// Close flushes the writer and releases it. Unless the writer was created
// with KeepOpen, the underlying stream is closed as well if it implements
// io.Closer. Close is idempotent: calls after the first return nil.
func (lw *LineWriter) Close() error {
	if lw.closed {
		return nil
	}
	lw.closed = true
	flushErr := lw.bw.Flush()
	if !lw.keepOpen {
		if c, ok := lw.w.(io.Closer); ok {
			if err := c.Close(); err != nil && flushErr == nil {
				flushErr = err
			}
		}
	}
	return flushErr
}
