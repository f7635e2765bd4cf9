// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"io"

	"github.com/yourbase/initext/textio"
)

// ReaderOptions holds optional parameters for NewReader.
type ReaderOptions struct {
	// Syntax overrides the structural characters used while reading.
	// If nil, the default syntax is used.
	Syntax *Syntax

	// KeepOpen prevents Close from closing the underlying stream.
	KeepOpen bool
}

// A Reader reads INI elements from a stream, one element per call to Scan,
// in the manner of bufio.Scanner. Malformed lines do not stop the reader:
// they are reported through Err and the caller chooses whether to keep
// scanning.
type Reader struct {
	lr     *textio.LineReader
	syntax Syntax

	line   int
	peeked *string

	elem   Element
	err    error
	closed bool
}

// NewReader returns a new Reader that reads elements from r. Nil options
// are treated identically as passing the zero value.
func NewReader(r io.Reader, opts *ReaderOptions) *Reader {
	if r == nil {
		panic("ini.NewReader(nil, ...)")
	}
	syntax := Syntax{}
	keepOpen := false
	if opts != nil {
		if opts.Syntax != nil {
			syntax = *opts.Syntax
		}
		keepOpen = opts.KeepOpen
	}
	return &Reader{
		lr:     textio.NewLineReader(r, &textio.Options{KeepOpen: keepOpen}),
		syntax: syntax.withDefaults(),
	}
}

// Scan advances the reader by one element and reports whether it consumed
// any input. After Scan returns true, either Element returns the element
// read (and Err returns nil), or Err returns a *SyntaxError describing the
// single malformed line that was consumed (and Element returns nil).
//
// Scan returns false once the input is exhausted, leaving the results of
// the previous call in place, and after Close, in which case Err returns
// textio.ErrClosed.
func (r *Reader) Scan() bool {
	if r.closed {
		r.elem, r.err = nil, textio.ErrClosed
		return false
	}
	line, err := r.nextLine()
	if err != nil {
		if err != io.EOF {
			r.elem, r.err = nil, err
		}
		return false
	}
	elem, kind := r.syntax.classifyLine(line)
	if kind != 0 {
		r.elem = nil
		r.err = &SyntaxError{Line: r.line, Kind: kind}
		return true
	}
	r.coalesce(elem)
	r.elem, r.err = elem, nil
	return true
}

// coalesce appends the text of following lines to elem while they classify
// to the same comment or free-text kind. The first differing line stays
// buffered for the next call to Scan.
func (r *Reader) coalesce(elem Element) {
	_, isComment := elem.(*Comment)
	_, isText := elem.(*FreeText)
	if !isComment && !isText {
		return
	}
	for {
		peek, ok := r.peekLine()
		if !ok {
			return
		}
		next, kind := r.syntax.classifyLine(peek)
		if kind != 0 || !sameTextKind(elem, next) {
			return
		}
		r.consumePeek()
		switch e := elem.(type) {
		case *Comment:
			e.Text += "\n" + next.(*Comment).Text
		case *FreeText:
			e.Text += "\n" + next.(*FreeText).Text
		}
	}
}

// Element returns the element produced by the last successful call to
// Scan, or nil if that call consumed a malformed line.
func (r *Reader) Element() Element {
	return r.elem
}

// Err returns the error associated with the last call to Scan: a
// *SyntaxError for a malformed line, textio.ErrClosed after Close, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Line returns the 1-based number of the last physical line consumed, or
// zero if nothing has been read.
func (r *Reader) Line() int {
	return r.line
}

// Close releases the reader and, unless it was created with KeepOpen, the
// underlying stream. Close is idempotent.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.lr.Close()
}

func (r *Reader) nextLine() (string, error) {
	if r.peeked != nil {
		line := *r.peeked
		r.peeked = nil
		r.line++
		return line, nil
	}
	line, err := r.lr.ReadLine()
	if err != nil {
		return "", err
	}
	r.line++
	return line, nil
}

func (r *Reader) peekLine() (string, bool) {
	if r.peeked != nil {
		return *r.peeked, true
	}
	line, err := r.lr.ReadLine()
	if err != nil {
		return "", false
	}
	r.peeked = &line
	return line, true
}

func (r *Reader) consumePeek() {
	r.peeked = nil
	r.line++
}
