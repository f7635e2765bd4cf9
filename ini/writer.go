// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"io"

	"github.com/yourbase/initext/textio"
)

// WriterOptions holds optional parameters for NewWriter.
type WriterOptions struct {
	// Syntax overrides the structural characters used while writing.
	// If nil, the default syntax is used.
	Syntax *Syntax

	// KeepOpen prevents Close from closing the underlying stream.
	KeepOpen bool

	// BlankBeforeSections inserts a blank line before every section
	// header except one at the very start of the output.
	BlankBeforeSections bool
}

// A Writer writes INI elements to a stream, one element at a time. A line
// break is written before every element except the first, so the output
// never ends with a trailing line terminator. The writer escapes names and
// values as needed and therefore cannot produce a malformed file.
type Writer struct {
	lw     *textio.LineWriter
	syntax Syntax
	blank  bool
	wrote  bool
}

// NewWriter returns a new Writer that writes elements to w. Nil options
// are treated identically as passing the zero value.
func NewWriter(w io.Writer, opts *WriterOptions) *Writer {
	if w == nil {
		panic("ini.NewWriter(nil, ...)")
	}
	syntax := Syntax{}
	keepOpen := false
	blank := false
	if opts != nil {
		if opts.Syntax != nil {
			syntax = *opts.Syntax
		}
		keepOpen = opts.KeepOpen
		blank = opts.BlankBeforeSections
	}
	return &Writer{
		lw:     textio.NewLineWriter(w, &textio.Options{KeepOpen: keepOpen}),
		syntax: syntax.withDefaults(),
		blank:  blank,
	}
}

// WriteSection writes a section header line with the given name.
func (w *Writer) WriteSection(name string) error {
	if name == "" {
		return errors.New("write ini section: empty name")
	}
	if w.wrote {
		if w.blank {
			if err := w.lw.WriteString("\n"); err != nil {
				return err
			}
		}
		if err := w.lw.WriteString("\n"); err != nil {
			return err
		}
	}
	w.wrote = true
	return w.lw.WriteString(string(w.syntax.SectionStart) + w.syntax.EscapeText(name) + string(w.syntax.SectionEnd))
}

// WriteProperty writes a key/value line. The value may be empty.
func (w *Writer) WriteProperty(key, value string) error {
	if key == "" {
		return errors.New("write ini property: empty key")
	}
	if err := w.lineBreak(); err != nil {
		return err
	}
	return w.lw.WriteString(w.syntax.EscapeText(key) + string(w.syntax.Separator) + w.syntax.EscapeText(value))
}

// WriteComment writes text as one or more comment lines, splitting the
// text on line breaks. Each physical line is written verbatim after the
// comment character, without escaping.
func (w *Writer) WriteComment(text string) error {
	for _, line := range splitLines(text) {
		if err := w.lineBreak(); err != nil {
			return err
		}
		if err := w.lw.WriteString(string(w.syntax.Comment) + line); err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes text as one or more free-text lines, splitting the text
// on line breaks. Each physical line is written verbatim.
func (w *Writer) WriteText(text string) error {
	for _, line := range splitLines(text) {
		if err := w.lineBreak(); err != nil {
			return err
		}
		if err := w.lw.WriteString(line); err != nil {
			return err
		}
	}
	return nil
}

// WriteElement writes e using the method matching its kind.
func (w *Writer) WriteElement(e Element) error {
	switch e := e.(type) {
	case *SectionHeader:
		return w.WriteSection(e.Name)
	case *Property:
		return w.WriteProperty(e.Key, e.Value)
	case *Comment:
		return w.WriteComment(e.Text)
	case *FreeText:
		return w.WriteText(e.Text)
	default:
		return fmt.Errorf("write ini element: unknown element type %T", e)
	}
}

// Flush writes any buffered output to the underlying stream.
func (w *Writer) Flush() error {
	return w.lw.Flush()
}

// Close flushes the writer and, unless it was created with KeepOpen,
// closes the underlying stream. Close is idempotent; writes after Close
// return textio.ErrClosed.
func (w *Writer) Close() error {
	return w.lw.Close()
}

func (w *Writer) lineBreak() error {
	if !w.wrote {
		w.wrote = true
		return nil
	}
	return w.lw.WriteString("\n")
}
