// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/cases"
)

// A Document is an ordered, mutable sequence of INI elements. The order of
// elements is significant and duplicates of any kind are permitted: two
// sections may share a name and a section may repeat a key. The zero value
// is an empty document comparing names with EqualFold.
//
// A Document is not safe for concurrent mutation; callers must serialize
// access themselves.
type Document struct {
	elems []Element

	sectionEquals func(a, b string) bool
	keyEquals     func(a, b string) bool
}

// DocumentOptions holds optional parameters for NewDocument.
type DocumentOptions struct {
	// SectionEquals is the equality used to match section names.
	// If nil, EqualFold is used.
	SectionEquals func(a, b string) bool

	// KeyEquals is the equality used to match property keys.
	// If nil, EqualFold is used.
	KeyEquals func(a, b string) bool
}

// NewDocument returns a new empty Document. Nil options are treated
// identically as passing the zero value.
func NewDocument(opts *DocumentOptions) *Document {
	d := new(Document)
	if opts != nil {
		d.sectionEquals = opts.SectionEquals
		d.keyEquals = opts.KeyEquals
	}
	return d
}

// Parse reads r to the end and returns its elements as a new Document with
// default options. Parse fails on the first malformed line; use Reader
// directly to read past malformed lines.
func Parse(r io.Reader, opts *ReaderOptions) (*Document, error) {
	d := new(Document)
	if err := d.Load(r, opts); err != nil {
		return nil, err
	}
	return d, nil
}

// EqualFold reports whether a and b are equal under full Unicode case
// folding. It is the default equality for section names and property keys.
func EqualFold(a, b string) bool {
	// A cases.Caser may be stateful and must not be shared between
	// goroutines, so it cannot be hoisted to a package variable.
	caser := cases.Fold()
	return caser.String(a) == caser.String(b)
}

func (d *Document) sectionEq(a, b string) bool {
	if d != nil && d.sectionEquals != nil {
		return d.sectionEquals(a, b)
	}
	return EqualFold(a, b)
}

func (d *Document) keyEq(a, b string) bool {
	if d != nil && d.keyEquals != nil {
		return d.keyEquals(a, b)
	}
	return EqualFold(a, b)
}

// Elements returns the document's elements in order. The slice is a copy,
// but the elements themselves are shared: editing a *Property changes the
// document.
func (d *Document) Elements() []Element {
	if d == nil {
		return nil
	}
	return append([]Element(nil), d.elems...)
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.elems)
}

// SectionNames returns the distinct section names in the document in the
// order they first appear, spelled as they first appear. The result
// includes DefaultSection if any elements precede the first header.
func (d *Document) SectionNames() []string {
	if d == nil {
		return nil
	}
	var names []string
	if len(d.elems) > 0 {
		if _, ok := d.elems[0].(*SectionHeader); !ok {
			names = append(names, DefaultSection)
		}
	}
	for _, e := range d.elems {
		h, ok := e.(*SectionHeader)
		if !ok {
			continue
		}
		seen := false
		for _, n := range names {
			if d.sectionEq(n, h.Name) {
				seen = true
				break
			}
		}
		if !seen {
			names = append(names, h.Name)
		}
	}
	return names
}

// Value returns the first value of the given key in the given section, or
// the empty string if there is none. Passing DefaultSection searches the
// elements before the first header.
func (d *Document) Value(section, key string) string {
	values := d.Values(section, key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Values returns every value of the given key in every occurrence of the
// given section, in document order.
func (d *Document) Values(section, key string) []string {
	if d == nil {
		return nil
	}
	var values []string
	cur := DefaultSection
	for _, e := range d.elems {
		switch e := e.(type) {
		case *SectionHeader:
			cur = e.Name
		case *Property:
			if d.sectionEq(cur, section) && d.keyEq(e.Key, key) {
				values = append(values, e.Value)
			}
		}
	}
	return values
}

// A Section is a map view of the properties in a section. Its Get method
// returns the first value for a key.
type Section map[string][]string

// Get returns the first value associated with the given key. If there are
// no values associated with the key, Get returns the empty string.
func (sect Section) Get(key string) string {
	values := sect[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (sect Section) add(eq func(a, b string) bool, key, value string) {
	for k := range sect {
		if eq(k, key) {
			sect[k] = append(sect[k], value)
			return
		}
	}
	sect[key] = []string{value}
}

// Section returns a view of the properties in the first occurrence of the
// named section, or nil if the section does not occur. Section(DefaultSection)
// returns the properties before the first header. Keys are spelled as they
// first appear within the occurrence.
func (d *Document) Section(name string) Section {
	runs := d.sectionRuns(name)
	if len(runs) == 0 {
		return nil
	}
	return d.sectionView(runs[0])
}

// Sections returns one view per occurrence of the named section, in
// document order. Two sections sharing a name are distinct occurrences
// unless explicitly merged with MergeSections.
func (d *Document) Sections(name string) []Section {
	runs := d.sectionRuns(name)
	if len(runs) == 0 {
		return nil
	}
	views := make([]Section, 0, len(runs))
	for _, run := range runs {
		views = append(views, d.sectionView(run))
	}
	return views
}

func (d *Document) sectionView(run [2]int) Section {
	sect := make(Section)
	for _, e := range d.elems[run[0]:run[1]] {
		if p, ok := e.(*Property); ok {
			sect.add(d.keyEq, p.Key, p.Value)
		}
	}
	return sect
}

// sectionRuns returns the [start, end) element index range of every
// occurrence of the named section, excluding the headers themselves. A
// default-section run exists only if elements precede the first header.
func (d *Document) sectionRuns(name string) [][2]int {
	if d == nil {
		return nil
	}
	var runs [][2]int
	open := -1
	if len(d.elems) > 0 && d.sectionEq(DefaultSection, name) {
		if _, ok := d.elems[0].(*SectionHeader); !ok {
			open = 0
		}
	}
	for i, e := range d.elems {
		h, ok := e.(*SectionHeader)
		if !ok {
			continue
		}
		if open >= 0 {
			runs = append(runs, [2]int{open, i})
			open = -1
		}
		if d.sectionEq(h.Name, name) {
			open = i + 1
		}
	}
	if open >= 0 {
		runs = append(runs, [2]int{open, len(d.elems)})
	}
	return runs
}

// Load reads r to the end and replaces the document's elements with the
// elements read. Load is all-or-nothing: if any line is malformed, it
// returns an error wrapping the *SyntaxError and leaves the document
// unchanged.
func (d *Document) Load(r io.Reader, opts *ReaderOptions) error {
	rd := NewReader(r, opts)
	var elems []Element
	for rd.Scan() {
		if err := rd.Err(); err != nil {
			return fmt.Errorf("load ini document: %w", err)
		}
		elems = append(elems, rd.Element())
	}
	// Scan returns false without recording an error at end of input, so a
	// remaining error here came from the stream itself.
	if err := rd.Err(); err != nil {
		return fmt.Errorf("load ini document: %w", err)
	}
	d.elems = elems
	return nil
}

// Save writes every element in order to w. The output does not end with a
// line terminator. Save does not close w.
func (d *Document) Save(w io.Writer, opts *WriterOptions) error {
	wr := NewWriter(w, opts)
	if d != nil {
		for _, e := range d.elems {
			if err := wr.WriteElement(e); err != nil {
				return fmt.Errorf("save ini document: %w", err)
			}
		}
	}
	if err := wr.Flush(); err != nil {
		return fmt.Errorf("save ini document: %w", err)
	}
	return nil
}

// MarshalText serializes the document in INI format.
func (d *Document) MarshalText() ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	buf := new(bytes.Buffer)
	if err := d.Save(buf, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText parses the INI data with default syntax, replacing the
// document's elements.
func (d *Document) UnmarshalText(data []byte) error {
	return d.Load(bytes.NewReader(data), nil)
}
