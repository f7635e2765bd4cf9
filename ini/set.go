// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"context"
	"fmt"
	"os"

	"zombiezen.com/go/log"
)

// A DocumentSet is a list of documents to obtain configuration from in
// descending order of precedence. Set-level name matching uses EqualFold
// regardless of the equalities injected into the individual documents.
type DocumentSet []*Document

// LoadFiles reads the files at the given paths as INI and returns a
// DocumentSet. If the returned error is nil, the returned set's length
// will be the same as the number of paths. LoadFiles stops on the first
// error, but ignores missing file errors, instead logging the skip and
// filling the corresponding element of the set with a nil *Document.
func LoadFiles(ctx context.Context, opts *ReaderOptions, paths ...string) (DocumentSet, error) {
	set := make(DocumentSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			log.Debugf(ctx, "ini: %s does not exist, skipping", p)
			set = append(set, nil)
			continue
		}
		if err != nil {
			return set, fmt.Errorf("load ini files: %w", err)
		}
		d := new(Document)
		err = d.Load(f, opts)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return set, fmt.Errorf("load ini files: %s: %w", p, err)
		}
		set = append(set, d)
	}
	return set, nil
}

// Value returns the first value of the given key in the given section from
// the highest-precedence document that has one, or the empty string if
// none does.
func (set DocumentSet) Value(section, key string) string {
	for _, d := range set {
		if values := d.Values(section, key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// Values returns every value of the given key in the given section across
// the whole set, from the lowest-precedence document to the highest.
func (set DocumentSet) Values(section, key string) []string {
	var values []string
	for i := len(set) - 1; i >= 0; i-- {
		values = append(values, set[i].Values(section, key)...)
	}
	return values
}

// SectionNames returns the distinct section names across the whole set in
// first-seen order, highest-precedence document first.
func (set DocumentSet) SectionNames() []string {
	var names []string
	for _, d := range set {
		for _, name := range d.SectionNames() {
			seen := false
			for _, n := range names {
				if EqualFold(n, name) {
					seen = true
					break
				}
			}
			if !seen {
				names = append(names, name)
			}
		}
	}
	return names
}

// Section returns a merged view of the named section across the whole set.
// Values from higher-precedence documents come first, so Section(name).Get
// returns the winning value for a key.
func (set DocumentSet) Section(name string) Section {
	merged := make(Section)
	for _, d := range set {
		for _, view := range d.Sections(name) {
			for k, values := range view {
				for _, v := range values {
					merged.add(EqualFold, k, v)
				}
			}
		}
	}
	return merged
}

// SetValue sets the value on the first document and deletes the key from
// all lower-precedence documents, so the new value wins everywhere.
// SetValue panics if the set is empty or key is empty. If set[0] is nil, a
// new Document is allocated in its place.
func (set DocumentSet) SetValue(section, key, value string) {
	if set[0] == nil {
		set[0] = new(Document)
	}
	set[0].SetValue(section, key, value)
	set[1:].DeleteValue(section, key)
}

// DeleteValue removes every property with the given key in the given
// section from every document in the set. Nil documents are ignored.
func (set DocumentSet) DeleteValue(section, key string) {
	for _, d := range set {
		if d != nil {
			d.DeleteValue(section, key)
		}
	}
}
