// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"sort"
)

// AddMode selects where AddSection places new content relative to existing
// sections with the same name.
type AddMode int

const (
	// AppendEnd adds a new header and its properties at the end of the
	// document, even if a section with the same name already exists.
	AppendEnd AddMode = iota
	// AppendSame adds the new header and its properties directly after
	// the last occurrence of a section with the same name, or at the end
	// of the document if there is none.
	AppendSame
	// MergeSame appends the properties to the last occurrence of a
	// section with the same name without writing a new header, or behaves
	// like AppendEnd if there is none.
	MergeSame
)

// AddSection adds a section with the given properties to the document.
// AddSection panics if name is empty or any property has an empty key.
func (d *Document) AddSection(name string, mode AddMode, props ...Property) {
	if name == "" {
		panic("Document.AddSection: empty section name")
	}
	for _, p := range props {
		if p.Key == "" {
			panic("Document.AddSection: empty property key")
		}
	}
	pos := -1
	if mode == AppendSame || mode == MergeSame {
		pos = d.lastRunEnd(name)
	}
	elems := make([]Element, 0, len(props)+1)
	if mode != MergeSame || pos < 0 {
		elems = append(elems, &SectionHeader{Name: name})
	}
	for i := range props {
		p := props[i]
		elems = append(elems, &p)
	}
	if pos < 0 {
		pos = len(d.elems)
	}
	d.elems = insertElements(d.elems, pos, elems)
}

// Append adds elements to the end of the document. Append panics if any
// element is nil, a section header has an empty name, or a property has an
// empty key.
func (d *Document) Append(elems ...Element) {
	for _, e := range elems {
		switch e := e.(type) {
		case *SectionHeader:
			if e.Name == "" {
				panic("Document.Append: empty section name")
			}
		case *Property:
			if e.Key == "" {
				panic("Document.Append: empty property key")
			}
		case *Comment, *FreeText:
		default:
			panic("Document.Append: nil or unknown element")
		}
	}
	d.elems = append(d.elems, elems...)
}

// Clear removes every element from the document.
func (d *Document) Clear() {
	for i := range d.elems {
		d.elems[i] = nil
	}
	d.elems = nil
}

// SetValue replaces the values of the given key in the given section with
// a single value. It is shorthand for SetValues with one value.
func (d *Document) SetValue(section, key, value string) {
	d.SetValues(section, key, []string{value})
}

// SetValues replaces the values of the given key in the given section.
// Existing matching properties are overwritten in document order, one
// value each; surplus properties are removed. Values left over after every
// match has been overwritten are inserted directly after the last match.
// If there was no match, they go at the end of the section, creating a
// header at the end of the document first if the section does not occur.
// SetValues panics if key is empty.
func (d *Document) SetValues(section, key string, values []string) {
	if key == "" {
		panic("Document.SetValues: empty property key")
	}
	next := 0
	lastMatch := -1
	var surplus []int
	cur := DefaultSection
	for i, e := range d.elems {
		switch e := e.(type) {
		case *SectionHeader:
			cur = e.Name
		case *Property:
			if !d.sectionEq(cur, section) || !d.keyEq(e.Key, key) {
				continue
			}
			if next < len(values) {
				e.Value = values[next]
				next++
				lastMatch = i
			} else {
				surplus = append(surplus, i)
			}
		}
	}
	if next >= len(values) {
		d.removeAt(surplus)
		return
	}
	elems := make([]Element, 0, len(values)-next)
	for _, v := range values[next:] {
		elems = append(elems, &Property{Key: key, Value: v})
	}
	pos := lastMatch + 1
	if lastMatch < 0 {
		pos = d.lastRunEnd(section)
		if pos < 0 {
			d.elems = append(d.elems, &SectionHeader{Name: section})
			pos = len(d.elems)
		}
	}
	d.elems = insertElements(d.elems, pos, elems)
}

// SetSections applies SetSectionsAll with one value per key.
func (d *Document) SetSections(sections map[string]map[string]string) error {
	all := make(map[string]map[string][]string, len(sections))
	for name, kv := range sections {
		m := make(map[string][]string, len(kv))
		for k, v := range kv {
			m[k] = []string{v}
		}
		all[name] = m
	}
	return d.SetSectionsAll(all)
}

// SetSectionsAll replaces the values of multiple keys across multiple
// sections in one operation. For each section (the empty name addresses
// the default section), the existing properties for the affected keys are
// removed and the new values appended to the section's last occurrence, or
// to a new section at the end of the document. Sections and keys are
// processed in sorted order.
//
// The operation is transactional: if any step fails, the element list is
// restored to its prior state and the document is left unchanged.
func (d *Document) SetSectionsAll(sections map[string]map[string][]string) error {
	snapshot := append([]Element(nil), d.elems...)
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kv := sections[name]
		keys := make([]string, 0, len(kv))
		for k := range kv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var props []Property
		for _, k := range keys {
			if k == "" {
				d.elems = snapshot
				return errors.New("set ini sections: empty property key")
			}
			d.DeleteValue(name, k)
			for _, v := range kv[k] {
				props = append(props, Property{Key: k, Value: v})
			}
		}
		if len(props) == 0 {
			continue
		}
		if name == DefaultSection {
			elems := make([]Element, 0, len(props))
			for i := range props {
				p := props[i]
				elems = append(elems, &p)
			}
			d.elems = insertElements(d.elems, d.lastRunEnd(DefaultSection), elems)
		} else {
			d.AddSection(name, MergeSame, props...)
		}
	}
	return nil
}

// DeleteValue removes every property with the given key from every
// occurrence of the given section. Properties in other sections are left
// alone, including ones with the same key.
func (d *Document) DeleteValue(section, key string) {
	if d == nil {
		return
	}
	var remove []int
	cur := DefaultSection
	for i, e := range d.elems {
		switch e := e.(type) {
		case *SectionHeader:
			cur = e.Name
		case *Property:
			if d.sectionEq(cur, section) && d.keyEq(e.Key, key) {
				remove = append(remove, i)
			}
		}
	}
	d.removeAt(remove)
}

// RemoveSections removes every occurrence of the named section, headers
// and contents both. Passing DefaultSection removes the elements before
// the first header.
func (d *Document) RemoveSections(name string) {
	if d == nil {
		return
	}
	var remove []int
	cur := DefaultSection
	for i, e := range d.elems {
		if h, ok := e.(*SectionHeader); ok {
			cur = h.Name
		}
		if d.sectionEq(cur, name) {
			remove = append(remove, i)
		}
	}
	d.removeAt(remove)
}

// RemoveEmptySections removes named sections that contain no properties.
// Comments and free text inside a section do not count toward emptiness
// unless keepIfComments or keepIfText is set, in which case a section
// containing them is kept. The default section has no header and is never
// removed.
func (d *Document) RemoveEmptySections(keepIfText, keepIfComments bool) {
	if d == nil {
		return
	}
	var remove []int
	start := -1
	empty := true
	flush := func(end int) {
		if start < 0 || !empty {
			return
		}
		for i := start; i < end; i++ {
			remove = append(remove, i)
		}
	}
	for i, e := range d.elems {
		switch e.(type) {
		case *SectionHeader:
			flush(i)
			start, empty = i, true
		case *Property:
			empty = false
		case *Comment:
			if keepIfComments {
				empty = false
			}
		case *FreeText:
			if keepIfText {
				empty = false
			}
		}
	}
	flush(len(d.elems))
	d.removeAt(remove)
}

// RemoveComments removes every comment element from the document.
func (d *Document) RemoveComments() {
	d.removeKind(func(e Element) bool {
		_, ok := e.(*Comment)
		return ok
	})
}

// RemoveText removes every free-text element from the document, including
// the ones representing blank lines.
func (d *Document) RemoveText() {
	d.removeKind(func(e Element) bool {
		_, ok := e.(*FreeText)
		return ok
	})
}

// MergeSections combines every occurrence of each distinct section name
// into a single section. Sections keep their first-seen order and name
// spelling, the default section stays first, and the non-header elements
// of each occurrence keep their relative order. Merging an already merged
// document changes nothing.
func (d *Document) MergeSections() {
	if d == nil || len(d.elems) == 0 {
		return
	}
	type group struct {
		header *SectionHeader
		elems  []Element
	}
	groups := []*group{{}}
	cur := groups[0]
	for _, e := range d.elems {
		h, ok := e.(*SectionHeader)
		if !ok {
			cur.elems = append(cur.elems, e)
			continue
		}
		cur = nil
		for _, g := range groups[1:] {
			if d.sectionEq(g.header.Name, h.Name) {
				cur = g
				break
			}
		}
		if cur == nil {
			cur = &group{header: h}
			groups = append(groups, cur)
		}
	}
	merged := make([]Element, 0, len(d.elems))
	merged = append(merged, groups[0].elems...)
	for _, g := range groups[1:] {
		merged = append(merged, g.header)
		merged = append(merged, g.elems...)
	}
	d.elems = merged
}

// SortSections reorders whole sections by name using the supplied
// comparison, which reports a negative, zero, or positive number as a is
// less than, equal to, or greater than b. The sort is stable: sections
// whose names compare equal keep their relative order, each header keeps
// its contents, and the elements before the first header stay at the
// front. SortSections panics if compare is nil.
func (d *Document) SortSections(compare func(a, b string) int) {
	if compare == nil {
		panic("Document.SortSections: nil compare")
	}
	if d == nil {
		return
	}
	prefix := 0
	for prefix < len(d.elems) {
		if _, ok := d.elems[prefix].(*SectionHeader); ok {
			break
		}
		prefix++
	}
	type run struct {
		name  string
		elems []Element
	}
	var runs []run
	for _, e := range d.elems[prefix:] {
		if h, ok := e.(*SectionHeader); ok {
			runs = append(runs, run{name: h.Name})
		}
		runs[len(runs)-1].elems = append(runs[len(runs)-1].elems, e)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return compare(runs[i].name, runs[j].name) < 0
	})
	sorted := d.elems[:prefix]
	for _, r := range runs {
		sorted = append(sorted, r.elems...)
	}
	d.elems = sorted
}

// SortElements reorders the elements inside each section by name using the
// supplied comparison. Property elements are ordered by key; comments and
// free text order as the empty name. The sort is stable and headers never
// move. SortElements panics if compare is nil.
func (d *Document) SortElements(compare func(a, b string) int) {
	if compare == nil {
		panic("Document.SortElements: nil compare")
	}
	if d == nil {
		return
	}
	name := func(e Element) string {
		if p, ok := e.(*Property); ok {
			return p.Key
		}
		return ""
	}
	start := 0
	sortRun := func(end int) {
		run := d.elems[start:end]
		sort.SliceStable(run, func(i, j int) bool {
			return compare(name(run[i]), name(run[j])) < 0
		})
	}
	for i, e := range d.elems {
		if _, ok := e.(*SectionHeader); ok {
			sortRun(i)
			start = i + 1
		}
	}
	sortRun(len(d.elems))
}

// lastRunEnd returns the index just past the last element of the last
// occurrence of the named section, or -1 if the section does not occur.
// The default section always occurs; its run ends at the first header.
func (d *Document) lastRunEnd(name string) int {
	end := -1
	open := d.sectionEq(name, DefaultSection)
	for i, e := range d.elems {
		h, ok := e.(*SectionHeader)
		if !ok {
			continue
		}
		if open {
			end = i
			open = false
		}
		if d.sectionEq(h.Name, name) {
			open = true
		}
	}
	if open {
		end = len(d.elems)
	}
	return end
}

func (d *Document) removeKind(match func(Element) bool) {
	if d == nil {
		return
	}
	var remove []int
	for i, e := range d.elems {
		if match(e) {
			remove = append(remove, i)
		}
	}
	d.removeAt(remove)
}

// removeAt removes the elements at the given ascending indices in one
// batch.
func (d *Document) removeAt(indices []int) {
	if len(indices) == 0 {
		return
	}
	out := d.elems[:0]
	next := 0
	for i, e := range d.elems {
		if next < len(indices) && indices[next] == i {
			next++
			continue
		}
		out = append(out, e)
	}
	// Zero out truncated elements for garbage collection.
	for i := len(out); i < len(d.elems); i++ {
		d.elems[i] = nil
	}
	d.elems = out
}

// insertElements inserts elems into s at index i.
func insertElements(s []Element, i int, elems []Element) []Element {
	if len(elems) == 0 {
		return s
	}
	n := len(s)
	s = append(s, elems...)
	copy(s[i+len(elems):], s[i:n])
	copy(s[i:], elems)
	return s
}
