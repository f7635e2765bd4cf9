// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

// DefaultSection identifies the implicit section holding elements that
// appear before the first section header. A header cannot declare an empty
// name (the reader reports it as a syntax error), so the empty string is
// unambiguous.
const DefaultSection = ""

// An Element is one logical unit of INI content. It is implemented by
// exactly four types: *SectionHeader, *Property, *Comment, and *FreeText.
// Elements hold decoded text; escaping is applied only while reading and
// writing.
type Element interface {
	element()
}

// A SectionHeader starts a section. The section consists of the header and
// every element that follows it up to the next header.
type SectionHeader struct {
	// Name is the decoded section name. It is never empty.
	Name string
}

// A Property is a key/value pair. The value may be edited in place without
// changing the property's position in its document.
type Property struct {
	// Key is the decoded property key. It is never empty.
	Key string
	// Value is the decoded property value. It may be empty.
	Value string
}

// A Comment is one or more consecutive comment lines. Multi-line bodies
// are joined with "\n".
type Comment struct {
	Text string
}

// A FreeText is one or more consecutive lines that are neither section
// headers, properties, nor comments. Multi-line bodies are joined with
// "\n". Blank lines and malformed content are kept as free text so that a
// document can be written back without losing them.
type FreeText struct {
	Text string
}

func (*SectionHeader) element() {}
func (*Property) element()      {}
func (*Comment) element()       {}
func (*FreeText) element()      {}
