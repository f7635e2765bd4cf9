// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"strings"
	"unicode"
)

// SyntaxErrorKind identifies the way a line was malformed.
type SyntaxErrorKind int

const (
	// InvalidSectionName indicates a section header whose name decodes to
	// the empty string, like "[]".
	InvalidSectionName SyntaxErrorKind = 1 + iota
	// InvalidPropertyKey indicates a property line whose key decodes to
	// the empty string, like "=value".
	InvalidPropertyKey
)

// String returns a short human-readable description of the kind.
func (k SyntaxErrorKind) String() string {
	switch k {
	case InvalidSectionName:
		return "invalid section name"
	case InvalidPropertyKey:
		return "invalid property key"
	default:
		return fmt.Sprintf("syntax error kind %d", int(k))
	}
}

// A SyntaxError describes a single malformed line encountered while
// reading. It is reported through Reader.Err rather than stopping the
// reader; the caller decides whether to keep reading past it.
type SyntaxError struct {
	// Line is the 1-based number of the malformed physical line.
	Line int
	Kind SyntaxErrorKind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}

// classifyLine decides which of the four element kinds one physical line
// (without its terminator) represents. For a structural error it returns a
// nil element and a non-zero kind. Classification cannot fail in any other
// way: a line that fits no rule is free text.
func (s Syntax) classifyLine(line string) (Element, SyntaxErrorKind) {
	s = s.withDefaults()
	trimmed := strings.TrimFunc(line, unicode.IsSpace)
	if len(trimmed) >= 2 && trimmed[0] == s.SectionStart && trimmed[len(trimmed)-1] == s.SectionEnd {
		// Whitespace inside the brackets is part of the name.
		name := s.UnescapeText(trimmed[1 : len(trimmed)-1])
		if name == "" {
			return nil, InvalidSectionName
		}
		return &SectionHeader{Name: name}, 0
	}
	if left := strings.TrimLeftFunc(line, unicode.IsSpace); len(left) > 0 && left[0] == s.Comment {
		// Everything after the marker is kept verbatim.
		return &Comment{Text: left[1:]}, 0
	}
	if i := indexUnescaped(line, s.Separator, s.Escape); i >= 0 {
		key := s.UnescapeText(line[:i])
		if key == "" {
			return nil, InvalidPropertyKey
		}
		return &Property{Key: key, Value: s.UnescapeText(line[i+1:])}, 0
	}
	return &FreeText{Text: line}, 0
}

// sameTextKind reports whether e is a comment or free text of the same
// kind as prev. The reader uses it to coalesce consecutive lines.
func sameTextKind(prev, e Element) bool {
	switch prev.(type) {
	case *Comment:
		_, ok := e.(*Comment)
		return ok
	case *FreeText:
		_, ok := e.(*FreeText)
		return ok
	default:
		return false
	}
}
