// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// Syntax defines the five structural characters of the INI grammar. The
// zero value of a field selects its default, so Syntax{} is the default
// syntax: ';' starts a comment, '|' escapes, '=' separates keys from
// values, and '[' and ']' delimit section names.
type Syntax struct {
	Comment      byte
	Escape       byte
	Separator    byte
	SectionStart byte
	SectionEnd   byte
}

func (s Syntax) withDefaults() Syntax {
	if s.Comment == 0 {
		s.Comment = ';'
	}
	if s.Escape == 0 {
		s.Escape = '|'
	}
	if s.Separator == 0 {
		s.Separator = '='
	}
	if s.SectionStart == 0 {
		s.SectionStart = '['
	}
	if s.SectionEnd == 0 {
		s.SectionEnd = ']'
	}
	return s
}

// EscapeText encodes text so that it can be written as part of a single
// physical line. The escape character is doubled, carriage returns and
// line feeds become escape sequences with the 'r' and 'n' designators, and
// each structural character is prefixed with the escape character.
// EscapeText cannot fail; every string is representable.
func (s Syntax) EscapeText(text string) string {
	s = s.withDefaults()
	sb := new(strings.Builder)
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case s.Escape:
			sb.WriteByte(s.Escape)
			sb.WriteByte(s.Escape)
		case '\r':
			sb.WriteByte(s.Escape)
			sb.WriteByte('r')
		case '\n':
			sb.WriteByte(s.Escape)
			sb.WriteByte('n')
		case s.Comment, s.Separator, s.SectionStart, s.SectionEnd:
			sb.WriteByte(s.Escape)
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// UnescapeText is the inverse of EscapeText. A doubled escape character
// becomes a single one, the 'r' and 'n' designators become their line
// break characters, and an escaped structural character becomes the
// literal character. Malformed sequences, including a trailing lone escape
// character, are left as literal text, so UnescapeText cannot fail.
func (s Syntax) UnescapeText(text string) string {
	s = s.withDefaults()
	sb := new(strings.Builder)
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != s.Escape || i+1 >= len(text) {
			sb.WriteByte(c)
			continue
		}
		switch next := text[i+1]; next {
		case s.Escape:
			sb.WriteByte(s.Escape)
			i++
		case 'n':
			sb.WriteByte('\n')
			i++
		case 'r':
			sb.WriteByte('\r')
			i++
		case s.Comment, s.Separator, s.SectionStart, s.SectionEnd:
			sb.WriteByte(next)
			i++
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// indexUnescaped returns the index of the first occurrence of c in s that
// is not preceded by an odd-length run of the escape character, or -1 if
// there is none.
func indexUnescaped(s string, c, esc byte) int {
	run := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case c:
			if run%2 == 0 {
				return i
			}
			run = 0
		case esc:
			run++
		default:
			run = 0
		}
	}
	return -1
}

// splitLines splits text into physical lines, accepting LF, CRLF, and bare
// CR terminators. The result always has at least one entry.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, text[start:])
}
