// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a streaming reader, a streaming writer, and an
element-preserving document model for the INI file format.
See https://en.wikipedia.org/wiki/INI_file.

This package is specifically designed for read-modify-write scenarios: a
Document keeps every line of the original file as an element, including
comments, blank lines, and malformed lines, so that a file can be edited
and written back without losing anything. The Reader and Writer can also
be used directly for one-pass streaming without building a Document.

# Syntax

An INI file is line-oriented text. Every physical line is one of four
things. A section header is the section's name in square brackets ('['
and ']'), optionally surrounded by whitespace:

	[section]

A comment is a line whose first non-whitespace character is a semicolon
(';'); the rest of the line is the comment text, verbatim:

	; comment text

A property is a key and value separated by the first equals sign ('='),
with no whitespace trimming on either side:

	key=value

Any other line, including a blank line, is free text and is preserved
as-is.

Elements that appear before the first section header belong to the default
section, identified by the empty string (DefaultSection).

# Escaping

Keys, values, and section names may contain any character. Structural
characters and line breaks are written as two-character escape sequences
introduced by the escape character ('|'):

	||    literal escape character
	|n    U+000A line feed
	|r    U+000D carriage return
	|;    semicolon
	|=    equals sign
	|[    opening bracket
	|]    closing bracket

Escaping is applied when writing and undone when reading; element text is
always held decoded. A malformed escape sequence is not an error: it is
kept as literal text. All five structural characters can be changed
independently for reading and writing through the Syntax type.

# Repeated names

Multiple properties in the same section may have the same key, and
multiple sections may have the same name. Unlike many INI libraries, this
package keeps repeated sections distinct: Document.Sections returns one
view per occurrence, and Document.MergeSections combines them explicitly.
Section names and keys are matched case-insensitively by default; both
equalities can be replaced through DocumentOptions.
*/
package ini
