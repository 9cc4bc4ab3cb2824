// seehuhn.de/go/pdfmesh - turn PDF vector graphics into triangle meshes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// maxNesting limits the depth of nested arrays and dictionaries.
const maxNesting = 64

// A Scanner reads PDF objects from an in-memory byte slice.
//
// The scanner keeps a cursor into the data.  Every read method leaves the
// cursor immediately after the bytes it consumed.
type Scanner struct {
	data  []byte
	pos   int
	depth int

	// NoReferences disables the recognition of "n g R" as an indirect
	// reference.  This is used for content streams, where R is not
	// a valid token.
	NoReferences bool
}

// NewScanner returns a scanner positioned at the start of data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Pos returns the current cursor position.
func (s *Scanner) Pos() int {
	return s.pos
}

// SetPos moves the cursor.  Positions outside the data are clamped.
func (s *Scanner) SetPos(pos int) {
	s.pos = max(0, min(pos, len(s.data)))
}

// AtEOF reports whether all input has been consumed.
func (s *Scanner) AtEOF() bool {
	return s.pos >= len(s.data)
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	return s.data[s.pos], true
}

// HasPrefix reports whether the unread input starts with pat.
func (s *Scanner) HasPrefix(pat string) bool {
	return bytes.HasPrefix(s.data[s.pos:], []byte(pat))
}

func (s *Scanner) malformed(err error) error {
	return &MalformedFileError{Pos: int64(s.pos), Err: err}
}

// ReadObject reads one PDF object.  Null is returned as a nil Object.
//
// If the input does not start with a recognisable object, a
// [*MalformedFileError] is returned, together with a nil object.
// In this case the cursor is not moved.
func (s *Scanner) ReadObject() (Object, error) {
	s.SkipWhiteSpace()
	if s.pos >= len(s.data) {
		return nil, s.malformed(io.ErrUnexpectedEOF)
	}

	var obj Object
	var err error
	c := s.data[s.pos]
	switch {
	case s.HasPrefix("null"):
		s.pos += 4
		return nil, nil
	case s.HasPrefix("true"):
		s.pos += 4
		return Bool(true), nil
	case s.HasPrefix("false"):
		s.pos += 5
		return Bool(false), nil
	case c == '/':
		obj, err = s.ReadName()
	case c >= '0' && c <= '9', c == '+', c == '-', c == '.':
		obj, err = s.ReadNumber()
		if x, isInt := obj.(Integer); isInt && err == nil && !s.NoReferences {
			if ref, ok := s.tryReference(x); ok {
				return ref, nil
			}
		}
	case s.HasPrefix("<<"):
		obj, err = s.ReadDict()
	case c == '(':
		obj, err = s.ReadQuotedString()
	case c == '<':
		obj, err = s.ReadHexString()
	case c == '[':
		obj, err = s.ReadArray()
	default:
		err = s.malformed(fmt.Errorf("unexpected character %q", c))
	}
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// tryReference checks whether the integer a, which has just been read, is
// the start of an indirect reference "a g R".  If not, the cursor is
// restored to the position just after a.
func (s *Scanner) tryReference(a Integer) (Reference, bool) {
	start := s.pos

	s.SkipWhiteSpace()
	genStart := s.pos
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	if genStart == start || s.pos == genStart {
		s.pos = start
		return 0, false
	}
	gen, err := strconv.ParseUint(string(s.data[genStart:s.pos]), 10, 16)
	if err != nil {
		s.pos = start
		return 0, false
	}

	genEnd := s.pos
	s.SkipWhiteSpace()
	if s.pos == genEnd || !s.HasPrefix("R") {
		s.pos = start
		return 0, false
	}
	if next := s.pos + 1; next < len(s.data) && !isSpace[s.data[next]] && !isDelimiter[s.data[next]] {
		s.pos = start
		return 0, false
	}
	if a < 0 || a > 1<<32-1 {
		s.pos = start
		return 0, false
	}
	s.pos++
	return NewReference(uint32(a), uint16(gen)), true
}

// ReadInteger reads an integer, with an optional sign.
func (s *Scanner) ReadInteger() (Integer, error) {
	start := s.pos
	if s.pos < len(s.data) && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
		s.pos++
	}
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	x, err := strconv.ParseInt(string(s.data[start:s.pos]), 10, 64)
	if err != nil {
		s.pos = start
		return 0, s.malformed(err)
	}
	return Integer(x), nil
}

// ReadNumber reads an integer or real number.
func (s *Scanner) ReadNumber() (Object, error) {
	start := s.pos
	hasDot := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		isSign := (c == '+' || c == '-') && s.pos == start
		if c == '.' && !hasDot {
			hasDot = true
		} else if !isSign && (c < '0' || c > '9') {
			break
		}
		s.pos++
	}
	tok := string(s.data[start:s.pos])

	if hasDot {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			// "-." and similar are read as zero by most PDF viewers.
			if tok == "." || tok == "-." || tok == "+." {
				return Real(0), nil
			}
			s.pos = start
			return nil, s.malformed(err)
		}
		return Real(x), nil
	}

	x, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		s.pos = start
		return nil, s.malformed(err)
	}
	return Integer(x), nil
}

// ReadName reads a PDF name object, including the leading slash.
func (s *Scanner) ReadName() (Name, error) {
	if !s.HasPrefix("/") {
		return "", s.malformed(errors.New("expected name"))
	}
	s.pos++

	var res []byte
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if isSpace[c] || isDelimiter[c] {
			break
		}
		s.pos++
		if c == '#' && s.pos+1 < len(s.data) {
			hi, ok1 := hexDigit(s.data[s.pos])
			lo, ok2 := hexDigit(s.data[s.pos+1])
			if ok1 && ok2 {
				res = append(res, hi<<4|lo)
				s.pos += 2
				continue
			}
		}
		res = append(res, c)
	}
	return Name(res), nil
}

// ReadQuotedString reads a ()-delimited string.
func (s *Scanner) ReadQuotedString() (String, error) {
	start := s.pos
	s.pos++ // skip "("

	var res []byte
	nesting := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		switch c {
		case '(':
			nesting++
		case ')':
			nesting--
			if nesting == 0 {
				return String(res), nil
			}
		case '\r':
			// end-of-line markers in strings are read as a single LF
			if s.pos < len(s.data) && s.data[s.pos] == '\n' {
				s.pos++
			}
			c = '\n'
		case '\\':
			if s.pos >= len(s.data) {
				continue
			}
			c = s.data[s.pos]
			s.pos++
			switch c {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case 'b':
				c = '\b'
			case 'f':
				c = '\f'
			case '\r':
				if s.pos < len(s.data) && s.data[s.pos] == '\n' {
					s.pos++
				}
				continue
			case '\n':
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := c - '0'
				for i := 0; i < 2 && s.pos < len(s.data); i++ {
					d := s.data[s.pos]
					if d < '0' || d > '7' {
						break
					}
					val = val*8 + (d - '0')
					s.pos++
				}
				c = val
			}
		}
		res = append(res, c)
	}

	s.pos = start
	return nil, s.malformed(errors.New("unterminated string"))
}

// ReadHexString reads a <>-delimited string.  White space between the
// digits is ignored, and an odd final digit is padded with zero.
func (s *Scanner) ReadHexString() (String, error) {
	start := s.pos
	s.pos++ // skip "<"

	var res []byte
	var hi byte
	first := true
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			if !first {
				res = append(res, hi<<4)
			}
			return String(res), nil
		}
		if isSpace[c] {
			continue
		}
		d, ok := hexDigit(c)
		if !ok {
			break
		}
		if first {
			hi = d
		} else {
			res = append(res, hi<<4|d)
		}
		first = !first
	}

	s.pos = start
	return nil, s.malformed(errors.New("invalid hex string"))
}

// ReadArray reads an array.
func (s *Scanner) ReadArray() (Array, error) {
	if s.depth >= maxNesting {
		return nil, s.malformed(errors.New("objects nested too deeply"))
	}
	s.depth++
	defer func() { s.depth-- }()

	start := s.pos
	s.pos++ // skip "["

	array := Array{}
	for {
		s.SkipWhiteSpace()
		if s.pos >= len(s.data) {
			s.pos = start
			return nil, s.malformed(errors.New("unterminated array"))
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return array, nil
		}

		obj, err := s.ReadObject()
		if err != nil {
			s.pos = start
			return nil, err
		}
		array = append(array, obj)
	}
}

// ReadDict reads a PDF dictionary.  Entries with a null value are omitted.
func (s *Scanner) ReadDict() (Dict, error) {
	if s.depth >= maxNesting {
		return nil, s.malformed(errors.New("objects nested too deeply"))
	}
	s.depth++
	defer func() { s.depth-- }()

	start := s.pos
	s.pos += 2 // skip "<<"

	dict := Dict{}
	for {
		s.SkipWhiteSpace()
		if s.HasPrefix(">>") {
			s.pos += 2
			return dict, nil
		}

		key, err := s.ReadName()
		if err != nil {
			s.pos = start
			return nil, err
		}
		val, err := s.ReadObject()
		if err != nil {
			s.pos = start
			return nil, err
		}
		if val != nil {
			dict[key] = val
		}
	}
}

// SkipWhiteSpace skips white space and comments.
func (s *Scanner) SkipWhiteSpace() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '%' {
			for s.pos < len(s.data) && s.data[s.pos] != '\r' && s.data[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		if !isSpace[c] {
			return
		}
		s.pos++
	}
}

// SkipString consumes pat, or returns an error if the input does not
// start with pat.
func (s *Scanner) SkipString(pat string) error {
	if !s.HasPrefix(pat) {
		n := min(len(pat), len(s.data)-s.pos)
		return s.malformed(fmt.Errorf("expected %q but found %q",
			pat, s.data[s.pos:s.pos+n]))
	}
	s.pos += len(pat)
	return nil
}

// SkipEOL consumes a single end-of-line marker (CR, LF or CR LF), if present.
func (s *Scanner) SkipEOL() {
	if s.HasPrefix("\r\n") {
		s.pos += 2
	} else if s.HasPrefix("\n") || s.HasPrefix("\r") {
		s.pos++
	}
}

// ReadKeyword reads a run of regular characters, i.e. characters which are
// neither white space nor delimiters.
func (s *Scanner) ReadKeyword() string {
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if isSpace[c] || isDelimiter[c] {
			break
		}
		s.pos++
	}
	return string(s.data[start:s.pos])
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

var (
	isSpace = map[byte]bool{
		0:  true,
		9:  true,
		10: true,
		12: true,
		13: true,
		32: true,
	}
	isDelimiter = map[byte]bool{
		'(': true,
		')': true,
		'<': true,
		'>': true,
		'[': true,
		']': true,
		'{': true,
		'}': true,
		'/': true,
		'%': true,
	}
)

// IsSpace reports whether c is a PDF white-space character.
func IsSpace(c byte) bool {
	return isSpace[c]
}

// IsDelimiter reports whether c is a PDF delimiter character.
func IsDelimiter(c byte) bool {
	return isDelimiter[c]
}
