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

// Package scanner breaks PDF content streams into operators and operands.
package scanner

import (
	"bytes"

	"seehuhn.de/go/pdfmesh/pdf"
)

// A Scanner breaks a content stream into tokens.
//
// Parse errors are ignored as much as possible: bytes which cannot start
// a token are skipped.
type Scanner struct {
	args []pdf.Object

	// Skipped counts the bytes which could not be parsed.
	Skipped int

	// InlineImages counts the inline images which were skipped.
	InlineImages int
}

// NewScanner returns a new scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns an iterator over all operators in the content stream.
//
// The []pdf.Object slice passed to the yield function is owned by the scanner
// and is only valid until the yield returns.  If yield returns an error,
// scanning stops and the error is returned.
func (s *Scanner) Scan(data []byte) func(yield func(op string, args []pdf.Object) error) error {
	return func(yield func(string, []pdf.Object) error) error {
		s.args = s.args[:0]

		src := pdf.NewScanner(data)
		src.NoReferences = true
		for {
			src.SkipWhiteSpace()
			c, ok := src.Peek()
			if !ok {
				break
			}

			if isKeywordStart(c) {
				kw := src.ReadKeyword()
				switch kw {
				case "true":
					s.args = append(s.args, pdf.Bool(true))
					continue
				case "false":
					s.args = append(s.args, pdf.Bool(false))
					continue
				case "null":
					s.args = append(s.args, nil)
					continue
				case "BI":
					s.skipInlineImage(src, data)
					s.args = s.args[:0]
					continue
				}

				err := yield(kw, s.args)
				if err != nil {
					return err
				}
				s.args = s.args[:0]
				continue
			}

			if isNumberStart(c) {
				tok := src.ReadKeyword()
				if !isNumeric(tok) {
					// a regular token like "12x" is an operator
					err := yield(tok, s.args)
					if err != nil {
						return err
					}
					s.args = s.args[:0]
					continue
				}
				// Malformed numbers like "1.2.3" become null, so that the
				// operator which uses them sees an invalid operand.
				s.args = append(s.args, parseNumber(tok))
				continue
			}

			obj, err := src.ReadObject()
			if err != nil {
				src.SetPos(src.Pos() + 1)
				s.Skipped++
				continue
			}
			s.args = append(s.args, obj)
		}
		return nil
	}
}

// skipInlineImage skips an inline image "BI ... ID <data> EI".
// The scanner must be positioned just after the "BI" keyword.
func (s *Scanner) skipInlineImage(src *pdf.Scanner, data []byte) {
	s.InlineImages++

	// skip the image dictionary
	for {
		src.SkipWhiteSpace()
		c, ok := src.Peek()
		if !ok {
			return
		}
		if isKeywordStart(c) {
			if src.ReadKeyword() == "ID" {
				break
			}
			continue
		}
		if _, err := src.ReadObject(); err != nil {
			src.SetPos(src.Pos() + 1)
		}
	}

	// A single white-space character separates "ID" from the image data.
	start := src.Pos() + 1
	for pos := start; pos < len(data); {
		idx := bytes.Index(data[pos:], []byte("EI"))
		if idx < 0 {
			break
		}
		pos += idx
		before := pos == 0 || pdf.IsSpace(data[pos-1])
		after := pos+2 >= len(data) || pdf.IsSpace(data[pos+2]) || pdf.IsDelimiter(data[pos+2])
		if before && after {
			src.SetPos(pos + 2)
			return
		}
		pos += 2
	}
	src.SetPos(len(data))
}

// isKeywordStart reports whether c starts an operator or a keyword,
// rather than an operand.
func isKeywordStart(c byte) bool {
	switch {
	case isNumberStart(c):
		return false
	case pdf.IsSpace(c), pdf.IsDelimiter(c):
		return false
	}
	return true
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'
}

// isNumeric reports whether tok consists only of digits, dots and minus
// signs, with an optional leading plus sign.
func isNumeric(tok string) bool {
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' && i == 0 {
			continue
		}
		return false
	}
	return true
}

// parseNumber converts a numeric token to an Integer or Real.
// If only a prefix of tok forms a valid number, nil is returned.
func parseNumber(tok string) pdf.Object {
	src := pdf.NewScanner([]byte(tok))
	x, err := src.ReadNumber()
	if err != nil || !src.AtEOF() {
		return nil
	}
	return x
}
