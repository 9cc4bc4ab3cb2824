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
)

// trailerWindow is the number of bytes at the end of the file which
// are searched for the "startxref" keyword.
const trailerWindow = 30

// maxXRefEntries bounds the size of a single xref subsection.
const maxXRefEntries = 1 << 22

// findXRef locates the "startxref" keyword near the end of the file and
// returns the byte offset of the cross-reference table.
func findXRef(data []byte) (int64, error) {
	tail := data[max(0, len(data)-trailerWindow):]
	pos := bytes.LastIndex(tail, []byte("startxref"))
	if pos < 0 {
		return 0, &MalformedFileError{Err: ErrTrailerNotFound}
	}

	base := len(data) - len(tail)
	s := NewScanner(data)
	s.SetPos(base + pos + len("startxref"))
	s.SkipWhiteSpace()
	start, err := s.ReadInteger()
	if err != nil {
		return 0, &MalformedFileError{
			Pos: int64(s.Pos()),
			Err: fmt.Errorf("%w: missing xref offset", ErrTrailerNotFound),
		}
	}
	if start < 0 || int64(start) >= int64(len(data)) {
		return 0, &MalformedFileError{
			Pos: int64(s.Pos()),
			Err: fmt.Errorf("%w: xref offset %d out of range", ErrXRefCorrupt, start),
		}
	}
	return int64(start), nil
}

// readXRefTable reads a classic cross-reference table at the given offset,
// followed by the trailer dictionary.  The returned map gives the byte
// offset of every in-use object.
func readXRefTable(data []byte, start int64) (map[uint32]int64, Dict, error) {
	s := NewScanner(data)
	s.SetPos(int(start))
	s.SkipWhiteSpace()
	if err := s.SkipString("xref"); err != nil {
		if s.HasPrefix("%PDF") || isDigitAt(data, s.Pos()) {
			err = fmt.Errorf("%w: cross-reference streams are not supported", ErrXRefCorrupt)
		}
		return nil, nil, &MalformedFileError{Pos: start, Err: err}
	}

	offsets := make(map[uint32]int64)
	for {
		s.SkipWhiteSpace()
		if s.HasPrefix("trailer") || s.AtEOF() {
			break
		}
		err := decodeXRefSection(s, offsets)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.SkipString("trailer"); err != nil {
		return nil, nil, err
	}
	obj, err := s.ReadObject()
	if err != nil {
		return nil, nil, err
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, nil, &MalformedFileError{
			Pos: int64(s.Pos()),
			Err: errors.New("trailer is not a dictionary"),
		}
	}
	return offsets, trailer, nil
}

// decodeXRefSection reads one subsection "first count" of the xref table.
// Entries have the form "oooooooooo ggggg n".  Free entries are skipped.
func decodeXRefSection(s *Scanner, offsets map[uint32]int64) error {
	first, err := s.ReadInteger()
	if err != nil {
		return err
	}
	s.SkipWhiteSpace()
	count, err := s.ReadInteger()
	if err != nil {
		return err
	}
	if first < 0 || count < 0 || count > maxXRefEntries || first+count > 1<<32-1 {
		return &MalformedFileError{
			Pos: int64(s.Pos()),
			Err: fmt.Errorf("%w: invalid subsection %d %d", ErrXRefCorrupt, first, count),
		}
	}

	for i := Integer(0); i < count; i++ {
		s.SkipWhiteSpace()
		entryPos := s.Pos()
		offset, err1 := s.ReadInteger()
		s.SkipWhiteSpace()
		_, err2 := s.ReadInteger()
		s.SkipWhiteSpace()
		kind, ok := s.Peek()
		if err1 != nil || err2 != nil || !ok || (kind != 'n' && kind != 'f') {
			return &MalformedFileError{
				Pos: int64(entryPos),
				Err: fmt.Errorf("%w: bad entry for object %d", ErrXRefCorrupt, first+i),
			}
		}
		s.SetPos(s.Pos() + 1)

		if kind == 'f' {
			continue
		}
		if offset < 0 {
			continue
		}
		offsets[uint32(first+i)] = int64(offset)
	}
	return nil
}

func isDigitAt(data []byte, pos int) bool {
	return pos < len(data) && data[pos] >= '0' && data[pos] <= '9'
}
