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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrTrailerNotFound indicates that no "startxref" keyword was found
	// near the end of the file.
	ErrTrailerNotFound = errors.New("trailer not found")

	// ErrXRefCorrupt indicates a damaged cross-reference table.
	ErrXRefCorrupt = errors.New("corrupt cross-reference table")

	// ErrTypeMismatch is matched by every [*TypeMismatchError].
	ErrTypeMismatch = errors.New("type mismatch")

	errVersion = errors.New("unsupported PDF version")
)

// MalformedFileError indicates that the PDF file could not be parsed.
type MalformedFileError struct {
	Pos int64
	Err error
}

func (err *MalformedFileError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	tail := ""
	if err.Pos > 0 {
		tail = " (at byte " + strconv.FormatInt(err.Pos, 10) + ")"
	}
	return "not a valid PDF file" + middle + tail
}

func (err *MalformedFileError) Unwrap() error {
	return err.Err
}

// IsMalformed returns true if err indicates a malformed PDF file.
func IsMalformed(err error) bool {
	var target *MalformedFileError
	return errors.As(err, &target)
}

// TypeMismatchError is returned when an object does not have the type
// a caller asked for.
type TypeMismatchError struct {
	Expected string
	Got      Object
}

func (err *TypeMismatchError) Error() string {
	got := "null"
	if err.Got != nil {
		got = fmt.Sprintf("%T", err.Got)
		got = strings.TrimPrefix(got, "pdf.")
	}
	return "expected " + err.Expected + " but got " + got
}

// Is makes [errors.Is] match [ErrTypeMismatch].
func (err *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// DecompressionError is returned when a stream cannot be decoded.
type DecompressionError struct {
	Filter Name
	Err    error
}

func (err *DecompressionError) Error() string {
	return "cannot decode " + string(err.Filter) + " stream: " + err.Err.Error()
}

func (err *DecompressionError) Unwrap() error {
	return err.Err
}

// UnsupportedFilterError is returned for stream filters this package does
// not implement.
type UnsupportedFilterError struct {
	Filter Name
}

func (err *UnsupportedFilterError) Error() string {
	return "unsupported filter " + string(err.Filter)
}

// DamagedError lists the objects which could not be read while loading
// a document.  A document returned together with a DamagedError is
// usable, but the listed objects are missing from its object table.
type DamagedError struct {
	Errs []error
}

func (err *DamagedError) Error() string {
	switch len(err.Errs) {
	case 0:
		return "damaged PDF file"
	case 1:
		return "1 damaged object: " + err.Errs[0].Error()
	default:
		return strconv.Itoa(len(err.Errs)) + " damaged objects, first: " +
			err.Errs[0].Error()
	}
}

func (err *DamagedError) Unwrap() []error {
	return err.Errs
}
