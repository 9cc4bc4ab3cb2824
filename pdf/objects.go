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

	"seehuhn.de/go/geom/rect"
)

// maxRefDepth limits the length of reference chains followed by [Resolve].
const maxRefDepth = 16

// Getter represents a PDF file opened for reading.
type Getter interface {
	// Get reads an indirect object.  References to objects which are not
	// present in the file resolve to null.
	Get(ref Reference) (Object, error)
}

// Resolve resolves references to indirect objects.
//
// If obj is a [Reference], the function reads the corresponding object from
// the file and returns the result.  If obj is not a [Reference], it is
// returned unchanged.  The function recursively follows chains of references
// until it resolves to a non-reference object.
func Resolve(r Getter, obj Object) (Object, error) {
	for i := 0; i < maxRefDepth; i++ {
		ref, isReference := obj.(Reference)
		if !isReference {
			return obj, nil
		}
		if r == nil {
			return nil, errors.New("cannot resolve " + ref.String() + " without a file")
		}
		var err error
		obj, err = r.Get(ref)
		if err != nil {
			return nil, err
		}
	}
	return nil, &MalformedFileError{Err: errors.New("too many levels of indirection")}
}

func get[T Object](r Getter, obj Object, expected string) (T, error) {
	var zero T
	obj, err := Resolve(r, obj)
	if err != nil {
		return zero, err
	}
	x, ok := obj.(T)
	if !ok {
		return zero, &TypeMismatchError{Expected: expected, Got: obj}
	}
	return x, nil
}

// GetBool resolves references and checks that the result is a boolean.
func GetBool(r Getter, obj Object) (Bool, error) {
	return get[Bool](r, obj, "Bool")
}

// GetInteger resolves references and checks that the result is an integer.
func GetInteger(r Getter, obj Object) (Integer, error) {
	return get[Integer](r, obj, "Integer")
}

// GetNumber resolves references and returns the value of an Integer or
// Real object.
func GetNumber(r Getter, obj Object) (float64, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return 0, err
	}
	switch x := obj.(type) {
	case Integer:
		return float64(x), nil
	case Real:
		return float64(x), nil
	default:
		return 0, &TypeMismatchError{Expected: "number", Got: obj}
	}
}

// GetName resolves references and checks that the result is a name.
func GetName(r Getter, obj Object) (Name, error) {
	return get[Name](r, obj, "Name")
}

// GetString resolves references and checks that the result is a string.
func GetString(r Getter, obj Object) (String, error) {
	return get[String](r, obj, "String")
}

// GetArray resolves references and checks that the result is an array.
func GetArray(r Getter, obj Object) (Array, error) {
	return get[Array](r, obj, "Array")
}

// GetDict resolves references and checks that the result is a dictionary.
// Stream dictionaries are accepted, too.
func GetDict(r Getter, obj Object) (Dict, error) {
	obj, err := Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch x := obj.(type) {
	case Dict:
		return x, nil
	case *Stream:
		return x.Dict, nil
	default:
		return nil, &TypeMismatchError{Expected: "Dict", Got: obj}
	}
}

// GetStream resolves references and checks that the result is a stream.
func GetStream(r Getter, obj Object) (*Stream, error) {
	return get[*Stream](r, obj, "Stream")
}

// GetReference checks that obj is a reference, without resolving it.
func GetReference(obj Object) (Reference, error) {
	ref, ok := obj.(Reference)
	if !ok {
		return 0, &TypeMismatchError{Expected: "Reference", Got: obj}
	}
	return ref, nil
}

// GetRectangle resolves references and reads an array of four numbers
// [llx lly urx ury].  The corners are normalised, so that the lower left
// corner comes first.
func GetRectangle(r Getter, obj Object) (rect.Rect, error) {
	a, err := GetArray(r, obj)
	if err != nil {
		return rect.Rect{}, err
	}
	if len(a) != 4 {
		return rect.Rect{}, &MalformedFileError{Err: errors.New("rectangle must have 4 entries")}
	}
	var x [4]float64
	for i, elem := range a {
		x[i], err = GetNumber(r, elem)
		if err != nil {
			return rect.Rect{}, err
		}
	}
	return rect.Rect{
		LLx: min(x[0], x[2]),
		LLy: min(x[1], x[3]),
		URx: max(x[0], x[2]),
		URy: max(x[1], x[3]),
	}, nil
}
