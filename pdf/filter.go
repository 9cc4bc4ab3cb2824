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
	"io"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/exp/slices"
)

// inflateChunk is the size by which the output buffer grows while
// decompressing a stream.
const inflateChunk = 1024

// maxDecodedSize bounds the size of a decoded stream.
const maxDecodedSize = 1 << 30

// DecodeStream returns the decoded data of a stream.
//
// The only filter supported is FlateDecode, given either as a name or as
// an array of names.  Other filters cause an [*UnsupportedFilterError],
// corrupt data causes a [*DecompressionError].
func DecodeStream(r Getter, stm *Stream) ([]byte, error) {
	filters, err := streamFilters(r, stm.Dict)
	if err != nil {
		return nil, err
	}

	data := stm.Data
	for _, f := range filters {
		switch f.name {
		case "FlateDecode":
			if pred, _ := GetInteger(r, f.parms["Predictor"]); pred > 1 {
				return nil, &UnsupportedFilterError{Filter: "FlateDecode with predictor"}
			}
			data, err = inflate(data)
			if err != nil {
				return nil, &DecompressionError{Filter: f.name, Err: err}
			}
		default:
			return nil, &UnsupportedFilterError{Filter: f.name}
		}
	}
	return data, nil
}

// StreamData resolves obj to a stream and returns its decoded contents.
func (d *Document) StreamData(obj Object) ([]byte, error) {
	stm, err := GetStream(d, obj)
	if err != nil {
		return nil, err
	}
	return DecodeStream(d, stm)
}

type filterInfo struct {
	name  Name
	parms Dict
}

func streamFilters(r Getter, dict Dict) ([]filterInfo, error) {
	filter, err := Resolve(r, dict["Filter"])
	if err != nil {
		return nil, err
	}
	parms, err := Resolve(r, dict["DecodeParms"])
	if err != nil {
		return nil, err
	}

	switch filter := filter.(type) {
	case nil:
		return nil, nil
	case Name:
		p, _ := GetDict(r, parms)
		return []filterInfo{{name: filter, parms: p}}, nil
	case Array:
		parmsArray, _ := parms.(Array)
		res := make([]filterInfo, len(filter))
		for i, obj := range filter {
			name, err := GetName(r, obj)
			if err != nil {
				return nil, err
			}
			res[i].name = name
			if i < len(parmsArray) {
				res[i].parms, _ = GetDict(r, parmsArray[i])
			}
		}
		return res, nil
	default:
		return nil, &TypeMismatchError{Expected: "Name or Array", Got: filter}
	}
}

// inflate decompresses zlib data.  The output buffer is grown in fixed
// size chunks until the decompressor reports the end of the data.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var out []byte
	for {
		if len(out)+inflateChunk > maxDecodedSize {
			return nil, errors.New("decoded stream too large")
		}
		out = slices.Grow(out, inflateChunk)
		n, err := zr.Read(out[len(out) : len(out)+inflateChunk])
		out = out[:len(out)+n]
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
	}
}
