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

package pages

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfmesh/internal/logger"
	"seehuhn.de/go/pdfmesh/pdf"
)

// Contents decodes the /Contents entry of a page.
//
// The entry can be a single stream or an array of streams.  In the latter
// case the decoded streams are concatenated, separated by newline
// characters, so that tokens cannot run across stream boundaries.
// If the entry is absent or null, the result is empty.
//
// Streams which cannot be decoded are skipped.  The remaining streams are
// still returned, together with an error describing the problems.
func Contents(doc *pdf.Document, obj pdf.Object) ([]byte, error) {
	contents, err := pdf.Resolve(doc, obj)
	if err != nil {
		return nil, err
	}

	var a pdf.Array
	switch contents := contents.(type) {
	case nil:
		return nil, nil
	case pdf.Array:
		a = contents
	default:
		a = pdf.Array{obj}
	}

	var res []byte
	var errs []error
	for i, elem := range a {
		body, err := doc.StreamData(elem)
		if err != nil {
			logger.Get().Warn("skipping unreadable content stream",
				"index", i, "error", err)
			errs = append(errs, fmt.Errorf("content stream %d: %w", i, err))
			continue
		}
		if len(res) > 0 {
			res = append(res, '\n')
		}
		res = append(res, body...)
	}
	return res, errors.Join(errs...)
}
