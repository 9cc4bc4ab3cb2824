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

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// AsTextString interprets x as a PDF "text string" and returns
// the corresponding utf-8 encoded string.
//
// Strings starting with a UTF-16BE byte order mark are decoded as UTF-16.
// All other strings are decoded as PDFDocEncoding, which agrees with
// Latin-1 for all printable characters used in practice.
func (x String) AsTextString() string {
	if bytes.HasPrefix(x, []byte{0xFE, 0xFF}) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(x)
		if err == nil {
			return string(out)
		}
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(x)
	if err != nil {
		return string(x)
	}
	return string(out)
}

// Title returns the document title from the /Info dictionary.
// If no title is set, the empty string is returned.
func (d *Document) Title() string {
	info, err := GetDict(d, d.Trailer["Info"])
	if err != nil {
		return ""
	}
	title, err := GetString(d, info["Title"])
	if err != nil {
		return ""
	}
	return title.AsTextString()
}

// Language returns the natural language declared in the document catalog.
// If no valid language is declared, [language.Und] is returned.
func (d *Document) Language() language.Tag {
	catalog, err := GetDict(d, d.Trailer["Root"])
	if err != nil {
		return language.Und
	}
	lang, err := GetString(d, catalog["Lang"])
	if err != nil {
		return language.Und
	}
	tag, err := language.Parse(lang.AsTextString())
	if err != nil {
		return language.Und
	}
	return tag
}
