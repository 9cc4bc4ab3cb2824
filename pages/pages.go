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

// Package pages extracts the content streams of the pages of a PDF
// document.
package pages

import (
	"errors"
	"fmt"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfmesh/internal/logger"
	"seehuhn.de/go/pdfmesh/pdf"
)

// maxInheritDepth limits how far /Parent links are followed when looking
// for inherited page attributes.
const maxInheritDepth = 32

var errNoPageTree = errors.New("no page tree")

// GraphicsStream is the decoded content of one page.
type GraphicsStream struct {
	// Data is the concatenation of all content streams of the page.
	Data []byte

	// MediaBox is the page boundary, in default user space.
	MediaBox rect.Rect

	// Ref is the page object.
	Ref pdf.Reference
}

// Extract returns the content of all pages of doc, in document order.
//
// Pages are located by walking the page tree.  If the document has no
// usable page tree, all objects are searched for page dictionaries
// instead, in the order of their object numbers.  Page objects without
// /Type /Page or without a valid /MediaBox are skipped.
//
// Content streams which cannot be decoded are left out of the page data.
// In this case the affected pages are still returned, and the problems
// are reported in the error return value.
func Extract(doc *pdf.Document) ([]GraphicsStream, error) {
	log := logger.Get()

	refs, err := FindPages(doc)
	if err != nil || len(refs) == 0 {
		log.Debug("searching all objects for pages", "reason", err)
		refs = scanPages(doc)
	}

	var res []GraphicsStream
	var errs []error
	for _, ref := range refs {
		dict, err := pdf.GetDict(doc, ref)
		if err != nil {
			continue
		}
		if tp, _ := pdf.GetName(doc, dict["Type"]); tp != "Page" {
			log.Debug("skipping object without /Type /Page", "object", ref)
			continue
		}

		mediaBox, err := inheritedMediaBox(doc, dict)
		if err != nil {
			log.Debug("skipping page without /MediaBox", "object", ref, "error", err)
			continue
		}

		data, err := Contents(doc, dict["Contents"])
		if err != nil {
			errs = append(errs, fmt.Errorf("page %s: %w", ref, err))
		}

		res = append(res, GraphicsStream{
			Data:     data,
			MediaBox: mediaBox,
			Ref:      ref,
		})
	}
	log.Info("extracted pages", "pages", len(res))

	return res, errors.Join(errs...)
}

// FindPages returns the page objects of the document, in the order given
// by the page tree.
func FindPages(doc *pdf.Document) ([]pdf.Reference, error) {
	catalog, err := pdf.GetDict(doc, doc.Trailer["Root"])
	if err != nil {
		return nil, err
	}
	root, ok := catalog["Pages"].(pdf.Reference)
	if !ok {
		return nil, errNoPageTree
	}

	var res []pdf.Reference
	todo := []pdf.Reference{root}
	seen := map[pdf.Reference]bool{
		root: true,
	}
	for len(todo) > 0 {
		k := len(todo) - 1
		ref := todo[k]
		todo = todo[:k]

		node, err := pdf.GetDict(doc, ref)
		if err != nil {
			continue
		}
		kids, isTree := node["Kids"]
		if !isTree {
			res = append(res, ref)
			continue
		}
		kidsArray, err := pdf.GetArray(doc, kids)
		if err != nil {
			continue
		}
		for i := len(kidsArray) - 1; i >= 0; i-- {
			kidRef, ok := kidsArray[i].(pdf.Reference)
			if ok && !seen[kidRef] {
				todo = append(todo, kidRef)
				seen[kidRef] = true
			}
		}
	}
	return res, nil
}

// scanPages returns all objects of the document which are page dictionaries.
func scanPages(doc *pdf.Document) []pdf.Reference {
	var res []pdf.Reference
	for _, number := range doc.IDs() {
		ref := pdf.NewReference(number, 0)
		dict, err := pdf.GetDict(doc, ref)
		if err != nil {
			continue
		}
		if tp, _ := pdf.GetName(doc, dict["Type"]); tp == "Page" {
			res = append(res, ref)
		}
	}
	return res
}

// inheritedMediaBox returns the /MediaBox of a page.  If the page dictionary
// does not specify one, the value is inherited from the ancestors in the
// page tree.
func inheritedMediaBox(r pdf.Getter, dict pdf.Dict) (rect.Rect, error) {
	seen := make(map[pdf.Reference]bool)
	for i := 0; i < maxInheritDepth && dict != nil; i++ {
		if obj, ok := dict["MediaBox"]; ok {
			return pdf.GetRectangle(r, obj)
		}
		parent, ok := dict["Parent"].(pdf.Reference)
		if !ok || seen[parent] {
			break
		}
		seen[parent] = true
		dict, _ = pdf.GetDict(r, parent)
	}
	return rect.Rect{}, errors.New("missing /MediaBox")
}
