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
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/exp/slices"

	"seehuhn.de/go/pdfmesh/internal/logger"
)

// Document is a PDF file loaded into memory.
//
// The object table is built once by [Load] and is not modified afterwards,
// so a Document can be read from several goroutines at the same time.
type Document struct {
	// Version is the PDF version given in the file header.
	Version Version

	// Trailer is the trailer dictionary of the file.
	Trailer Dict

	objects map[uint32]Object
	mapping mmap.MMap
}

// pendingStream records a stream whose data is attached in the second
// loading pass, once all /Length objects are known.
type pendingStream struct {
	number uint32
	dict   Dict
	start  int
}

// Open maps the named file into memory and loads it.
// The returned document must be closed after use.
//
// As for [Load], a non-nil document may be returned together with a
// [*DamagedError].
func Open(fname string) (*Document, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	fi, err := fd.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 {
		return nil, &MalformedFileError{Err: errors.New("empty file")}
	}

	m, err := mmap.Map(fd, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	doc, err := Load(m)
	if doc == nil {
		m.Unmap()
		return nil, err
	}
	doc.mapping = m
	return doc, err
}

// Close releases the memory mapping created by [Open].  Stream data
// obtained from the document must not be used after Close.
// For documents created by [Load], Close does nothing.
func (d *Document) Close() error {
	if d.mapping == nil {
		return nil
	}
	err := d.mapping.Unmap()
	d.mapping = nil
	return err
}

// Load parses a PDF file held in memory.
//
// If the cross-reference table cannot be read, Load returns a nil document
// and an error.  If only some objects are damaged, Load returns the document
// containing all readable objects, together with a [*DamagedError] which
// lists the problems.  The caller decides whether to proceed.
//
// Stream data in the returned document refers to the memory of data.
func Load(data []byte) (*Document, error) {
	log := logger.Get()

	version, err := readHeaderVersion(data)
	if err != nil {
		log.Warn("cannot read PDF header", "error", err)
	}

	start, err := findXRef(data)
	if err != nil {
		return nil, err
	}
	offsets, trailer, err := readXRefTable(data, start)
	if err != nil {
		return nil, err
	}
	if _, encrypted := trailer["Encrypt"]; encrypted {
		log.Warn("encrypted documents are not supported, stream contents will be unreadable")
	}

	doc := &Document{
		Version: version,
		Trailer: trailer,
		objects: make(map[uint32]Object, len(offsets)),
	}

	numbers := make([]uint32, 0, len(offsets))
	for number := range offsets {
		numbers = append(numbers, number)
	}
	slices.Sort(numbers)

	var damaged []error
	var streams []pendingStream
	for _, number := range numbers {
		obj, streamStart, err := readIndirectObject(data, number, offsets[number])
		if err != nil {
			damaged = append(damaged, fmt.Errorf("object %d: %w", number, err))
			continue
		}
		if streamStart >= 0 {
			streams = append(streams, pendingStream{
				number: number,
				dict:   obj.(Dict),
				start:  streamStart,
			})
			continue
		}
		doc.objects[number] = obj
	}

	// Lengths of streams may be given by indirect objects, so stream data
	// can only be attached once all other objects are known.
	for _, stm := range streams {
		body, err := doc.streamBody(data, stm)
		if err != nil {
			damaged = append(damaged, fmt.Errorf("object %d: %w", stm.number, err))
			continue
		}
		doc.objects[stm.number] = &Stream{Dict: stm.dict, Data: body}
	}

	log.Debug("loaded PDF document",
		"version", version.String(),
		"objects", len(doc.objects),
		"streams", len(streams),
		"damaged", len(damaged))

	if len(damaged) > 0 {
		return doc, &DamagedError{Errs: damaged}
	}
	return doc, nil
}

// readIndirectObject parses "n g obj ..." at the given offset.  If the
// object is followed by the "stream" keyword, the position of the first
// byte of stream data is returned, otherwise -1.
func readIndirectObject(data []byte, number uint32, offset int64) (Object, int, error) {
	if offset >= int64(len(data)) {
		return nil, -1, &MalformedFileError{
			Pos: offset,
			Err: errors.New("object offset out of range"),
		}
	}
	s := NewScanner(data)
	s.SetPos(int(offset))

	// Some files point the xref entries at the end of the previous line.
	s.SkipWhiteSpace()
	n, err := s.ReadInteger()
	if err != nil {
		return nil, -1, err
	}
	s.SkipWhiteSpace()
	if _, err := s.ReadInteger(); err != nil {
		return nil, -1, err
	}
	s.SkipWhiteSpace()
	if err := s.SkipString("obj"); err != nil {
		return nil, -1, err
	}
	if uint32(n) != number {
		logger.Get().Debug("object number does not match xref entry",
			"xref", number, "header", int64(n))
	}

	obj, err := s.ReadObject()
	if err != nil {
		return nil, -1, err
	}

	s.SkipWhiteSpace()
	if !s.HasPrefix("stream") {
		return obj, -1, nil
	}
	if _, isDict := obj.(Dict); !isDict {
		return nil, -1, &MalformedFileError{
			Pos: int64(s.Pos()),
			Err: errors.New("stream without dictionary"),
		}
	}
	s.SetPos(s.Pos() + len("stream"))
	s.SkipEOL()
	return obj, s.Pos(), nil
}

// streamBody returns the raw data of a stream.  The data normally is
// delimited by the /Length entry in the stream dictionary.  If this is
// missing or wrong, the data extends up to the "endstream" keyword.
func (d *Document) streamBody(data []byte, stm pendingStream) ([]byte, error) {
	length, err := GetInteger(d, stm.dict["Length"])
	if err == nil && length >= 0 && int64(stm.start)+int64(length) <= int64(len(data)) {
		end := stm.start + int(length)
		s := NewScanner(data)
		s.SetPos(end)
		s.SkipWhiteSpace()
		if s.HasPrefix("endstream") {
			return data[stm.start:end], nil
		}
	}

	idx := bytes.Index(data[stm.start:], []byte("endstream"))
	if idx < 0 {
		return nil, &MalformedFileError{
			Pos: int64(stm.start),
			Err: errors.New("stream data not terminated"),
		}
	}
	body := data[stm.start : stm.start+idx]
	switch {
	case bytes.HasSuffix(body, []byte("\r\n")):
		body = body[:len(body)-2]
	case bytes.HasSuffix(body, []byte("\n")), bytes.HasSuffix(body, []byte("\r")):
		body = body[:len(body)-1]
	}
	logger.Get().Debug("repaired stream length",
		"object", stm.number, "length", len(body))
	return body, nil
}

// Get implements the [Getter] interface.
// References to missing objects resolve to null.
func (d *Document) Get(ref Reference) (Object, error) {
	return d.objects[ref.Number()], nil
}

// IDs returns the numbers of all objects in the document, in increasing
// order.
func (d *Document) IDs() []uint32 {
	res := make([]uint32, 0, len(d.objects))
	for number := range d.objects {
		res = append(res, number)
	}
	slices.Sort(res)
	return res
}

// NumObjects returns the number of objects in the document.
func (d *Document) NumObjects() int {
	return len(d.objects)
}

// Version represents a version of PDF standard.
type Version int

// PDF versions supported by this library.
const (
	V1_0 Version = iota + 1
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V2_0
	tooHighVersion
)

// ParseVersion parses a PDF version string like "1.7".
func ParseVersion(verString string) (Version, error) {
	switch verString {
	case "1.0":
		return V1_0, nil
	case "1.1":
		return V1_1, nil
	case "1.2":
		return V1_2, nil
	case "1.3":
		return V1_3, nil
	case "1.4":
		return V1_4, nil
	case "1.5":
		return V1_5, nil
	case "1.6":
		return V1_6, nil
	case "1.7":
		return V1_7, nil
	case "2.0":
		return V2_0, nil
	}
	return 0, errVersion
}

func (ver Version) String() string {
	if ver >= V1_0 && ver <= V1_7 {
		return "1." + string(rune('0'+ver-V1_0))
	} else if ver == V2_0 {
		return "2.0"
	}
	return "unknown"
}

func readHeaderVersion(data []byte) (Version, error) {
	idx := bytes.Index(data[:min(len(data), 1024)], []byte("%PDF-"))
	if idx < 0 || idx+8 > len(data) {
		return 0, &MalformedFileError{Err: errors.New("PDF header not found")}
	}
	v, err := ParseVersion(string(data[idx+5 : idx+8]))
	if err != nil {
		return 0, &MalformedFileError{Pos: int64(idx + 5), Err: err}
	}
	return v, nil
}
