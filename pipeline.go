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

package pdfmesh

import (
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/pdfmesh/internal/logger"
	"seehuhn.de/go/pdfmesh/mesh"
	"seehuhn.de/go/pdfmesh/pages"
	"seehuhn.de/go/pdfmesh/pdf"
	"seehuhn.de/go/pdfmesh/reader"
	"seehuhn.de/go/pdfmesh/render"
)

// Options control the conversion of a document.
// The zero value, and a nil pointer, give the defaults.
type Options struct {
	// Workers is the number of goroutines used to generate meshes.
	// If this is zero, runtime.GOMAXPROCS(0) is used.
	Workers int

	// CurveSteps is the number of line segments used to approximate a
	// Bézier curve.  If this is zero, [reader.DefaultCurveSteps] is used.
	CurveSteps int

	// Strict makes damaged files an error.  By default, damaged objects
	// and undecodable content streams are logged and skipped.
	Strict bool
}

// SetLogger installs l as the logger for all packages of this module.
// Passing nil disables logging, which is the default.
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Process converts all pages of a PDF file held in memory.
// The returned frames are in page order.
//
// Problems inside a content stream only affect the page concerned.  If the
// file is damaged, the frames for all readable pages are returned
// together with the error.
func Process(data []byte, opt *Options) ([]render.Frame, error) {
	doc, err := pdf.Load(data)
	if doc == nil {
		return nil, err
	}

	var frames []render.Frame
	err2 := renderDocument(doc, err, opt, func(f render.Frame) {
		frames = append(frames, f)
	})
	return frames, err2
}

// A Job is a conversion running in the background.
type Job struct {
	done chan struct{}
	err  error
}

// Done returns a channel which is closed once the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job has finished and returns its error.
func (j *Job) Wait() error {
	<-j.done
	return j.err
}

// Start converts a PDF file held in memory on a background goroutine.
// Every finished page is passed to target: first the page's media box
// via SetDrawArea, then its triangles via SetTriangleBuffer.  The target
// is only called from the background goroutine.
//
// The job cannot be cancelled.
func Start(data []byte, opt *Options, target render.Target) *Job {
	return start(func() (*pdf.Document, error) {
		return pdf.Load(data)
	}, opt, target)
}

// StartFile is like [Start], but maps the named file into memory.
// The mapping is released when the job finishes.
func StartFile(fname string, opt *Options, target render.Target) *Job {
	return start(func() (*pdf.Document, error) {
		return pdf.Open(fname)
	}, opt, target)
}

func start(load func() (*pdf.Document, error), opt *Options, target render.Target) *Job {
	job := &Job{done: make(chan struct{})}
	go func() {
		defer close(job.done)

		doc, err := load()
		if doc == nil {
			logger.Get().Error("cannot load document", "error", err)
			job.err = err
			return
		}
		defer doc.Close()

		job.err = renderDocument(doc, err, opt, func(f render.Frame) {
			target.SetDrawArea(f.DrawArea)
			target.SetTriangleBuffer(f.Triangles)
		})
	}()
	return job
}

// renderDocument converts all pages of doc and calls emit for each of them.
// loadErr is the error returned by the loader, together with doc.
func renderDocument(doc *pdf.Document, loadErr error, opt *Options, emit func(render.Frame)) error {
	if opt == nil {
		opt = &Options{}
	}
	log := logger.Get()

	var errs []error
	if loadErr != nil {
		if opt.Strict {
			return loadErr
		}
		log.Warn("document is damaged, continuing", "error", loadErr)
		errs = append(errs, loadErr)
	}
	log.Info("loaded document",
		"version", doc.Version.String(),
		"objects", doc.NumObjects(),
		"title", doc.Title(),
		"language", doc.Language())

	streams, err := pages.Extract(doc)
	if err != nil {
		if opt.Strict {
			return err
		}
		log.Warn("some page contents could not be decoded", "error", err)
		errs = append(errs, err)
	}

	b := mesh.NewBuilder(opt.Workers)
	defer b.Close()

	r := reader.New()
	if opt.CurveSteps > 0 {
		r.CurveSteps = opt.CurveSteps
	}
	for i, stm := range streams {
		r.Reset()
		err := r.Parse(stm.Data)
		if err != nil {
			err = fmt.Errorf("page %d: %w", i+1, err)
			if opt.Strict {
				return err
			}
			log.Warn("cannot interpret content stream", "page", i+1, "error", err)
			errs = append(errs, err)
		}

		paths := r.Paths()
		tris := b.Build(paths)
		log.Info("page converted",
			"page", i+1,
			"object", stm.Ref,
			"paths", len(paths),
			"triangles", len(tris))

		emit(render.Frame{Triangles: tris, DrawArea: stm.MediaBox})
	}

	return errors.Join(errs...)
}
