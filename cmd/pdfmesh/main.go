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

// Pdfmesh converts the vector graphics in a PDF file into triangle meshes.
//
// Usage:
//
//	pdfmesh file.pdf [preview.png]
//
// The pages of the file are converted in the background, and a summary of
// every finished page is logged.  If a second argument is given, the mesh
// of the last page is rasterized and written to the named PNG file.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"
	"time"

	"golang.org/x/term"

	"seehuhn.de/go/pdfmesh"
	"seehuhn.de/go/pdfmesh/render"
)

// previewSize is the length of the longer side of the preview image,
// in pixels.
const previewSize = 1024

// pollInterval is how often the frame buffer is checked for new frames.
const pollInterval = 50 * time.Millisecond

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s file.pdf [preview.png]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}
	inputFile := flag.Arg(0)
	previewFile := flag.Arg(1)

	level := slog.LevelWarn
	if term.IsTerminal(int(os.Stderr.Fd())) {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	pdfmesh.SetLogger(log)

	buf := &render.Buffer{}
	job := pdfmesh.StartFile(inputFile, nil, buf)

	var seen uint64
	var last render.Frame
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for done := false; !done; {
		select {
		case <-job.Done():
			done = true
		case <-ticker.C:
		}
		if f, version, ok := buf.Since(seen); ok {
			log.Info("new frame",
				"version", version,
				"triangles", len(f.Triangles),
				"area", f.DrawArea)
			seen = version
			last = f
		}
	}

	// Parse failures leave an empty canvas, but are not fatal.
	if err := job.Wait(); err != nil {
		log.Warn("conversion incomplete", "error", err)
	}

	if previewFile != "" {
		err := writePreview(previewFile, last)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
			os.Exit(1)
		}
	}
}

func writePreview(fname string, f render.Frame) error {
	width, height := previewSize, previewSize
	if dx, dy := f.DrawArea.Dx(), f.DrawArea.Dy(); dx > 0 && dy > 0 {
		if dx > dy {
			height = max(1, int(math.Round(previewSize*dy/dx)))
		} else {
			width = max(1, int(math.Round(previewSize*dx/dy)))
		}
	}
	img := render.Rasterize(f, width, height)

	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(out, img)
	if err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
