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

package mesh

import (
	"seehuhn.de/go/pdfmesh/internal/parallel"
)

// A Builder generates the meshes for many paths in parallel.
//
// A Builder is safe for concurrent use, including calls to Close while
// Build is running.  Once the Builder is closed, Build runs on the
// calling goroutine.  Close must be called when the Builder is no longer
// needed.
type Builder struct {
	pool *parallel.WorkerPool
}

// NewBuilder returns a new Builder, using the given number of worker
// goroutines.  If workers is 0 or negative, GOMAXPROCS is used.
func NewBuilder(workers int) *Builder {
	return &Builder{pool: parallel.NewWorkerPool(workers)}
}

// Build generates the triangles for all paths.
//
// Each path is processed independently.  The triangles of a path come
// after the triangles of all paths before it, so that later paths are
// painted on top of earlier ones.
func (b *Builder) Build(paths []PaintedPath) []Triangle {
	if len(paths) == 0 {
		return nil
	}

	// Every work item writes to its own slot, so no locking is needed.
	parts := make([][]Triangle, len(paths))
	work := make([]func(), len(paths))
	for i := range paths {
		work[i] = func() {
			parts[i] = Generate(paths[i])
		}
	}
	b.pool.ExecuteAll(work)

	total := 0
	for _, part := range parts {
		total += len(part)
	}
	res := make([]Triangle, 0, total)
	for _, part := range parts {
		res = append(res, part...)
	}
	return res
}

// Workers returns the number of worker goroutines.
func (b *Builder) Workers() int {
	return b.pool.Workers()
}

// Close stops the worker goroutines.
func (b *Builder) Close() {
	b.pool.Close()
}
