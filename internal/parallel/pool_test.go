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

package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestExecuteAll(t *testing.T) {
	for _, workers := range []int{0, 1, 3} {
		p := NewWorkerPool(workers)

		var count atomic.Int64
		work := make([]func(), 100)
		for i := range work {
			work[i] = func() { count.Add(int64(i)) }
		}
		p.ExecuteAll(work)
		if got := count.Load(); got != 4950 {
			t.Errorf("%d workers: sum is %d, want 4950", workers, got)
		}
		p.Close()
	}
}

func TestClosedPool(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()

	ran := false
	p.ExecuteAll([]func(){func() { ran = true }})
	if !ran {
		t.Error("work on a closed pool was not run")
	}
}

// TestCloseWhileBusy closes the pool while other goroutines are still
// submitting work.  All work must run, and no caller may block.
func TestCloseWhileBusy(t *testing.T) {
	for range 20 {
		p := NewWorkerPool(2)

		var count atomic.Int64
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				work := make([]func(), 50)
				for i := range work {
					work[i] = func() { count.Add(1) }
				}
				p.ExecuteAll(work)
			}()
		}
		p.Close()

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(10 * time.Second):
			t.Fatal("ExecuteAll did not return after Close")
		}
		if got := count.Load(); got != 8*50 {
			t.Errorf("%d work items ran, want %d", got, 8*50)
		}
	}
}
