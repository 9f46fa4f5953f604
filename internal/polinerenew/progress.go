// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package polinerenew

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// progress reports collection and update progress to the operator. On a
// terminal it redraws a single status line; otherwise it logs.
type progress struct {
	out      io.Writer
	terminal bool
	// pending is set while a status line is drawn without a newline.
	pending bool
}

func newProgress(out io.Writer) *progress {
	return &progress{out: out, terminal: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func (p *progress) members(collected, total int) {
	if p.terminal {
		p.redraw("collected %d/%d set members", collected, total)
		return
	}
	slog.Info("collected set members", "collected", collected, "total", total)
}

func (p *progress) item(done, total int, id string, err error) {
	if err != nil {
		p.done()
		slog.Error("failed to update PO line", "id", id, "error", err)
	}
	if p.terminal {
		p.redraw("updated %d/%d PO lines", done, total)
		return
	}
	slog.Debug("processed PO line", "id", id, "done", done, "total", total)
}

func (p *progress) redraw(format string, args ...any) {
	fmt.Fprintf(p.out, "\r\033[K"+format, args...)
	p.pending = true
}

// done ends the current status line, if any.
func (p *progress) done() {
	if p.pending {
		fmt.Fprintln(p.out)
		p.pending = false
	}
}
