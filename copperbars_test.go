// This file is part of Copperbars.
//
// Copperbars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Copperbars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Copperbars.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/copperbars/demo/rasterbars"
	"github.com/jetsetilly/copperbars/hardware"
	"github.com/jetsetilly/copperbars/hardware/limiter"
	"github.com/jetsetilly/copperbars/logger"
	"github.com/jetsetilly/copperbars/terminal/easyterm"
	"github.com/jetsetilly/copperbars/test"
)

const expectedFrame = "000-031 $f888\n" +
	"032-063 $f088\n" +
	"064-095 $f880\n" +
	"096-127 $f880 [0,400) $f080 [400,848)\n" +
	"128-479 $f880\n"

func TestTraceMode(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch(context.Background(), []string{"TRACE", "-frames", "2"}, w), 0)
	test.ExpectEquality(t, w.String(), "frame 1\n"+expectedFrame+"frame 2\n"+expectedFrame)
}

func TestTraceScript(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch(context.Background(), []string{"TRACE", "-frames", "1", "-script", "scripts/rasterbars.lua"}, w), 0)
	test.ExpectEquality(t, w.String(), "frame 1\n"+expectedFrame)
}

func TestDisasmMode(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch(context.Background(), []string{"DISASM"}, w), 0)

	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	test.DemandEquality(t, len(lines), 264)
	test.ExpectEquality(t, lines[0], "$0000  0000       SETX  0")
	test.ExpectEquality(t, lines[263], "$018b  c000       JUMP  $0000")
}

func TestSnapshotMode(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "frame.bmp")

	w := &test.Writer{}
	test.ExpectEquality(t, launch(context.Background(), []string{"SNAPSHOT", fn}, w), 0)
	test.ExpectSuccess(t, strings.HasPrefix(w.String(), "frame 1 written to"))

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data[:2]), "BM")
}

func TestBadArguments(t *testing.T) {
	w := &test.Writer{}
	test.ExpectEquality(t, launch(context.Background(), []string{"-nosuchflag"}, w), 10)

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"SNAPSHOT"}, w), 20)

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"TRACE", "-spec", "1024x768"}, w), 20)
	test.ExpectSuccess(t, strings.Contains(w.String(), "unknown display mode"))
}

// brokenWriter fails every write
type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestPresenterRenderError(t *testing.T) {
	sys, err := hardware.NewSystem(nil)
	test.DemandSuccess(t, err)
	rec := recordAll(sys, 2)
	_, err = rasterbars.Setup(sys)
	test.DemandSuccess(t, err)
	sys.RunForFrameCount(3)

	f, err := os.Create(filepath.Join(t.TempDir(), "term"))
	test.DemandSuccess(t, err)
	defer f.Close()

	var term easyterm.Terminal
	test.DemandSuccess(t, term.Initialise(f, f))

	lmtr := limiter.NewLimiter(float32(sys.Spec.RefreshRate))
	lmtr.Active.Store(false)
	defer lmtr.Stop()

	pr := &presenter{
		limiter: lmtr,
		rec:     rec,
		term:    &term,
		output:  brokenWriter{},
	}

	logger.Clear()
	pr.CheckFrame()
	pr.CheckFrame()

	var n int
	for _, e := range logger.Entries() {
		if e.Tag == "terminal" {
			n++
			test.ExpectSuccess(t, strings.HasPrefix(e.Detail, "render"))
			test.ExpectEquality(t, e.Repeated, 0)
		}
	}
	test.ExpectEquality(t, n, 1)
}
