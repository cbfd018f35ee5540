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
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/demo/rasterbars"
	"github.com/jetsetilly/copperbars/hardware"
	"github.com/jetsetilly/copperbars/hardware/copper/builder"
	"github.com/jetsetilly/copperbars/hardware/copper/disassembly"
	"github.com/jetsetilly/copperbars/hardware/limiter"
	"github.com/jetsetilly/copperbars/hardware/preferences"
	"github.com/jetsetilly/copperbars/logger"
	"github.com/jetsetilly/copperbars/modalflag"
	"github.com/jetsetilly/copperbars/prefs"
	"github.com/jetsetilly/copperbars/script"
	"github.com/jetsetilly/copperbars/statsview"
	"github.com/jetsetilly/copperbars/terminal/easyterm"
	"github.com/jetsetilly/copperbars/terminal/easyterm/ansi"
	"github.com/jetsetilly/copperbars/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	exitVal := launch(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. Returns the value
// to be used with os.Exit().
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "TRACE", "DISASM", "SNAPSHOT")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md, output)
	case "TRACE":
		err = traceFrames(md, output)
	case "DISASM":
		err = disasm(md, output)
	case "SNAPSHOT":
		err = snapshot(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return 20
	}

	return 0
}

// options common to all modes
type options struct {
	spec      *string
	script    *string
	prefsFile *string
	log       *bool
	memviz    *string
}

func addOptions(md *modalflag.Modes) *options {
	return &options{
		spec:      md.AddString("spec", "", "display mode: 848x480, 640x480"),
		script:    md.AddString("script", "", "lua program to run instead of the raster bars demo"),
		prefsFile: md.AddString("prefs", "", "preferences file"),
		log:       md.AddBool("log", false, "echo debugging log to output"),
		memviz:    md.AddString("memviz", "", "write graphviz file of the system structure on exit"),
	}
}

// system creates a new System from the options
func (opts *options) system(output io.Writer) (*hardware.System, error) {
	if *opts.log {
		logger.SetEcho(output)
	} else {
		logger.SetEcho(nil)
	}

	if *opts.spec != "" {
		prefs.PushCommandLineStack(fmt.Sprintf("vdp.spec::%s", *opts.spec))
		defer prefs.PopCommandLineStack()
	}

	p, err := preferences.NewPreferences(*opts.prefsFile)
	if err != nil {
		return nil, err
	}

	return hardware.NewSystem(p)
}

// program runs the raster bars demo or the lua script for the number of
// frames. if frames is zero or less the program runs until the context is
// cancelled. returns the builder used to build the copper list
func (opts *options) program(ctx context.Context, sys *hardware.System, frames int) (*builder.Builder, error) {
	if *opts.script != "" {
		s := script.NewScript(sys)
		defer s.Close()

		s.FrameLimit = frames
		err := s.RunFile(ctx, *opts.script)
		if err != nil && !curated.Is(err, script.ScriptEnd) && ctx.Err() == nil {
			return s.Builder(), err
		}
		return s.Builder(), nil
	}

	b, err := rasterbars.Setup(sys)
	if err != nil {
		return nil, err
	}

	if frames > 0 {
		return b, rasterbars.Loop(sys, frames)
	}

	for ctx.Err() == nil {
		if err := rasterbars.Loop(sys, 1); err != nil {
			return b, err
		}
	}

	return b, nil
}

// writeMemviz writes the system structure to the file named by the memviz
// option
func (opts *options) writeMemviz(sys *hardware.System) error {
	if *opts.memviz == "" {
		return nil
	}

	f, err := os.Create(*opts.memviz)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, sys)

	return nil
}

func recordAll(sys *hardware.System, frames int) *trace.Recorder {
	rec := trace.NewRecorder(sys.Spec, frames+2)
	sys.AddObserver(rec)
	return rec
}

func traceFrames(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	opts := addOptions(md)
	frames := md.AddInt("frames", 3, "number of frames to trace")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if *frames <= 0 {
		return fmt.Errorf("number of frames must be greater than zero")
	}

	sys, err := opts.system(output)
	if err != nil {
		return err
	}

	// the program runs for one extra frame so that the final frame is
	// complete
	rec := recordAll(sys, *frames)
	if _, err := opts.program(context.Background(), sys, *frames+1); err != nil {
		return err
	}

	// the final frame has only just started
	numbers := rec.Frames()
	if len(numbers) > 0 {
		numbers = numbers[:len(numbers)-1]
	}

	for _, n := range numbers {
		fmt.Fprintf(output, "frame %d\n", n)
		if err := rec.WriteBands(output, n); err != nil {
			return err
		}
	}

	if len(sys.Faults.Log) > 0 {
		fmt.Fprintln(output, "faults")
		sys.Faults.WriteLog(output)
	}

	return opts.writeMemviz(sys)
}

func disasm(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	opts := addOptions(md)
	lint := md.AddBool("lint", true, "check the copper list for faults")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sys, err := opts.system(output)
	if err != nil {
		return err
	}

	// the program must run for one frame so that the main loop of a script
	// can be reached
	b, err := opts.program(context.Background(), sys, 1)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("program did not build a copper list")
	}

	start := sys.VDP.Copper.Start()
	dsm := disassembly.Disassemble(sys.RAM, start, b.Cursor())
	if *lint {
		dsm.Findings = disassembly.Lint(sys.RAM, start, sys.Spec)
	}
	dsm.Write(output)

	return opts.writeMemviz(sys)
}

func snapshot(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	opts := addOptions(md)
	frames := md.AddInt("frames", 1, "frame number of the snapshot")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if *frames <= 0 {
		return fmt.Errorf("number of frames must be greater than zero")
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("output filename required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	sys, err := opts.system(output)
	if err != nil {
		return err
	}

	rec := recordAll(sys, *frames)
	if _, err := opts.program(context.Background(), sys, *frames+1); err != nil {
		return err
	}

	numbers := rec.Frames()
	if len(numbers) < 2 {
		return fmt.Errorf("no complete frame to snapshot")
	}

	f, err := os.Create(md.GetArg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	n := numbers[len(numbers)-2]
	if err := rec.Snapshot(f, n); err != nil {
		return err
	}
	fmt.Fprintf(output, "frame %d written to %s\n", n, md.GetArg(0))

	return opts.writeMemviz(sys)
}

func run(ctx context.Context, md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	opts := addOptions(md)
	frames := md.AddInt("frames", 0, "number of frames to run. zero to run until 'q' is pressed")
	fps := md.AddFloat64("fps", 0, "frames per second. zero for the refresh rate of the display mode")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	sys, err := opts.system(output)
	if err != nil {
		return err
	}

	if *stats {
		srv := statsview.Launch(output, "")
		defer srv.Stop()
	}

	var term easyterm.Terminal
	if err := term.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	if err := term.CBreakMode(); err != nil {
		return err
	}
	defer term.CanonicalMode()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// quit on q
	go func() {
		for k := range term.Keys(ctx) {
			if k == 'q' || k == 'Q' {
				cancel()
				return
			}
		}
	}()

	lmtr := limiter.NewLimiter(sys.Spec.RefreshRate)
	defer lmtr.Stop()
	lmtr.SetLimit(float32(*fps))

	rec := recordAll(sys, 2)
	pacer := &presenter{
		limiter: lmtr,
		rec:     rec,
		term:    &term,
		output:  output,
	}

	done := make(chan error, 1)
	go func() {
		done <- sys.Run(ctx, pacer)
	}()

	fmt.Fprint(output, ansi.HideCursor+ansi.ClearScreen)
	defer fmt.Fprint(output, ansi.ShowCursor)

	_, err = opts.program(ctx, sys, *frames)
	cancel()
	if rerr := <-done; err == nil {
		err = rerr
	}
	if err != nil {
		return err
	}

	return opts.writeMemviz(sys)
}

// presenter draws the most recent frame to the terminal at the end of every
// frame. It implements the hardware.Pacer interface.
type presenter struct {
	limiter *limiter.Limiter
	rec     *trace.Recorder
	term    *easyterm.Terminal
	output  io.Writer

	// errors from the terminal are logged once
	geometryErr bool
	renderErr   bool
}

func (pr *presenter) CheckFrame() {
	pr.limiter.CheckFrame()

	numbers := pr.rec.Frames()
	if len(numbers) < 2 {
		return
	}

	img, err := pr.rec.Image(numbers[len(numbers)-2])
	if err != nil {
		return
	}

	if err := pr.term.UpdateGeometry(); err != nil && !pr.geometryErr {
		pr.geometryErr = true
		logger.Logf(logger.Allow, "terminal", "geometry: %v", err)
	}
	geom := pr.term.Geometry()

	fmt.Fprint(pr.output, ansi.CursorHome)
	if err := ansi.Render(pr.output, img, geom.Cols, geom.Rows-1); err != nil && !pr.renderErr {
		pr.renderErr = true
		logger.Logf(logger.Allow, "terminal", "render: %v", err)
	}
	fmt.Fprintf(pr.output, "%.1f fps  (q to quit)", pr.limiter.Measured.Load().(float32))
}
