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

// Package trace records the effect of register writes on the colour of the
// display. The Recorder type implements the vdp.Observer interface and keeps
// a history of changes to palette entry 0, the background colour, for the
// most recent frames.
//
// With all layers disabled the display shows nothing but the background
// colour, so the history is enough to reconstruct the entire visible frame.
package trace

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"slices"
	"sync"

	"golang.org/x/image/bmp"

	"github.com/jetsetilly/copperbars/curated"
	"github.com/jetsetilly/copperbars/hardware/raster/coords"
	"github.com/jetsetilly/copperbars/hardware/raster/specification"
	"github.com/jetsetilly/copperbars/hardware/vdp/palette"
)

// Error patterns.
const (
	NoFrame = "trace: frame %d not recorded"
)

// Span is a horizontal run of a single colour. X1 is exclusive.
type Span struct {
	X0, X1 int
	Colour palette.Colour
}

func (s Span) String() string {
	return fmt.Sprintf("%s [%d,%d)", s.Colour, s.X0, s.X1)
}

// Band is a range of consecutive scanlines that look the same. Y1 is
// exclusive.
type Band struct {
	Y0, Y1 int
	Spans  []Span
}

func (b Band) String() string {
	s := fmt.Sprintf("%03d-%03d", b.Y0, b.Y1-1)
	if len(b.Spans) == 1 {
		return fmt.Sprintf("%s %s", s, b.Spans[0].Colour)
	}
	for _, sp := range b.Spans {
		s = fmt.Sprintf("%s %s", s, sp)
	}
	return s
}

type change struct {
	y, x   int
	colour palette.Colour
}

type frame struct {
	number     int
	background palette.Colour
	changes    []change

	// the recorder did not see the start of the frame so the background
	// value is not known
	partial bool
}

// Recorder is a history of the background colour.
type Recorder struct {
	crit sync.Mutex
	spec specification.Spec

	// maximum number of frames
	max int

	frames []*frame
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. The number of frames kept is given by frames.
func NewRecorder(spec specification.Spec, frames int) *Recorder {
	return &Recorder{
		spec: spec,
		max:  max(1, frames),
	}
}

func (rec *Recorder) push(f *frame) {
	rec.frames = append(rec.frames, f)
	if len(rec.frames) > rec.max {
		rec.frames = rec.frames[len(rec.frames)-rec.max:]
	}
}

// FrameStarted implements the vdp.Observer interface.
func (rec *Recorder) FrameStarted(number int, background palette.Colour) {
	rec.crit.Lock()
	defer rec.crit.Unlock()
	rec.push(&frame{number: number, background: background})
}

// PaletteWritten implements the vdp.Observer interface.
func (rec *Recorder) PaletteWritten(pos coords.Position, index uint8, colour palette.Colour) {
	if index != 0 {
		return
	}

	rec.crit.Lock()
	defer rec.crit.Unlock()

	var f *frame
	if len(rec.frames) > 0 {
		f = rec.frames[len(rec.frames)-1]
	}
	if f == nil || f.number != pos.Frame {
		f = &frame{number: pos.Frame, partial: true}
		rec.push(f)
	}

	f.changes = append(f.changes, change{y: pos.Y, x: pos.X, colour: colour})
}

func (rec *Recorder) find(number int) (*frame, error) {
	for _, f := range rec.frames {
		if f.number == number {
			return f, nil
		}
	}
	return nil, curated.Errorf(NoFrame, number)
}

// Frames returns the numbers of the recorded frames, oldest first. Frames
// for which the recorder did not see the start are not included.
func (rec *Recorder) Frames() []int {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	var n []int
	for _, f := range rec.frames {
		if !f.partial {
			n = append(n, f.number)
		}
	}
	return n
}

func (f *frame) colourAt(y int, x int) palette.Colour {
	c := f.background
	for _, ch := range f.changes {
		if ch.y > y || (ch.y == y && ch.x > x) {
			break
		}
		c = ch.colour
	}
	return c
}

// ColourAt returns the background colour at the raster position. A change
// made at a position applies to that position.
func (rec *Recorder) ColourAt(number int, y int, x int) (palette.Colour, error) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	f, err := rec.find(number)
	if err != nil {
		return 0, err
	}
	return f.colourAt(y, x), nil
}

// LineStart returns the background colour at the start of the scanline.
func (rec *Recorder) LineStart(number int, y int) (palette.Colour, error) {
	return rec.ColourAt(number, y, 0)
}

func (f *frame) line(y int, width int) []Span {
	spans := []Span{{X0: 0, X1: width, Colour: f.colourAt(y, 0)}}

	for _, ch := range f.changes {
		if ch.y < y || ch.x == 0 {
			continue
		}
		if ch.y > y || ch.x >= width {
			break
		}

		last := &spans[len(spans)-1]
		if ch.colour == last.Colour {
			continue
		}
		if ch.x == last.X0 {
			last.Colour = ch.colour
			if n := len(spans); n > 1 && spans[n-2].Colour == last.Colour {
				spans[n-2].X1 = last.X1
				spans = spans[:n-1]
			}
			continue
		}
		last.X1 = ch.x
		spans = append(spans, Span{X0: ch.x, X1: width, Colour: ch.colour})
	}

	return spans
}

// Line returns the visible part of the scanline as a series of spans.
func (rec *Recorder) Line(number int, y int) ([]Span, error) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	f, err := rec.find(number)
	if err != nil {
		return nil, err
	}
	return f.line(y, rec.spec.ActiveWidth), nil
}

// Bands returns the visible part of the frame as a series of bands.
func (rec *Recorder) Bands(number int) ([]Band, error) {
	rec.crit.Lock()
	defer rec.crit.Unlock()

	f, err := rec.find(number)
	if err != nil {
		return nil, err
	}

	var bands []Band
	for y := range rec.spec.ActiveHeight {
		l := f.line(y, rec.spec.ActiveWidth)
		if len(bands) > 0 && slices.Equal(bands[len(bands)-1].Spans, l) {
			bands[len(bands)-1].Y1 = y + 1
			continue
		}
		bands = append(bands, Band{Y0: y, Y1: y + 1, Spans: l})
	}

	return bands, nil
}

// WriteBands writes a description of each band in the frame to w.
func (rec *Recorder) WriteBands(w io.Writer, number int) error {
	bands, err := rec.Bands(number)
	if err != nil {
		return err
	}
	for _, b := range bands {
		fmt.Fprintln(w, b)
	}
	return nil
}

// Image returns the visible part of the frame as an image.
func (rec *Recorder) Image(number int) (*image.RGBA, error) {
	bands, err := rec.Bands(number)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, rec.spec.ActiveWidth, rec.spec.ActiveHeight))
	for _, b := range bands {
		for _, s := range b.Spans {
			c := s.Colour.RGBA()

			// the display is opaque
			c.A = 0xff

			fill(img, image.Rect(s.X0, b.Y0, s.X1, b.Y1), c)
		}
	}

	return img, nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// Snapshot writes the visible part of the frame to w as a BMP image.
func (rec *Recorder) Snapshot(w io.Writer, number int) error {
	img, err := rec.Image(number)
	if err != nil {
		return err
	}
	if err := bmp.Encode(w, img); err != nil {
		return curated.Errorf("trace: snapshot: %v", err)
	}
	return nil
}
