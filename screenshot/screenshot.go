// This file is part of Microvaders.
//
// Microvaders is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Microvaders is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Microvaders.  If not, see <https://www.gnu.org/licenses/>.

// Package screenshot renders perceived frames of the LED matrix as images.
// The colours are shared with the frontends so that a screenshot looks like
// the window it was taken from.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jetsetilly/microvaders/curated"
	"github.com/jetsetilly/microvaders/firmware/game"
	"github.com/jetsetilly/microvaders/hardware"
	"github.com/jetsetilly/microvaders/hardware/clocks"
)

// DefaultCell is the size in pixels of one LED in a screenshot.
const DefaultCell = 32

// colour of a fully lit LED and of the matrix background.
var (
	litColor = colornames.Red
	offColor = color.RGBA{R: 0x28, G: 0x08, B: 0x08, A: 0xff}
	bgColor  = colornames.Black
)

// LEDColor returns the colour of an LED at the specified brightness.
func LEDColor(b uint8) color.RGBA {
	b = min(b, game.MaxBrightness)
	mix := func(off, lit uint8) uint8 {
		return uint8((int(off)*(game.MaxBrightness-int(b)) + int(lit)*int(b)) / game.MaxBrightness)
	}
	return color.RGBA{
		R: mix(offColor.R, litColor.R),
		G: mix(offColor.G, litColor.G),
		B: mix(offColor.B, litColor.B),
		A: 0xff,
	}
}

// the height of the caption area below the matrix.
const captionHeight = 16

// Render the frame as an image. Each LED is a square of cell pixels with a
// border. The caption is drawn below the matrix if it is not empty.
func Render(f game.Frame, cell int, caption string) *image.RGBA {
	cell = max(cell, 4)

	// one pixel per LED, scaled up in a single operation
	src := image.NewRGBA(image.Rect(0, 0, game.Width, game.Height))
	for y, row := range f {
		for x, b := range row {
			src.SetRGBA(x, y, LEDColor(b))
		}
	}

	h := game.Height * cell
	if caption != "" {
		h += captionHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, game.Width*cell, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(img, image.Rect(0, 0, game.Width*cell, game.Height*cell), src, src.Bounds(), draw.Src, nil)

	// grid lines between the LEDs
	border := max(cell/8, 1)
	for i := 0; i <= game.Width; i++ {
		r := image.Rect(i*cell-border/2, 0, i*cell+border-border/2, game.Height*cell)
		draw.Draw(img, r, image.NewUniform(bgColor), image.Point{}, draw.Src)
	}
	for i := 0; i <= game.Height; i++ {
		r := image.Rect(0, i*cell-border/2, game.Width*cell, i*cell+border-border/2)
		draw.Draw(img, r, image.NewUniform(bgColor), image.Point{}, draw.Src)
	}

	if caption != "" {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(colornames.White),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(2, game.Height*cell+captionHeight-4),
		}
		d.DrawString(caption)
	}

	return img
}

// Save the frame as a PNG file.
func Save(f hardware.Frame, filename string) error {
	img := Render(f.Perceived, DefaultCell, fmt.Sprintf("%d %s", f.Num, clocks.Format(f.Time)))

	out, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("screenshot: %v", err)
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return curated.Errorf("screenshot: %v", err)
	}

	if err := out.Close(); err != nil {
		return curated.Errorf("screenshot: %v", err)
	}

	return nil
}
