package main

import (
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
)

// particleColors holds the two colours a particle is drawn with.
type particleColors struct {
	fill  color.RGBA
	label color.RGBA
}

// genPalette precomputes one entry per particle id because HSV conversion
// is slow to redo every frame. Hue runs once around the wheel from the first
// id to the last; the label uses the opposite hue so it stays readable.
func genPalette(count int) []particleColors {
	palette := make([]particleColors, count)
	for id := range palette {
		hue := 0.0
		if count > 1 {
			hue = float64(id) / float64(count-1) * 360
		}
		palette[id] = particleColors{
			fill:  hueColor(hue),
			label: hueColor(hue + 180),
		}
	}
	return palette
}

func hueColor(hue float64) color.RGBA {
	r, g, b, _ := colorconv.HSVToRGB(math.Mod(hue, 360), 1, 1)
	return color.RGBA{r, g, b, 255}
}
