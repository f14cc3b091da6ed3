package ffmpeg

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// PlayIcon draws a translucent dark disc with a white play triangle.
func PlayIcon(size int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	disc := color.NRGBA{R: 0, G: 0, B: 0, A: 0x99}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	c := float64(size) / 2
	r := c - 1
	// Triangle centered slightly right of the disc center, as play glyphs are.
	left, right := c-r*0.3, c+r*0.45
	half := r * 0.4

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			dx, dy := px-c, py-c
			if dx*dx+dy*dy > r*r {
				continue
			}
			img.SetNRGBA(x, y, disc)
			if px < left || px > right {
				continue
			}
			// Half-height shrinks linearly from the base to the tip.
			h := half * (right - px) / (right - left)
			if py >= c-h && py <= c+h {
				img.SetNRGBA(x, y, white)
			}
		}
	}
	return img
}

// WritePlayIcon encodes PlayIcon(size) as PNG at path.
func WritePlayIcon(path string, size int) error {
	if size < 8 {
		size = 8
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create play icon: %w", err)
	}
	if err := png.Encode(f, PlayIcon(size)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode play icon: %w", err)
	}
	return f.Close()
}
