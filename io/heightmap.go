package io

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// ExportHeightmapPNG writes a height grid as a 16-bit grayscale PNG, with
// heights normalized to the full sample range (a flat field maps to
// mid-gray). The grid is indexed [z][x]; row z becomes image row y. If
// either dimension exceeds maxDim the image is downscaled with Catmull-Rom
// resampling, preserving aspect ratio. maxDim <= 0 disables the limit.
func ExportHeightmapPNG(path string, field [][]float32, maxDim int) error {
	if len(field) == 0 || len(field[0]) == 0 {
		return fmt.Errorf("cannot export empty height field")
	}
	width := len(field[0])
	height := len(field)
	for z, row := range field {
		if len(row) != width {
			return fmt.Errorf("height field row %d has %d samples, expected %d", z, len(row), width)
		}
	}

	minH, maxH := field[0][0], field[0][0]
	for _, row := range field {
		for _, h := range row {
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
	}

	img := image.NewGray16(image.Rect(0, 0, width, height))
	span := maxH - minH
	for z, row := range field {
		for x, h := range row {
			v := uint16(32768)
			if span > 0 {
				v = uint16(float64(h-minH) / float64(span) * 65535)
			}
			img.SetGray16(x, z, color.Gray16{Y: v})
		}
	}

	out := img
	if maxDim > 0 && (width > maxDim || height > maxDim) {
		dw, dh := width, height
		if dw >= dh {
			dh = dh * maxDim / dw
			dw = maxDim
		} else {
			dw = dw * maxDim / dh
			dh = maxDim
		}
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
		scaled := image.NewGray16(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heightmap file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, out); err != nil {
		return fmt.Errorf("failed to encode heightmap PNG: %w", err)
	}

	b := out.Bounds()
	fmt.Printf("Successfully exported heightmap to: %s\n", path)
	fmt.Printf("  Resolution: %dx%d\n", b.Dx(), b.Dy())
	fmt.Printf("  Height range: [%g, %g]\n", minH, maxH)
	return nil
}
