// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package compose

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// maxBackgroundPixels caps decoded background size to prevent memory
// bombs from hostile uploads. 100 million pixels is ~400 MB in RGBA.
const maxBackgroundPixels = 100_000_000

// decodeBackground decodes raw background bytes and cover-crops the
// result to exactly width x height: scaled to fill, centered, excess
// trimmed. Corrupt bytes fail here and the failure surfaces to the
// caller; a bad background is a data problem worth reporting, not one
// to paper over with a solid color.
func decodeBackground(data []byte, width, height int) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode background config: %w", err)
	}
	if cfg.Width*cfg.Height > maxBackgroundPixels {
		return nil, fmt.Errorf("background too large: %dx%d", cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}
	return coverCrop(src, width, height), nil
}

// coverCrop scales src to cover dst dimensions and crops the overflow
// symmetrically, like CSS object-fit: cover.
func coverCrop(src image.Image, width, height int) image.Image {
	sb := src.Bounds()
	srcW, srcH := sb.Dx(), sb.Dy()
	if srcW == width && srcH == height {
		return src
	}

	// Pick the scale that fills both axes, then crop the axis that
	// overshoots, keeping the center.
	scale := float64(width) / float64(srcW)
	if s := float64(height) / float64(srcH); s > scale {
		scale = s
	}
	cropW := int(float64(width) / scale)
	cropH := int(float64(height) / scale)
	if cropW > srcW {
		cropW = srcW
	}
	if cropH > srcH {
		cropH = srcH
	}
	x0 := sb.Min.X + (srcW-cropW)/2
	y0 := sb.Min.Y + (srcH-cropH)/2
	srcRect := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, srcRect, draw.Src, nil)
	return dst
}
