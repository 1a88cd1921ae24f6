package mediastore

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// rotateRaster decodes a jpeg/png payload, applies a quarter-turn rotation
// and re-encodes it in the source format. angle follows the viewer's frame:
// positive turns counterclockwise, negative clockwise.
func rotateRaster(data []byte, angle int) ([]byte, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	turns := ((angle/90)%4 + 4) % 4
	dst := src
	for i := 0; i < turns; i++ {
		dst = rotate90CCW(dst)
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 92})
	case "png":
		err = png.Encode(&buf, dst)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func rotate90CCW(src image.Image) image.Image {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dy(), bounds.Dx()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(y-bounds.Min.Y, bounds.Max.X-1-x, src.At(x, y))
		}
	}
	return dst
}
