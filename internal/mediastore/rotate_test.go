package mediastore

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	return img
}

// testImage is 3 wide, 2 high: red at (0,0), green at (2,0), blue at (2,1).
func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, red)
	img.Set(2, 0, green)
	img.Set(2, 1, blue)
	return img
}

func sameColor(a color.Color, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestRotateRasterQuarterTurn(t *testing.T) {
	rotated, err := rotateRaster(encodePNG(t, testImage()), 90)
	require.NoError(t, err)

	img := decodePNG(t, rotated)
	bounds := img.Bounds()
	assert.Equal(t, 2, bounds.Dx())
	assert.Equal(t, 3, bounds.Dy())

	// Counterclockwise: the right column becomes the top row.
	assert.True(t, sameColor(green, img.At(0, 0)))
	assert.True(t, sameColor(blue, img.At(1, 0)))
	assert.True(t, sameColor(red, img.At(0, 2)))
}

func TestRotateRasterClockwise(t *testing.T) {
	rotated, err := rotateRaster(encodePNG(t, testImage()), -90)
	require.NoError(t, err)

	img := decodePNG(t, rotated)
	bounds := img.Bounds()
	assert.Equal(t, 2, bounds.Dx())
	assert.Equal(t, 3, bounds.Dy())

	// Clockwise: the left column becomes the top row, reading bottom-up.
	assert.True(t, sameColor(red, img.At(1, 0)))
	assert.True(t, sameColor(green, img.At(1, 2)))
	assert.True(t, sameColor(blue, img.At(0, 2)))
}

func TestRotateRasterFullCircle(t *testing.T) {
	data := encodePNG(t, testImage())

	for _, angle := range []int{360, -360, 0} {
		rotated, err := rotateRaster(data, angle)
		require.NoError(t, err)

		img := decodePNG(t, rotated)
		assert.Equal(t, 3, img.Bounds().Dx())
		assert.Equal(t, 2, img.Bounds().Dy())
		assert.True(t, sameColor(red, img.At(0, 0)))
		assert.True(t, sameColor(green, img.At(2, 0)))
		assert.True(t, sameColor(blue, img.At(2, 1)))
	}
}

func TestRotateRasterOppositeTurnsCancel(t *testing.T) {
	data := encodePNG(t, testImage())

	once, err := rotateRaster(data, -90)
	require.NoError(t, err)
	back, err := rotateRaster(once, 90)
	require.NoError(t, err)

	img := decodePNG(t, back)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.True(t, sameColor(red, img.At(0, 0)))
	assert.True(t, sameColor(green, img.At(2, 0)))
	assert.True(t, sameColor(blue, img.At(2, 1)))
}

func TestRotateRasterRejectsUndecodable(t *testing.T) {
	_, err := rotateRaster([]byte("not an image"), 90)
	assert.Error(t, err)
}

func TestRotateRasterRejectsUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, testImage(), nil))

	_, err := rotateRaster(buf.Bytes(), 90)
	assert.ErrorContains(t, err, "unsupported image format")
}
