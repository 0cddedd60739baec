package analyze

import (
	"image"
	imagecolor "image/color"
)

// PixelBuffer is a decoded RGBA image: row-major, 4 bytes per pixel.
// Decoding from a file format is the caller's responsibility.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// Color is a single RGBA sample.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// NewPixelBuffer wraps raw RGBA samples. The sample slice is referenced,
// not copied.
func NewPixelBuffer(width int, height int, pix []uint8) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    pix,
	}
}

// FromImage converts an image.Image into a PixelBuffer anchored at (0,0).
// *image.RGBA and *image.NRGBA are copied row by row; everything else goes
// through the color model conversion.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pix := make([]uint8, width*height*4)

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < height; y++ {
			rowStart := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*width*4:(y+1)*width*4], src.Pix[rowStart:rowStart+width*4])
		}
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			rowStart := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(pix[y*width*4:(y+1)*width*4], src.Pix[rowStart:rowStart+width*4])
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := imagecolor.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(imagecolor.RGBA)
				offset := (y*width + x) * 4
				pix[offset] = c.R
				pix[offset+1] = c.G
				pix[offset+2] = c.B
				pix[offset+3] = c.A
			}
		}
	}

	return NewPixelBuffer(width, height, pix)
}

func (b *PixelBuffer) colorAt(index int) Color {
	offset := index * 4
	return Color{
		R: b.Pix[offset],
		G: b.Pix[offset+1],
		B: b.Pix[offset+2],
		A: b.Pix[offset+3],
	}
}

// At returns the sample at (x,y). Out-of-range coordinates are the caller's
// bug; no bounds check is performed.
func (b *PixelBuffer) At(x int, y int) Color {
	return b.colorAt(y*b.Width + x)
}

func (b *PixelBuffer) validate(name string) error {
	if b == nil {
		return &InvalidBufferError{Name: name}
	}
	if b.Width <= 0 || b.Height <= 0 || len(b.Pix) != b.Width*b.Height*4 {
		return &InvalidBufferError{
			Name:   name,
			Width:  b.Width,
			Height: b.Height,
			Length: len(b.Pix),
		}
	}
	return nil
}
