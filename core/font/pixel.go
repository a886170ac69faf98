package font

// PixelFormat selects the byte layout of the pixel arena. It is fixed
// at store creation time through the header's flag byte.
type PixelFormat uint8

// The two supported arena layouts.
const (
	Rgb24  PixelFormat = iota // R,G,B per pixel, alpha implicitly 0xff
	Argb32                    // A,R,G,B per pixel
)

// Bpp returns the bytes per pixel of the format.
func (p PixelFormat) Bpp() int {
	if p == Argb32 {
		return 4
	}
	return 3
}

// Offset returns the byte offset of pixel (x,y) in a row-major image of
// width w.
func (p PixelFormat) Offset(x, y, w int) int {
	return (y*w + x) * p.Bpp()
}

// Color decodes one pixel from b, which must hold at least Bpp bytes.
func (p PixelFormat) Color(b []byte) Color {
	if p == Argb32 {
		return ARGB(b[0], b[1], b[2], b[3])
	}
	return RGB(b[0], b[1], b[2])
}

// formatOf derives the pixel format from a header's flag byte.
func formatOf(h Header) PixelFormat {
	if h.Flag&FlagBit32 != 0 {
		return Argb32
	}
	return Rgb24
}
