package font

// Data is an owned pixel buffer for one glyph image, in the byte layout
// of its pixel format.
type Data struct {
	pix    []byte
	w, h   uint8
	format PixelFormat
}

// NewData wraps a pixel buffer. The buffer length should equal
// w·h·bpp of the format; Insert rejects mismatches.
func NewData(format PixelFormat, w, h uint8, pix []byte) Data {
	return Data{pix: pix, w: w, h: h, format: format}
}

// W returns the image width in pixels.
func (d Data) W() uint8 { return d.w }

// H returns the image height in pixels.
func (d Data) H() uint8 { return d.h }

// Bytes returns the underlying buffer.
func (d Data) Bytes() []byte { return d.pix }

// At reads the pixel (x,y).
func (d Data) At(x, y int) Color {
	if !d.Valid() {
		return 0
	}
	return d.format.Color(d.pix[d.format.Offset(x, y, int(d.w)):])
}

// Valid reports whether the buffer holds an image.
func (d Data) Valid() bool {
	return len(d.pix) > 0 && d.w > 0 && d.h > 0
}

// View returns a borrowed view onto the buffer.
func (d Data) View() DataView {
	return DataView{pix: d.pix, w: d.w, h: d.h, format: d.format}
}

// DataView is a borrowed, read-only view onto a glyph image inside a
// store's arena. It shares the accessor surface of Data but owns no
// memory; it stays usable only as long as the arena is not mutated.
type DataView struct {
	pix    []byte
	w, h   uint8
	format PixelFormat
}

// W returns the image width in pixels.
func (v DataView) W() uint8 { return v.w }

// H returns the image height in pixels.
func (v DataView) H() uint8 { return v.h }

// Bytes returns the viewed bytes.
func (v DataView) Bytes() []byte { return v.pix }

// At reads the pixel (x,y).
func (v DataView) At(x, y int) Color {
	if !v.Valid() {
		return 0
	}
	return v.format.Color(v.pix[v.format.Offset(x, y, int(v.w)):])
}

// Valid reports whether the view points at an image.
func (v DataView) Valid() bool {
	return len(v.pix) > 0 && v.w > 0 && v.h > 0
}

// Copy detaches the view into an owned Data buffer.
func (v DataView) Copy() Data {
	pix := make([]byte, len(v.pix))
	copy(pix, v.pix)
	return Data{pix: pix, w: v.w, h: v.h, format: v.format}
}
