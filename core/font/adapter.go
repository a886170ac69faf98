package font

import "github.com/ChenKe404/ckfont/core"

// Adapter is any importer able to produce the three raw ingredients of
// a store: a header, a glyph sequence, and the arena bytes. Glyphs are
// expected consecutive in the arena with Pos set to the accumulated
// offset; Load checks that the block sizes sum to the arena length and
// that every block lies inside the arena.
type Adapter interface {
	Header() Header
	CharList() []Char
	Data() []byte
}

// Load populates the store from an adapter. The header's max width is
// recomputed and the pixel format installed from the header flag. If
// the glyph sequence does not tile the arena, the store's glyphs and
// arena are cleared and an error returned.
func (f *Font) Load(adp Adapter) error {
	f.chars = append([]Char(nil), adp.CharList()...)
	f.arena = append([]byte(nil), adp.Data()...)
	f.index = make(map[rune]int)

	f.header = adp.Header()
	f.header.MaxWidth = 0
	for _, ch := range f.chars {
		if ch.Width > f.header.MaxWidth {
			f.header.MaxWidth = ch.Width
		}
	}
	f.format = formatOf(f.header)

	if !validate(f.chars, len(f.arena), f.format.Bpp()) {
		trace().Errorf("font: validation failed")
		f.chars = nil
		f.arena = nil
		return core.Error(core.EINVALID, "font validation failed")
	}
	f.rebuildIndex()
	f.resetSpace()
	return nil
}
