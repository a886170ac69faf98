package font

import "github.com/ChenKe404/ckfont/core"

// Char is one glyph of a store: a codepoint, the position of its pixel
// block inside the arena, and its metrics. Width and height include the
// intra-glyph padding as stored. XAdvance is the horizontal pen step
// contributed by the char itself, exclusive of inter-character spacing.
type Char struct {
	Code     rune
	Pos      uint32 // byte offset into the arena, assigned on insert
	Width    uint8
	Height   uint8
	XAdvance uint8
	XOffset  int8
	YOffset  int8
}

// Reserved sentinel chars, served without consulting the arena.
var (
	charNul = Char{}
	charNL  = Char{Code: '\n'}
	charTab = Char{Code: '\t'}
)

// sizeBlock is the arena size of a char's pixel block.
func sizeBlock(ch Char, bpp int) int {
	return int(ch.Width) * int(ch.Height) * bpp
}

// Font is a store of bitmap glyphs with a codepoint index and a flat
// pixel arena. The zero value is not ready for use; create stores with
// New.
//
// A Font is not safe for concurrent mutation; callers must serialize
// Insert/Remove/Clear/Load against readers.
type Font struct {
	header Header
	format PixelFormat
	chars  []Char
	index  map[rune]int // codepoint → position in chars; a cache, not a source of truth
	arena  []byte
	space  Char // synthetic space, never materialized in the arena
}

// New creates an empty store.
func New() *Font {
	f := &Font{index: make(map[rune]int)}
	f.space.Code = ' '
	return f
}

// Char returns the glyph for a codepoint. The lookup is infallible:
// newline and tab map to reserved sentinels, '\0' and '\r' to the zero
// glyph, a missing space to the synthetic space, and any other missing
// codepoint to the first glyph of the store. An empty store always
// yields the zero glyph.
func (f *Font) Char(code rune) *Char {
	if len(f.chars) == 0 || code == '\r' || code == '\x00' {
		return &charNul
	}
	if code == '\n' {
		return &charNL
	}
	if code == '\t' {
		return &charTab
	}
	if i, ok := f.index[code]; ok {
		return &f.chars[i]
	}
	if code == ' ' {
		return &f.space
	}
	return &f.chars[0]
}

// Chars resolves every rune of s independently.
func (f *Font) Chars(s string) []*Char {
	ret := make([]*Char, 0, len(s))
	for _, r := range s {
		ret = append(ret, f.Char(r))
	}
	return ret
}

// CharsRunes resolves every rune of rs independently.
func (f *Font) CharsRunes(rs []rune) []*Char {
	ret := make([]*Char, len(rs))
	for i, r := range rs {
		ret[i] = f.Char(r)
	}
	return ret
}

// CharsBytes resolves every byte of bs as a codepoint of its own, with
// no multi-byte decoding.
func (f *Font) CharsBytes(bs []byte) []*Char {
	ret := make([]*Char, len(bs))
	for i, b := range bs {
		ret[i] = f.Char(rune(b))
	}
	return ret
}

// CharList returns the glyph sequence in insertion order.
func (f *Font) CharList() []Char {
	return f.chars
}

// Header returns the store's metadata record.
func (f *Font) Header() Header {
	return f.header
}

// SetHeader replaces the metadata record. The pixel-depth flag and the
// padding vector are fixed at creation time and survive unchanged; the
// synthetic space is re-derived from the new line height.
func (f *Font) SetHeader(h Header) {
	var flag uint8
	if f.header.Flag&FlagBit32 != 0 {
		flag = FlagBit32
	}
	padding := f.header.Padding

	f.header = h
	f.header.Flag |= flag
	f.header.Padding = padding
	f.resetSpace()
}

// resetSpace derives the synthetic space metrics from the line height.
// The space is half a line high in width, at least 2 pixels.
func (f *Font) resetSpace() {
	w := f.header.LineHeight / 2
	if w < 2 {
		w = 2
	}
	f.space.Width = w
	f.space.XAdvance = w
	f.space.Height = f.header.LineHeight
}

// Format returns the pixel layout of the arena.
func (f *Font) Format() PixelFormat {
	return f.format
}

// Arena returns the flat pixel buffer holding all glyph images.
func (f *Font) Arena() []byte {
	return f.arena
}

// ColorAt reads the pixel (x,y) of a char's image.
func (f *Font) ColorAt(ch Char, x, y int) Color {
	i := int(ch.Pos) + f.format.Offset(x, y, int(ch.Width))
	return f.format.Color(f.arena[i:])
}

// Data returns a borrowed view onto a char's pixel block, or an invalid
// view if the char is not part of the store or its block exceeds the
// arena.
func (f *Font) Data(ch Char) DataView {
	if _, ok := f.index[ch.Code]; !ok {
		return DataView{}
	}
	upper := int(ch.Pos) + sizeBlock(ch, f.format.Bpp())
	if upper > len(f.arena) {
		return DataView{}
	}
	return DataView{
		pix:    f.arena[ch.Pos:upper],
		w:      ch.Width,
		h:      ch.Height,
		format: f.format,
	}
}

// CopyData copies a char's pixel block into an owned Data buffer.
func (f *Font) CopyData(ch Char) (Data, bool) {
	dv := f.Data(ch)
	if !dv.Valid() {
		return Data{}, false
	}
	return dv.Copy(), true
}

// Insert adds a glyph and its pixel block to the store. The char's
// dimensions must be at least 1×1 and the data size must equal
// width·height·bpp. An existing glyph with the same codepoint is
// removed first. Pos is assigned by the store.
func (f *Font) Insert(ch Char, data Data) error {
	if ch.Width < 1 || ch.Height < 1 {
		trace().Errorf("font: invalid character size")
		return core.Error(core.EINVALID, "invalid character size %d×%d", ch.Width, ch.Height)
	}
	if len(data.pix) != sizeBlock(ch, f.format.Bpp()) {
		trace().Errorf("font: unmatched character data size")
		return core.Error(core.EINVALID, "unmatched character data size %d for %d×%d",
			len(data.pix), ch.Width, ch.Height)
	}

	f.Remove(ch.Code)

	ch.Pos = uint32(len(f.arena))
	f.arena = append(f.arena, data.pix...)
	f.chars = append(f.chars, ch)
	f.index[ch.Code] = len(f.chars) - 1

	if ch.Width > f.header.MaxWidth {
		f.header.MaxWidth = ch.Width
	}
	f.header.Count = uint16(len(f.chars))
	return nil
}

// Remove deletes a glyph and splices its pixel block out of the arena.
// Every glyph stored behind the removed block has its Pos decreased by
// the block size, which keeps the arena tiled without gaps.
func (f *Font) Remove(code rune) {
	i, ok := f.index[code]
	if !ok {
		return
	}
	ch := f.chars[i]
	pos := int(ch.Pos)
	size := sizeBlock(ch, f.format.Bpp())

	f.arena = append(f.arena[:pos], f.arena[pos+size:]...)
	f.chars = append(f.chars[:i], f.chars[i+1:]...)
	for j := range f.chars {
		if f.chars[j].Pos > uint32(pos) {
			f.chars[j].Pos -= uint32(size)
		}
	}
	f.rebuildIndex()
}

// Clear empties the store. The header is zeroed; the pixel format of
// the store stays as created.
func (f *Font) Clear() {
	f.header = Header{}
	f.chars = nil
	f.arena = nil
	f.index = make(map[rune]int)
}

// Valid reports whether the store holds at least one glyph.
func (f *Font) Valid() bool {
	return len(f.chars) > 0
}

func (f *Font) rebuildIndex() {
	f.index = make(map[rune]int, len(f.chars))
	for i := range f.chars {
		f.index[f.chars[i].Code] = i
	}
}

// validate checks arena well-formedness: the glyphs' block sizes must
// sum to the arena size, with every block inside its bounds. Overlap
// between blocks is not checked separately.
func validate(chars []Char, size int, bpp int) bool {
	total := 0
	for _, ch := range chars {
		block := sizeBlock(ch, bpp)
		total += block
		if int(ch.Pos)+block > size {
			return false
		}
	}
	return total == size
}
