package texture

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/ChenKe404/ckfont/core/font"
)

// Char is one packed glyph: the store record plus the page it landed
// on and its top-left pixel position inside that page.
type Char struct {
	font.Char
	Page uint8
	X, Y int
}

// Reserved sentinel chars, mirroring the glyph store's.
var (
	charNul = Char{}
	charNL  = Char{Char: font.Char{Code: '\n'}}
	charTab = Char{Char: font.Char{Code: '\t'}}
)

// Texture is an atlas store: an ordered sequence of packed glyphs, a
// codepoint index over them, and the opaque page handles the host
// allocated. The store owns the handles but never interprets them.
type Texture struct {
	index *treemap.Map // codepoint → position in chars, ordered by codepoint
	chars []Char
	pages []interface{}
}

// New creates an empty atlas store.
func New() *Texture {
	return &Texture{index: treemap.NewWithIntComparator()}
}

// Char returns the packed glyph for a codepoint. Newline and tab map
// to reserved sentinels, '\0' and '\r' to the zero glyph, and any
// missing codepoint to the first glyph. There is no synthetic space on
// this surface.
func (t *Texture) Char(code rune) *Char {
	if len(t.chars) == 0 || code == '\r' || code == '\x00' {
		return &charNul
	}
	if code == '\n' {
		return &charNL
	}
	if code == '\t' {
		return &charTab
	}
	if i, ok := t.index.Get(int(code)); ok {
		return &t.chars[i.(int)]
	}
	return &t.chars[0]
}

// Chars resolves every rune of s independently.
func (t *Texture) Chars(s string) []*Char {
	ret := make([]*Char, 0, len(s))
	for _, r := range s {
		ret = append(ret, t.Char(r))
	}
	return ret
}

// CharsRunes resolves every rune of rs independently.
func (t *Texture) CharsRunes(rs []rune) []*Char {
	ret := make([]*Char, len(rs))
	for i, r := range rs {
		ret[i] = t.Char(r)
	}
	return ret
}

// CharList returns the packed glyphs in placement order.
func (t *Texture) CharList() []Char {
	return t.chars
}

// Codepoints returns the covered codepoints in ascending order.
func (t *Texture) Codepoints() []rune {
	keys := t.index.Keys()
	ret := make([]rune, len(keys))
	for i, k := range keys {
		ret[i] = rune(k.(int))
	}
	return ret
}

// SetCharset replaces the packed glyphs and rebuilds the index.
func (t *Texture) SetCharset(cs []Char) {
	t.chars = cs
	t.rebuildIndex()
}

// Pages returns the page handles in allocation order.
func (t *Texture) Pages() []interface{} {
	return t.pages
}

// SetPages replaces the page handles.
func (t *Texture) SetPages(pages []interface{}) {
	t.pages = pages
}

// Clear empties the store and releases the page handles.
func (t *Texture) Clear() {
	t.chars = nil
	t.pages = nil
	t.index = treemap.NewWithIntComparator()
}

func (t *Texture) rebuildIndex() {
	t.index = treemap.NewWithIntComparator()
	for i := range t.chars {
		t.index.Put(int(t.chars[i].Code), i)
	}
}
