package font

import (
	"bytes"

	"golang.org/x/text/language"
)

// Flag bits of the header's flag byte.
const (
	FlagBit32 uint8 = 1 // 32-bit pixels with alpha channel; set at creation only
)

// Header is the per-store metadata record. Its on-disk encoding is the
// exact little-endian packing of the fields in declaration order.
//
// Padding is the inner padding of a rendered text box, in the order
// left, top, right, bottom. Flag and Padding are fixed once a store has
// been created; SetHeader preserves them.
type Header struct {
	Lang        [4]uint8 // language tag, e.g. "en", "zh"
	Flag        uint8
	Count       uint16 // number of chars, recomputed on save
	LineHeight  uint8
	MaxWidth    uint8 // widest char, recomputed on save
	SpacingX    uint8 // recommended horizontal spacing
	Transparent Color  // colour key, meaningful for 24-bit stores only
	Padding     [4]uint8
}

// Language interprets the 4-byte language tag.
func (h Header) Language() language.Tag {
	s := string(bytes.TrimRight(h.Lang[:], "\x00"))
	if s == "" {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}

// SetLanguage stores the base of tag in the 4-byte language field.
func (h *Header) SetLanguage(tag language.Tag) {
	h.Lang = [4]uint8{}
	base, conf := tag.Base()
	if conf == language.No {
		return
	}
	copy(h.Lang[:], base.String())
}
