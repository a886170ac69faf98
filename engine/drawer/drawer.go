package drawer

import (
	"github.com/ChenKe404/ckfont/core/font"
)

// Align is a bitset of alignment flags for laid-out text.
type Align uint8

// Alignment flags. Horizontal and vertical flags combine, e.g.
// AlignLeft|AlignBottom.
const (
	AlignLeft Align = 1 << (iota + 1)
	AlignHCenter
	AlignRight
	AlignTop
	AlignVCenter
	AlignBottom
)

// Box is a laid-out rectangle.
type Box struct {
	X, Y, W, H int
}

// Line is one assembled line of a measured run. Left and Right are
// char indices into the run, Right exclusive. OX and OY are the draw
// offsets of the line relative to the run's origin.
type Line struct {
	Left  int
	Right int
	OX    int
	OY    int
	Width int
}

// Options steer measuring and drawing.
type Options struct {
	Align    Align
	SpacingX int // horizontal spacing; negative = the font's recommended spacing
	SpacingY int // vertical spacing between lines
	// BreakWord allows line breaks inside a word. When false, a break
	// moves back to the last space of the line — but only if that
	// space sits in the second half of the line; otherwise the word is
	// broken anyway.
	BreakWord bool
	// CorrectPadding adds left+right padding to each line width.
	// Without it the legacy accounting is used, which adds left+top.
	CorrectPadding bool
}

// DefaultOptions returns the options Draw and Measure assume natural:
// left-bottom aligned, the font's recommended spacing, breaks inside
// words allowed.
func DefaultOptions() Options {
	return Options{
		Align:     AlignLeft | AlignBottom,
		SpacingX:  -1,
		BreakWord: true,
	}
}

// PerChar is the host's emit hook. It is handed the pen position of a
// glyph (offsets already applied) and a borrowed view of its pixels.
// It must not mutate the store.
type PerChar func(x, y int, ch *font.Char, data font.DataView)

// A Drawer lays out glyph runs of one font. The zero value needs a
// font and a callback before use.
type Drawer struct {
	fnt     *font.Font
	mix     font.Color
	PerChar PerChar
}

// New creates a drawer for a font with the host's emit hook.
func New(fnt *font.Font, perchar PerChar) *Drawer {
	return &Drawer{fnt: fnt, PerChar: perchar}
}

// SetFont switches the font subsequent calls lay out.
func (d *Drawer) SetFont(fnt *font.Font) { d.fnt = fnt }

// Font returns the current font.
func (d *Drawer) Font() *font.Font { return d.fnt }

// SetMixColor sets the colour the host may blend glyph pixels with.
// The alpha channel carries the blend strength.
func (d *Drawer) SetMixColor(argb font.Color) { d.mix = argb }

// MixColor returns the blend colour.
func (d *Drawer) MixColor() font.Color { return d.mix }

// whitespaceUnits returns how many space widths a char occupies: one
// for a space, two for a tab, zero for anything visible.
func whitespaceUnits(ch *font.Char) int {
	switch ch.Code {
	case ' ':
		return 1
	case '\t':
		return 2
	}
	return 0
}

// Measure assembles the run into lines inside a w×h box (either
// negative = unbounded) and returns the bounding box of the text,
// offset according to the alignment. When outLines is non-nil it is
// filled with one entry per line, offsets included.
//
// Measure is pure: equal inputs yield equal outputs.
func (d *Drawer) Measure(chars []*font.Char, w, h int, opts Options, outLines *[]Line) Box {
	size := len(chars)
	if d.fnt == nil || size < 1 {
		return Box{}
	}
	header := d.fnt.Header()
	spcX := opts.SpacingX
	if spcX < 0 {
		spcX = int(header.SpacingX)
	}
	spcY := opts.SpacingY
	lineHeight := int(header.LineHeight)
	unBreakWord := !opts.BreakWord
	wsp := int(d.fnt.Char(' ').XAdvance)
	padding := header.Padding
	hpad := int(padding[0]) + int(padding[1])
	if opts.CorrectPadding {
		hpad = int(padding[0]) + int(padding[2])
	}
	// line indices may exceed the run; tolerate by wrapping
	getchr := func(i int) *font.Char { return chars[i%size] }

	textWidth, textHeight := 0, 0
	lineWidth := 0
	line := Line{Left: -1, Right: -1}
	for i := 0; i <= size; i++ {
		c := getchr(i)
		if c.Code == 0 {
			continue
		}
		if line.Left < 0 {
			line.Left = i
		}
		sp := whitespaceUnits(c) * wsp
		cw := int(c.XAdvance)
		if sp != 0 {
			cw = sp
		}
		if (w >= 0 && lineWidth > 0 && lineWidth+cw > w) || c.Code == '\n' || i == size {
			skip := c.Code == '\n' || sp != 0
			if !skip && unBreakWord && i < size {
				// Breaking here would split a word: move the break to
				// the previous space, unless that space sits in the
				// first half of the line (long CJK runs have none).
				lw := lineWidth
				idx := -1
				left := line.Left + (i-1-line.Left)/2
				for j := i - 1; j > left; j-- {
					it := getchr(j)
					spj := whitespaceUnits(it) * wsp
					if spj == 0 {
						lw -= int(c.XAdvance) + spcX
					} else {
						lw -= spj
						idx = j
						if j-1 > 0 && getchr(j-1).Code != ' ' {
							lw -= spcX
						}
						break
					}
				}
				if idx == -1 {
					lineWidth -= spcX
				} else {
					skip = true // the break lands on that space
					i = idx
					lineWidth = lw
				}
			} else {
				lineWidth -= spcX
			}
			lineWidth += hpad
			line.Right = i
			line.Width = lineWidth
			if outLines != nil {
				*outLines = append(*outLines, line)
			}
			line.Left = i

			if lineWidth > textWidth {
				textWidth = lineWidth
			}
			textHeight += lineHeight + spcY
			lineWidth = 0
			if skip {
				line.Left = -1
				continue
			}
		}
		if sp == 0 {
			lineWidth += cw + spcX
		} else {
			lineWidth += sp // whitespace carries no spacing
		}
	}
	textHeight -= spcY
	textHeight += int(padding[1]) + int(padding[3])

	ox, oy := 0, 0
	if opts.Align&AlignRight != 0 {
		if w > 0 {
			ox -= textWidth - w
		} else {
			ox -= textWidth
		}
	} else if opts.Align&AlignHCenter != 0 {
		if w > 0 {
			ox -= (textWidth - w) / 2
		} else {
			ox -= textWidth / 2
		}
	}
	if opts.Align&AlignBottom != 0 {
		if h > 0 {
			oy -= textHeight - h
		} else {
			oy -= textHeight
		}
	} else if opts.Align&AlignVCenter != 0 {
		if h > 0 {
			oy -= (textHeight - h) / 2
		} else {
			oy -= textHeight / 2
		}
	}

	if outLines != nil {
		for num := range *outLines {
			it := &(*outLines)[num]
			switch {
			case opts.Align&AlignRight != 0:
				it.OX = ox + (textWidth - it.Width)
			case opts.Align&AlignHCenter != 0:
				it.OX = ox + (textWidth-it.Width)/2
			default:
				it.OX = ox
			}
			it.OY = oy + (lineHeight+spcY)*num
		}
	}

	return Box{X: ox, Y: oy, W: textWidth, H: textHeight}
}

// Draw measures the run and emits every visible glyph through the
// per-char hook. x,y is the origin of the text box; w,h bound it
// (negative = unbounded). The returned box is the measured box shifted
// to the origin.
func (d *Drawer) Draw(chars []*font.Char, x, y, w, h int, opts Options) Box {
	size := len(chars)
	if d.fnt == nil || size < 1 {
		return Box{}
	}
	if d.PerChar == nil {
		tracer().Errorf("drawer: no per-char callback set")
		return Box{}
	}
	header := d.fnt.Header()
	padding := header.Padding
	spcX := opts.SpacingX
	if spcX < 0 {
		spcX = int(header.SpacingX)
	}
	wsp := int(d.fnt.Char(' ').XAdvance)

	ox := x + int(padding[0])
	oy := y + int(padding[1])

	var lines []Line
	box := d.Measure(chars, w, h, opts, &lines)
	for _, it := range lines {
		d.drawLine(chars, ox, oy, it, spcX, wsp, nil)
	}
	box.X += x
	box.Y += y
	return box
}

// DrawLine emits a single prepared line, as produced by Measure. This
// path keys the whitespace step on the space glyph's width.
func (d *Drawer) DrawLine(chars []*font.Char, x, y int, line Line, spacingX int) Box {
	var box Box
	if d.fnt == nil || d.PerChar == nil {
		return box
	}
	header := d.fnt.Header()
	padding := header.Padding
	spcX := spacingX
	if spcX < 0 {
		spcX = int(header.SpacingX)
	}
	wsp := int(d.fnt.Char(' ').Width)
	d.drawLine(chars, x+int(padding[0]), y+int(padding[1]), line, spcX, wsp, &box)
	return box
}

// DrawChar emits one glyph at the pen position.
func (d *Drawer) DrawChar(ch font.Char, x, y int) {
	if d.fnt == nil || d.PerChar == nil {
		return
	}
	d.PerChar(x+int(ch.XOffset), y+int(ch.YOffset), &ch, d.fnt.Data(ch))
}

func (d *Drawer) drawLine(chars []*font.Char, x, y int, line Line, spacingX, wsp int, outBox *Box) {
	size := len(chars)
	getchr := func(i int) *font.Char { return chars[i%size] }

	cx := x + line.OX
	cy := y + line.OY
	for i := line.Left; i < line.Right; i++ {
		c := getchr(i)
		sp := whitespaceUnits(c) * wsp
		if sp != 0 {
			cx += sp
		} else {
			d.PerChar(cx+int(c.XOffset), cy+int(c.YOffset), c, d.fnt.Data(*c))
			cx += int(c.XAdvance) + spacingX
		}
	}
	if outBox != nil {
		outBox.X = x + line.OX
		outBox.Y = y + line.OY
		outBox.W = cx - outBox.X
		outBox.H = int(d.fnt.Header().LineHeight)
	}
}
