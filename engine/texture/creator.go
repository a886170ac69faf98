package texture

import (
	"math"

	"github.com/ChenKe404/ckfont/core"
	"github.com/ChenKe404/ckfont/core/font"
)

// segment is one span of a skyline: the upper envelope of rectangles
// already placed in a row.
type segment struct {
	start, end int
	y          int
}

// findYOffset returns the maximum y over the previous row's segments
// intersecting [start,end], scanning from the segment containing start
// to the one containing end.
func findYOffset(line []segment, start, end int) int {
	if end < start {
		start, end = end, start
	}
	oy := 0
	inRange := false
	for _, s := range line {
		if start >= s.start && start <= s.end {
			inRange = true
		}
		if inRange && s.y > oy {
			oy = s.y
		}
		if end >= s.start && end <= s.end {
			break
		}
	}
	return oy
}

// NewTextureFunc allocates one atlas page of the creator's dimensions
// and returns an opaque handle for it.
type NewTextureFunc func() interface{}

// PerCharFunc receives every placed glyph so the host can blit its
// pixels onto the page at (ch.X, ch.Y).
type PerCharFunc func(fnt *font.Font, ch *Char, data font.DataView, page interface{})

// Creator packs a store's glyphs onto fixed-size pages. The host
// provides the two callbacks; the creator drives them.
type Creator struct {
	width, height int
	spacing       int
	NewTexture    NewTextureFunc
	PerChar       PerCharFunc
}

// NewCreator creates a packer for width×height pages with the given
// spacing between glyphs. Spacing is clamped to at least 1.
func NewCreator(width, height, spacing int) *Creator {
	if spacing < 1 {
		spacing = 1
	}
	return &Creator{width: width, height: height, spacing: spacing}
}

// Start packs the font's glyphs into out. Glyphs are visited in
// reverse store order, a deliberate policy kept for reproducible
// atlases: a store built small-first places its big glyphs early in a
// row. Glyphs larger than a page (spacing included) are skipped.
func (c *Creator) Start(fnt *font.Font, out *Texture) error {
	if c.NewTexture == nil || c.PerChar == nil {
		return core.Error(core.EINVALID, "texture creator needs both callbacks")
	}
	out.Clear()
	chrs := fnt.CharList()

	page := 0
	left, top := c.spacing, c.spacing
	yoLast := []segment{{0, c.width, c.spacing}} // previous row's envelope
	var yoCur []segment                          // envelope of the row being built

	texture := c.NewTexture()
	for i := len(chrs) - 1; i >= 0 && texture != nil; i-- {
		ch := chrs[i]
		if int(ch.Width)+c.spacing*2 > c.width {
			continue
		}
		if int(ch.Height)+c.spacing*2 > c.height {
			continue
		}

		right := left + int(ch.Width) + c.spacing
		if right > c.width { // next row
			left = c.spacing
			right = left + int(ch.Width) + c.spacing
			yoLast = yoCur
			yoCur = nil
		}

		top = findYOffset(yoLast, left, right)
		bottom := top + int(ch.Height) + c.spacing
		if bottom > c.height { // page is full
			out.pages = append(out.pages, texture)
			if i > 0 {
				texture = c.NewTexture()
			} else {
				texture = nil // the last page may just have held the last glyph
			}
			page++
			yoLast = []segment{{0, c.width, c.spacing}}
			yoCur = nil
			top = c.spacing
			bottom = top + int(ch.Height) + c.spacing
		}

		var ac Char
		ac.Char = ch
		ac.Page = uint8(page)
		ac.X = left
		ac.Y = top
		c.PerChar(fnt, &ac, fnt.Data(ch), texture)
		out.chars = append(out.chars, ac)

		yoCur = append(yoCur, segment{left, right, bottom})
		left = right
	}
	if len(out.chars) > 0 && texture != nil { // the last page
		out.pages = append(out.pages, texture)
	}
	out.rebuildIndex()

	if len(out.chars) == 0 {
		return core.Error(core.EINVALID, "no glyph fits a %d×%d page", c.width, c.height)
	}
	return nil
}

// estimatePage is the handle the estimators hand out instead of real
// pages.
type estimatePage struct{}

func estimator(width, height, spacing int) *Creator {
	c := NewCreator(width, height, spacing)
	c.NewTexture = func() interface{} { return estimatePage{} }
	c.PerChar = func(*font.Font, *Char, font.DataView, interface{}) {}
	return c
}

// maxEstimateIterations caps the bisection; the halving schedule
// converges long before this on sane inputs.
const maxEstimateIterations = 64

// Estimate searches for the width of the smallest square page holding
// every glyph of the font at the given spacing. It starts at the area
// lower bound and bisects with a halving increment, packing each
// candidate. Returns 0 for an empty font.
func Estimate(fnt *font.Font, spacing int) int {
	increment := int(fnt.Header().MaxWidth)
	width := 0
	{
		area := uint64(0)
		for _, ch := range fnt.CharList() {
			area += uint64((int(ch.Width) + spacing) * (int(ch.Height) + spacing))
		}
		width = int(math.Sqrt(float64(area)))
	}
	if width < 1 {
		return 0
	}

	lastN := 0
	var ft Texture
	for iter := 0; iter < maxEstimateIterations; iter++ {
		eftc := estimator(width, width, spacing)
		_ = eftc.Start(fnt, &ft) // page count alone decides
		n := len(ft.pages)
		if n < 1 {
			return 0
		}

		if lastN > 1 && n == 1 { // this size fits one page
			if increment < 2 {
				return width
			}
			increment /= 2
		} else if lastN == 1 && n != 1 && increment > 2 { // the previous size did
			increment /= 2
		}

		if n > 1 {
			width += increment
		} else {
			width -= increment
		}
		lastN = n
	}
	tracer().Errorf("texture: size estimate did not converge, returning %d", width)
	return width
}

// numberPow2 snaps v to the nearest power of two, downward on ties.
func numberPow2(v int) int {
	if v < 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	if p == v {
		return p
	}
	lower := p >> 1
	if v-lower <= p-v {
		return lower
	}
	return p
}

// pow2Fit records one candidate of the power-of-two sweep.
type pow2Fit struct {
	width          int
	pageCount      int
	remainingArea  int
	remainingRatio float64
}

// EstimatePow2 packs the font into every power-of-two square between
// minWidth and maxWidth (both snapped to powers of two) and returns
// the width wasting the smallest share of its last page. Returns 0 if
// no candidate fits anything.
func EstimatePow2(fnt *font.Font, spacing, minWidth, maxWidth int) int {
	min := numberPow2(minWidth)
	max := numberPow2(maxWidth)
	if min > max {
		min, max = max, min
	}

	best := 0
	bestRatio := math.MaxFloat64
	var ft Texture
	for w := min; w <= max; w <<= 1 {
		eftc := estimator(w, w, spacing)
		if err := eftc.Start(fnt, &ft); err != nil {
			continue
		}
		n := len(ft.pages)
		if n < 1 {
			continue
		}
		lastPage := uint8(0)
		for _, ch := range ft.chars {
			if ch.Page > lastPage {
				lastPage = ch.Page
			}
		}
		used := 0
		for _, ch := range ft.chars {
			if ch.Page == lastPage {
				used += (int(ch.Width) + spacing) * (int(ch.Height) + spacing)
			}
		}
		fit := pow2Fit{
			width:         w,
			pageCount:     n,
			remainingArea: w*w - used,
		}
		fit.remainingRatio = float64(fit.remainingArea) / float64(w*w)
		tracer().Debugf("texture: pow2 fit %d → %d pages, %.3f wasted", w, n, fit.remainingRatio)
		if fit.remainingRatio < bestRatio {
			bestRatio = fit.remainingRatio
			best = w
		}
	}
	return best
}
