package drawer

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ChenKe404/ckfont/core/font"
)

// testFont builds a store where every visible glyph advances 10 pixels
// and an explicit space glyph advances 5, on a 16 pixel line with a
// recommended spacing of 1.
func testFont(t *testing.T) *font.Font {
	t.Helper()
	f := font.New()
	f.SetHeader(font.Header{LineHeight: 16, SpacingX: 1})
	pix := []byte{0, 0, 0}
	for _, c := range "Helo,wrd!ab" {
		ch := font.Char{Code: c, Width: 1, Height: 1, XAdvance: 10}
		if err := f.Insert(ch, font.NewData(font.Rgb24, 1, 1, pix)); err != nil {
			t.Fatal(err)
		}
	}
	sp := font.Char{Code: ' ', Width: 1, Height: 1, XAdvance: 5}
	if err := f.Insert(sp, font.NewData(font.Rgb24, 1, 1, pix)); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestMeasureSingleLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)

	var lines []Line
	box := d.Measure(f.Chars("Hello, world!"), -1, -1, DefaultOptions(), &lines)

	// 12 visible glyphs at 10+1, one space at 5, one trailing spacing
	// removed: 136 wide, one line high, bottom aligned
	want := Box{X: 0, Y: -16, W: 136, H: 16}
	if box != want {
		t.Errorf("box = %+v, want %+v", box, want)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	wantLine := Line{Left: 0, Right: 13, OX: 0, OY: -16, Width: 136}
	if lines[0] != wantLine {
		t.Errorf("line = %+v, want %+v", lines[0], wantLine)
	}
}

func TestMeasureIsPure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)
	chars := f.Chars("Hello, world!")

	var l1, l2 []Line
	b1 := d.Measure(chars, 60, -1, DefaultOptions(), &l1)
	b2 := d.Measure(chars, 60, -1, DefaultOptions(), &l2)
	if b1 != b2 || !reflect.DeepEqual(l1, l2) {
		t.Error("measure must be a pure function of its inputs")
	}
}

func TestMeasureWrapsAtBound(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)

	var lines []Line
	box := d.Measure(f.Chars("Hello, world!"), 60, -1, DefaultOptions(), &lines)

	// "Hello" fills 55; the comma would reach 65 > 60, so the line
	// breaks before it, dropping one trailing spacing
	if len(lines) != 3 {
		t.Fatalf("expected three lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Left != 0 || lines[0].Right != 5 || lines[0].Width != 54 {
		t.Errorf("first line = %+v", lines[0])
	}
	if lines[1].Left != 5 || lines[1].Right != 11 || lines[1].Width != 59 {
		t.Errorf("second line = %+v", lines[1])
	}
	if lines[2].Left != 11 || lines[2].Right != 13 || lines[2].Width != 21 {
		t.Errorf("third line = %+v", lines[2])
	}
	if box.W != 59 || box.H != 48 {
		t.Errorf("box = %+v, want w=59 h=48", box)
	}
	// bottom aligned, three lines stacked
	if lines[0].OY != -48 || lines[1].OY != -32 || lines[2].OY != -16 {
		t.Errorf("line offsets = %d %d %d", lines[0].OY, lines[1].OY, lines[2].OY)
	}
}

func TestMeasureBreaksAtSpace(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)
	opts := DefaultOptions()
	opts.BreakWord = false

	var lines []Line
	d.Measure(f.Chars("aaaa bb"), 50, -1, opts, &lines)

	// the break would split "bb"; the space at index 4 sits in the
	// second half of the line, so the line ends there and the space is
	// swallowed
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Left != 0 || lines[0].Right != 4 || lines[0].Width != 43 {
		t.Errorf("first line = %+v", lines[0])
	}
	if lines[1].Left != 5 || lines[1].Right != 7 || lines[1].Width != 21 {
		t.Errorf("second line = %+v", lines[1])
	}
}

func TestMeasureHardBreakWithoutSpace(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)
	opts := DefaultOptions()
	opts.BreakWord = false

	var lines []Line
	d.Measure(f.Chars("Hello, world!"), 60, -1, opts, &lines)

	// no space in the second half of the first line: the word is
	// broken anyway, exactly as with BreakWord set
	if len(lines) != 3 {
		t.Fatalf("expected three lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].Right != 5 || lines[0].Width != 54 {
		t.Errorf("first line = %+v", lines[0])
	}
}

func TestMeasureTrailingNewline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)

	var lines []Line
	box := d.Measure(f.Chars("ab\n"), -1, -1, DefaultOptions(), &lines)

	// the newline closes the first line; the final flush still emits a
	// second, empty line
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[0].Left != 0 || lines[0].Right != 2 || lines[0].Width != 21 {
		t.Errorf("first line = %+v", lines[0])
	}
	if box.H != 32 {
		t.Errorf("box height = %d, want 32", box.H)
	}
}

func TestMeasureTabAtLineStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)

	var lines []Line
	box := d.Measure(f.Chars("\tab"), -1, -1, DefaultOptions(), &lines)

	// tab is two space widths = 10; a,b add 11 each; the final flush
	// lands on the leading tab again and takes the whitespace path
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Width != 31 || box.W != 31 {
		t.Errorf("width = %d (box %d), want 31", lines[0].Width, box.W)
	}
}

func TestMeasureAlignment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)
	d := New(f, nil)
	opts := DefaultOptions()
	opts.Align = AlignRight | AlignTop

	var lines []Line
	box := d.Measure(f.Chars("ab"), 100, 50, opts, &lines)

	// two glyphs: 2·11−1 = 21 wide; right aligned into w=100
	if box.X != -(21 - 100) {
		t.Errorf("box.X = %d, want %d", box.X, -(21 - 100))
	}
	if box.Y != 0 {
		t.Errorf("box.Y = %d, want 0 for top alignment", box.Y)
	}
	if lines[0].OX != box.X {
		t.Errorf("line OX = %d, want %d", lines[0].OX, box.X)
	}
}

func TestMeasurePaddingModes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// padding is only settable at creation, so build the store through
	// an adapter
	pf := font.New()
	if err := pf.Load(paddedAdapter{}); err != nil {
		t.Fatal(err)
	}
	d := New(pf, nil)

	box := d.Measure(pf.Chars("a"), -1, -1, DefaultOptions(), nil)
	// legacy accounting adds left+top = 1+2 to the width and
	// top+bottom = 2+4 to the height
	if box.W != 13 {
		t.Errorf("legacy width = %d, want 13", box.W)
	}
	if box.H != 22 {
		t.Errorf("height = %d, want 22", box.H)
	}

	opts := DefaultOptions()
	opts.CorrectPadding = true
	box = d.Measure(pf.Chars("a"), -1, -1, opts, nil)
	// corrected accounting adds left+right = 1+3
	if box.W != 14 {
		t.Errorf("corrected width = %d, want 14", box.W)
	}
}

// paddedAdapter builds a one-glyph store with padding [1,2,3,4].
type paddedAdapter struct{}

func (paddedAdapter) Header() font.Header {
	return font.Header{LineHeight: 16, SpacingX: 1, Padding: [4]uint8{1, 2, 3, 4}}
}

func (paddedAdapter) CharList() []font.Char {
	return []font.Char{{Code: 'a', Pos: 0, Width: 1, Height: 1, XAdvance: 10}}
}

func (paddedAdapter) Data() []byte { return []byte{0, 0, 0} }

type emitted struct {
	x, y int
	code rune
}

func TestDrawEmitsVisibleGlyphs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)

	var calls []emitted
	d := New(f, func(x, y int, ch *font.Char, data font.DataView) {
		calls = append(calls, emitted{x, y, ch.Code})
	})

	d.Draw(f.Chars("a b"), 0, 0, -1, -1, DefaultOptions())

	// space advances the pen by 5 but is not emitted
	want := []emitted{
		{0, -16, 'a'},
		{0 + 10 + 1 + 5, -16, 'b'},
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %+v, want %+v", calls, want)
	}
}

func TestDrawCharAppliesOffsets(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := font.New()
	f.SetHeader(font.Header{LineHeight: 16})
	ch := font.Char{Code: 'q', Width: 1, Height: 1, XAdvance: 10, XOffset: 3, YOffset: -2}
	if err := f.Insert(ch, font.NewData(font.Rgb24, 1, 1, []byte{0, 0, 0})); err != nil {
		t.Fatal(err)
	}

	var got emitted
	d := New(f, func(x, y int, c *font.Char, data font.DataView) {
		got = emitted{x, y, c.Code}
	})
	d.DrawChar(*f.Char('q'), 100, 200)
	if got != (emitted{103, 198, 'q'}) {
		t.Errorf("got %+v", got)
	}
}

func TestDrawLinePreparedLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := testFont(t)

	var calls []emitted
	d := New(f, func(x, y int, ch *font.Char, data font.DataView) {
		calls = append(calls, emitted{x, y, ch.Code})
	})

	chars := f.Chars("ab")
	var lines []Line
	d.Measure(chars, -1, -1, DefaultOptions(), &lines)
	box := d.DrawLine(chars, 0, 0, lines[0], -1)

	if len(calls) != 2 {
		t.Fatalf("expected two glyphs emitted, got %d", len(calls))
	}
	if box.H != 16 {
		t.Errorf("line box height = %d, want the line height", box.H)
	}
}
