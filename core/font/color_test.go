package font

import "testing"

func TestColorPacking(t *testing.T) {
	c := RGB(1, 2, 3)
	if c != 0xff010203 {
		t.Errorf("RGB(1,2,3) = %#x, want 0xff010203", uint32(c))
	}
	c = ARGB(0x40, 0x10, 0x20, 0x30)
	if c != 0x40102030 {
		t.Errorf("ARGB = %#x, want 0x40102030", uint32(c))
	}
	if c.A() != 0x40 || c.R() != 0x10 || c.G() != 0x20 || c.B() != 0x30 {
		t.Errorf("channel extraction failed: %x %x %x %x", c.A(), c.R(), c.G(), c.B())
	}
}

func TestMixOpaqueForeground(t *testing.T) {
	bg := ARGB(0x80, 200, 100, 50)
	fg := RGB(10, 20, 30)
	got := Mix(bg, fg, false)
	if got != fg {
		t.Errorf("mixing an opaque foreground should yield the foreground, got %#x", uint32(got))
	}
}

func TestMixTransparentForeground(t *testing.T) {
	bg := ARGB(0xc0, 200, 100, 50)
	fg := ARGB(0, 10, 20, 30)
	got := Mix(bg, fg, false)
	if got != bg {
		t.Errorf("mixing a transparent foreground should keep the background, got %#x", uint32(got))
	}
}

func TestMixMultiply(t *testing.T) {
	// with both sides opaque the result is bv+fv−fx with the
	// screen-style fx, i.e. bv·fv/255 per channel
	bg := RGB(100, 0, 255)
	fg := RGB(100, 0, 255)
	got := Mix(bg, fg, true)
	// per channel: bv+fv−(bv+fv−bv·fv/255) ≈ 39, 0 stays 0, 255 stays 255
	want := RGB(39, 0, 255)
	if got != want {
		t.Errorf("multiply mix = %#x, want %#x", uint32(got), uint32(want))
	}
}

func TestPixelFormat(t *testing.T) {
	if Rgb24.Bpp() != 3 || Argb32.Bpp() != 4 {
		t.Fatal("unexpected bytes per pixel")
	}
	if Rgb24.Offset(2, 3, 10) != (3*10+2)*3 {
		t.Error("24-bit offset")
	}
	if Argb32.Offset(2, 3, 10) != (3*10+2)*4 {
		t.Error("32-bit offset")
	}
	if Rgb24.Color([]byte{1, 2, 3}) != RGB(1, 2, 3) {
		t.Error("24-bit decode")
	}
	if Argb32.Color([]byte{4, 1, 2, 3}) != ARGB(4, 1, 2, 3) {
		t.Error("32-bit decode")
	}
}
