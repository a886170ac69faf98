package font

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestRecordSizes(t *testing.T) {
	if headerSize != 18 {
		t.Errorf("packed header must be 18 bytes, got %d", headerSize)
	}
	if charSize != 13 {
		t.Errorf("packed char record must be 13 bytes, got %d", charSize)
	}
}

func TestRoundTripEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New()
	f.SetHeader(Header{Lang: [4]uint8{'e', 'n'}, LineHeight: 12, SpacingX: 1})

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, false))

	g := New()
	require.NoError(t, g.Read(&buf))
	require.Equal(t, uint16(0), g.Header().Count)
	require.Equal(t, uint8(0), g.Header().MaxWidth)
	require.Equal(t, f.Header(), g.Header())
	require.Empty(t, g.Arena())
}

// buildSample fills a 32-bit store with three glyphs of 4×4, 8×8 and
// 16×16 pixels.
func buildSample(t *testing.T) *Font {
	t.Helper()
	f := newArgb32Font(t, 18)
	f.SetHeader(Header{Lang: [4]uint8{'z', 'h'}, LineHeight: 18, SpacingX: 2, Transparent: RGB(1, 2, 3)})
	sizes := []uint8{4, 8, 16}
	for i, s := range sizes {
		pix := make([]byte, int(s)*int(s)*4)
		for j := range pix {
			pix[j] = byte(i*31 + j)
		}
		ch := Char{Code: 'a' + rune(i), Width: s, Height: s, XAdvance: s + 1, XOffset: int8(i), YOffset: int8(-i)}
		require.NoError(t, f.Insert(ch, NewData(Argb32, s, s, pix)))
	}
	return f
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, compress := range []bool{false, true} {
		f := buildSample(t)
		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf, compress))

		g := New()
		require.NoError(t, g.Read(&buf), "compress=%v", compress)
		require.Equal(t, f.Header(), g.Header())
		require.Equal(t, f.CharList(), g.CharList())
		require.Equal(t, f.Arena(), g.Arena())
		require.Equal(t, Argb32, g.Format())
	}
}

func TestRoundTripFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := buildSample(t)
	path := filepath.Join(t.TempDir(), "sample.ckf")
	require.NoError(t, f.Save(path, true))

	g := New()
	require.NoError(t, g.Open(path))
	require.Equal(t, f.CharList(), g.CharList())
	require.Equal(t, f.Arena(), g.Arena())
}

func TestReadRejectsBadMagic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := New()
	if err := g.LoadBytes([]byte("XYZ\x00garbage")); err == nil {
		t.Fatal("expected magic rejection")
	}
	if g.Valid() {
		t.Error("store must stay cleared")
	}
}

func TestReadRejectsTruncatedCharTable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := buildSample(t)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, false))

	// chop inside the char table: 3 magic bytes and the flag byte,
	// header, then half a record
	img := buf.Bytes()
	cut := img[:4+headerSize+charSize/2]
	g := New()
	if err := g.LoadBytes(cut); err == nil {
		t.Fatal("expected truncation error")
	}
	if g.Valid() || len(g.Arena()) != 0 {
		t.Error("store must stay cleared after a truncated load")
	}
}

func TestReadRejectsTrailingBytesOnEmptyStore(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New()
	f.SetHeader(Header{LineHeight: 12})
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, false))

	// a zero-count container must not carry arena bytes; no char can
	// account for them, so the tiling cannot close
	img := append(buf.Bytes(), 0xde, 0xad, 0xbe, 0xef)
	g := New()
	if err := g.LoadBytes(img); err == nil {
		t.Fatal("expected validation failure for trailing bytes")
	}
	if g.Valid() || len(g.Arena()) != 0 {
		t.Error("store must stay cleared")
	}
}

func TestReadRejectsBrokenArena(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := buildSample(t)
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf, false))

	// drop the last arena byte so the tiling no longer closes
	img := buf.Bytes()
	g := New()
	if err := g.LoadBytes(img[:len(img)-1]); err == nil {
		t.Fatal("expected validation failure")
	}
	if g.Valid() {
		t.Error("store must stay cleared")
	}
}

func TestCompressedBodyIsSmallerOnRedundantData(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := newArgb32Font(t, 16)
	pix := make([]byte, 64*64*4) // all zero, highly compressible
	require.NoError(t, f.Insert(Char{Code: 'A', Width: 64, Height: 64}, NewData(Argb32, 64, 64, pix)))

	var plain, packed bytes.Buffer
	require.NoError(t, f.Write(&plain, false))
	require.NoError(t, f.Write(&packed, true))
	if packed.Len() >= plain.Len() {
		t.Errorf("compressed container (%d) not smaller than plain (%d)", packed.Len(), plain.Len())
	}
}
