package fnt

import (
	"bufio"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ChenKe404/ckfont/core"
	"github.com/ChenKe404/ckfont/core/font"
	"github.com/ChenKe404/ckfont/core/locate/resources"
)

// Char is one parsed char instruction: the store metrics plus the
// position of the glyph rectangle inside its source page.
type Char struct {
	font.Char
	X, Y, Page int
}

// Adapter collects the ingredients of a glyph store from a BMFont
// descriptor. A populated adapter satisfies font.Adapter.
type Adapter struct {
	header font.Header
	chars  []font.Char
	data   []byte
}

// Header returns the collected store metadata.
func (a *Adapter) Header() font.Header { return a.header }

// CharList returns the collected glyph sequence.
func (a *Adapter) CharList() []font.Char { return a.chars }

// Data returns the collected pixel arena.
func (a *Adapter) Data() []byte { return a.data }

// --- Descriptor parsing ----------------------------------------------------

// keyvals splits the key=value pairs following the instruction word.
// Values may be double-quoted; quotes are stripped.
func keyvals(line string) map[string]string {
	kv := make(map[string]string)
	parts := strings.Fields(line)
	for _, p := range parts[1:] {
		eq := strings.IndexByte(p, '=')
		if eq < 0 {
			continue
		}
		v := p[eq+1:]
		if len(v) > 0 && (v[0] == '"' || v[len(v)-1] == '"') {
			v = strings.Trim(v, `"`)
		}
		kv[p[:eq]] = v
	}
	return kv
}

func vint(kv map[string]string, name string) int {
	n, err := strconv.Atoi(kv[name])
	if err != nil {
		return 0
	}
	return n
}

func varray(kv map[string]string, name string, out []int) {
	parts := strings.Split(kv[name], ",")
	if len(parts) > len(out) {
		parts = parts[:len(out)]
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			continue
		}
		out[i] = n
	}
}

// --- Page images -----------------------------------------------------------

// page is one decoded backing image.
type page struct {
	pix   *image.NRGBA
	bit32 bool
}

// copyRect appends the glyph rectangle to out, converted to the target
// byte order: A,R,G,B for 32-bit stores, R,G,B with the alpha dropped
// otherwise.
func (p page) copyRect(c Char, out []byte) ([]byte, bool) {
	b := p.pix.Bounds()
	if c.X < b.Min.X || c.Y < b.Min.Y ||
		c.X+int(c.Width) > b.Max.X || c.Y+int(c.Height) > b.Max.Y {
		return out, false
	}
	for y := c.Y; y < c.Y+int(c.Height); y++ {
		for x := c.X; x < c.X+int(c.Width); x++ {
			pos := p.pix.PixOffset(x, y)
			px := p.pix.Pix[pos : pos+4]
			if p.bit32 {
				out = append(out, px[3], px[0], px[1], px[2])
			} else {
				out = append(out, px[0], px[1], px[2])
			}
		}
	}
	return out, true
}

// --- Import ----------------------------------------------------------------

// Open parses a BMFont descriptor and its page images. On a 24-bit
// import (bit32 false) the transparent colour key is recorded in the
// header; it is not applied to the pixels. With bit32 set the key is
// meaningless and alpha is taken from the pages (0xff if a page has
// none).
func (a *Adapter) Open(filename string, transparent font.Color, bit32 bool) error {
	fd, err := os.Open(filename)
	if err != nil {
		// not a plain path, maybe a system font
		path, rerr := resources.ResolveFontFile(filename).Path()
		if rerr != nil {
			return core.WrapError(err, core.EIO, "opening descriptor %q", filename)
		}
		filename = path
		if fd, err = os.Open(filename); err != nil {
			return core.WrapError(err, core.EIO, "opening descriptor %q", filename)
		}
	}
	defer fd.Close()

	a.chars = nil
	a.data = nil

	var info struct {
		size       int
		padding    [4]int // up, right, down, left
		spacing    [2]int
		lineHeight int
		count      int
		scaleW     int
		scaleH     int
		pages      int
	}
	var chars []Char
	var pageFiles []string

	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "info "):
			kv := keyvals(line)
			info.size = vint(kv, "size")
			varray(kv, "padding", info.padding[:])
			varray(kv, "spacing", info.spacing[:])
		case strings.HasPrefix(line, "common "):
			kv := keyvals(line)
			info.lineHeight = vint(kv, "lineHeight")
			info.scaleW = vint(kv, "scaleW")
			info.scaleH = vint(kv, "scaleH")
			info.pages = vint(kv, "pages")
		case strings.HasPrefix(line, "page "):
			pageFiles = append(pageFiles, keyvals(line)["file"])
		case strings.HasPrefix(line, "chars "):
			info.count = vint(keyvals(line), "count")
		case strings.HasPrefix(line, "char "):
			kv := keyvals(line)
			c := Char{
				X:    vint(kv, "x"),
				Y:    vint(kv, "y"),
				Page: vint(kv, "page"),
			}
			c.Code = rune(vint(kv, "id"))
			c.Width = uint8(vint(kv, "width"))
			c.Height = uint8(vint(kv, "height"))
			c.XOffset = int8(vint(kv, "xoffset"))
			c.YOffset = int8(vint(kv, "yoffset"))
			c.XAdvance = uint8(vint(kv, "xadvance"))
			chars = append(chars, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return core.WrapError(err, core.EIO, "reading descriptor %q", filename)
	}

	a.header = font.Header{}
	a.header.Count = uint16(info.count)
	a.header.LineHeight = uint8(info.lineHeight)
	a.header.Transparent = transparent
	if bit32 {
		a.header.Flag = font.FlagBit32
	}
	// descriptor padding is up,right,down,left; the header wants
	// left,top,right,bottom
	a.header.Padding[0] = uint8(info.padding[3])
	a.header.Padding[1] = uint8(info.padding[0])
	a.header.Padding[2] = uint8(info.padding[1])
	a.header.Padding[3] = uint8(info.padding[2])

	// resolve all pages concurrently, then await them in order
	dir := filepath.Dir(filename)
	promises := make([]resources.ImagePromise, len(pageFiles))
	for i, p := range pageFiles {
		promises[i] = resources.ResolveImage(p, dir)
	}
	pages := make([]page, 0, len(promises))
	for i, pr := range promises {
		img, err := pr.Image()
		if err != nil {
			trace().Errorf("fnt: failed to load page %s", pageFiles[i])
			return core.WrapError(err, core.EMISSING, "loading page %s", pageFiles[i])
		}
		nrgba := image.NewNRGBA(img.Bounds())
		draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)
		pages = append(pages, page{pix: nrgba, bit32: bit32})
	}
	if info.pages != len(pages) {
		trace().Errorf("fnt: loaded page count does not match (%d,%d)", len(pages), info.pages)
		return core.Error(core.EINVALID, "page count mismatch: descriptor %d, loaded %d",
			info.pages, len(pages))
	}

	// copy every glyph rectangle into the linear arena
	offset := uint32(0)
	for _, ch := range chars {
		if ch.Page < 0 || ch.Page >= len(pages) {
			trace().Errorf("fnt: char %d names unknown page %d", ch.Code, ch.Page)
			return core.Error(core.EINVALID, "char %d names unknown page %d", ch.Code, ch.Page)
		}
		before := len(a.data)
		var ok bool
		a.data, ok = pages[ch.Page].copyRect(ch, a.data)
		if !ok {
			trace().Errorf("fnt: char %d exceeds its page", ch.Code)
			return core.Error(core.EINVALID, "char %d exceeds its page", ch.Code)
		}
		ch.Pos = offset
		offset += uint32(len(a.data) - before)
		a.chars = append(a.chars, ch.Char)
	}
	return nil
}
