package font

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"github.com/ChenKe404/ckfont/core"
)

// Container layout: 3 magic bytes, 1 compression flag byte, body. The
// body is header record, count char records, arena bytes — pushed
// through an LZ4 frame when the flag is set. All records are packed
// little-endian, byte for byte as their fields declare.

const containerMagic = "CKF"

// Record sizes of the packed on-disk schema.
var (
	headerSize = binary.Size(Header{}) // 18
	charSize   = binary.Size(Char{})   // 13
)

// Write serializes the store to w, optionally compressing the body.
// Count and max width are recomputed before the header goes out. The
// exact body size is handed to the compressor as a content-size hint.
// A short write at any stage is a fatal save error.
func (f *Font) Write(w io.Writer, compress bool) error {
	if _, err := io.WriteString(w, containerMagic); err != nil {
		return core.WrapError(err, core.EIO, "writing font container tag")
	}
	cflag := byte(0)
	if compress {
		cflag = 1
	}
	if _, err := w.Write([]byte{cflag}); err != nil {
		return core.WrapError(err, core.EIO, "writing font container tag")
	}

	f.header.Count = uint16(len(f.chars))
	f.header.MaxWidth = 0
	for _, ch := range f.chars {
		if ch.Width > f.header.MaxWidth {
			f.header.MaxWidth = ch.Width
		}
	}
	szData := 0
	for _, ch := range f.chars {
		szData += sizeBlock(ch, f.format.Bpp())
	}

	var body io.Writer = w
	var zw *lz4.Writer
	if compress {
		zw = lz4.NewWriter(w)
		content := headerSize + len(f.chars)*charSize + szData
		if err := zw.Apply(lz4.SizeOption(uint64(content))); err != nil {
			return core.WrapError(err, core.EINTERNAL, "configuring compressor")
		}
		body = zw
	}

	if err := binary.Write(body, binary.LittleEndian, f.header); err != nil {
		return core.WrapError(err, core.EIO, "writing font header")
	}
	for i := range f.chars {
		if err := binary.Write(body, binary.LittleEndian, f.chars[i]); err != nil {
			return core.WrapError(err, core.EIO, "writing char table")
		}
	}
	arena := f.arena
	if len(arena) < szData {
		// pad to the size the char table promises
		arena = append(append([]byte(nil), arena...), make([]byte, szData-len(arena))...)
	} else {
		arena = arena[:szData]
	}
	if _, err := body.Write(arena); err != nil {
		trace().Errorf("font: the data has not been fully output")
		return core.WrapError(err, core.EIO, "writing pixel arena")
	}
	if compress {
		if err := zw.Close(); err != nil {
			return core.WrapError(err, core.EIO, "finishing compressed body")
		}
	}
	return nil
}

// Save writes the store to a container file.
func (f *Font) Save(filename string, compress bool) error {
	fd, err := os.Create(filename)
	if err != nil {
		return core.WrapError(err, core.EIO, "creating font file %q", filename)
	}
	defer fd.Close()
	return f.Write(fd, compress)
}

// Read populates the store from a container stream. On any failure the
// store is left cleared. A compressed body is inflated into memory
// before structured parsing resumes.
func (f *Font) Read(r io.Reader) (err error) {
	defer func() {
		if err != nil {
			f.Clear()
		}
	}()
	f.index = make(map[rune]int)
	f.chars = nil
	f.arena = nil

	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return core.WrapError(err, core.EIO, "font stream too short")
	}
	if string(head[:3]) != containerMagic {
		trace().Errorf("font: illegal file tag")
		return errFontFormat("illegal file tag")
	}
	compressed := head[3] != 0

	var body io.Reader = r
	if compressed {
		body = lz4.NewReader(r)
	}
	buf, err := io.ReadAll(body)
	if err != nil {
		return core.WrapError(err, core.EIO, "reading font body")
	}
	if len(buf) < headerSize {
		return errFontFormat("header truncated")
	}
	rd := bytes.NewReader(buf)
	if err := binary.Read(rd, binary.LittleEndian, &f.header); err != nil {
		return errFontFormat("header")
	}
	f.format = formatOf(f.header)

	if f.header.Count > 0 {
		count := int(f.header.Count)
		f.chars = make([]Char, 0, count)
		for len(f.chars) < count && rd.Len() >= charSize {
			var c Char
			if err := binary.Read(rd, binary.LittleEndian, &c); err != nil {
				break
			}
			f.chars = append(f.chars, c)
		}
		if len(f.chars) != count {
			trace().Errorf("font: characters overflowed, maybe font was broken")
			f.chars = nil
			return errFontFormat("char table truncated")
		}
	}
	if rd.Len() > 0 {
		f.arena = make([]byte, rd.Len())
		if _, err := io.ReadFull(rd, f.arena); err != nil {
			trace().Errorf("font: the data has not been fully input")
			f.chars = nil
			f.arena = nil
			return core.WrapError(err, core.EIO, "reading pixel arena")
		}
	}

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

// Open reads the store from a container file.
func (f *Font) Open(filename string) error {
	fd, err := os.Open(filename)
	if err != nil {
		return core.WrapError(err, core.EIO, "opening font file %q", filename)
	}
	defer fd.Close()
	return f.Read(fd)
}

// LoadBytes populates the store from an in-memory container image.
func (f *Font) LoadBytes(data []byte) error {
	return f.Read(bytes.NewReader(data))
}
