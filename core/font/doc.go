/*
Package font implements a store for bitmap-font glyphs and its binary
container format.

A Font holds a collection of Chars — each a small rectangular pixel image
with metrics — indexed by Unicode codepoint, backed by a single flat pixel
arena. Pixel data is stored either as 24-bit RGB or as 32-bit ARGB; the
depth is fixed when the store is created and never changes afterwards.

Stores are populated in one of two ways: from a container file in the CKF
format (see Read/Write), or from an Adapter, i.e. any importer able to
produce a header, a char list and an arena. Package fnt provides an
Adapter for BMFont *.fnt descriptions.

The store serves three reserved lookups without consulting the arena:
newline, tab, and a synthetic space whose advance is derived from the
line height. Codepoints with no glyph fall back to the first glyph of
the store.

----------------------------------------------------------------------

BSD 3-Clause License

Copyright (c) 2025, the ckfont authors

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package font

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/ChenKe404/ckfont/core"
)

// trace traces to a global core-tracer.
func trace() tracing.Trace {
	return gtrace.CoreTracer
}

// errFontFormat produces user level errors for font container parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "CKF font format: %s", x)
}
