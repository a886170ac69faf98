/*
Package texture packs the glyph images of a store onto rectangular
atlas pages.

A Creator walks the store's glyphs in reverse order and places each
onto the current page with a skyline heuristic: rows are filled left to
right, and each glyph drops to the upper envelope of the previous row.
Pages are opaque handles allocated by a host callback; a second
callback receives every placed glyph so the host can blit its pixels.

The result is a Texture: an atlas store with the same lookup surface as
the glyph store, over glyphs carrying their page and pixel position.

Two estimators search for atlas dimensions: Estimate bisects for the
smallest square holding all glyphs on one page, EstimatePow2 sweeps
power-of-two sizes and picks the tightest fit.

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
package texture

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to a global engine-tracer.
func tracer() tracing.Trace {
	return gtrace.EngineTracer
}
