package game

import "github.com/go-gl/gl/v4.1-core/gl"

// DrawQuad queues a filled rectangle in screen pixel space.
func (r *Renderer) DrawQuad(x, y, w, h float32, col RGB, alpha float32) {
	if len(r.hudBuf) >= maxHUDQuads*6*6 {
		return
	}
	cr, cg, cb := col.Vec()
	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.hudBuf = append(r.hudBuf,
		x, y, cr, cg, cb, alpha,
		x+w, y, cr, cg, cb, alpha,
		x, y+h, cr, cg, cb, alpha,
		x+w, y, cr, cg, cb, alpha,
		x+w, y+h, cr, cg, cb, alpha,
		x, y+h, cr, cg, cb, alpha,
	)
}

// DrawChar queues a single glyph with its top-left corner at (sx, sy).
func (r *Renderer) DrawChar(ch rune, sx, sy, scale float32, col RGB) {
	glyphPixels(ch, func(px, py int) {
		r.DrawQuad(sx+float32(px)*scale, sy+float32(py)*scale, scale, scale, col, 1)
	})
}

// DrawString queues a string at screen pixel position (sx, sy) with given scale.
func (r *Renderer) DrawString(text string, sx, sy int, scale float32, col RGB) {
	advance := float32(GlyphW+GlyphGap) * scale
	lineAdvance := float32(GlyphH+LineSpace) * scale
	baseX := float32(sx)
	x := float32(sx)
	y := float32(sy)
	for _, ch := range text {
		if ch == '\n' {
			x = baseX
			y += lineAdvance
			continue
		}
		r.DrawChar(ch, x, y, scale, col)
		x += advance
	}
}

// DrawWavyString draws text with each glyph bobbing on its own phase.
func (r *Renderer) DrawWavyString(text string, sx, sy int, scale float32, col RGB, now float64) {
	advance := float32(GlyphW+GlyphGap) * scale
	x := float32(sx)
	for i, ch := range []rune(text) {
		dy := float32(wave(now, 4, float64(scale)*1.5, float64(i)*0.25))
		r.DrawChar(ch, x, float32(sy)+dy, scale, col)
		x += advance
	}
}

// FlushHUD draws all buffered HUD quads and clears the buffer.
func (r *Renderer) FlushHUD(fbW, fbH int) {
	if len(r.hudBuf) == 0 {
		return
	}

	gl.UseProgram(r.hudProg)
	gl.BindVertexArray(r.hudVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.hudVBO)

	gl.Uniform2f(r.hudURes, float32(fbW), float32(fbH))

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	count := len(r.hudBuf) / 6
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.hudBuf)*4, gl.Ptr(r.hudBuf))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(count))

	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
	r.hudBuf = r.hudBuf[:0]
}
