package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"snakinator/internal/sim"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Face light factors; the shader maps these to 0.8..1.0.
const (
	ligTop    = 1.0
	ligFront  = 0.6
	ligSide   = 0.35
	ligBottom = 0.0
)

// cubeVerts is a unit cube spanning 0..1, 36 vertices of (x, y, z, lig).
var cubeVerts = [...]float32{
	// top (y = 1)
	0, 1, 0, ligTop, 0, 1, 1, ligTop, 1, 1, 1, ligTop,
	0, 1, 0, ligTop, 1, 1, 1, ligTop, 1, 1, 0, ligTop,
	// bottom (y = 0)
	0, 0, 0, ligBottom, 1, 0, 1, ligBottom, 0, 0, 1, ligBottom,
	0, 0, 0, ligBottom, 1, 0, 0, ligBottom, 1, 0, 1, ligBottom,
	// +z
	0, 0, 1, ligFront, 1, 0, 1, ligFront, 1, 1, 1, ligFront,
	0, 0, 1, ligFront, 1, 1, 1, ligFront, 0, 1, 1, ligFront,
	// -z
	0, 0, 0, ligFront, 1, 1, 0, ligFront, 1, 0, 0, ligFront,
	0, 0, 0, ligFront, 0, 1, 0, ligFront, 1, 1, 0, ligFront,
	// +x
	1, 0, 0, ligSide, 1, 1, 1, ligSide, 1, 0, 1, ligSide,
	1, 0, 0, ligSide, 1, 1, 0, ligSide, 1, 1, 1, ligSide,
	// -x
	0, 0, 0, ligSide, 0, 0, 1, ligSide, 0, 1, 1, ligSide,
	0, 0, 0, ligSide, 0, 1, 1, ligSide, 0, 1, 0, ligSide,
}

const cubeVertexCount = int32(len(cubeVerts) / 4)

// Shadows are thin slabs lying on the floor top.
const (
	floorTop        = 1.0
	shadowThickness = 0.02
)

// maxHUDQuads bounds the streaming HUD buffer.
const maxHUDQuads = 4096

type Renderer struct {
	// Cube program.
	cubeProg uint32
	cubeVAO  uint32
	cubeVBO  uint32

	uModel int32
	uView  int32
	uProj  int32
	uColor int32

	// HUD program: coloured screen-space quads.
	hudProg uint32
	hudVAO  uint32
	hudVBO  uint32
	hudURes int32
	hudBuf  []float32

	// Low resolution scene target, blown up with nearest filtering.
	fbo      uint32
	fboColor uint32
	fboDepth uint32
	fboW     int
	fboH     int
}

func NewRenderer() (*Renderer, error) {
	cubeProg, err := linkProgram(cubeVertSrc, cubeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("cube program: %w", err)
	}
	hudProg, err := linkProgram(hudVertSrc, hudFragSrc)
	if err != nil {
		gl.DeleteProgram(cubeProg)
		return nil, fmt.Errorf("hud program: %w", err)
	}

	r := &Renderer{
		cubeProg: cubeProg,
		hudProg:  hudProg,
	}

	// Cube VAO/VBO: static, (pos vec3, lig float).
	var cVAO, cVBO uint32
	gl.GenVertexArrays(1, &cVAO)
	gl.GenBuffers(1, &cVBO)
	gl.BindVertexArray(cVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, cVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVerts)*4, gl.Ptr(&cubeVerts[0]), gl.STATIC_DRAW)
	stride := int32(4 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(3*4))
	r.cubeVAO = cVAO
	r.cubeVBO = cVBO

	gl.UseProgram(cubeProg)
	r.uModel = uniform(cubeProg, "uModel")
	r.uView = uniform(cubeProg, "uView")
	r.uProj = uniform(cubeProg, "uProj")
	r.uColor = uniform(cubeProg, "uColor")

	// HUD VAO/VBO: streaming, (pos vec2, color vec4).
	var hVAO, hVBO uint32
	gl.GenVertexArrays(1, &hVAO)
	gl.GenBuffers(1, &hVBO)
	gl.BindVertexArray(hVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, hVBO)
	hStride := int32(6 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxHUDQuads*6*int(hStride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, hStride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, hStride, glOffset(2*4))
	r.hudVAO = hVAO
	r.hudVBO = hVBO

	gl.UseProgram(hudProg)
	r.hudURes = uniform(hudProg, "uResolution")

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	r.destroyTarget()
	for _, id := range []uint32{r.cubeVBO, r.hudVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.cubeVAO, r.hudVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.cubeProg, r.hudProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) destroyTarget() {
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	for _, id := range []uint32{r.fboColor, r.fboDepth} {
		if id != 0 {
			gl.DeleteRenderbuffers(1, &id)
		}
	}
	r.fboColor, r.fboDepth = 0, 0
}

// ensureTarget (re)creates the low resolution target for a framebuffer size.
func (r *Renderer) ensureTarget(fbW, fbH int) error {
	w := max(1, int(float64(fbW)*Lowres))
	h := max(1, int(float64(fbH)*Lowres))
	if r.fbo != 0 && w == r.fboW && h == r.fboH {
		return nil
	}
	r.destroyTarget()

	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)

	gl.GenRenderbuffers(1, &r.fboColor)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.fboColor)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(w), int32(h))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, r.fboColor)

	gl.GenRenderbuffers(1, &r.fboDepth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.fboDepth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(w), int32(h))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, r.fboDepth)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		r.destroyTarget()
		return fmt.Errorf("lowres framebuffer incomplete: 0x%x", status)
	}
	r.fboW, r.fboH = w, h
	return nil
}

// BeginFrame binds the scene target and clears it. Without a usable
// target the scene is drawn straight to the window.
func (r *Renderer) BeginFrame(fbW, fbH int) {
	if err := r.ensureTarget(fbW, fbH); err != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(fbW), int32(fbH))
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
		gl.Viewport(0, 0, int32(r.fboW), int32(r.fboH))
	}
	bg := Palette.Background
	cr, cg, cb := bg.Vec()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// EndScene blits the scene target onto the window.
func (r *Renderer) EndScene(fbW, fbH int) {
	gl.Disable(gl.DEPTH_TEST)
	if r.fbo == 0 {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(r.fboW), int32(r.fboH),
		0, 0, int32(fbW), int32(fbH), gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
}

// drawCube draws the unit cube scaled by s and moved to p.
func (r *Renderer) drawCube(p, s mgl32.Vec3, col RGB) {
	model := mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	cr, cg, cb := col.Vec()
	gl.Uniform3f(r.uColor, cr, cg, cb)
	gl.DrawArrays(gl.TRIANGLES, 0, cubeVertexCount)
}

// drawCell draws one grid cell sitting on the floor, with a floor shadow
// when it is on the upper layer.
func (r *Renderer) drawCell(c sim.Cell, col RGB) {
	x, y, z := float32(c.X), float32(c.Y), float32(c.Z)
	r.drawCube(mgl32.Vec3{x, y + floorTop, z}, mgl32.Vec3{1, 1, 1}, col)
	if c.Y == sim.Height-1 {
		r.drawCube(mgl32.Vec3{x, floorTop, z}, mgl32.Vec3{1, shadowThickness, 1}, Palette.Shadow)
	}
}

// DrawWorld renders the floor, the apple and every snake from snap.
func (r *Renderer) DrawWorld(snap *sim.Snapshot, cam *Camera, now float64, fbW, fbH int) {
	if snap.Phase == sim.PhaseMenu {
		return
	}
	view := cam.View(now)
	proj := cam.Projection(fbW, fbH)

	gl.UseProgram(r.cubeProg)
	gl.BindVertexArray(r.cubeVAO)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])

	t := float32(snap.Tiles)
	r.drawCube(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{t, floorTop, t}, Palette.Floor)

	if snap.HasApple {
		r.drawCell(snap.Apple, Palette.Apple)
	}

	for _, sv := range snap.Snakes {
		base := Palette.Snakes[sv.ID%len(Palette.Snakes)]
		// A dead snake fades into the floor while the other one plays on.
		if !sv.Alive && snap.Alive > 0 {
			base = Palette.Floor
		}
		size := len(sv.Body)
		for i, c := range sv.Body {
			r.drawCell(c, segmentColor(base, i, size))
		}
	}
	gl.BindVertexArray(0)
}
