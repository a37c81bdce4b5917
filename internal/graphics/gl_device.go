//go:build !android

package graphics

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"flappy-fish/internal/graphics/renderer"
)

// GLDevice draws sprites with desktop OpenGL 4.1 core: one VAO over a
// position VBO and a texture coordinate VBO.
type GLDevice struct {
	shader      *Shader
	vao         uint32
	vbo         [2]uint32
	capacity    int
	matrixLoc   int32
	textureUnit int32
}

var _ renderer.Device = (*GLDevice)(nil)

func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

func (d *GLDevice) Init(capacity int) error {
	shader, err := newSpriteShader()
	if err != nil {
		return err
	}
	d.shader = shader
	d.capacity = capacity
	d.matrixLoc = shader.uniform(uniformMatrix)
	d.textureUnit = shader.uniform(uniformTexture)
	if d.matrixLoc < 0 {
		return fmt.Errorf("graphics: uniform %s not found", uniformMatrix)
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.GenBuffers(2, &d.vbo[0])
	gl.BindVertexArray(d.vao)
	for i, vbo := range d.vbo {
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, capacity*4, nil, gl.DYNAMIC_DRAW)
		gl.VertexAttribPointer(uint32(i), 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(uint32(i))
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	shader.Use()
	gl.Uniform1i(d.textureUnit, 0)
	gl.ClearColor(Background[0], Background[1], Background[2], Background[3])
	return nil
}

func (d *GLDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *GLDevice) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *GLDevice) UploadGeometry(vertices, texCoords []float32) {
	for i, data := range [][]float32{vertices, texCoords} {
		if len(data) == 0 {
			continue
		}
		n := min(len(data), d.capacity)
		gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo[i])
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*4, gl.Ptr(data[:n]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *GLDevice) CreateTexture(img *image.RGBA) (uint32, error) {
	return uploadTexture(img)
}

func (d *GLDevice) DeleteTextures(ids []uint32) {
	if len(ids) == 0 {
		return
	}
	gl.DeleteTextures(int32(len(ids)), &ids[0])
}

func (d *GLDevice) BeginFrame() {
	d.shader.Use()
	gl.BindVertexArray(d.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *GLDevice) EndFrame() {
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func (d *GLDevice) DrawQuad(texture uint32, model mgl32.Mat4, first int) {
	gl.UniformMatrix4fv(d.matrixLoc, 1, false, &model[0])
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.DrawArrays(gl.TRIANGLE_FAN, int32(first), 4)
}

func (d *GLDevice) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		gl.DeleteBuffers(2, &d.vbo[0])
		d.vao = 0
	}
	if d.shader != nil {
		d.shader.Delete()
		d.shader = nil
	}
}
