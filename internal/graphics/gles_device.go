//go:build android

package graphics

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"

	"flappy-fish/internal/graphics/renderer"
)

const spriteVertexShader = `attribute vec4 a_Position;
uniform mat4 u_Matrix;
attribute vec2 a_Texture;
varying vec2 v_Texture;
void main() {
	gl_Position = u_Matrix * a_Position;
	v_Texture = a_Texture;
}
`

const spriteFragmentShader = `precision mediump float;
uniform sampler2D u_TextureUnit;
varying vec2 v_Texture;
void main() {
	gl_FragColor = texture2D(u_TextureUnit, v_Texture);
}
`

// GLESDevice draws sprites through an x/mobile GLES2 context.
type GLESDevice struct {
	ctx      gl.Context
	program  gl.Program
	position gl.Attrib
	texCoord gl.Attrib
	matrix   gl.Uniform
	unit     gl.Uniform
	vbo      [2]gl.Buffer
}

var _ renderer.Device = (*GLESDevice)(nil)

func NewGLESDevice(ctx gl.Context) *GLESDevice {
	return &GLESDevice{ctx: ctx}
}

func (d *GLESDevice) Init(capacity int) error {
	program, err := d.compileProgram(spriteVertexShader, spriteFragmentShader)
	if err != nil {
		return err
	}
	d.program = program
	d.position = d.ctx.GetAttribLocation(program, attribPosition)
	d.texCoord = d.ctx.GetAttribLocation(program, attribTexture)
	d.matrix = d.ctx.GetUniformLocation(program, uniformMatrix)
	d.unit = d.ctx.GetUniformLocation(program, uniformTexture)

	empty := make([]byte, capacity*4)
	for i := range d.vbo {
		d.vbo[i] = d.ctx.CreateBuffer()
		d.ctx.BindBuffer(gl.ARRAY_BUFFER, d.vbo[i])
		d.ctx.BufferData(gl.ARRAY_BUFFER, empty, gl.DYNAMIC_DRAW)
	}
	d.ctx.UseProgram(program)
	d.ctx.Uniform1i(d.unit, 0)
	d.ctx.ClearColor(Background[0], Background[1], Background[2], Background[3])
	return nil
}

func (d *GLESDevice) compileProgram(vertexSrc, fragmentSrc string) (gl.Program, error) {
	vs, err := d.compileShader(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer d.ctx.DeleteShader(vs)
	fs, err := d.compileShader(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer d.ctx.DeleteShader(fs)

	program := d.ctx.CreateProgram()
	d.ctx.AttachShader(program, vs)
	d.ctx.AttachShader(program, fs)
	d.ctx.LinkProgram(program)
	if d.ctx.GetProgrami(program, gl.LINK_STATUS) == 0 {
		log := d.ctx.GetProgramInfoLog(program)
		d.ctx.DeleteProgram(program)
		return gl.Program{}, fmt.Errorf("link sprite program: %s", log)
	}
	return program, nil
}

func (d *GLESDevice) compileShader(kind gl.Enum, src string) (gl.Shader, error) {
	sh := d.ctx.CreateShader(kind)
	d.ctx.ShaderSource(sh, src)
	d.ctx.CompileShader(sh)
	if d.ctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := d.ctx.GetShaderInfoLog(sh)
		d.ctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("compile shader: %s", log)
	}
	return sh, nil
}

func (d *GLESDevice) Viewport(width, height int) {
	d.ctx.Viewport(0, 0, width, height)
}

func (d *GLESDevice) Clear() {
	d.ctx.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *GLESDevice) UploadGeometry(vertices, texCoords []float32) {
	for i, data := range [][]float32{vertices, texCoords} {
		if len(data) == 0 {
			continue
		}
		d.ctx.BindBuffer(gl.ARRAY_BUFFER, d.vbo[i])
		d.ctx.BufferSubData(gl.ARRAY_BUFFER, 0, f32.Bytes(binary.LittleEndian, data...))
	}
}

func (d *GLESDevice) CreateTexture(img *image.RGBA) (uint32, error) {
	size := img.Rect.Size()
	if size.X == 0 || size.Y == 0 {
		return 0, fmt.Errorf("graphics: empty texture image")
	}
	if img.Stride != size.X*4 || img.Rect.Min != (image.Point{}) {
		tight := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
		for y := 0; y < size.Y; y++ {
			copy(tight.Pix[y*tight.Stride:(y+1)*tight.Stride], img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):])
		}
		img = tight
	}
	tex := d.ctx.CreateTexture()
	d.ctx.ActiveTexture(gl.TEXTURE0)
	d.ctx.BindTexture(gl.TEXTURE_2D, tex)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	d.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	d.ctx.TexImage2D(gl.TEXTURE_2D, 0, int(gl.RGBA), size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	d.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	return tex.Value, nil
}

func (d *GLESDevice) DeleteTextures(ids []uint32) {
	for _, id := range ids {
		d.ctx.DeleteTexture(gl.Texture{Value: id})
	}
}

func (d *GLESDevice) BeginFrame() {
	d.ctx.UseProgram(d.program)
	for i, attrib := range []gl.Attrib{d.position, d.texCoord} {
		d.ctx.BindBuffer(gl.ARRAY_BUFFER, d.vbo[i])
		d.ctx.EnableVertexAttribArray(attrib)
		d.ctx.VertexAttribPointer(attrib, 2, gl.FLOAT, false, 0, 0)
	}
	d.ctx.ActiveTexture(gl.TEXTURE0)
	d.ctx.Enable(gl.BLEND)
	d.ctx.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *GLESDevice) EndFrame() {
	d.ctx.Disable(gl.BLEND)
	d.ctx.DisableVertexAttribArray(d.position)
	d.ctx.DisableVertexAttribArray(d.texCoord)
}

func (d *GLESDevice) DrawQuad(texture uint32, model mgl32.Mat4, first int) {
	d.ctx.UniformMatrix4fv(d.matrix, model[:])
	d.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{Value: texture})
	d.ctx.DrawArrays(gl.TRIANGLE_FAN, first, 4)
}

func (d *GLESDevice) Dispose() {
	for _, b := range d.vbo {
		d.ctx.DeleteBuffer(b)
	}
	d.ctx.DeleteProgram(d.program)
}
