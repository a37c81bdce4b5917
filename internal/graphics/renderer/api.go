package renderer

import (
	"image"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"flappy-fish/internal/game"
	"flappy-fish/internal/scene"
)

// Device is the GPU surface the renderer draws through. Every method must be
// called from the thread that owns the GL context.
type Device interface {
	// Init compiles the sprite program and allocates geometry buffers holding
	// capacity floats each.
	Init(capacity int) error
	Viewport(width, height int)
	Clear()
	UploadGeometry(vertices, texCoords []float32)
	CreateTexture(img *image.RGBA) (uint32, error)
	DeleteTextures(ids []uint32)
	// BeginFrame binds the program and enables premultiplied alpha blending.
	BeginFrame()
	EndFrame()
	DrawQuad(texture uint32, model mgl32.Mat4, first int)
	Dispose()
}

// Frameable is the game as seen by the render thread.
type Frameable interface {
	Resize(width, height int)
	Setup() error
	Frame(dev game.Device, buf *scene.Buffers, now time.Time)
}
