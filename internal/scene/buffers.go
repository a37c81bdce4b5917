package scene

import (
	"errors"
	"fmt"
)

// FloatsPerVertex is the number of floats each vertex occupies in both buffers.
const FloatsPerVertex = 2

// VerticesPerQuad is the number of vertices drawn per object (triangle fan).
const VerticesPerQuad = 4

// QuadTexCoords maps the unit texture square onto a quad's four corners.
var QuadTexCoords = [VerticesPerQuad * FloatsPerVertex]float32{0, 1, 0, 0, 1, 0, 1, 1}

// ErrBufferFull is returned when a quad would be written past the buffer capacity.
var ErrBufferFull = errors.New("scene: geometry buffer full")

// Buffers holds the flat vertex and texture coordinate arrays shared by every scene.
// Offsets are expressed in vertices, not floats.
type Buffers struct {
	Vertices  []float32
	TexCoords []float32
	used      int // floats
}

// NewBuffers allocates both arrays with room for capacity floats each.
func NewBuffers(capacity int) *Buffers {
	return &Buffers{
		Vertices:  make([]float32, capacity),
		TexCoords: make([]float32, capacity),
	}
}

// Reset rewinds the buffers so the next pack starts from offset 0.
func (b *Buffers) Reset() {
	b.used = 0
}

// WriteQuad stores a quad at the given vertex offset and returns the next free offset.
func (b *Buffers) WriteQuad(offset int, quad [VerticesPerQuad * FloatsPerVertex]float32) (int, error) {
	start := offset * FloatsPerVertex
	end := start + len(quad)
	if offset < 0 || end > len(b.Vertices) || end > len(b.TexCoords) {
		return offset, fmt.Errorf("%w: offset %d, capacity %d floats", ErrBufferFull, offset, len(b.Vertices))
	}
	copy(b.Vertices[start:end], quad[:])
	copy(b.TexCoords[start:end], QuadTexCoords[:])
	if end > b.used {
		b.used = end
	}
	return offset + VerticesPerQuad, nil
}

// Used returns the packed prefix of both arrays.
func (b *Buffers) Used() (vertices, texCoords []float32) {
	return b.Vertices[:b.used], b.TexCoords[:b.used]
}

// VertexCount is the number of vertices packed since the last Reset.
func (b *Buffers) VertexCount() int {
	return b.used / FloatsPerVertex
}
