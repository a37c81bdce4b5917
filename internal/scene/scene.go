package scene

import (
	"errors"
	"fmt"
)

// ErrLayerOutOfRange is returned by AddToLayer for an index outside the scene.
var ErrLayerOutOfRange = errors.New("scene: layer index out of range")

// Scene is a fixed set of layers making up one screen.
type Scene struct {
	layers []*Layer
}

// New creates a scene with layerCount empty layers.
func New(layerCount int) *Scene {
	s := &Scene{layers: make([]*Layer, layerCount)}
	for i := range s.layers {
		s.layers[i] = &Layer{}
	}
	return s
}

// AddToLayer appends obj to layer i. An out of range index leaves the scene untouched.
func (s *Scene) AddToLayer(i int, obj *Object) error {
	if i < 0 || i >= len(s.layers) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrLayerOutOfRange, i, len(s.layers))
	}
	s.layers[i].Add(obj)
	return nil
}

func (s *Scene) LayerCount() int {
	return len(s.layers)
}

func (s *Scene) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Len counts objects across all layers.
func (s *Scene) Len() int {
	n := 0
	for _, l := range s.layers {
		n += l.Len()
	}
	return n
}

func (s *Scene) Pack(buf *Buffers, offset int) (int, error) {
	var err error
	for _, l := range s.layers {
		if offset, err = l.Pack(buf, offset); err != nil {
			return offset, err
		}
	}
	return offset, nil
}

func (s *Scene) Draw(f Frame) {
	for _, l := range s.layers {
		l.Draw(f)
	}
}

// TextureIDs collects the textures of every object so the screen can be
// released in bulk. Textures shared between objects are listed once.
func (s *Scene) TextureIDs() []uint32 {
	var ids []uint32
	seen := make(map[uint32]bool)
	for _, l := range s.layers {
		for _, id := range l.TextureIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
