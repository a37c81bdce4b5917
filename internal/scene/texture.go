package scene

import (
	"image"
	"image/draw"
)

// TextureKind tells the loader how to cut a template image.
type TextureKind int

const (
	// TextureSimple uploads the whole image as one texture.
	TextureSimple TextureKind = iota
	// TextureStrip treats the image as a horizontal strip of square frames.
	TextureStrip
)

// TextureTemplate is a pending upload: the GPU textures made from Image are
// bound under Name on every owner.
type TextureTemplate struct {
	Name   string
	Kind   TextureKind
	Image  *image.RGBA
	Owners []*Object
}

func NewTextureTemplate(name string, kind TextureKind, img *image.RGBA, owners ...*Object) TextureTemplate {
	return TextureTemplate{Name: name, Kind: kind, Image: img, Owners: owners}
}

// FrameCount is width/height for strips and 1 for simple textures.
func (t TextureTemplate) FrameCount() int {
	if t.Image == nil {
		return 0
	}
	if t.Kind != TextureStrip {
		return 1
	}
	size := t.Image.Bounds().Size()
	if size.Y == 0 {
		return 0
	}
	return size.X / size.Y
}

// Frames returns one image per texture to upload, each with its own pixel buffer.
func (t TextureTemplate) Frames() []*image.RGBA {
	n := t.FrameCount()
	if n == 0 {
		return nil
	}
	if t.Kind != TextureStrip {
		return []*image.RGBA{t.Image}
	}
	b := t.Image.Bounds()
	side := b.Dy()
	frames := make([]*image.RGBA, n)
	for i := range frames {
		frame := image.NewRGBA(image.Rect(0, 0, side, side))
		src := image.Pt(b.Min.X+i*side, b.Min.Y)
		draw.Draw(frame, frame.Bounds(), t.Image, src, draw.Src)
		frames[i] = frame
	}
	return frames
}
