// Package assets resolves named images for the screens and prepares them
// for upload.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrNotFound is returned when a source has no image under the requested name.
var ErrNotFound = errors.New("assets: image not found")

// Source looks images up by their asset name (without extension).
type Source interface {
	Image(name string) (image.Image, error)
}

// Dir reads PNG files from a directory.
type Dir string

func (d Dir) Image(name string) (image.Image, error) {
	path := filepath.Join(string(d), name+".png")
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Fallback asks Primary first and Secondary when Primary has no such image.
// Decode errors from Primary are returned as is.
type Fallback struct {
	Primary, Secondary Source
}

func (f Fallback) Image(name string) (image.Image, error) {
	img, err := f.Primary.Image(name)
	if errors.Is(err, ErrNotFound) {
		return f.Secondary.Image(name)
	}
	return img, err
}

// Load fetches name from src and converts it to RGBA.
func Load(src Source, name string) (*image.RGBA, error) {
	img, err := src.Image(name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as an *image.RGBA with its origin at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Resize scales img to w x h with bilinear filtering.
func Resize(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// CoinBadge draws count on the right half of a copy of coin.
func CoinBadge(coin image.Image, count int) *image.RGBA {
	dst := ToRGBA(coin)
	if dst == coin {
		dst = image.NewRGBA(dst.Rect)
		copy(dst.Pix, coin.(*image.RGBA).Pix)
	}
	face := basicfont.Face7x13
	text := strconv.Itoa(count)
	b := dst.Bounds()

	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	width := d.MeasureString(text).Ceil()
	x := b.Max.X - width - 2
	if x < b.Dx()/2 {
		x = b.Dx() / 2
	}
	baseline := (b.Dy() + face.Metrics().Ascent.Ceil()) / 2
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
	return dst
}
