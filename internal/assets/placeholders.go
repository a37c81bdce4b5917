package assets

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

type placeholder struct {
	width, height int
	frames        int
	fill, border  color.RGBA
}

var placeholderSet = map[string]placeholder{
	"mat":                    {64, 64, 1, color.RGBA{0x2a, 0x6f, 0xb0, 0xff}, color.RGBA{}},
	"level_mat":              {64, 64, 1, color.RGBA{0x1d, 0x4e, 0x89, 0xff}, color.RGBA{}},
	"loading":                {512, 64, 8, color.RGBA{0xff, 0xd7, 0x4a, 0xff}, color.RGBA{}},
	"start_button":           {64, 64, 1, color.RGBA{0x3c, 0xb3, 0x71, 0xff}, color.RGBA{0x1e, 0x5a, 0x38, 0xff}},
	"start_button_pressed":   {64, 64, 1, color.RGBA{0x2e, 0x8b, 0x57, 0xff}, color.RGBA{0x1e, 0x5a, 0x38, 0xff}},
	"exit_button":            {64, 64, 1, color.RGBA{0xd9, 0x53, 0x4f, 0xff}, color.RGBA{0x6d, 0x2a, 0x28, 0xff}},
	"exit_button_pressed":    {64, 64, 1, color.RGBA{0xb0, 0x3a, 0x36, 0xff}, color.RGBA{0x6d, 0x2a, 0x28, 0xff}},
	"penguin_red":            {64, 64, 1, color.RGBA{0xe0, 0x3c, 0x31, 0xff}, color.RGBA{0x20, 0x20, 0x20, 0xff}},
	"penguin_red_animation1": {256, 64, 4, color.RGBA{0xe0, 0x3c, 0x31, 0xff}, color.RGBA{}},
	"penguin_red_animation2": {256, 64, 4, color.RGBA{0xff, 0x7f, 0x50, 0xff}, color.RGBA{}},
	"red_screen":             {16, 16, 1, color.RGBA{0x80, 0x00, 0x00, 0x80}, color.RGBA{}},
	"up_bar":                 {64, 16, 1, color.RGBA{0x10, 0x2a, 0x43, 0xff}, color.RGBA{}},
	"back":                   {32, 32, 1, color.RGBA{0xf0, 0xf0, 0xf0, 0xff}, color.RGBA{0x40, 0x40, 0x40, 0xff}},
	"back_pressed":           {32, 32, 1, color.RGBA{0xc0, 0xc0, 0xc0, 0xff}, color.RGBA{0x40, 0x40, 0x40, 0xff}},
	"key":                    {32, 32, 1, color.RGBA{0xf5, 0xc5, 0x18, 0xff}, color.RGBA{0x40, 0x40, 0x40, 0xff}},
	"key_pressed":            {32, 32, 1, color.RGBA{0xc9, 0xa0, 0x10, 0xff}, color.RGBA{0x40, 0x40, 0x40, 0xff}},
	"heart":                  {32, 32, 1, color.RGBA{0xe9, 0x1e, 0x63, 0xff}, color.RGBA{}},
	"coin":                   {64, 32, 1, color.RGBA{0xff, 0xc1, 0x07, 0xff}, color.RGBA{0x99, 0x73, 0x00, 0xff}},
}

// Placeholders generates flat images for every asset the screens use, so the
// game runs without an asset directory.
type Placeholders struct{}

func (Placeholders) Image(name string) (image.Image, error) {
	p, ok := placeholderSet[name]
	if !ok {
		return nil, fmt.Errorf("%w: placeholder %q", ErrNotFound, name)
	}
	return p.render(), nil
}

// render paints each frame of a strip a shade darker than the one before it.
func (p placeholder) render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	side := p.width / p.frames
	for i := 0; i < p.frames; i++ {
		r := image.Rect(i*side, 0, (i+1)*side, p.height)
		draw.Draw(img, r, image.NewUniform(shade(p.fill, i)), image.Point{}, draw.Src)
		if p.border.A != 0 {
			drawBorder(img, r, p.border, 2)
		}
	}
	return img
}

func shade(c color.RGBA, step int) color.RGBA {
	k := func(v uint8) uint8 {
		d := int(v) - step*12
		if d < 0 {
			return 0
		}
		return uint8(d)
	}
	return color.RGBA{k(c.R), k(c.G), k(c.B), c.A}
}

func drawBorder(img *image.RGBA, r image.Rectangle, c color.RGBA, t int) {
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
