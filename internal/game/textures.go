package game

import (
	"image"

	"flappy-fish/internal/logging"
	"flappy-fish/internal/profiling"
	"flappy-fish/internal/scene"
)

// Uploader creates and frees GPU textures. Only the render thread calls it.
type Uploader interface {
	CreateTexture(img *image.RGBA) (uint32, error)
	DeleteTextures(ids []uint32)
}

// loadTextures uploads every template and binds the resulting IDs on its owners.
// A template that fails to upload is skipped; the rest still load.
func loadTextures(up Uploader, templates []scene.TextureTemplate) {
	defer profiling.Track("game.loadTextures")()
	for _, t := range templates {
		frames := t.Frames()
		if len(frames) == 0 {
			logging.Warn("texture %q has no frames", t.Name)
			continue
		}
		ids := make([]uint32, 0, len(frames))
		var failed bool
		for i, frame := range frames {
			id, err := up.CreateTexture(frame)
			if err != nil {
				logging.Warn("upload texture %q frame %d: %v", t.Name, i, err)
				failed = true
				break
			}
			ids = append(ids, id)
		}
		if failed {
			if len(ids) > 0 {
				up.DeleteTextures(ids)
			}
			continue
		}
		for _, owner := range t.Owners {
			if t.Kind == scene.TextureStrip {
				owner.AddAnimation(t.Name, ids)
			} else {
				owner.AddTexture(t.Name, ids[0])
			}
		}
	}
}
