// Package graphics holds the GL backends that draw sprite quads.
package graphics

// Background is the clear color.
var Background = [4]float32{1, 1, 1, 1}

const (
	attribPosition = "a_Position"
	attribTexture  = "a_Texture"
	uniformMatrix  = "u_Matrix"
	uniformTexture = "u_TextureUnit"
)
