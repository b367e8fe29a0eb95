package util

import (
	"crypto/sha256"
	"encoding/hex"
	"image"

	"github.com/disintegration/imaging"
)

// ImageHash returns the SHA-256 of the raster's pixel data. Two images
// hash equal exactly when their pixels match after NRGBA conversion.
func ImageHash(img image.Image) string {
	pixels := imaging.Clone(img)
	sum := sha256.Sum256(pixels.Pix)
	return hex.EncodeToString(sum[:])
}
