package preprocess

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// SaveRGB writes raw interleaved RGB bytes as an image file, the format
// picked from the path extension. It is a debugging aid for inspecting
// tensors coming back from the server and is not part of the inference
// path.
func SaveRGB(raw []byte, width, height int, path string) error {
	if len(raw) < width*height*Channels {
		return fmt.Errorf("raw buffer too short: have %d bytes, need %d", len(raw), width*height*Channels)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: raw[i], G: raw[i+1], B: raw[i+2], A: 0xff})
			i += Channels
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}
