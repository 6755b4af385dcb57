// Package preprocess implements the client-side variant of the Inception
// input pipeline: decode, resize to the network resolution and normalize
// with the ImageNet channel statistics. A server running the DALI pipeline
// does this work itself; the client-side path exists so the two can be
// compared.
package preprocess

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/disintegration/imaging"
)

// Inception v3 input resolution.
const (
	TargetWidth  = 299
	TargetHeight = 299

	// Channels is the number of color channels in the output tensor.
	Channels = 3
)

// ImageNet channel statistics, scaled to the 0-255 pixel range.
var (
	mean = [Channels]float32{0.485 * 255, 0.456 * 255, 0.406 * 255}
	std  = [Channels]float32{0.229 * 255, 0.224 * 255, 0.225 * 255}
)

// Transform decodes an encoded image, resizes it to TargetWidth x
// TargetHeight and normalizes it per channel, returning the HWC float32
// tensor together with the wall-clock time the transform took. Zero bytes
// padding the tail of the buffer are ignored by the image decoders.
func Transform(encoded []byte) ([]float32, time.Duration, error) {
	start := time.Now()

	img, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, 0, fmt.Errorf("decode image: %w", err)
	}
	resized := imaging.Resize(img, TargetWidth, TargetHeight, imaging.Lanczos)

	out := make([]float32, TargetWidth*TargetHeight*Channels)
	i := 0
	for y := 0; y < TargetHeight; y++ {
		for x := 0; x < TargetWidth; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			out[i] = (float32(r>>8) - mean[0]) / std[0]
			out[i+1] = (float32(g>>8) - mean[1]) / std[1]
			out[i+2] = (float32(b>>8) - mean[2]) / std[2]
			i += Channels
		}
	}
	return out, time.Since(start), nil
}
