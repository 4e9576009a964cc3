package render

import (
	"bytes"
	"image"
	"image/png"

	"github.com/mehinger01/garage-layout-planner/pkg/errors"
)

// EncodePNG serializes a rendered frame.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
