package checkout

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"

	"github.com/nfnt/resize"
)

// NormalizeProof shrinks JPEG and PNG screenshots wider than maxWidth and
// returns the bytes to store with their content type. Anything else is kept as is.
func NormalizeProof(data []byte, maxWidth uint) ([]byte, string) {
	contentType := http.DetectContentType(data)
	if maxWidth == 0 || (contentType != "image/jpeg" && contentType != "image/png") {
		return data, contentType
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, contentType
	}
	if uint(img.Bounds().Dx()) <= maxWidth {
		return data, contentType
	}

	resized := resize.Resize(maxWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return data, contentType
	}
	return buf.Bytes(), contentType
}
