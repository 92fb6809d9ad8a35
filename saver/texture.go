package saver

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/yoanbernabeu/slotsave/config"
)

// SaveTexture encodes img as PNG and stores it as <name>.png in the saves
// directory. Textures bypass the codec and obfuscation.
func (s *Saver[S, P]) SaveTexture(name string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode texture %s: %w", name, err)
	}
	return s.SaveBlob(name, buf.Bytes())
}

// LoadTexture decodes <name>.png. found is false when the file is missing.
// Besides PNG, JPEG, BMP, TIFF and WebP payloads are recognised.
func (s *Saver[S, P]) LoadTexture(name string) (img image.Image, found bool, err error) {
	data, found, err := s.LoadBlob(name)
	if err != nil || !found {
		return nil, found, err
	}

	img, _, err = image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, true, fmt.Errorf("failed to decode texture %s: %w", name, err)
	}
	return img, true, nil
}

// SaveBlob stores raw bytes as <name>.png in the saves directory. Empty names
// and names containing a path separator are rejected.
func (s *Saver[S, P]) SaveBlob(name string, data []byte) error {
	if err := checkTextureName(name); err != nil {
		return err
	}
	return s.e.store.WriteBytes(s.e.dir, config.TextureFileName(name), data)
}

// LoadBlob reads the raw bytes of <name>.png. found is false when the file is
// missing.
func (s *Saver[S, P]) LoadBlob(name string) ([]byte, bool, error) {
	if err := checkTextureName(name); err != nil {
		return nil, false, err
	}
	return s.e.store.ReadBytes(s.e.dir, config.TextureFileName(name))
}

// ScaleToFit returns img scaled down so neither side exceeds maxSide,
// keeping the aspect ratio. Images that already fit, or a maxSide <= 0,
// are returned unchanged.
func ScaleToFit(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = max(1, h*maxSide/w)
	} else {
		nw = max(1, w*maxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
