package visualization

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	"solar-system-sim/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// fallbackSize is the edge length of the solid textures used for missing files.
const fallbackSize = 4

// DecodeImage reads an image file and scales it down so that its longest
// edge is at most maxSize pixels.
func DecodeImage(path string, maxSize int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSize <= 0 || longest <= maxSize {
		return img, nil
	}
	scale := float64(maxSize) / float64(longest)
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	slog.Debug("texture downscaled", "path", path, "format", format, "from", b.Size(), "to", dst.Bounds().Size())
	return dst, nil
}

// SolidImage returns a small opaque image filled with c.
func SolidImage(c colorful.Color, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r, g, b := c.Clamped().RGB255()
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 255}), image.Point{}, xdraw.Src)
	return img
}

// surfaceKey names the image a surface is drawn with: its texture when that
// was loaded, otherwise the solid image of its colour.
func surfaceKey[T any](images map[string]T, path string, c colorful.Color) string {
	if path != "" {
		if _, ok := images[path]; ok {
			return path
		}
	}
	return c.Clamped().Hex()
}

// decodedTextures holds the decoded images of a scene, before upload.
type decodedTextures struct {
	// images is keyed by texture path for loaded files and by colour for
	// solid fallbacks.
	images     map[string]image.Image
	background image.Image
}

// decodeTextures reads every texture the scene uses from dir. A texture that
// cannot be read is replaced by a solid image in the surface's colour; a
// missing background is left out and the screen is cleared instead.
func decodeTextures(dir string, sc *scene.Scene, maxSize int, logger *slog.Logger) decodedTextures {
	out := decodedTextures{images: map[string]image.Image{
		whiteTexture: SolidImage(colorful.Color{R: 1, G: 1, B: 1}, fallbackSize),
	}}
	failed := map[string]bool{}

	for _, s := range sc.Surfaces() {
		if s.Texture != "" {
			if _, ok := out.images[s.Texture]; ok {
				continue
			}
			if !failed[s.Texture] {
				img, err := DecodeImage(filepath.Join(dir, s.Texture), maxSize)
				if err == nil {
					out.images[s.Texture] = img
					logger.Debug("texture loaded", "path", s.Texture, "size", img.Bounds().Size())
					continue
				}
				failed[s.Texture] = true
				logger.Warn("texture unavailable, using solid colour", "path", s.Texture, "err", err)
			}
		}
		key := surfaceKey(out.images, "", s.Color)
		if _, ok := out.images[key]; !ok {
			out.images[key] = SolidImage(s.Color, fallbackSize)
		}
	}

	if sc.Background != "" {
		img, err := DecodeImage(filepath.Join(dir, sc.Background), maxSize)
		if err != nil {
			logger.Warn("background unavailable", "path", sc.Background, "err", err)
		} else {
			out.background = img
		}
	}
	return out
}

// TextureSet holds the GPU images of a scene.
type TextureSet struct {
	images     map[string]*ebiten.Image
	background *ebiten.Image
}

// LoadTextures decodes the scene's textures and uploads them.
func LoadTextures(dir string, sc *scene.Scene, maxSize int, logger *slog.Logger) *TextureSet {
	decoded := decodeTextures(dir, sc, maxSize, logger)
	ts := &TextureSet{images: make(map[string]*ebiten.Image, len(decoded.images))}
	for key, img := range decoded.images {
		ts.images[key] = ebiten.NewImageFromImage(img)
	}
	if decoded.background != nil {
		ts.background = ebiten.NewImageFromImage(decoded.background)
	}
	return ts
}

// Key returns the key of the image a surface with the given texture and
// fallback colour is drawn with.
func (ts *TextureSet) Key(path string, c colorful.Color) string {
	return surfaceKey(ts.images, path, c)
}

// Get returns the image for key, or nil.
func (ts *TextureSet) Get(key string) *ebiten.Image {
	return ts.images[key]
}

// Background returns the background image, or nil when there is none.
func (ts *TextureSet) Background() *ebiten.Image {
	return ts.background
}

// Size returns the pixel size of the image for key, or zero.
func (ts *TextureSet) Size(key string) (float64, float64) {
	img, ok := ts.images[key]
	if !ok {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
