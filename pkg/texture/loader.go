package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/taigrr/x3dgl/pkg/render"
)

// format pairs a magic prefix with its decoder. '?' matches any byte.
type format struct {
	magic  string
	decode func(io.Reader) (image.Image, error)
}

// The tga package registers an empty magic with the image package, which
// would claim every stream passed to image.Decode. Formats are sniffed
// here instead and TGA, which has no signature, is the fallback.
var formats = []format{
	{"\x89PNG\r\n\x1a\n", png.Decode},
	{"\xff\xd8", jpeg.Decode},
	{"BM", bmp.Decode},
	{"II*\x00", tiff.Decode},
	{"MM\x00*", tiff.Decode},
	{"RIFF????WEBP", webp.Decode},
}

// ReadImage decodes the image file at path into a level. Alpha is dropped.
func ReadImage(path string) (Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return Level{}, fmt.Errorf("texture: read %s: %w", path, err)
	}
	defer f.Close()

	img, err := decodeImage(f, strings.EqualFold(filepath.Ext(path), ".tga"))
	if err != nil {
		return Level{}, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// Decode reads a PNG, JPEG, TGA, BMP, TIFF or WebP stream into a level.
func Decode(r io.Reader) (Level, error) {
	img, err := decodeImage(r, false)
	if err != nil {
		return Level{}, fmt.Errorf("texture: decode: %w", err)
	}
	return FromImage(img), nil
}

func decodeImage(r io.Reader, isTGA bool) (image.Image, error) {
	if isTGA {
		return tga.Decode(r)
	}

	br := bufio.NewReader(r)
	for _, f := range formats {
		b, err := br.Peek(len(f.magic))
		if err == nil && match(f.magic, b) {
			return f.decode(br)
		}
	}

	img, err := tga.Decode(br)
	if err != nil {
		return nil, errors.Join(image.ErrFormat, err)
	}
	return img, nil
}

func match(magic string, b []byte) bool {
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// FromImage converts any image to a level.
func FromImage(src image.Image) Level {
	rgba, ok := src.(*image.NRGBA)
	if !ok {
		b := src.Bounds()
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)
	}

	b := rgba.Bounds()
	l := NewLevel(b.Dx(), b.Dy())
	for y := range l.Height {
		for x := range l.Width {
			i := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			p := rgba.Pix[i : i+3 : i+3]
			l.Texels[y*l.Width+x] = render.RGB{R: float64(p[0]), G: float64(p[1]), B: float64(p[2])}
		}
	}
	return l
}
