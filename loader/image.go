package loader

import (
	"context"
	"fmt"
	"image"
	"strings"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/types"
)

// Image is a decoded image file.
type Image struct {
	// Format is the name the decoder registered ("png", "jpeg", "webp", ...).
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// ColorModel names the concrete pixel layout, e.g. "NRGBA" or "YCbCr".
	ColorModel string `json:"color_model"`

	Image image.Image `json:"-"`
}

// ImageLoader decodes a single image file.
type ImageLoader struct {
	opts options
}

// NewImageLoader creates an ImageLoader.
func NewImageLoader(opts ...Option) *ImageLoader {
	return &ImageLoader{opts: newOptions(opts)}
}

// Load decodes the image at path.
func (l *ImageLoader) Load(ctx context.Context, path string) (_ *result.Single[Image], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, finish := l.opts.begin(ctx, "image", path)
	defer func() { finish(1, err) }()

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.opts.fileRead("image", path)

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, types.NewError(types.ErrParse, "cannot decode image").WithPath(path).WithCause(err)
	}

	bounds := img.Bounds()
	return result.NewSingle(path, Image{
		Format:     format,
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		ColorModel: strings.TrimPrefix(fmt.Sprintf("%T", img), "*image."),
		Image:      img,
	}), nil
}

// SupportedTypes returns the extensions of every registered decoder.
func (l *ImageLoader) SupportedTypes() []string {
	return []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".webp"}
}
