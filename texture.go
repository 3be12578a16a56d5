package folio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"sync"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when a card image reference does not hold image data.
var ErrNotImage = errors.New("not an image")

// Texture is a card image. The decoded pixels are kept on the CPU side; the
// GPU image is created on first use from the draw thread and freed by Dispose.
type Texture struct {
	src         image.Image
	img         *ebiten.Image
	placeholder bool
	disposed    bool
}

// NewTexture wraps a decoded image.
func NewTexture(src image.Image) *Texture {
	return &Texture{src: src}
}

// Source returns the decoded image.
func (t *Texture) Source() image.Image { return t.src }

// IsPlaceholder reports whether this is a generated placeholder.
func (t *Texture) IsPlaceholder() bool { return t.placeholder }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (w, h int) {
	if t == nil || t.src == nil {
		return 0, 0
	}
	b := t.src.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the GPU image, uploading it on first call. Returns nil once
// the texture is disposed.
func (t *Texture) Image() *ebiten.Image {
	if t == nil || t.disposed || t.src == nil {
		return nil
	}
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}

// Dispose frees the GPU image. The texture cannot be drawn afterwards.
func (t *Texture) Dispose() {
	if t == nil || t.disposed {
		return
	}
	t.disposed = true
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// ImageLoader resolves a project image reference to decoded pixels. Loads run
// off the main goroutine; implementations must honor ctx cancellation where
// they can.
type ImageLoader interface {
	LoadImage(ctx context.Context, ref string) (image.Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// LoadImage calls f.
func (f ImageLoaderFunc) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}

// FSImageLoader loads card images from a file system. PNG, JPEG, GIF, WebP
// and TGA are decoded; images larger than MaxSize on either edge are scaled
// down to fit.
type FSImageLoader struct {
	FS      fs.FS
	MaxSize int
}

// LoadImage reads and decodes ref.
func (l FSImageLoader) LoadImage(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := strings.TrimPrefix(path.Clean("/"+ref), "/")
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", ref, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeImage(name, data, l.MaxSize)
}

// decodeImage sniffs data and decodes it. TGA has no magic number, so it is
// recognized by extension only.
func decodeImage(name string, data []byte, maxSize int) (image.Image, error) {
	isTGA := strings.EqualFold(path.Ext(name), ".tga")
	if !isTGA && !filetype.IsImage(data) {
		return nil, fmt.Errorf("texture: %s: %w", name, ErrNotImage)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	return fitImage(img, maxSize), nil
}

// fitImage scales img down so neither edge exceeds maxSize, keeping the
// aspect ratio. maxSize <= 0 disables scaling.
func fitImage(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	nw, nh := maxSize, maxSize
	if w >= h {
		nh = max(1, h*maxSize/w)
	} else {
		nw = max(1, w*maxSize/h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// textureResult is a finished load waiting to be applied on the main thread.
type textureResult struct {
	card *Card
	gen  uint64
	img  image.Image
	err  error
}

// textureInbox hands load results from loader goroutines to Engine.Update.
type textureInbox struct {
	mu      sync.Mutex
	results []textureResult
}

func (q *textureInbox) push(r textureResult) {
	q.mu.Lock()
	q.results = append(q.results, r)
	q.mu.Unlock()
}

// drain returns the queued results and clears the queue.
func (q *textureInbox) drain() []textureResult {
	q.mu.Lock()
	out := q.results
	q.results = nil
	q.mu.Unlock()
	return out
}
