package folio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.RGBA{0xff, 0, 0, 0xff})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFSImageLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"images/card.png":  {Data: encodePNG(t, 40, 20)},
		"images/big.png":   {Data: encodePNG(t, 400, 100)},
		"images/notes.txt": {Data: []byte("hello, not an image")},
	}
	l := FSImageLoader{FS: fsys, MaxSize: 200}
	ctx := context.Background()

	img, err := l.LoadImage(ctx, "images/card.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
	r, _, _, _ := img.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	// Leading slashes and dot segments resolve inside the FS.
	_, err = l.LoadImage(ctx, "/images/../images/card.png")
	assert.NoError(t, err)

	img, err = l.LoadImage(ctx, "images/big.png")
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	_, err = l.LoadImage(ctx, "images/notes.txt")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = l.LoadImage(ctx, "images/missing.png")
	assert.Error(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = l.LoadImage(cancelled, "images/card.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFitImage(t *testing.T) {
	tall := image.NewRGBA(image.Rect(0, 0, 100, 400))
	got := fitImage(tall, 100)
	assert.Equal(t, image.Rect(0, 0, 25, 100), got.Bounds())

	small := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, small, fitImage(small, 100))
	assert.Same(t, tall, fitImage(tall, 0))
}

func TestTextureLifecycle(t *testing.T) {
	tex := NewTexture(image.NewRGBA(image.Rect(0, 0, 3, 2)))
	w, h := tex.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	assert.False(t, tex.IsPlaceholder())

	tex.Dispose()
	assert.Nil(t, tex.Image())
	tex.Dispose()

	var none *Texture
	w, h = none.Size()
	assert.Zero(t, w+h)
	assert.Nil(t, none.Image())
}

func TestTextureInbox(t *testing.T) {
	var q textureInbox
	q.push(textureResult{gen: 1})
	q.push(textureResult{gen: 2})

	got := q.drain()
	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].gen)
	assert.Empty(t, q.drain())
}

func TestImageLoaderFunc(t *testing.T) {
	var called string
	l := ImageLoaderFunc(func(_ context.Context, ref string) (image.Image, error) {
		called = ref
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})
	_, err := l.LoadImage(context.Background(), "x.png")
	require.NoError(t, err)
	assert.Equal(t, "x.png", called)
}
