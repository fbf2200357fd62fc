//go:build js
// +build js

package web

import (
	"errors"
	"fmt"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/pixel-sonify/sonify"
)

// Loader decodes image URLs and data URIs through an <img> element and
// samples them on an offscreen canvas. The source must allow anonymous
// cross-origin reads.
type Loader struct {
	images map[string]*js.Object
}

func NewLoader() *Loader {
	return &Loader{images: make(map[string]*js.Object)}
}

// Image returns the decoded element for src, if Load succeeded for it.
func (l *Loader) Image(src string) *js.Object {
	return l.images[src]
}

// Load decodes src and calls done with its downsampled samples.
func (l *Loader) Load(src string, done func(*sonify.SampleBuffer, error)) {
	img := js.Global.Get("Image").New()
	img.Set("crossOrigin", "Anonymous")

	img.Set("onload", func() {
		buf, err := sample(img)
		if err != nil {
			done(nil, err)
			return
		}
		for k := range l.images {
			delete(l.images, k)
		}
		l.images[src] = img
		done(buf, nil)
	})
	img.Set("onerror", func() {
		done(nil, fmt.Errorf("%w: browser could not load the image", sonify.ErrDecode))
	})
	img.Set("src", src)
}

func sample(img *js.Object) (buf *sonify.SampleBuffer, err error) {
	// getImageData throws on tainted canvases.
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(*js.Error); ok {
				err = fmt.Errorf("%w: %s", sonify.ErrDecode, jsErr.Error())
				return
			}
			panic(r)
		}
	}()

	w, h := img.Get("width").Int(), img.Get("height").Int()
	if w == 0 || h == 0 {
		return nil, errors.New("image has no pixels")
	}
	sw, sh := sonify.ScaledSize(w, h, sonify.MaxPlayableSize)

	var data *js.Object
	RenderToCanvas(sw, sh, func(_, ctx *js.Object) {
		ctx.Call("drawImage", img, 0, 0, sw, sh)
		data = ctx.Call("getImageData", 0, 0, sw, sh).Get("data")
	})

	pix := make([]uint8, data.Length())
	for i := range pix {
		pix[i] = uint8(data.Index(i).Int())
	}
	return sonify.NewSampleBuffer(sw, sh, pix)
}
