package resources

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/flopp/go-findfont"

	"github.com/ChenKe404/ckfont/core"

	// Page images may be PNG, BMP or TIFF.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	imageResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case imageResourceType:
		s = fmt.Sprintf("image not found: %s", res)
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// --- Images ---------------------------------------------------------------

type imgPlusErr struct {
	img image.Image
	err error
}

// ImagePromise is an image being resolved in the background.
type ImagePromise interface {
	Image() (image.Image, error)
}

type imageLoader struct {
	await func(ctx context.Context) (image.Image, error)
}

func (loader imageLoader) Image() (image.Image, error) {
	return loader.await(context.Background())
}

// ResolveImage loads and decodes a page image. A relative name is
// resolved against dir; an absolute name is used as given. Decoding
// happens in the background, Image() awaits it.
func ResolveImage(name string, dir string) ImagePromise {
	ch := make(chan imgPlusErr)
	go func(ch chan<- imgPlusErr) {
		result := imgPlusErr{}
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}
		file, err := os.Open(path)
		if err != nil {
			result.err = NotFound(name, imageResourceType)
		} else {
			defer file.Close()
			result.img, _, err = image.Decode(file)
			if err != nil {
				result.err = core.WrapError(err, core.EINVALID, "decoding image %s", name)
			} else {
				T().Debugf("resolved image %s", path)
			}
		}
		ch <- result
		close(ch)
	}(ch)
	return imageLoader{
		await: func(ctx context.Context) (image.Image, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.img, r.err
			}
		},
	}
}

// --- Font files ------------------------------------------------------------

type pathPlusErr struct {
	path string
	err  error
}

// FilePromise is a file path being resolved in the background.
type FilePromise interface {
	Path() (string, error)
}

type fileLoader struct {
	await func(ctx context.Context) (string, error)
}

func (loader fileLoader) Path() (string, error) {
	return loader.await(context.Background())
}

// ResolveFontFile locates a font container or descriptor file. The name
// is tried as a path first, then searched in the system's font
// directories.
func ResolveFontFile(name string) FilePromise {
	ch := make(chan pathPlusErr)
	go func(ch chan<- pathPlusErr) {
		result := pathPlusErr{}
		if _, err := os.Stat(name); err == nil {
			result.path = name
		} else if fpath, err := findfont.Find(name); err == nil && fpath != "" {
			T().Debugf("%s is a system font", name)
			result.path = fpath
		} else {
			result.err = NotFound(name, fontResourceType)
		}
		ch <- result
		close(ch)
	}(ch)
	return fileLoader{
		await: func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case r := <-ch:
				return r.path, r.err
			}
		},
	}
}
