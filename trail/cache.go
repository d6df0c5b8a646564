package trail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrNoImages is returned when a folder contains no matching image files.
var ErrNoImages = errors.New("no image files found")

// DimensionMismatchError reports a frame whose size differs from the
// first frame of its folder. History compositing requires a uniform
// canvas size, so this is checked before any parallel work starts.
type DimensionMismatchError struct {
	Path string
	Want image.Point
	Got  image.Point
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("frame %s is %dx%d, expected %dx%d: all frames in a folder must match",
		e.Path, e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// FrameCache holds every decoded frame of one folder, in
// filename-sorted order. It is built once per folder, immutable
// afterwards, and safe to share read-only across workers.
type FrameCache struct {
	Paths  []string
	Frames []*image.NRGBA
	Width  int
	Height int
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	return len(c.Frames)
}

// LoadFrameCache lists the folder's image files in sorted order,
// truncates to limit if positive, and decodes them all. Decoding runs
// in parallel but the cache order always matches the sorted listing.
func LoadFrameCache(dir string, limit int) (*FrameCache, error) {
	paths, err := ListImageFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoImages)
	}

	frames := make([]*image.NRGBA, len(paths))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			img, err := DecodeFrame(path)
			if err != nil {
				return err
			}
			frames[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	want := frames[0].Bounds().Size()
	for i, frame := range frames {
		if got := frame.Bounds().Size(); got != want {
			return nil, &DimensionMismatchError{Path: paths[i], Want: want, Got: got}
		}
	}

	return &FrameCache{
		Paths:  paths,
		Frames: frames,
		Width:  want.X,
		Height: want.Y,
	}, nil
}
