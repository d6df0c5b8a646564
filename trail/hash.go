package trail

import (
	"context"
	"fmt"
	"runtime"

	"github.com/corona10/goimagehash"
	"golang.org/x/sync/errgroup"
)

// FrameHash pairs a frame path with its perceptual hash.
type FrameHash struct {
	Path string
	Hash *goimagehash.ImageHash
}

// SimilarPair is a pair of frames whose perceptual hashes are within
// the requested Hamming distance.
type SimilarPair struct {
	A, B     string
	Distance int
}

// HashFrames computes a perceptual hash for every image file in a
// folder, in filename-sorted order. Near-identical consecutive sweeps
// show up as small Hamming distances between their hashes.
func HashFrames(dir string, limit int) ([]FrameHash, error) {
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

	hashes := make([]FrameHash, len(paths))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			img, err := DecodeFrame(path)
			if err != nil {
				return err
			}
			hash, err := goimagehash.PerceptionHash(img)
			if err != nil {
				return fmt.Errorf("failed to hash %s: %w", path, err)
			}
			hashes[i] = FrameHash{Path: path, Hash: hash}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// FindSimilarFrames compares every pair of hashes and returns the
// pairs within threshold, in input order.
func FindSimilarFrames(hashes []FrameHash, threshold int) ([]SimilarPair, error) {
	var pairs []SimilarPair
	for i := 0; i < len(hashes); i++ {
		for j := i + 1; j < len(hashes); j++ {
			distance, err := hashes[i].Hash.Distance(hashes[j].Hash)
			if err != nil {
				return nil, fmt.Errorf("failed to compare %s and %s: %w", hashes[i].Path, hashes[j].Path, err)
			}
			if distance <= threshold {
				pairs = append(pairs, SimilarPair{A: hashes[i].Path, B: hashes[j].Path, Distance: distance})
			}
		}
	}
	return pairs, nil
}
