package pangrid

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io/fs"
	"runtime"
	"sync"

	_ "golang.org/x/image/webp" // register WebP decoder

	"golang.org/x/sync/errgroup"
)

// Preloader decodes a set of images in the background. Decoding happens on
// worker goroutines; GPU images are created later by the consumer on the
// game goroutine.
type Preloader struct {
	done chan struct{}

	mu     sync.Mutex
	images map[string]image.Image
	err    error
}

// Preload starts decoding paths from fsys and returns immediately. Duplicate
// paths are decoded once. Cancelling ctx aborts outstanding work.
func Preload(ctx context.Context, fsys fs.FS, paths []string) *Preloader {
	p := &Preloader{
		done:   make(chan struct{}),
		images: make(map[string]image.Image, len(paths)),
	}
	go p.run(ctx, fsys, unique(paths))
	return p
}

func (p *Preloader) run(ctx context.Context, fsys fs.FS, paths []string) {
	defer close(p.done)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeImage(fsys, path)
			if err != nil {
				return err
			}
			p.mu.Lock()
			p.images[path] = img
			p.mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// Done is closed once every image has been decoded or loading failed.
func (p *Preloader) Done() <-chan struct{} {
	return p.done
}

// Ready reports whether loading has finished, without blocking.
func (p *Preloader) Ready() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until loading finishes or ctx is cancelled.
func (p *Preloader) Wait(ctx context.Context) (map[string]image.Image, error) {
	select {
	case <-p.done:
		return p.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the decoded images keyed by path. It must only be called
// after Done is closed.
func (p *Preloader) Result() (map[string]image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.images, nil
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preload %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("preload %s: decode: %w", path, err)
	}
	return img, nil
}

func unique(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
