package dataset

import (
	"context"
)

// Prefetcher wraps a Loader and fills a bounded channel of batches from
// a background goroutine, so batch assembly overlaps with training.
//
// A Prefetcher serves one consumer at a time. Next and Reset must not be
// called concurrently.
type Prefetcher struct {
	loader *Loader
	depth  int

	ctx    context.Context
	cancel context.CancelFunc
	ch     chan Batch
}

// NewPrefetcher starts prefetching batches from loader into a channel of
// the given depth. Panics if depth is not positive.
//
// The producer goroutine stops when ctx is canceled or Stop is called.
func NewPrefetcher(ctx context.Context, loader *Loader, depth int) *Prefetcher {
	if depth <= 0 {
		panic("prefetcher: depth must be positive")
	}

	p := &Prefetcher{
		loader: loader,
		depth:  depth,
		ctx:    ctx,
	}
	p.start()
	return p
}

// start launches a producer goroutine for one pass over the loader.
func (p *Prefetcher) start() {
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancel = cancel
	p.ch = make(chan Batch, p.depth)

	go func(ch chan<- Batch) {
		defer close(ch)
		p.loader.Reset()
		for {
			b, ok := p.loader.Next()
			if !ok {
				return
			}
			select {
			case ch <- b:
			case <-ctx.Done():
				return
			}
		}
	}(p.ch)
}

// Next returns the next prefetched batch. ok is false once the pass over
// the loader is exhausted or the prefetcher was stopped.
func (p *Prefetcher) Next() (Batch, bool) {
	b, ok := <-p.ch
	return b, ok
}

// Reset discards any buffered batches and starts a fresh pass over the
// loader, reshuffling if the loader shuffles.
func (p *Prefetcher) Reset() {
	p.cancel()
	for range p.ch {
		// Drain until the producer closes the channel.
	}
	p.start()
}

// Batches returns the number of batches per pass.
func (p *Prefetcher) Batches() int {
	return p.loader.Batches()
}

// Stop cancels the producer goroutine and discards buffered batches.
// The prefetcher cannot be used after Stop.
func (p *Prefetcher) Stop() {
	p.cancel()
	for range p.ch {
		// Drain until the producer closes the channel.
	}
}
