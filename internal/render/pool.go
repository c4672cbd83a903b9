package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererPool keeps one sync.Pool per option set.
// glamour.TermRenderer must not be shared between concurrent Render calls.
type rendererPool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

func newRendererPool() *rendererPool {
	return &rendererPool{pools: make(map[string]*sync.Pool)}
}

var globalPool = newRendererPool()

func cacheKey(opts Options) string {
	return fmt.Sprintf("%s:%d:%t:%t:%t",
		NormalizeStyle(opts.Style),
		opts.Width,
		opts.EnableEmoji,
		opts.PreserveNewLines,
		opts.TableWrap,
	)
}

func (p *rendererPool) getPool(opts Options) *sync.Pool {
	key := cacheKey(opts)

	p.mu.RLock()
	if pool, ok := p.pools[key]; ok {
		p.mu.RUnlock()
		return pool
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[key]; ok {
		return pool
	}

	pool := &sync.Pool{
		New: func() interface{} {
			renderer, err := newRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[key] = pool
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	renderer := p.getPool(opts).Get()
	if renderer == nil {
		// New failed; retry directly so the caller sees the error
		return newRenderer(opts)
	}
	return renderer.(*glamour.TermRenderer), nil
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.getPool(opts).Put(renderer)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := NormalizeStyle(opts.Style)

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
	}
	if IsStandardStyle(style) {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(style))
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}
