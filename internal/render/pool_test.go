package render

import (
	"sync"
	"testing"
)

func TestCacheKey(t *testing.T) {
	base := DefaultOptions()

	if cacheKey(base) == cacheKey(base.WithWidth(100)) {
		t.Error("Different widths should produce different keys")
	}
	if cacheKey(base) == cacheKey(base.WithStyle(StyleLight)) {
		t.Error("Different styles should produce different keys")
	}
	if cacheKey(base) != cacheKey(DefaultOptions()) {
		t.Error("Same options should produce same key")
	}
	if cacheKey(base.WithStyle("tokyonight")) != cacheKey(base.WithStyle(StyleTokyoNight)) {
		t.Error("Aliases should share a key with their target style")
	}
}

// size returns the number of distinct option sets pooled
func (p *rendererPool) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pools)
}

func TestPoolGetAndPut(t *testing.T) {
	pool := newRendererPool()
	opts := DefaultOptions()

	renderer, err := pool.get(opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if renderer == nil {
		t.Fatal("expected non-nil renderer")
	}
	if pool.size() != 1 {
		t.Errorf("expected pool count 1, got %d", pool.size())
	}

	pool.put(opts, renderer)
	pool.put(opts, nil)

	if _, err := pool.get(opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.size() != 1 {
		t.Errorf("expected pool count to stay 1, got %d", pool.size())
	}

	if _, err := pool.get(opts.WithWidth(60)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool.size() != 2 {
		t.Errorf("expected a second pool for a new width, got %d", pool.size())
	}
}

func TestPoolConcurrentRender(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("**concurrent**", DefaultOptions()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render error: %v", err)
	}
}
