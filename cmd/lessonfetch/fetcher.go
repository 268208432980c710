package main

import (
	"context"
	"sync"

	"github.com/lessonfetch/lessonfetch"
)

// Ensure lazyBrowser implements lessonfetch.Fetcher at compile time.
var _ lessonfetch.Fetcher = (*lazyBrowser)(nil)

// lazyBrowser defers launching Chrome until a site actually needs it, so
// imports of plain HTTP sites never pay the browser startup cost.
type lazyBrowser struct {
	open func() (lessonfetch.Fetcher, error)

	mu      sync.Mutex
	fetcher lessonfetch.Fetcher
}

func newLazyBrowser(open func() (lessonfetch.Fetcher, error)) *lazyBrowser {
	return &lazyBrowser{open: open}
}

// Fetch launches the browser on first use and delegates to it.
func (b *lazyBrowser) Fetch(ctx context.Context, req lessonfetch.FetchRequest) (string, error) {
	fetcher, err := b.get()
	if err != nil {
		return "", err
	}
	return fetcher.Fetch(ctx, req)
}

func (b *lazyBrowser) get() (lessonfetch.Fetcher, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fetcher != nil {
		return b.fetcher, nil
	}
	fetcher, err := b.open()
	if err != nil {
		return nil, err
	}
	b.fetcher = fetcher
	return fetcher, nil
}

// Close shuts the browser down if it was ever launched.
func (b *lazyBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.fetcher == nil {
		return nil
	}
	err := b.fetcher.Close()
	b.fetcher = nil
	return err
}
