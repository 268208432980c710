package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lessonfetch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req lessonfetch.FetchRequest) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req lessonfetch.FetchRequest) (string, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
