package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.Picker = (*Picker)(nil)

// Picker is a mock implementation of lessonfetch.Picker.
type Picker struct {
	PickFn  func(ctx context.Context, url string, initial []string) ([]string, error)
	CloseFn func() error
}

func (p *Picker) Pick(ctx context.Context, url string, initial []string) ([]string, error) {
	return p.PickFn(ctx, url, initial)
}

func (p *Picker) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
