package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of lessonfetch.FeedService.
type FeedService struct {
	LatestEntryFn func(ctx context.Context, feedURL string) (*lessonfetch.FeedEntry, error)
}

func (s *FeedService) LatestEntry(ctx context.Context, feedURL string) (*lessonfetch.FeedEntry, error) {
	return s.LatestEntryFn(ctx, feedURL)
}
