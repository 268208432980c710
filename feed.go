package lessonfetch

import "context"

// FeedEntry is one item of an RSS or Atom feed.
type FeedEntry struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// FeedService resolves feed URLs to their newest entry. Sites configured
// with a feed import whatever the feed published last.
type FeedService interface {
	// LatestEntry fetches the feed and returns its first entry.
	// Returns ENOTFOUND if the feed has no entries.
	LatestEntry(ctx context.Context, feedURL string) (*FeedEntry, error)
}
