package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/lessonfetch/lessonfetch"
)

// Ensure FeedService implements lessonfetch.FeedService.
var _ lessonfetch.FeedService = (*FeedService)(nil)

// FeedService resolves RSS and Atom feeds to their newest entry, so a site
// can be configured with a feed URL instead of a fixed article URL.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// LatestEntry fetches the feed and returns its first entry. Both RSS 2.0
// (<rss><channel><item>) and Atom (<feed><entry>) documents are accepted;
// feeds list newest first, so the first entry is today's article.
func (s *FeedService) LatestEntry(ctx context.Context, feedURL string) (*lessonfetch.FeedEntry, error) {
	body, err := s.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "parsing feed XML: %s", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "empty feed document")
	}

	var entry *lessonfetch.FeedEntry
	switch root.Tag {
	case "rss":
		entry = firstRSSItem(root)
	case "feed":
		entry = firstAtomEntry(root)
	default:
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "unrecognized feed root element <%s>", root.Tag)
	}

	if entry == nil {
		return nil, lessonfetch.Errorf(lessonfetch.ENOTFOUND, "feed %s has no entries", feedURL)
	}

	entry.URL = resolveEntryURL(feedURL, entry.URL)
	if entry.URL == "" {
		return nil, lessonfetch.Errorf(lessonfetch.ENOTFOUND, "feed %s entry has no link", feedURL)
	}

	return entry, nil
}

// firstRSSItem extracts the first <item> of an RSS 2.0 channel.
func firstRSSItem(root *etree.Element) *lessonfetch.FeedEntry {
	channel := root.SelectElement("channel")
	if channel == nil {
		return nil
	}

	for _, item := range channel.SelectElements("item") {
		entry := &lessonfetch.FeedEntry{}
		if title := item.SelectElement("title"); title != nil {
			entry.Title = strings.TrimSpace(title.Text())
		}
		if link := item.SelectElement("link"); link != nil {
			entry.URL = strings.TrimSpace(link.Text())
		}
		return entry
	}

	return nil
}

// firstAtomEntry extracts the first <entry> of an Atom feed. The entry link
// is the alternate link when present, otherwise the first link element.
func firstAtomEntry(root *etree.Element) *lessonfetch.FeedEntry {
	for _, item := range root.SelectElements("entry") {
		entry := &lessonfetch.FeedEntry{}
		if title := item.SelectElement("title"); title != nil {
			entry.Title = strings.TrimSpace(title.Text())
		}

		var fallback string
		for _, link := range item.SelectElements("link") {
			href := strings.TrimSpace(link.SelectAttrValue("href", ""))
			if href == "" {
				continue
			}
			rel := link.SelectAttrValue("rel", "")
			if rel == "" || rel == "alternate" {
				entry.URL = href
				break
			}
			if fallback == "" {
				fallback = href
			}
		}
		if entry.URL == "" {
			entry.URL = fallback
		}

		return entry
	}

	return nil
}

// resolveEntryURL resolves a possibly relative entry link against the feed URL.
func resolveEntryURL(feedURL, entryURL string) string {
	if entryURL == "" {
		return ""
	}
	base, err := url.Parse(feedURL)
	if err != nil {
		return entryURL
	}
	ref, err := url.Parse(entryURL)
	if err != nil {
		return entryURL
	}
	return base.ResolveReference(ref).String()
}

// fetchFeed fetches the feed URL and returns the response body.
func (s *FeedService) fetchFeed(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, statusError(resp.StatusCode, feedURL)
	}

	return resp.Body, nil
}
