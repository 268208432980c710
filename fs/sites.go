// Package fs provides file-based storage for site configurations and
// prepared lesson artifacts.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lessonfetch/lessonfetch"
)

// Ensure SiteService implements lessonfetch.SiteService at compile time.
var _ lessonfetch.SiteService = (*SiteService)(nil)

// SiteService stores site configurations as one JSON file per site,
// named <slug>.json, in a single directory.
type SiteService struct {
	dir string
}

// NewSiteService creates a SiteService rooted at dir. The directory is
// created on the first save.
func NewSiteService(dir string) *SiteService {
	return &SiteService{dir: dir}
}

// path returns the config file path for a slug.
func (s *SiteService) path(slug string) string {
	return filepath.Join(s.dir, slug+".json")
}

// FindSites returns all configured sites sorted by slug.
func (s *SiteService) FindSites(ctx context.Context) ([]*lessonfetch.Site, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []*lessonfetch.Site{}, nil
	}
	if err != nil {
		return nil, err
	}

	sites := make([]*lessonfetch.Site, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".json")
		site, err := s.readSite(slug)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].Slug < sites[j].Slug })
	return sites, nil
}

// FindSiteBySlug returns the site stored under slug.
// Returns ENOTFOUND if no such site exists.
func (s *SiteService) FindSiteBySlug(ctx context.Context, slug string) (*lessonfetch.Site, error) {
	site, err := s.readSite(slug)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, lessonfetch.Errorf(lessonfetch.ENOTFOUND, "site %q not found", slug)
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// SaveSite validates and writes the site config. The write goes to a
// temporary file first and is moved into place atomically.
func (s *SiteService) SaveSite(ctx context.Context, site *lessonfetch.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(site, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := s.path(site.Slug) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(site.Slug))
}

// DeleteSite removes the site stored under slug.
// Returns ENOTFOUND if no such site exists.
func (s *SiteService) DeleteSite(ctx context.Context, slug string) error {
	err := os.Remove(s.path(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return lessonfetch.Errorf(lessonfetch.ENOTFOUND, "site %q not found", slug)
	}
	return err
}

// readSite loads and decodes one site config file.
func (s *SiteService) readSite(slug string) (*lessonfetch.Site, error) {
	data, err := os.ReadFile(s.path(slug))
	if err != nil {
		return nil, err
	}

	var site lessonfetch.Site
	if err := json.Unmarshal(data, &site); err != nil {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "site config %s: %s", slug+".json", err)
	}
	site.Slug = slug

	return &site, nil
}
