package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.SiteService = (*SiteService)(nil)

// SiteService is a mock implementation of lessonfetch.SiteService.
type SiteService struct {
	FindSitesFn      func(ctx context.Context) ([]*lessonfetch.Site, error)
	FindSiteBySlugFn func(ctx context.Context, slug string) (*lessonfetch.Site, error)
	SaveSiteFn       func(ctx context.Context, site *lessonfetch.Site) error
	DeleteSiteFn     func(ctx context.Context, slug string) error
}

func (s *SiteService) FindSites(ctx context.Context) ([]*lessonfetch.Site, error) {
	return s.FindSitesFn(ctx)
}

func (s *SiteService) FindSiteBySlug(ctx context.Context, slug string) (*lessonfetch.Site, error) {
	return s.FindSiteBySlugFn(ctx, slug)
}

func (s *SiteService) SaveSite(ctx context.Context, site *lessonfetch.Site) error {
	return s.SaveSiteFn(ctx, site)
}

func (s *SiteService) DeleteSite(ctx context.Context, slug string) error {
	return s.DeleteSiteFn(ctx, slug)
}
