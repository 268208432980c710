package main

import (
	"fmt"

	"github.com/lessonfetch/lessonfetch"
)

// Run executes the pick command.
func (c *PickCmd) Run(deps *Dependencies) error {
	site, err := c.targetSite(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Opening %s. Click the content you want, then press \"Save selectors\".\n", site.URL)

	selectors, err := deps.Picker.Pick(deps.Ctx, site.URL, site.Selectors)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}
	site.Selectors = selectors

	if err := deps.Sites.SaveSite(deps.Ctx, site); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	if len(selectors) == 0 {
		fmt.Fprintf(deps.Stdout, "No selectors picked; site %q will use the %s engine.\n",
			site.Slug, firstNonEmpty(site.Engine, lessonfetch.EngineHeuristic))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Saved %d selector(s) to site %q:\n", len(selectors), site.Slug)
	for _, selector := range selectors {
		fmt.Fprintf(deps.Stdout, "  %s\n", selector)
	}
	return nil
}

// targetSite loads the site to edit, creating a fresh one when the slug is
// unknown. The URL argument beats the configured page.
func (c *PickCmd) targetSite(deps *Dependencies) (*lessonfetch.Site, error) {
	slug := c.Site
	if slug == "" {
		if c.URL == "" {
			return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "a URL or --site is required")
		}
		derived, err := lessonfetch.SlugForURL(c.URL)
		if err != nil {
			return nil, err
		}
		slug = derived
	}

	site, err := deps.Sites.FindSiteBySlug(deps.Ctx, slug)
	if err != nil {
		if lessonfetch.ErrorCode(err) != lessonfetch.ENOTFOUND {
			return nil, err
		}
		site = &lessonfetch.Site{Slug: slug}
	}

	if c.URL != "" {
		site.URL = c.URL
	}
	if site.URL == "" {
		return nil, lessonfetch.Errorf(lessonfetch.EINVALID, "site %q has no URL; pass one as an argument", slug)
	}

	if c.Language != "" {
		site.Language = c.Language
	}
	if c.Collection != 0 {
		site.CollectionID = c.Collection
	}
	if c.MinWords > 0 {
		site.MinWords = c.MinWords
	}
	if c.Title != "" {
		site.Title = c.Title
	}
	return site, nil
}
