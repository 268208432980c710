package main

import (
	"encoding/json"
	"fmt"

	"github.com/lessonfetch/lessonfetch"
)

// Run executes the sites list command.
func (c *SitesListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites configured. Use 'lessonfetch sites add' or 'lessonfetch pick' to create one.")
		return nil
	}

	for _, site := range sites {
		target := site.URL
		if site.FeedURL != "" {
			target = site.FeedURL + " (feed)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", site.Slug, target)
	}
	return nil
}

// Run executes the sites show command.
func (c *SitesShowCmd) Run(deps *Dependencies) error {
	site, err := deps.Sites.FindSiteBySlug(deps.Ctx, c.Slug)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	data, err := json.MarshalIndent(site, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "%s\n", data)
	return nil
}

// Run executes the sites add command.
func (c *SitesAddCmd) Run(deps *Dependencies) error {
	site := &lessonfetch.Site{
		Slug:            c.Slug,
		URL:             c.URL,
		FeedURL:         c.FeedURL,
		Selectors:       c.Selectors,
		APIKey:          c.Token,
		Language:        c.Language,
		BrowserLanguage: c.BrowserLanguage,
		AcceptLanguage:  c.AcceptLanguage,
		SourceLang:      c.SourceLang,
		Title:           c.Title,
		CollectionID:    c.Collection,
		MinWords:        c.MinWords,
		Engine:          c.Engine,
	}

	if err := site.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	if err := deps.Sites.SaveSite(deps.Ctx, site); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved site %q (%s)\n", site.Slug, firstNonEmpty(site.URL, site.FeedURL))
	return nil
}

// Run executes the sites delete command.
func (c *SitesDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return lessonfetch.Errorf(lessonfetch.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Sites.DeleteSite(deps.Ctx, c.Slug); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lessonfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted site %q\n", c.Slug)
	return nil
}
