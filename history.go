package lessonfetch

import (
	"context"
	"time"
)

// ImportRecord is the ledger entry for one completed import.
type ImportRecord struct {
	ID          string    `json:"id"`
	SiteSlug    string    `json:"siteSlug"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Language    string    `json:"language"`
	Words       int       `json:"words"`
	ContentHash string    `json:"contentHash"`
	LessonID    int64     `json:"lessonId"`
	TextPath    string    `json:"textPath"`
	PayloadPath string    `json:"payloadPath"`
	ImportedAt  time.Time `json:"importedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ImportRecord) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "import record source URL required")
	}
	return nil
}

// ImportFilter represents a filter for FindImports.
type ImportFilter struct {
	SiteSlug  *string `json:"siteSlug"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// HistoryService records completed imports and answers duplicate checks.
type HistoryService interface {
	// RecordImport appends a record to the ledger. The service assigns
	// ID, ContentHash is expected to be set by the caller.
	RecordImport(ctx context.Context, rec *ImportRecord) error

	// FindImports retrieves records matching the filter,
	// newest first.
	FindImports(ctx context.Context, filter ImportFilter) ([]*ImportRecord, error)

	// SeenContent reports whether content with the hash was already
	// imported from the URL. Used to skip unchanged daily pages.
	SeenContent(ctx context.Context, sourceURL, contentHash string) (bool, error)
}
