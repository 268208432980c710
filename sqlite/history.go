package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lessonfetch/lessonfetch"
)

// Compile-time interface verification.
var _ lessonfetch.HistoryService = (*HistoryService)(nil)

// HistoryService implements lessonfetch.HistoryService using SQLite.
type HistoryService struct {
	db *DB
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(db *DB) *HistoryService {
	return &HistoryService{db: db}
}

// RecordImport appends a record to the import ledger.
func (s *HistoryService) RecordImport(ctx context.Context, rec *lessonfetch.ImportRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ImportedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO imports (id, site_slug, source_url, title, language, words, content_hash, lesson_id, text_path, payload_path, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.SiteSlug, rec.SourceURL, rec.Title, rec.Language, rec.Words, rec.ContentHash,
		rec.LessonID, rec.TextPath, rec.PayloadPath, rec.ImportedAt.Format(time.RFC3339))

	return err
}

// FindImports retrieves records matching the filter, newest first.
func (s *HistoryService) FindImports(ctx context.Context, filter lessonfetch.ImportFilter) ([]*lessonfetch.ImportRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, site_slug, source_url, title, language, words, content_hash, lesson_id, text_path, payload_path, imported_at FROM imports WHERE 1=1")

	if filter.SiteSlug != nil {
		query.WriteString(" AND site_slug = ?")
		args = append(args, *filter.SiteSlug)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	// rowid breaks ties between records imported within the same second.
	query.WriteString(" ORDER BY imported_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*lessonfetch.ImportRecord
	for rows.Next() {
		rec, err := scanImportRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// SeenContent reports whether content with the hash was already imported
// from the URL. A page that changed since the last import is not "seen",
// so daily pages with fresh content import again.
func (s *HistoryService) SeenContent(ctx context.Context, sourceURL, contentHash string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM imports WHERE source_url = ? AND content_hash = ?
	`, sourceURL, contentHash).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// scanImportRecord reads one row into an ImportRecord.
func scanImportRecord(rows *sql.Rows) (*lessonfetch.ImportRecord, error) {
	var rec lessonfetch.ImportRecord
	var importedAt string

	if err := rows.Scan(&rec.ID, &rec.SiteSlug, &rec.SourceURL, &rec.Title, &rec.Language,
		&rec.Words, &rec.ContentHash, &rec.LessonID, &rec.TextPath, &rec.PayloadPath, &importedAt); err != nil {
		return nil, err
	}

	var err error
	rec.ImportedAt, err = parseRFC3339(importedAt, "imported_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// parseRFC3339 parses a timestamp column, naming the field in the error.
func parseRFC3339(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", field, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when set.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
