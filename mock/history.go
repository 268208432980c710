package mock

import (
	"context"

	"github.com/lessonfetch/lessonfetch"
)

var _ lessonfetch.HistoryService = (*HistoryService)(nil)

// HistoryService is a mock implementation of lessonfetch.HistoryService.
type HistoryService struct {
	RecordImportFn func(ctx context.Context, rec *lessonfetch.ImportRecord) error
	FindImportsFn  func(ctx context.Context, filter lessonfetch.ImportFilter) ([]*lessonfetch.ImportRecord, error)
	SeenContentFn  func(ctx context.Context, sourceURL, contentHash string) (bool, error)
}

func (s *HistoryService) RecordImport(ctx context.Context, rec *lessonfetch.ImportRecord) error {
	return s.RecordImportFn(ctx, rec)
}

func (s *HistoryService) FindImports(ctx context.Context, filter lessonfetch.ImportFilter) ([]*lessonfetch.ImportRecord, error) {
	return s.FindImportsFn(ctx, filter)
}

func (s *HistoryService) SeenContent(ctx context.Context, sourceURL, contentHash string) (bool, error) {
	return s.SeenContentFn(ctx, sourceURL, contentHash)
}
