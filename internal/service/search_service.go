package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lumenhq/lumen-api/internal/repository"
)

// maxRecentSearches bounds the stored search history.
const maxRecentSearches = 10

// SearchService maintains the UI search history: most recent first,
// deduplicated, bounded.
type SearchService interface {
	Recent(ctx context.Context) ([]string, error)
	Record(ctx context.Context, term string) ([]string, error)
	Clear(ctx context.Context) error
}

type searchService struct {
	sessions repository.SessionRepository
	logger   zerolog.Logger
}

// NewSearchService builds the search-history service.
func NewSearchService(sessions repository.SessionRepository, logger zerolog.Logger) SearchService {
	return &searchService{
		sessions: sessions,
		logger:   logger.With().Str("component", "search_service").Logger(),
	}
}

func (s *searchService) Recent(ctx context.Context) ([]string, error) {
	terms, err := s.sessions.RecentSearches(ctx)
	if err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []string{}
	}
	return terms, nil
}

func (s *searchService) Record(ctx context.Context, term string) ([]string, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return s.Recent(ctx)
	}

	existing, err := s.sessions.RecentSearches(ctx)
	if err != nil {
		return nil, err
	}

	terms := make([]string, 0, maxRecentSearches)
	terms = append(terms, trimmed)
	for _, prior := range existing {
		if strings.EqualFold(prior, trimmed) {
			continue
		}
		terms = append(terms, prior)
		if len(terms) == maxRecentSearches {
			break
		}
	}

	if err := s.sessions.SaveRecentSearches(ctx, terms); err != nil {
		return nil, err
	}
	return terms, nil
}

func (s *searchService) Clear(ctx context.Context) error {
	return s.sessions.ClearRecentSearches(ctx)
}
