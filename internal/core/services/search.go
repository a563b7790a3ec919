package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
	"github.com/custodia-labs/docintake/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// EmptyQueryMessage is shown when a blank query is submitted.
const EmptyQueryMessage = "Please enter a search query"

// SearchService runs semantic searches against the remote service.
type SearchService struct {
	api          driven.IntakeAPI
	notifier     driven.Notifier
	defaultLimit int

	mu      sync.RWMutex
	state   domain.SearchState
	results []domain.SearchResult
}

// NewSearchService creates a search service. A defaultLimit of zero uses
// domain.DefaultSearchResults.
func NewSearchService(api driven.IntakeAPI, notifier driven.Notifier, defaultLimit int) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = domain.DefaultSearchResults
	}
	if notifier == nil {
		notifier = driven.NopNotifier{}
	}
	return &SearchService{
		api:          api,
		notifier:     notifier,
		defaultLimit: defaultLimit,
		state:        domain.SearchIdle,
	}
}

// Search runs a semantic query. Results keep the service's ranking.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		s.notifier.Notify(domain.Notification{Level: domain.NotifyWarning, Message: EmptyQueryMessage})
		return nil, domain.ErrEmptyInput
	}

	s.mu.Lock()
	if s.state == domain.SearchLoading {
		s.mu.Unlock()
		return nil, domain.ErrSearchInProgress
	}
	s.state = domain.SearchLoading
	s.mu.Unlock()

	if opts.Limit <= 0 {
		opts.Limit = s.defaultLimit
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q, n_results: %d, category: %q", query, opts.Limit, opts.Category)

	results, err := s.api.Search(ctx, query, opts)
	if err != nil {
		s.mu.Lock()
		s.state = domain.SearchFailed
		s.results = nil
		s.mu.Unlock()

		logger.Warn("Search failed: %v", err)
		msg := domain.TransportDetail(err)
		if msg == "" {
			msg = "Search failed"
		}
		s.notifier.Notify(domain.Notification{Level: domain.NotifyError, Message: render.Sanitize(msg)})
		return nil, fmt.Errorf("search: %w", err)
	}

	if results == nil {
		results = []domain.SearchResult{}
	}
	logger.Debug("Search returned %d results", len(results))

	s.mu.Lock()
	s.results = results
	if len(results) == 0 {
		s.state = domain.SearchEmpty
	} else {
		s.state = domain.SearchResults
	}
	s.mu.Unlock()

	return results, nil
}

// State returns the display state of the last search.
func (s *SearchService) State() domain.SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Results returns the results of the last successful search.
func (s *SearchService) Results() []domain.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SearchResult, len(s.results))
	copy(out, s.results)
	return out
}
