// Package refdata caches the CRM reference lists that back every
// dropdown: the administrative address hierarchy, property types and
// statuses, lead sources and statuses and call objectives.
//
// The lists change rarely, so the store fetches them once at startup
// and then refreshes on a timer in the background rather than per
// request.
package refdata

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
)

// Reference list endpoints.
const (
	EndpointProvinces        = "address/provinces"
	EndpointDistricts        = "address/districts"
	EndpointCommunes         = "address/communes"
	EndpointVillages         = "address/villages"
	EndpointPropertyTypes    = "property-type/list"
	EndpointPropertyStatuses = "property-status/list"
	EndpointLeadSources      = "lead-source/list"
	EndpointLeadStatuses     = "lead-status/list"
	EndpointObjectives       = "objective/list"
)

var allEndpoints = []string{
	EndpointProvinces,
	EndpointDistricts,
	EndpointCommunes,
	EndpointVillages,
	EndpointPropertyTypes,
	EndpointPropertyStatuses,
	EndpointLeadSources,
	EndpointLeadStatuses,
	EndpointObjectives,
}

// ReferenceAPI is the slice of the CRM client the store needs.
type ReferenceAPI interface {
	Reference(ctx context.Context, endpoint string) ([]crm.RefItem, error)
}

// Store caches reference lists keyed by endpoint.
//
// The store must be started with Start() and stopped with Stop().
type Store struct {
	api      ReferenceAPI
	logger   *slog.Logger
	interval time.Duration

	mu    sync.RWMutex
	lists map[string][]domain.Place

	wg     sync.WaitGroup
	stopCh chan struct{}
}

// New creates a reference-data store. Nothing is fetched until Start.
func New(api ReferenceAPI, logger *slog.Logger, refreshInterval time.Duration) *Store {
	return &Store{
		api:      api,
		logger:   logger,
		interval: refreshInterval,
		lists:    make(map[string][]domain.Place),
		stopCh:   make(chan struct{}),
	}
}

// Start loads every list once, then refreshes on the configured
// interval until Stop. The initial load is best effort; endpoints that
// fail stay empty until the next refresh.
func (s *Store) Start(ctx context.Context) {
	s.refreshAll(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.refreshAll(ctx)
			}
		}
	}()

	s.logger.Info("reference data store started", "lists", len(allEndpoints), "refresh_interval", s.interval)
}

// Stop signals the refresh loop to stop and waits for it to finish.
func (s *Store) Stop() {
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("reference data store stopped")
}

// refreshAll re-fetches every list, keeping the previous copy of any
// list whose fetch fails.
func (s *Store) refreshAll(ctx context.Context) {
	for _, endpoint := range allEndpoints {
		items, err := s.api.Reference(ctx, endpoint)
		if err != nil {
			s.logger.Warn("failed to refresh reference list", "endpoint", endpoint, "error", err)
			continue
		}

		places := make([]domain.Place, len(items))
		for i, item := range items {
			places[i] = domain.Place{ID: item.ID.String(), Name: item.Name}
		}

		s.mu.Lock()
		s.lists[endpoint] = places
		s.mu.Unlock()
	}
}

// List returns the cached copy of one reference list, empty when the
// list has never loaded.
func (s *Store) List(endpoint string) []domain.Place {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lists[endpoint]
}

// Name resolves an id within one list to its display name, empty when
// unknown.
func (s *Store) Name(endpoint, id string) string {
	if id == "" {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.lists[endpoint] {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

// Provinces returns the cached province list.
func (s *Store) Provinces() []domain.Place { return s.List(EndpointProvinces) }

// Districts returns the cached district list.
func (s *Store) Districts() []domain.Place { return s.List(EndpointDistricts) }

// Communes returns the cached commune list.
func (s *Store) Communes() []domain.Place { return s.List(EndpointCommunes) }

// Villages returns the cached village list.
func (s *Store) Villages() []domain.Place { return s.List(EndpointVillages) }

// PropertyTypes returns the cached property-type list.
func (s *Store) PropertyTypes() []domain.Place { return s.List(EndpointPropertyTypes) }

// PropertyStatuses returns the cached property-status list.
func (s *Store) PropertyStatuses() []domain.Place { return s.List(EndpointPropertyStatuses) }

// LeadSources returns the cached lead-source list.
func (s *Store) LeadSources() []domain.Place { return s.List(EndpointLeadSources) }

// LeadStatuses returns the cached lead-status list.
func (s *Store) LeadStatuses() []domain.Place { return s.List(EndpointLeadStatuses) }

// Objectives returns the cached call-objective list.
func (s *Store) Objectives() []domain.Place { return s.List(EndpointObjectives) }
