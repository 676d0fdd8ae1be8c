package refdata

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithysak/backoffice/internal/crm"
)

type fakeReferenceAPI struct {
	mu    sync.Mutex
	lists map[string][]crm.RefItem
	errs  map[string]error
	calls int
}

func (f *fakeReferenceAPI) Reference(ctx context.Context, endpoint string) ([]crm.RefItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := f.errs[endpoint]; err != nil {
		return nil, err
	}
	return f.lists[endpoint], nil
}

func testStore(api ReferenceAPI) *Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(api, logger, time.Hour)
}

func TestStoreLoadsAndResolves(t *testing.T) {
	api := &fakeReferenceAPI{
		lists: map[string][]crm.RefItem{
			EndpointProvinces:   {{ID: "12", Name: "Phnom Penh"}, {ID: "3", Name: "Kampot"}},
			EndpointLeadSources: {{ID: "1", Name: "Facebook"}},
		},
	}
	s := testStore(api)
	s.Start(context.Background())
	defer s.Stop()

	provinces := s.Provinces()
	require.Len(t, provinces, 2)
	assert.Equal(t, "Phnom Penh", provinces[0].Name)

	assert.Equal(t, "Facebook", s.Name(EndpointLeadSources, "1"))
	assert.Empty(t, s.Name(EndpointLeadSources, "99"))
	assert.Empty(t, s.Name(EndpointLeadSources, ""))
}

func TestStoreKeepsStaleListOnRefreshFailure(t *testing.T) {
	api := &fakeReferenceAPI{
		lists: map[string][]crm.RefItem{
			EndpointProvinces: {{ID: "12", Name: "Phnom Penh"}},
		},
	}
	s := testStore(api)
	s.Start(context.Background())
	defer s.Stop()

	require.Len(t, s.Provinces(), 1)

	api.mu.Lock()
	api.errs = map[string]error{EndpointProvinces: errors.New("upstream down")}
	api.mu.Unlock()

	s.refreshAll(context.Background())

	// The old copy survives a failed refresh.
	assert.Len(t, s.Provinces(), 1)
}

func TestStoreEmptyBeforeLoad(t *testing.T) {
	s := testStore(&fakeReferenceAPI{})
	assert.Empty(t, s.PropertyTypes())
	assert.Empty(t, s.Name(EndpointObjectives, "1"))
}
