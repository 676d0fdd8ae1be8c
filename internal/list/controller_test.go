package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithysak/backoffice/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingFetcher captures every request it serves.
type recordingFetcher struct {
	mu   sync.Mutex
	reqs []domain.PageRequest
	page domain.Page[string]
	err  error
}

func (f *recordingFetcher) fetch(ctx context.Context, req domain.PageRequest) (domain.Page[string], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.page, f.err
}

func (f *recordingFetcher) requests() []domain.PageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PageRequest(nil), f.reqs...)
}

func TestControllerSetPage(t *testing.T) {
	f := &recordingFetcher{page: domain.Page[string]{Rows: []string{"a", "b"}, Total: 27}}
	c := New(Config[string]{Fetch: f.fetch, Logger: discardLogger(), PageSize: 10})

	c.SetPage(context.Background(), 2)
	c.Wait()

	assert.Equal(t, []string{"a", "b"}, c.Rows())
	assert.Equal(t, 27, c.Total())
	assert.False(t, c.Loading())
	require.NoError(t, c.Err())

	reqs := f.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, 2, reqs[0].PageNumber)
	assert.Equal(t, 10, reqs[0].PageSize)
}

func TestControllerIgnoresInvalidPage(t *testing.T) {
	f := &recordingFetcher{}
	c := New(Config[string]{Fetch: f.fetch, Logger: discardLogger()})

	c.SetPage(context.Background(), 0)
	c.SetPage(context.Background(), -3)
	c.Wait()

	assert.Empty(t, f.requests())
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestSetSearchResetsPage(t *testing.T) {
	f := &recordingFetcher{page: domain.Page[string]{Rows: []string{"x"}, Total: 1}}
	c := New(Config[string]{Fetch: f.fetch, Logger: discardLogger(), SearchType: "name"})

	c.SetPage(context.Background(), 5)
	c.Wait()
	c.SetSearch(context.Background(), "villa")
	c.Wait()

	reqs := f.requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, 5, reqs[0].PageNumber)
	assert.Equal(t, 1, reqs[1].PageNumber)
	assert.Equal(t, "villa", reqs[1].Query)
	assert.Equal(t, "name", reqs[1].SearchType)
}

func TestSetSearchDebounceCoalesces(t *testing.T) {
	f := &recordingFetcher{page: domain.Page[string]{Rows: []string{"x"}, Total: 1}}
	c := New(Config[string]{Fetch: f.fetch, Logger: discardLogger(), Debounce: 40 * time.Millisecond})

	// Three keystrokes inside one debounce window issue one fetch.
	c.SetSearch(context.Background(), "v")
	c.SetSearch(context.Background(), "vi")
	c.SetSearch(context.Background(), "vil")
	assert.True(t, c.Loading())
	c.Wait()

	reqs := f.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "vil", reqs[0].Query)
	assert.Equal(t, 1, reqs[0].PageNumber)
}

func TestStaleResponseIsDropped(t *testing.T) {
	release := make(chan struct{})

	// The page-1 fetch blocks until released; keying on the request
	// rather than dispatch order keeps the test deterministic when the
	// two fetch goroutines race.
	fetch := func(ctx context.Context, req domain.PageRequest) (domain.Page[string], error) {
		if req.PageNumber == 1 {
			<-release
			return domain.Page[string]{Rows: []string{"stale"}, Total: 99}, nil
		}
		return domain.Page[string]{Rows: []string{"fresh"}, Total: 1}, nil
	}

	c := New(Config[string]{Fetch: fetch, Logger: discardLogger()})
	c.SetPage(context.Background(), 1)
	c.SetPage(context.Background(), 2)
	c.Wait()

	assert.Equal(t, []string{"fresh"}, c.Rows())
	assert.Equal(t, 1, c.Total())

	// Let the superseded fetch finish; its result must never publish.
	close(release)
	assert.Never(t, func() bool {
		rows := c.Rows()
		return len(rows) == 1 && rows[0] == "stale"
	}, 150*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, 1, c.Total())
}

func TestFetchErrorFailsSoft(t *testing.T) {
	f := &recordingFetcher{err: errors.New("upstream down")}
	c := New(Config[string]{Fetch: f.fetch, Logger: discardLogger()})

	c.Refresh(context.Background())
	c.Wait()

	// The screen degrades to an empty table instead of an error page.
	assert.Empty(t, c.Rows())
	assert.Zero(t, c.Total())
	assert.EqualError(t, c.Err(), "upstream down")

	f.mu.Lock()
	f.err = nil
	f.page = domain.Page[string]{Rows: []string{"back"}, Total: 1}
	f.mu.Unlock()

	c.Refresh(context.Background())
	c.Wait()

	assert.Equal(t, []string{"back"}, c.Rows())
	require.NoError(t, c.Err())
}

func TestControllerOnUpdate(t *testing.T) {
	var updates int32
	f := &recordingFetcher{page: domain.Page[string]{Rows: []string{"x"}, Total: 1}}
	c := New(Config[string]{
		Fetch:    f.fetch,
		Logger:   discardLogger(),
		OnUpdate: func() { atomic.AddInt32(&updates, 1) },
	})

	c.Refresh(context.Background())
	c.Wait()
	c.SetPage(context.Background(), 2)
	c.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&updates))
}

func TestSelectionConfirm(t *testing.T) {
	f := &recordingFetcher{page: domain.Page[string]{Rows: []string{"42", "43"}, Total: 2}}
	ctrl := New(Config[string]{Fetch: f.fetch, Logger: discardLogger()})

	var picked string
	sel := NewSelection(ctrl, func(row string) { picked = row })

	sel.Open(context.Background())
	ctrl.Wait()
	assert.True(t, sel.IsOpen())
	require.Len(t, f.requests(), 1)

	sel.Confirm("42")
	assert.False(t, sel.IsOpen())
	assert.Equal(t, "42", picked)

	got, ok := sel.Selected()
	require.True(t, ok)
	assert.Equal(t, "42", got)
}

func TestSelectionReopenKeepsSelection(t *testing.T) {
	f := &recordingFetcher{page: domain.Page[string]{Rows: []string{"42"}, Total: 1}}
	ctrl := New(Config[string]{Fetch: f.fetch, Logger: discardLogger()})
	sel := NewSelection[string](ctrl, nil)

	sel.Open(context.Background())
	ctrl.Wait()
	sel.Confirm("42")

	// Browsing again without confirming leaves the pick alone.
	sel.Open(context.Background())
	ctrl.Wait()
	sel.Close()

	got, ok := sel.Selected()
	require.True(t, ok)
	assert.Equal(t, "42", got)

	sel.Clear()
	_, ok = sel.Selected()
	assert.False(t, ok)
}
