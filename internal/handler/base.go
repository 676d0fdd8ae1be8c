// Package handler contains the HTTP layer: one handler type per list
// screen plus sign-in, all rendering server-side templates.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rithysak/backoffice/internal/auth"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/forms"
	"github.com/rithysak/backoffice/internal/list"
)

// ListData is the template payload for every list screen.
type ListData[T any] struct {
	User       *domain.User
	Flash      string
	Query      string
	Rows       []T
	Pagination domain.Pagination
	PageRange  []int

	// DebounceMS is the search input's debounce interval in
	// milliseconds, consumed by the client script.
	DebounceMS int

	// LoadFailed marks a page that rendered empty because the CRM
	// fetch failed, so the template can show a retry notice instead
	// of "no results".
	LoadFailed bool
}

// FormData is the template payload for create and edit screens.
type FormData struct {
	User      *domain.User
	Flash     string
	CSRFToken string
	Form      *forms.Form
	Editing   bool
	EditID    string

	// Reference lists for dropdowns, keyed by field name.
	Options map[string][]domain.Place

	// Extra holds screen-specific values (picker selections, photo
	// lists) the shared fields do not cover.
	Extra map[string]any
}

// runList drives one controller through the query parameters of a list
// request: q for the search term, page for the page number. It blocks
// until the fetch settles.
func runList[T any](r *http.Request, fetch list.Fetcher[T], pageSize int, searchType string, debounce time.Duration, logger *slog.Logger) *list.Controller[T] {
	ctrl := list.New(list.Config[T]{
		Fetch:      fetch,
		Logger:     logger,
		PageSize:   pageSize,
		SearchType: searchType,
		Debounce:   debounce,
	})

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	ctrl.Restore(q.Get("q"), page)
	ctrl.Refresh(r.Context())
	ctrl.Wait()
	return ctrl
}

// listData assembles the shared list payload from a settled controller.
func listData[T any](r *http.Request, ctrl *list.Controller[T]) ListData[T] {
	state := ctrl.State()
	pagination := ctrl.Pagination()
	return ListData[T]{
		User:       auth.GetUserFromRequest(r),
		Flash:      r.URL.Query().Get("flash"),
		Query:      state.SearchQuery,
		Rows:       ctrl.Rows(),
		Pagination: pagination,
		PageRange:  domain.PageRange(pagination.CurrentPage, pagination.TotalPages),
		DebounceMS: int(ctrl.Debounce() / time.Millisecond),
		LoadFailed: ctrl.Err() != nil,
	}
}

// createdPath picks the post-create destination: back to the list, or a
// fresh form when the operator chose to add another.
func createdPath(r *http.Request, listPath, newPath string) string {
	if r.PostFormValue("add_another") == "1" {
		return newPath
	}
	return listPath
}

// redirectWithFlash redirects to path with a one-shot flash message in
// the query string.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, flash string) {
	if flash != "" {
		path += "?flash=" + url.QueryEscape(flash)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// currentUserID returns the signed-in operator's id, empty when
// anonymous. Mutating handlers treat empty as a sign-in redirect.
func currentUserID(r *http.Request) string {
	if user := auth.GetUserFromRequest(r); user != nil {
		return user.ID
	}
	return ""
}
