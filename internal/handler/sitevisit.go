package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rithysak/backoffice/internal/auth"
	"github.com/rithysak/backoffice/internal/csrf"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/forms"
	"github.com/rithysak/backoffice/internal/service"
)

// SiteVisitHandler handles the site-visit list and its create/edit
// screens. A visit can be created from a call-log row, which pre-fills
// the lead and property.
type SiteVisitHandler struct {
	siteVisits service.SiteVisitService
	callLogs   service.CallLogService
	renderer   *Renderer
	logger     *slog.Logger
	pageSize   int
	debounce   time.Duration
	isSecure   bool
}

// NewSiteVisitHandler creates a new SiteVisitHandler.
func NewSiteVisitHandler(siteVisits service.SiteVisitService, callLogs service.CallLogService, renderer *Renderer, logger *slog.Logger, pageSize int, debounce time.Duration, isSecure bool) *SiteVisitHandler {
	return &SiteVisitHandler{
		siteVisits: siteVisits,
		callLogs:   callLogs,
		renderer:   renderer,
		logger:     logger,
		pageSize:   pageSize,
		debounce:   debounce,
		isSecure:   isSecure,
	}
}

// List renders one page of site visits.
func (h *SiteVisitHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.siteVisits.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderHTTP(w, "sitevisits/index", listData(r, ctrl))
}

// NewPage renders the site-visit form. When a call_log_id query
// parameter is present the lead and property come pre-filled from that
// call.
func (h *SiteVisitHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	form := forms.New()
	if callLogID := r.URL.Query().Get("call_log_id"); callLogID != "" {
		if entry, err := h.fetchCallLog(r, callLogID); err == nil {
			form.Set("call_log_id", entry.ID)
			form.Set("lead_id", entry.LeadID)
			form.Set("lead_name", entry.LeadName)
			form.Set("property_profile_id", entry.PropertyID)
			form.Set("property_name", entry.PropertyName)
			form.Set("staff_id", entry.StaffID)
			form.Set("staff_name", entry.StaffName)
		} else {
			h.logger.Warn("could not prefill from call log", "call_log_id", callLogID, "error", err)
		}
	}
	h.renderForm(w, r, form, "", "")
}

// Create validates the submission and schedules the visit.
func (h *SiteVisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderForm(w, r, form, "", "")
		return
	}

	if err := h.siteVisits.Create(r.Context(), h.siteVisitParams(r, form)); err != nil {
		h.renderForm(w, r, form, "", domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, createdPath(r, "/site-visits", "/site-visits/new"), "Site visit scheduled.")
}

// EditPage renders the form populated with an existing visit.
func (h *SiteVisitHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	visit, err := h.fetchSiteVisit(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	form := forms.New()
	form.Set("call_log_id", visit.CallLogID)
	form.Set("lead_id", visit.LeadID)
	form.Set("lead_name", visit.LeadName)
	form.Set("property_profile_id", visit.PropertyID)
	form.Set("property_name", visit.PropertyName)
	form.Set("staff_id", visit.StaffID)
	form.Set("staff_name", visit.StaffName)
	form.Set("visit_date", visit.VisitDate)
	form.Set("visit_start_time", visit.StartTime)
	form.Set("visit_end_time", visit.EndTime)
	form.Set("purpose", visit.Purpose)
	form.Set("remark", visit.Remark)

	h.renderForm(w, r, form, visit.ID, "")
}

// Update validates the submission and updates the visit.
func (h *SiteVisitHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderForm(w, r, form, id, "")
		return
	}

	err := h.siteVisits.Update(r.Context(), domain.UpdateSiteVisitParams{
		ID:                    id,
		CreateSiteVisitParams: h.siteVisitParams(r, form),
	})
	if err != nil {
		h.renderForm(w, r, form, id, domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, "/site-visits", "Site visit updated.")
}

// parseAndValidate parses the form and runs the site-visit rules. Both
// ends of the visit window are mandatory.
func (h *SiteVisitHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*forms.Form, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return nil, false
	}
	if !csrf.ValidateRequest(r) {
		http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
		return nil, false
	}

	form := forms.FromURLValues(r.PostForm)
	ok := form.Validate(
		forms.Rule{Field: "lead_id", Check: forms.Required("Select a lead")},
		forms.Rule{Field: "property_profile_id", Check: forms.Required("Select a property")},
		forms.Rule{Field: "visit_date", Check: forms.Required("Visit date is required")},
		forms.Rule{Field: "visit_start_time", Check: forms.Required("Start time is required")},
		forms.Rule{Field: "visit_end_time", Check: forms.Required("End time is required")},
		forms.Rule{Field: "visit_end_time", Check: forms.TimeAfter("visit_start_time", "End time must be after start time")},
	)
	return form, ok
}

// siteVisitParams assembles service parameters from a validated form.
func (h *SiteVisitHandler) siteVisitParams(r *http.Request, form *forms.Form) domain.CreateSiteVisitParams {
	return domain.CreateSiteVisitParams{
		CreatedBy:         currentUserID(r),
		CallLogID:         form.Get("call_log_id"),
		LeadID:            form.Get("lead_id"),
		PropertyProfileID: form.Get("property_profile_id"),
		StaffID:           form.Get("staff_id"),
		VisitDate:         form.Get("visit_date"),
		StartTime:         form.Get("visit_start_time"),
		EndTime:           form.Get("visit_end_time"),
		Purpose:           form.Get("purpose"),
		Remark:            form.Get("remark"),
	}
}

// renderForm renders the site-visit form.
func (h *SiteVisitHandler) renderForm(w http.ResponseWriter, r *http.Request, form *forms.Form, editID, flash string) {
	h.renderer.RenderHTTP(w, "sitevisits/form", FormData{
		User:      auth.GetUserFromRequest(r),
		Flash:     flash,
		CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
		Form:      form,
		Editing:   editID != "",
		EditID:    editID,
	})
}

// fetchCallLog resolves a call-log id for pre-filling the form.
func (h *SiteVisitHandler) fetchCallLog(r *http.Request, id string) (*domain.CallLog, error) {
	const op = "SiteVisitHandler.fetchCallLog"

	page, err := h.callLogs.Search(r.Context(), domain.PageRequest{
		PageNumber: 1,
		PageSize:   h.pageSize,
		SearchType: "call_log_id",
		Query:      id,
	})
	if err != nil {
		return nil, err
	}
	for i := range page.Rows {
		if page.Rows[i].ID == id {
			return &page.Rows[i], nil
		}
	}
	return nil, domain.NotFound(op, "call log", id)
}

// fetchSiteVisit resolves the {id} path value via an id-scoped search.
func (h *SiteVisitHandler) fetchSiteVisit(r *http.Request) (*domain.SiteVisit, error) {
	const op = "SiteVisitHandler.fetchSiteVisit"

	id := r.PathValue("id")
	page, err := h.siteVisits.Search(r.Context(), domain.PageRequest{
		PageNumber: 1,
		PageSize:   h.pageSize,
		SearchType: "site_visit_id",
		Query:      id,
	})
	if err != nil {
		return nil, err
	}
	for i := range page.Rows {
		if page.Rows[i].ID == id {
			return &page.Rows[i], nil
		}
	}
	return nil, domain.NotFound(op, "site visit", id)
}
