package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rithysak/backoffice/internal/auth"
	"github.com/rithysak/backoffice/internal/csrf"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/forms"
	"github.com/rithysak/backoffice/internal/refdata"
	"github.com/rithysak/backoffice/internal/service"
)

// CallLogHandler handles the call-pipeline list and its create/edit
// screens. The form embeds lead, property and staff pickers.
type CallLogHandler struct {
	callLogs service.CallLogService
	refdata  *refdata.Store
	renderer *Renderer
	logger   *slog.Logger
	pageSize int
	debounce time.Duration
	isSecure bool
}

// NewCallLogHandler creates a new CallLogHandler.
func NewCallLogHandler(callLogs service.CallLogService, ref *refdata.Store, renderer *Renderer, logger *slog.Logger, pageSize int, debounce time.Duration, isSecure bool) *CallLogHandler {
	return &CallLogHandler{
		callLogs: callLogs,
		refdata:  ref,
		renderer: renderer,
		logger:   logger,
		pageSize: pageSize,
		debounce: debounce,
		isSecure: isSecure,
	}
}

// List renders one page of call-pipeline entries.
func (h *CallLogHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.callLogs.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderHTTP(w, "calllogs/index", listData(r, ctrl))
}

// NewPage renders the empty call-log form.
func (h *CallLogHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, forms.New(), "", "")
}

// Create validates the submission and creates the entry.
func (h *CallLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderForm(w, r, form, "", "")
		return
	}

	if err := h.callLogs.Create(r.Context(), h.callLogParams(r, form)); err != nil {
		h.renderForm(w, r, form, "", domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, createdPath(r, "/call-logs", "/call-logs/new"), "Call log created.")
}

// EditPage renders the form populated with an existing entry.
func (h *CallLogHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	entry, err := h.fetchCallLog(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	form := forms.New()
	form.Set("lead_id", entry.LeadID)
	form.Set("lead_name", entry.LeadName)
	form.Set("property_profile_id", entry.PropertyID)
	form.Set("property_name", entry.PropertyName)
	form.Set("staff_id", entry.StaffID)
	form.Set("staff_name", entry.StaffName)
	form.Set("call_date", entry.CallDate)
	form.Set("call_start_time", entry.StartTime)
	form.Set("call_end_time", entry.EndTime)
	form.Set("remark", entry.Remark)

	h.renderForm(w, r, form, entry.ID, "")
}

// Update validates the submission and updates the entry.
func (h *CallLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderForm(w, r, form, id, "")
		return
	}

	err := h.callLogs.Update(r.Context(), domain.UpdateCallLogParams{
		ID:                  id,
		CreateCallLogParams: h.callLogParams(r, form),
	})
	if err != nil {
		h.renderForm(w, r, form, id, domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, "/call-logs", "Call log updated.")
}

// parseAndValidate parses the form and runs the call-log rules.
func (h *CallLogHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*forms.Form, bool) {
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
		forms.Rule{Field: "call_date", Check: forms.Required("Call date is required")},
		forms.Rule{Field: "call_start_time", Check: forms.Required("Start time is required")},
		forms.Rule{Field: "call_end_time", Check: forms.TimeAfter("call_start_time", "End time must be after start time")},
	)
	return form, ok
}

// callLogParams assembles service parameters from a validated form.
func (h *CallLogHandler) callLogParams(r *http.Request, form *forms.Form) domain.CreateCallLogParams {
	return domain.CreateCallLogParams{
		CreatedBy:         currentUserID(r),
		LeadID:            form.Get("lead_id"),
		PropertyProfileID: form.Get("property_profile_id"),
		StaffID:           form.Get("staff_id"),
		ObjectiveID:       form.Get("objective_id"),
		CallDate:          form.Get("call_date"),
		StartTime:         form.Get("call_start_time"),
		EndTime:           form.Get("call_end_time"),
		Remark:            form.Get("remark"),
	}
}

// renderForm renders the call-log form with the objective list and the
// picker state carried in the form values.
func (h *CallLogHandler) renderForm(w http.ResponseWriter, r *http.Request, form *forms.Form, editID, flash string) {
	h.renderer.RenderHTTP(w, "calllogs/form", FormData{
		User:      auth.GetUserFromRequest(r),
		Flash:     flash,
		CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
		Form:      form,
		Editing:   editID != "",
		EditID:    editID,
		Options: map[string][]domain.Place{
			"objective_id": h.refdata.Objectives(),
		},
	})
}

// fetchCallLog resolves the {id} path value via an id-scoped search.
func (h *CallLogHandler) fetchCallLog(r *http.Request) (*domain.CallLog, error) {
	const op = "CallLogHandler.fetchCallLog"

	id := r.PathValue("id")
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
