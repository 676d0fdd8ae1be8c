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

// LeadHandler handles the lead list and the lead create/edit screens.
type LeadHandler struct {
	leads    service.LeadService
	refdata  *refdata.Store
	renderer *Renderer
	logger   *slog.Logger
	pageSize int
	debounce time.Duration
	isSecure bool
}

// NewLeadHandler creates a new LeadHandler.
func NewLeadHandler(leads service.LeadService, ref *refdata.Store, renderer *Renderer, logger *slog.Logger, pageSize int, debounce time.Duration, isSecure bool) *LeadHandler {
	return &LeadHandler{
		leads:    leads,
		refdata:  ref,
		renderer: renderer,
		logger:   logger,
		pageSize: pageSize,
		debounce: debounce,
		isSecure: isSecure,
	}
}

// List renders one page of leads. A failed fetch renders an empty table
// with a retry notice, not an error page.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.leads.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderHTTP(w, "leads/index", listData(r, ctrl))
}

// NewPage renders the empty lead form.
func (h *LeadHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, forms.New(), "", "")
}

// Create validates the submission and creates the lead.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderForm(w, r, form, "", "")
		return
	}

	if err := h.leads.Create(r.Context(), h.leadParams(r, form)); err != nil {
		h.renderForm(w, r, form, "", domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, createdPath(r, "/leads", "/leads/new"), "Lead created.")
}

// EditPage renders the form populated with an existing lead.
func (h *LeadHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	lead, err := h.fetchLead(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	form := forms.New()
	form.Set("first_name", firstNamePart(lead.FullName))
	form.Set("last_name", lastNamePart(lead.FullName))
	form.Set("gender", lead.Gender)
	form.Set("email", lead.Email)
	form.Set("remark", lead.Remark)
	form.Set("phone", lead.Phone)
	for _, ch := range lead.Channels {
		for _, v := range ch.Values {
			if !v.IsPrimary || v.Number == "" {
				continue
			}
			switch ch.Type {
			case "phone":
				form.Set("phone_remark", v.Remark)
			case "telegram":
				form.Set("telegram", v.Number)
			}
		}
	}
	setAddressFields(form, lead.Address)

	h.renderForm(w, r, form, lead.ID, "")
}

// Update validates the submission and updates the lead.
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderForm(w, r, form, id, "")
		return
	}

	err := h.leads.Update(r.Context(), domain.UpdateLeadParams{
		ID:               id,
		CreateLeadParams: h.leadParams(r, form),
	})
	if err != nil {
		h.renderForm(w, r, form, id, domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, "/leads", "Lead updated.")
}

// parseAndValidate parses the form and runs the lead rules. A nil form
// means the response has already been written.
func (h *LeadHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*forms.Form, bool) {
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
		forms.Rule{Field: "first_name", Check: forms.Required("First name is required")},
		forms.Rule{Field: "email", Check: forms.Email("Enter a valid email address")},
	)
	return form, ok
}

// leadParams assembles service parameters from a validated form.
func (h *LeadHandler) leadParams(r *http.Request, form *forms.Form) domain.CreateLeadParams {
	var channels []domain.ContactChannel
	if phone := form.Get("phone"); phone != "" {
		channels = append(channels, domain.ContactChannel{
			Type: "phone",
			Values: []domain.ContactValue{
				{Number: phone, Remark: form.Get("phone_remark"), IsPrimary: true},
			},
		})
	}
	if telegram := form.Get("telegram"); telegram != "" {
		channels = append(channels, domain.ContactChannel{
			Type: "telegram",
			Values: []domain.ContactValue{
				{Number: telegram, IsPrimary: true},
			},
		})
	}

	return domain.CreateLeadParams{
		CreatedBy: currentUserID(r),
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
		Gender:    form.Get("gender"),
		Email:     form.Get("email"),
		Phone:     form.Get("phone"),
		SourceID:  form.Get("lead_source_id"),
		StatusID:  form.Get("lead_status_id"),
		Address:   addressFromForm(form, h.refdata),
		Channels:  channels,
		Remark:    form.Get("remark"),
	}
}

// renderForm renders the lead form with reference lists and any flash.
func (h *LeadHandler) renderForm(w http.ResponseWriter, r *http.Request, form *forms.Form, editID, flash string) {
	h.renderer.RenderHTTP(w, "leads/form", FormData{
		User:      auth.GetUserFromRequest(r),
		Flash:     flash,
		CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
		Form:      form,
		Editing:   editID != "",
		EditID:    editID,
		Options: map[string][]domain.Place{
			"lead_source_id": h.refdata.LeadSources(),
			"lead_status_id": h.refdata.LeadStatuses(),
			"province_id":    h.refdata.Provinces(),
			"district_id":    h.refdata.Districts(),
			"commune_id":     h.refdata.Communes(),
			"village_id":     h.refdata.Villages(),
		},
	})
}

// fetchLead resolves the {id} path value to a lead via an id-scoped
// search. The CRM has no fetch-one endpoint.
func (h *LeadHandler) fetchLead(r *http.Request) (*domain.Lead, error) {
	const op = "LeadHandler.fetchLead"

	id := r.PathValue("id")
	page, err := h.leads.Search(r.Context(), domain.PageRequest{
		PageNumber: 1,
		PageSize:   h.pageSize,
		SearchType: "lead_id",
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
	return nil, domain.NotFound(op, "lead", id)
}
