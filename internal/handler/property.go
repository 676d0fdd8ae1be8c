package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/rithysak/backoffice/internal/auth"
	"github.com/rithysak/backoffice/internal/csrf"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/forms"
	"github.com/rithysak/backoffice/internal/refdata"
	"github.com/rithysak/backoffice/internal/service"
)

// maxUploadMemory bounds multipart parsing before spilling to disk.
const maxUploadMemory = 32 << 20

// PropertyHandler handles the property list and the property
// create/edit screens, including photo uploads.
type PropertyHandler struct {
	properties service.PropertyService
	refdata    *refdata.Store
	renderer   *Renderer
	logger     *slog.Logger
	pageSize   int
	debounce   time.Duration
	isSecure   bool
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(properties service.PropertyService, ref *refdata.Store, renderer *Renderer, logger *slog.Logger, pageSize int, debounce time.Duration, isSecure bool) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
		refdata:    ref,
		renderer:   renderer,
		logger:     logger,
		pageSize:   pageSize,
		debounce:   debounce,
		isSecure:   isSecure,
	}
}

// List renders one page of property profiles.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.properties.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderHTTP(w, "properties/index", listData(r, ctrl))
}

// NewPage renders the empty property form.
func (h *PropertyHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, forms.New(), "", nil, "")
}

// Create validates the submission, uploads photos and creates the
// profile.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, photos, closePhotos, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	defer closePhotos()
	if !ok {
		h.renderForm(w, r, form, "", nil, "")
		return
	}

	if err := h.properties.Create(r.Context(), h.propertyParams(r, form), photos); err != nil {
		h.renderForm(w, r, form, "", nil, domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, createdPath(r, "/properties", "/properties/new"), "Property created.")
}

// EditPage renders the form populated with an existing profile.
func (h *PropertyHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	property, err := h.fetchProperty(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	form := forms.New()
	if property.Name != domain.NoName {
		form.Set("property_profile_name", property.Name)
	}
	form.Set("description", property.Description)
	if property.Price > 0 {
		form.Set("price", strconv.FormatFloat(property.Price, 'f', -1, 64))
	}
	if property.Width > 0 {
		form.Set("width", strconv.FormatFloat(property.Width, 'f', -1, 64))
	}
	if property.Length > 0 {
		form.Set("length", strconv.FormatFloat(property.Length, 'f', -1, 64))
	}
	setAddressFields(form, property.Address)

	h.renderForm(w, r, form, property.ID, property.Photos, "")
}

// Update validates the submission and updates the profile.
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	form, photos, closePhotos, ok := h.parseAndValidate(w, r)
	if form == nil {
		return
	}
	defer closePhotos()
	if !ok {
		h.renderForm(w, r, form, id, nil, "")
		return
	}

	params := domain.UpdatePropertyParams{
		ID:                   id,
		CreatePropertyParams: h.propertyParams(r, form),
	}
	params.PhotoURLs = r.PostForm["existing_photos"]

	if err := h.properties.Update(r.Context(), params, photos); err != nil {
		h.renderForm(w, r, form, id, params.PhotoURLs, domain.ErrorMessage(err))
		return
	}
	redirectWithFlash(w, r, "/properties", "Property updated.")
}

// parseAndValidate parses the multipart form, collects new photo
// uploads and runs the property rules. The returned close function
// releases the opened upload files and must run before the handler
// returns; disk-spilled parts hold a file descriptor until closed.
func (h *PropertyHandler) parseAndValidate(w http.ResponseWriter, r *http.Request) (*forms.Form, map[string]io.Reader, func(), bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return nil, nil, nil, false
	}
	if !csrf.ValidateRequest(r) {
		http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
		return nil, nil, nil, false
	}

	form := forms.FromURLValues(r.PostForm)
	ok := form.Validate(
		forms.Rule{Field: "property_profile_name", Check: forms.Required("Property name is required")},
		forms.Rule{Field: "price", Check: forms.Positive("Price must be a positive number")},
		forms.Rule{Field: "width", Check: forms.Positive("Width must be a positive number")},
		forms.Rule{Field: "length", Check: forms.Positive("Length must be a positive number")},
	)

	photos := make(map[string]io.Reader)
	var opened []multipart.File
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				h.logger.Warn("skipping unreadable upload", "filename", header.Filename, "error", err)
				continue
			}
			photos[header.Filename] = file
			opened = append(opened, file)
		}
	}
	closePhotos := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	return form, photos, closePhotos, ok
}

// propertyParams assembles service parameters from a validated form.
func (h *PropertyHandler) propertyParams(r *http.Request, form *forms.Form) domain.CreatePropertyParams {
	price, _ := strconv.ParseFloat(form.Get("price"), 64)
	width, _ := strconv.ParseFloat(form.Get("width"), 64)
	length, _ := strconv.ParseFloat(form.Get("length"), 64)

	return domain.CreatePropertyParams{
		CreatedBy:   currentUserID(r),
		Name:        form.Get("property_profile_name"),
		TypeID:      form.Get("property_type_id"),
		StatusID:    form.Get("property_status_id"),
		Price:       price,
		Description: form.Get("description"),
		Address:     addressFromForm(form, h.refdata),
		Width:       width,
		Length:      length,
	}
}

// renderForm renders the property form with reference lists, existing
// photos and any flash.
func (h *PropertyHandler) renderForm(w http.ResponseWriter, r *http.Request, form *forms.Form, editID string, photos []string, flash string) {
	h.renderer.RenderHTTP(w, "properties/form", FormData{
		User:      auth.GetUserFromRequest(r),
		Flash:     flash,
		CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
		Form:      form,
		Editing:   editID != "",
		EditID:    editID,
		Options: map[string][]domain.Place{
			"property_type_id":   h.refdata.PropertyTypes(),
			"property_status_id": h.refdata.PropertyStatuses(),
			"province_id":        h.refdata.Provinces(),
			"district_id":        h.refdata.Districts(),
			"commune_id":         h.refdata.Communes(),
			"village_id":         h.refdata.Villages(),
		},
		Extra: map[string]any{
			"Photos": photos,
		},
	})
}

// fetchProperty resolves the {id} path value via an id-scoped search.
func (h *PropertyHandler) fetchProperty(r *http.Request) (*domain.Property, error) {
	const op = "PropertyHandler.fetchProperty"

	id := r.PathValue("id")
	page, err := h.properties.Search(r.Context(), domain.PageRequest{
		PageNumber: 1,
		PageSize:   h.pageSize,
		SearchType: "property_profile_id",
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
	return nil, domain.NotFound(op, "property", id)
}
