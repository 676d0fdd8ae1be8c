package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rithysak/backoffice/internal/service"
)

// PickerHandler serves the search-and-select modal fragments embedded
// in the call-log and site-visit forms. Each endpoint returns one page
// of candidate rows as a partial; the form stores the confirmed pick in
// hidden fields.
type PickerHandler struct {
	leads      service.LeadService
	properties service.PropertyService
	staff      service.StaffService
	renderer   *Renderer
	logger     *slog.Logger
	pageSize   int
	debounce   time.Duration
}

// NewPickerHandler creates a new PickerHandler.
func NewPickerHandler(leads service.LeadService, properties service.PropertyService, staff service.StaffService, renderer *Renderer, logger *slog.Logger, pageSize int, debounce time.Duration) *PickerHandler {
	return &PickerHandler{
		leads:      leads,
		properties: properties,
		staff:      staff,
		renderer:   renderer,
		logger:     logger,
		pageSize:   pageSize,
		debounce:   debounce,
	}
}

// Leads renders one page of lead candidates.
func (h *PickerHandler) Leads(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.leads.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderPartial(w, "lead-picker", listData(r, ctrl))
}

// Properties renders one page of property candidates.
func (h *PickerHandler) Properties(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.properties.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderPartial(w, "property-picker", listData(r, ctrl))
}

// Staff renders one page of staff candidates.
func (h *PickerHandler) Staff(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.staff.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderPartial(w, "staff-picker", listData(r, ctrl))
}
