package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rithysak/backoffice/internal/service"
)

// StaffHandler handles the read-only staff list.
type StaffHandler struct {
	staff    service.StaffService
	renderer *Renderer
	logger   *slog.Logger
	pageSize int
	debounce time.Duration
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(staff service.StaffService, renderer *Renderer, logger *slog.Logger, pageSize int, debounce time.Duration) *StaffHandler {
	return &StaffHandler{
		staff:    staff,
		renderer: renderer,
		logger:   logger,
		pageSize: pageSize,
		debounce: debounce,
	}
}

// List renders one page of staff.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	ctrl := runList(r, h.staff.Search, h.pageSize, "", h.debounce, h.logger)
	h.renderer.RenderHTTP(w, "staff/index", listData(r, ctrl))
}
