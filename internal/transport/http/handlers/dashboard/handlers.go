package dashboardhandler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"payroll/internal/domain/dashboard"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
	"payroll/internal/transport/http/render"
)

type Handler struct {
	Dashboard *dashboard.Service
	Render    *render.Renderer
}

func NewHandler(svc *dashboard.Service, renderer *render.Renderer) *Handler {
	return &Handler{Dashboard: svc, Render: renderer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handlePage)
}

func (h *Handler) RegisterAPIRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleSummary)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dashboard.Build(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "build dashboard failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not load the dashboard.")
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "dashboard", "Dashboard", summary)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Dashboard.Build(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "build dashboard failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
