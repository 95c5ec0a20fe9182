package reportshandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/reports"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Reports *reports.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(reportsSvc *reports.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Reports: reportsSvc, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireUser, middleware.RequireModule(auth.ModuleDashboard, h.Perms)).
		Get("/dashboard/stats", h.handleDashboardStats)
	r.With(middleware.RequireUser, middleware.RequireRole(auth.RoleAdmin)).
		Get("/audit", h.handleAuditList)
}

func (h *Handler) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Reports.Dashboard(r.Context(), time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to load dashboard stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleAuditList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, 50, 200)
	events, err := h.Audit.List(r.Context(), audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		Actor:      r.URL.Query().Get("actor"),
	}, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", reqID)
		return
	}
	api.Success(w, events, reqID)
}
