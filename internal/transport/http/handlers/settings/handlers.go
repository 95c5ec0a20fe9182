package settingshandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/settings"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Settings *settings.Store
	Perms    *auth.PermissionStore
	Audit    *audit.Service
}

func NewHandler(settingsStore *settings.Store, perms *auth.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Settings: settingsStore, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Get("/lead-permissions", h.handleListLeadPermissions)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Put("/lead-permissions/{leadID}", h.handleSetLeadPermissions)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	cfg, err := h.Settings.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to load settings", reqID)
		return
	}
	api.Success(w, cfg, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("officeStartTime", payload.OfficeStartTime, "office start time is required")
	v.Required("officeEndTime", payload.OfficeEndTime, "office end time is required")
	if payload.LateFineAmount < 0 {
		v.Add("lateFineAmount", "must not be negative")
	}
	if v.Reject(w, reqID) {
		return
	}

	updated, err := h.Settings.Update(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_update_failed", "failed to update settings", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "settings.update", "settings", "settings", "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit settings.update failed", "err", err)
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleListLeadPermissions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	grants, err := h.Perms.AllGrants(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "lead_permissions_failed", "failed to list lead permissions", reqID)
		return
	}
	api.Success(w, grants, reqID)
}

type leadPermissionsRequest struct {
	Modules []string `json:"modules"`
}

func (h *Handler) handleSetLeadPermissions(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	leadID := chi.URLParam(r, "leadID")

	var payload leadPermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	known := map[string]struct{}{}
	for _, m := range auth.AllModules {
		known[m] = struct{}{}
	}
	for _, m := range payload.Modules {
		if _, ok := known[m]; !ok {
			api.Fail(w, http.StatusBadRequest, "unknown_module", "unknown module: "+m, reqID)
			return
		}
	}

	if err := h.Perms.SetGrants(r.Context(), leadID, payload.Modules); err != nil {
		api.Fail(w, http.StatusInternalServerError, "lead_permissions_failed", "failed to update lead permissions", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "lead_permissions.update", "lead", leadID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit lead_permissions.update failed", "err", err)
	}
	api.Success(w, map[string]any{"leadId": leadID, "modules": payload.Modules}, reqID)
}
