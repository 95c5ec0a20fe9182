package appealhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/appeal"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Appeals   *appeal.Service
	Employees *employee.Store
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(appeals *appeal.Service, employees *employee.Store, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Appeals: appeals, Employees: employees, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appeals", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.With(middleware.RequireModule(auth.ModuleAppeals, h.Perms)).Post("/{appealID}/resolve", h.handleResolve)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if user.Role == auth.RoleEmployee {
		employeeID = user.UserID
	}

	list, err := h.Appeals.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appeals_list_failed", "failed to list appeals", reqID)
		return
	}
	api.Success(w, list, reqID)
}

type createAppealRequest struct {
	Type      appeal.Type `json:"type"`
	Reason    string      `json:"reason"`
	Message   string      `json:"message"`
	Date      *string     `json:"date"`
	RelatedID *string     `json:"relatedId"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createAppealRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("reason", payload.Reason, "reason is required")
	if !appeal.ValidType(payload.Type) {
		v.Add("type", "must be one of Absent, Late, Fine, Salary, Other")
	}
	switch payload.Type {
	case appeal.TypeAbsent, appeal.TypeLate:
		if payload.Date == nil || *payload.Date == "" {
			v.Add("date", "is required for attendance appeals")
		} else {
			v.Date("date", *payload.Date)
		}
	case appeal.TypeFine:
		if payload.RelatedID == nil || *payload.RelatedID == "" {
			v.Add("relatedId", "is required for fine appeals")
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.ByID(r.Context(), user.UserID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appeal_create_failed", "failed to create appeal", reqID)
		return
	}

	created, err := h.Appeals.Create(r.Context(), appeal.CreateParams{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         payload.Type,
		Reason:       payload.Reason,
		Message:      payload.Message,
		Date:         payload.Date,
		RelatedID:    payload.RelatedID,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appeal_create_failed", "failed to create appeal", reqID)
		return
	}
	api.Created(w, created, reqID)
}

type resolveRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	appealID := chi.URLParam(r, "appealID")

	var payload resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	resolved, err := h.Appeals.Resolve(r.Context(), appealID, payload.Status)
	switch {
	case errors.Is(err, appeal.ErrInvalidDecision):
		api.Fail(w, http.StatusBadRequest, "invalid_decision", "status must be Approved or Rejected", reqID)
		return
	case errors.Is(err, appeal.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "appeal_not_found", "appeal not found", reqID)
		return
	case errors.Is(err, appeal.ErrAlreadyResolved):
		api.Fail(w, http.StatusConflict, "already_resolved", "appeal already resolved", reqID)
		return
	case errors.Is(err, appeal.ErrMissingRelated):
		api.Fail(w, http.StatusUnprocessableEntity, "missing_related", "appeal is missing its related record", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "appeal_resolve_failed", "failed to resolve appeal", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "appeal.resolve", "appeal", appealID, payload.Status, reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit appeal.resolve failed", "err", err)
	}
	api.Success(w, resolved, reqID)
}
