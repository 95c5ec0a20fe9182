package leavehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Leaves    *leave.Service
	Employees *employee.Store
	Perms     middleware.PermissionStore
	Audit     *audit.Service
}

func NewHandler(leaves *leave.Service, employees *employee.Store, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Leaves: leaves, Employees: employees, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.With(middleware.RequireModule(auth.ModuleLeave, h.Perms)).Put("/{leaveID}/status", h.handleUpdateStatus)
		r.Delete("/{leaveID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if user.Role == auth.RoleEmployee {
		employeeID = user.UserID
	}

	list, err := h.Leaves.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leaves_list_failed", "failed to list leave requests", reqID)
		return
	}
	api.Success(w, list, reqID)
}

type createLeaveRequest struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	// Employees file for themselves; admins may file on anyone's behalf.
	if user.Role == auth.RoleEmployee || payload.EmployeeID == "" {
		payload.EmployeeID = user.UserID
	}

	v := shared.NewValidator()
	v.Required("type", payload.Type, "type is required")
	v.Required("reason", payload.Reason, "reason is required")
	start, startOK := v.Date("startDate", payload.StartDate)
	end, endOK := v.Date("endDate", payload.EndDate)
	if startOK && endOK {
		v.DateOrder("startDate", start, "endDate", end)
	}
	if v.Reject(w, reqID) {
		return
	}

	emp, err := h.Employees.ByID(r.Context(), payload.EmployeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", reqID)
		return
	}

	created, err := h.Leaves.Create(r.Context(), leave.CreateParams{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Type:         payload.Type,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
		Reason:       payload.Reason,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_create_failed", "failed to create leave request", reqID)
		return
	}
	api.Created(w, created, reqID)
}

type leaveStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	leaveID := chi.URLParam(r, "leaveID")

	var payload leaveStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	updated, err := h.Leaves.UpdateStatus(r.Context(), leaveID, payload.Status)
	switch {
	case errors.Is(err, leave.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_status", "status must be Approved or Rejected", reqID)
		return
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", reqID)
		return
	case errors.Is(err, leave.ErrAlreadyResolved):
		api.Fail(w, http.StatusConflict, "already_resolved", "leave request already resolved", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "leave_status_failed", "failed to update leave request", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "leave.decide", "leave", leaveID, payload.Status, reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit leave.decide failed", "err", err)
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	leaveID := chi.URLParam(r, "leaveID")

	existing, err := h.Leaves.ByID(r.Context(), leaveID)
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave request not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_delete_failed", "failed to delete leave request", reqID)
		return
	}

	// Employees may only withdraw their own pending requests.
	if user.Role == auth.RoleEmployee {
		if existing.EmployeeID != user.UserID {
			api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", reqID)
			return
		}
		if existing.Status != leave.StatusPending {
			api.Fail(w, http.StatusConflict, "already_resolved", "resolved leave requests cannot be withdrawn", reqID)
			return
		}
	}

	if err := h.Leaves.Delete(r.Context(), leaveID); err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_delete_failed", "failed to delete leave request", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}
