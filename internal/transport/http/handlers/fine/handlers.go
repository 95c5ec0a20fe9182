package finehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/fine"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Fines *fine.Store
	Perms middleware.PermissionStore
	Audit *audit.Service
}

func NewHandler(fines *fine.Store, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Fines: fines, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fines", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.handleList)
		r.With(middleware.RequireModule(auth.ModuleFines, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequireModule(auth.ModuleFines, h.Perms)).Put("/{fineID}/pay", h.handlePay)
		r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/{fineID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if user.Role == auth.RoleEmployee {
		employeeID = user.UserID
	}

	list, err := h.Fines.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fines_list_failed", "failed to list fines", reqID)
		return
	}
	api.Success(w, list, reqID)
}

type createFineRequest struct {
	EmployeeID string `json:"employeeId"`
	Type       string `json:"type"`
	Amount     int64  `json:"amount"`
	Reason     string `json:"reason"`
	Date       string `json:"date"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createFineRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("reason", payload.Reason, "reason is required")
	v.Positive("amount", payload.Amount, "must be a positive amount")
	v.Date("date", payload.Date)
	if payload.Type == "" {
		payload.Type = fine.TypeOther
	}
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Fines.Create(r.Context(), fine.CreateParams{
		EmployeeID: payload.EmployeeID,
		Type:       payload.Type,
		Amount:     payload.Amount,
		Reason:     payload.Reason,
		Date:       payload.Date,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fine_create_failed", "failed to create fine", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "fine.create", "fine", created.ID, payload.Reason, reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit fine.create failed", "err", err)
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	fineID := chi.URLParam(r, "fineID")

	paid, err := h.Fines.Pay(r.Context(), fineID)
	switch {
	case errors.Is(err, fine.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "fine_not_found", "fine not found", reqID)
		return
	case errors.Is(err, fine.ErrAlreadyPaid):
		api.Fail(w, http.StatusConflict, "already_paid", "fine already paid", reqID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "fine_pay_failed", "failed to mark fine paid", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "fine.pay", "fine", fineID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit fine.pay failed", "err", err)
	}
	api.Success(w, paid, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	fineID := chi.URLParam(r, "fineID")

	err := h.Fines.Delete(r.Context(), fineID)
	if errors.Is(err, fine.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "fine_not_found", "fine not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "fine_delete_failed", "failed to delete fine", reqID)
		return
	}

	if err := h.Audit.Record(r.Context(), user.UserID, "fine.delete", "fine", fineID, "", reqID, shared.ClientIP(r)); err != nil {
		slog.Warn("audit fine.delete failed", "err", err)
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}
